package config

import (
	"strings"
	"time"

	"github.com/jcooky/go-din"
	"github.com/samber/lo"
)

type RuntimeConfig struct {
	LogLevel   string `env:"LOG_LEVEL"`
	LogHandler string `env:"LOG_HANDLER"`

	Host string `env:"HOST"`
	Port int    `env:"PORT"`

	ShopAPIURL            string `env:"SHOP_API_URL"`
	ShopAPITimeoutSeconds int    `env:"SHOP_API_TIMEOUT_SECONDS"`

	DatabasePath string `env:"DATABASE_PATH"`

	// AgentSet selects the agent set served by default. Empty means the registry default.
	AgentSet      string `env:"AGENT_SET"`
	AgentSetFiles string `env:"AGENT_SET_FILES"`
}

func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		LogLevel:              "debug",
		LogHandler:            "default",
		Host:                  "0.0.0.0",
		Port:                  3001,
		ShopAPIURL:            "http://localhost:3000/api",
		ShopAPITimeoutSeconds: 15,
		DatabasePath:          "shopagents.db",
	}
}

func (c *RuntimeConfig) ShopAPITimeout() time.Duration {
	if c.ShopAPITimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ShopAPITimeoutSeconds) * time.Second
}

// AgentSetPatterns splits AGENT_SET_FILES into glob patterns.
func (c *RuntimeConfig) AgentSetPatterns() []string {
	patterns := lo.Map(strings.Split(c.AgentSetFiles, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(patterns)
}

func init() {
	din.RegisterT(func(c *din.Container) (*RuntimeConfig, error) {
		conf := NewRuntimeConfig()
		if err := resolveConfig(conf, c.Env == din.EnvTest); err != nil {
			return nil, err
		}
		return conf, nil
	})
}

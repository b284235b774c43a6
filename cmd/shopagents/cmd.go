package main

import (
	"strings"

	"github.com/habiliai/shopagents"
	"github.com/habiliai/shopagents/config"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "dev"

type rootFlags struct {
	AgentSetFiles []string
	AgentSet      string
}

func newCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "shopagents",
		Short:         "Agent sets and tool dispatch for an auto repair shop",
		Version:       version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVarP(&flags.AgentSetFiles, "agent-set-files", "f", nil, "Glob patterns of agent set YAML files, e.g. 'agents/**/*.yaml'")
	cmd.PersistentFlags().StringVar(&flags.AgentSet, "agent-set", "", "Agent set used by default")

	cmd.AddCommand(
		newSetsCmd(flags),
		newShowCmd(flags),
		newValidateCmd(flags),
		newServeCmd(flags),
		newMCPCmd(flags),
		newCallCmd(flags),
	)

	return cmd
}

// newRuntime resolves config, logger and database from the container and
// builds the runtime on top of them.
func newRuntime(cmd *cobra.Command, flags *rootFlags) (*shopagents.Runtime, error) {
	c := din.NewContainer(cmd.Context(), din.EnvProd)

	cfg, err := din.GetT[*config.RuntimeConfig](c)
	if err != nil {
		return nil, err
	}
	if len(flags.AgentSetFiles) > 0 {
		cfg.AgentSetFiles = strings.Join(append(cfg.AgentSetPatterns(), flags.AgentSetFiles...), ",")
	}
	if flags.AgentSet != "" {
		cfg.AgentSet = flags.AgentSet
	}

	logger, err := din.GetT[*mylog.Logger](c)
	if err != nil {
		return nil, err
	}
	gormDB, err := din.GetT[*gorm.DB](c)
	if err != nil {
		return nil, err
	}

	logger.Debug("start shopagents", "config", cfg)

	return shopagents.NewRuntime(
		c,
		shopagents.WithConfig(cfg),
		shopagents.WithLogger(logger),
		shopagents.WithDB(gormDB),
	)
}

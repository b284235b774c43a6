package shopagents

import (
	"context"

	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/agentconfigs"
	"github.com/habiliai/shopagents/config"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/habiliai/shopagents/memory"
	"github.com/habiliai/shopagents/session"
	"github.com/habiliai/shopagents/shopapi"
	"github.com/habiliai/shopagents/tool"
	"gorm.io/gorm"
)

type (
	// Runtime wires agent sets, tool handlers and sessions together.
	Runtime struct {
		config *config.RuntimeConfig
		logger *mylog.Logger
		db     *gorm.DB
		ownDB  bool

		shop       shopapi.Client
		memory     memory.Store
		tools      *tool.Registry
		agents     *agent.Registry
		dispatcher *tool.Dispatcher
		sessions   *session.Manager

		agentSets      []config.AgentSetConfig
		toolHandlers   map[string]entity.ToolHandler
		skipBuiltinSet bool
	}
	Option func(*Runtime)
)

func NewRuntime(ctx context.Context, optionFuncs ...Option) (*Runtime, error) {
	r := &Runtime{
		config:       config.NewRuntimeConfig(),
		toolHandlers: make(map[string]entity.ToolHandler),
	}
	for _, f := range optionFuncs {
		f(r)
	}

	if r.logger == nil {
		r.logger = mylog.NewLogger(r.config.LogLevel, r.config.LogHandler)
	}

	if r.db == nil {
		gormDB, err := db.OpenDB(r.config.DatabasePath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open database %s", r.config.DatabasePath)
		}
		r.db = gormDB
		r.ownDB = true
	}
	if err := db.AutoMigrate(ctx, r.db, append(memory.Models(), session.Models()...)...); err != nil {
		r.Close()
		return nil, errors.Wrapf(err, "failed to migrate database")
	}

	if err := r.init(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *Runtime) init() error {
	if r.shop == nil {
		r.shop = shopapi.NewClient(r.config.ShopAPIURL, r.config.ShopAPITimeout(), r.logger)
	}
	if r.memory == nil {
		r.memory = memory.NewStore(r.db)
	}

	r.tools = tool.NewRegistry()
	if err := tool.RegisterUniversalTools(r.tools, tool.UniversalDeps{Memory: r.memory, Shop: r.shop}); err != nil {
		return err
	}
	if err := tool.RegisterTransferTool(r.tools); err != nil {
		return err
	}
	for name, handler := range r.toolHandlers {
		if err := r.tools.Register(name, handler); err != nil {
			return err
		}
	}
	r.dispatcher = tool.NewDispatcher(r.tools, r.logger)

	r.agents = agent.NewRegistry(r.logger)
	if !r.skipBuiltinSet {
		if err := agentconfigs.Register(r.agents, r.shop); err != nil {
			return err
		}
	}

	files, err := config.FindAgentSetFiles(r.config.AgentSetPatterns())
	if err != nil {
		return err
	}
	fileSets, err := config.LoadAgentSetsFromFiles(files)
	if err != nil {
		return err
	}
	if err := agent.RegisterFromConfig(r.agents, append(fileSets, r.agentSets...)); err != nil {
		return err
	}

	if r.config.AgentSet != "" {
		if err := r.agents.SetDefault(r.config.AgentSet); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "AGENT_SET: %v", err)
		}
	}
	if err := r.Validate(); err != nil {
		return err
	}

	r.sessions = session.NewManager(r.logger, r.db, r.agents, r.dispatcher)
	return nil
}

// Validate checks that every tool of every local agent has a handler.
func (r *Runtime) Validate() error {
	for _, key := range r.agents.Keys() {
		agents, _ := r.agents.Get(key)
		if err := r.dispatcher.Validate(agents); err != nil {
			return errors.Wrapf(err, "agent set %s", key)
		}
	}
	return nil
}

// Call runs one tool call outside of a session.
func (r *Runtime) Call(ctx context.Context, setKey, agentName string, call tool.Call) (*tool.CallResult, error) {
	a, ok := r.agents.Agent(setKey, agentName)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "agent %s in set %s", agentName, setKey)
	}
	return r.dispatcher.Dispatch(ctx, a, call)
}

func (r *Runtime) Close() {
	if !r.ownDB {
		return
	}
	if err := db.CloseDB(r.db); err != nil {
		r.logger.Warn("failed to close database", mylog.Err(err))
	}
}

func (r *Runtime) Config() *config.RuntimeConfig {
	return r.config
}

func (r *Runtime) Logger() *mylog.Logger {
	return r.logger
}

func (r *Runtime) Agents() *agent.Registry {
	return r.agents
}

func (r *Runtime) Tools() *tool.Registry {
	return r.tools
}

func (r *Runtime) Dispatcher() *tool.Dispatcher {
	return r.dispatcher
}

func (r *Runtime) Sessions() *session.Manager {
	return r.sessions
}

func WithConfig(conf *config.RuntimeConfig) Option {
	return func(r *Runtime) {
		r.config = conf
	}
}

func WithLogger(logger *mylog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithDB uses an existing database; the caller keeps ownership.
func WithDB(gormDB *gorm.DB) Option {
	return func(r *Runtime) {
		r.db = gormDB
	}
}

func WithShopClient(shop shopapi.Client) Option {
	return func(r *Runtime) {
		r.shop = shop
	}
}

func WithMemoryStore(store memory.Store) Option {
	return func(r *Runtime) {
		r.memory = store
	}
}

func WithAgentSet(set config.AgentSetConfig) Option {
	return func(r *Runtime) {
		r.agentSets = append(r.agentSets, set)
	}
}

// WithToolHandler serves a tool declared by file-defined agents.
func WithToolHandler(name string, handler entity.ToolHandler) Option {
	return func(r *Runtime) {
		r.toolHandlers[name] = handler
	}
}

func WithoutBuiltinAgentSets() Option {
	return func(r *Runtime) {
		r.skipBuiltinSet = true
	}
}

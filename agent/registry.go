package agent

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/samber/lo"
)

type (
	// Registry maps agent set keys to injected agents. Exactly one key is the default
	// once anything is registered. Lookups never fall back to the default.
	Registry struct {
		logger *slog.Logger

		mtx        sync.RWMutex
		sets       map[string][]entity.Agent
		keys       []string
		defaultKey string
	}
)

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		sets:   make(map[string][]entity.Agent),
	}
}

func (r *Registry) Register(key string, defs []*entity.AgentDefinition, isDefault bool) error {
	if key == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "agent set key is required")
	}
	if len(defs) == 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "agent set %s has no agents", key)
	}

	agents := InjectTransferTools(defs)
	for _, a := range agents {
		if a.Name == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "agent set %s has an agent without name", key)
		}
	}
	if dups := lo.FindDuplicates(lo.Map(agents, func(a entity.Agent, _ int) string { return a.Name })); len(dups) > 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "agent set %s has duplicate agent names %v", key, dups)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.sets[key]; ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "agent set %s already registered", key)
	}

	r.sets[key] = agents
	r.keys = append(r.keys, key)
	if isDefault || r.defaultKey == "" {
		r.defaultKey = key
	}

	r.report(key, defs, agents)
	return nil
}

func (r *Registry) report(key string, defs []*entity.AgentDefinition, agents []entity.Agent) {
	for _, def := range defs {
		for _, t := range def.Tools {
			if IsUniversalTool(t.Name) {
				r.logger.Debug("agent declares its own universal tool", "set", key, "agent", def.Name, "tool", t.Name)
			}
		}
	}
	for _, a := range agents {
		if dups := DuplicateDownstreamNames(a); len(dups) > 0 {
			r.logger.Warn("duplicate downstream agents", "set", key, "agent", a.Name, "names", dups)
		}
		for _, name := range a.DownstreamNames() {
			if _, ok := entity.FindAgent(agents, name); !ok {
				r.logger.Warn("downstream agent is not part of the set", "set", key, "agent", a.Name, "downstream", name)
			}
		}
	}
	r.logger.Info("agent set registered", "set", key, "agents", len(agents))
}

func (r *Registry) Get(key string) ([]entity.Agent, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	agents, ok := r.sets[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(agents), true
}

func (r *Registry) Agent(key, name string) (entity.Agent, bool) {
	agents, ok := r.Get(key)
	if !ok {
		return entity.Agent{}, false
	}
	return entity.FindAgent(agents, name)
}

func (r *Registry) Keys() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return slices.Clone(r.keys)
}

func (r *Registry) DefaultKey() string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.defaultKey
}

// SetDefault makes an already registered set the default.
func (r *Registry) SetDefault(key string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.sets[key]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "agent set %q", key)
	}
	r.defaultKey = key
	return nil
}

package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/samber/lo"
)

// Registry maps tool names to the handlers shared by every agent.
type Registry struct {
	mtx      sync.RWMutex
	handlers map[string]entity.ToolHandler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]entity.ToolHandler),
	}
}

func (r *Registry) Register(name string, handler entity.ToolHandler) error {
	if name == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "tool name is required")
	}
	if handler == nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "tool %s has no handler", name)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.handlers[name]; ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "tool %s already registered", name)
	}
	r.handlers[name] = handler

	return nil
}

func (r *Registry) Lookup(name string) (entity.ToolHandler, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	handler, ok := r.handlers[name]
	return handler, ok
}

func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := lo.Keys(r.handlers)
	slices.Sort(names)
	return names
}

// RegisterFunc registers a typed handler; see Func.
func RegisterFunc[In any, Out any](r *Registry, name string, fn func(ctx *Context, input In) (Out, error)) error {
	return r.Register(name, Func(name, fn))
}

// Func adapts a typed function to an entity.ToolHandler. Arguments are decoded
// from JSON into In; empty or null arguments leave In at its zero value.
func Func[In any, Out any](name string, fn func(ctx *Context, input In) (Out, error)) entity.ToolHandler {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var input In
		if trimmed := bytes.TrimSpace(args); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &input); err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidParams, "%s: %v", name, err)
			}
		}

		return fn(toolContext(ctx), input)
	}
}

package tool

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/mylog"
)

type (
	Call struct {
		ID        string          `json:"id,omitempty"`
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}

	CallResult struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Output any    `json:"output,omitempty"`
		Error  string `json:"error,omitempty"`
	}

	Dispatcher struct {
		registry *Registry
		logger   *mylog.Logger
	}
)

func NewDispatcher(registry *Registry, logger *mylog.Logger) *Dispatcher {
	if logger == nil {
		logger = mylog.Discard()
	}
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// Resolve finds the handler for a tool the agent declares. Agent-local logic
// takes precedence over the shared registry. The registry fallback applies to
// every declared tool, not only the universal ones, so tools declared in agent
// set files can be served by handlers registered by name.
func (d *Dispatcher) Resolve(agent entity.Agent, name string) (entity.ToolHandler, error) {
	if !agent.HasTool(name) {
		return nil, errors.Wrapf(errors.ErrToolNotFound, "agent %s has no tool %q", agent.Name, name)
	}
	if handler, ok := agent.ToolLogic[name]; ok && handler != nil {
		return handler, nil
	}
	if handler, ok := d.registry.Lookup(name); ok {
		return handler, nil
	}

	return nil, errors.Wrapf(errors.ErrMissingHandler, "agent %s tool %s", agent.Name, name)
}

// Validate reports every declared tool of a local agent that has no handler.
func (d *Dispatcher) Validate(agents []entity.Agent) error {
	var missing []string
	for _, agent := range agents {
		if agent.Remote {
			continue
		}
		for _, t := range agent.Tools {
			if _, err := d.Resolve(agent, t.Name); err != nil {
				missing = append(missing, agent.Name+"."+t.Name)
			}
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrMissingHandler, "%s", strings.Join(missing, ", "))
	}

	return nil
}

// Dispatch runs one tool call for the agent. Failures are recorded on the
// returned result as well as returned as the error.
func (d *Dispatcher) Dispatch(ctx context.Context, agent entity.Agent, call Call) (*CallResult, error) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	result := &CallResult{
		ID:   call.ID,
		Name: call.Name,
	}

	handler, err := d.Resolve(agent, call.Name)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	startedAt := time.Now()
	output, err := handler(NewContext(ctx, agent, SessionIDFromContext(ctx)), call.Arguments)
	logger := d.logger.With("agent", agent.Name, "tool", call.Name, "call_id", call.ID, "elapsed", time.Since(startedAt))
	if err != nil {
		logger.Warn("tool call failed", mylog.Err(err))
		result.Error = err.Error()
		return result, err
	}
	logger.Debug("tool call finished")
	result.Output = output

	return result, nil
}

package tool

import (
	"context"

	"github.com/habiliai/shopagents/entity"
)

type Context struct {
	context.Context

	agent     entity.Agent
	sessionID string
}

func NewContext(ctx context.Context, agent entity.Agent, sessionID string) *Context {
	return &Context{
		Context:   ctx,
		agent:     agent,
		sessionID: sessionID,
	}
}

// GetAgent returns the agent that issued the call.
func (c *Context) GetAgent() entity.Agent {
	return c.agent
}

// GetSessionID returns the conversation the call belongs to, or "" outside of a session.
func (c *Context) GetSessionID() string {
	return c.sessionID
}

type sessionIDKey struct{}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

func toolContext(ctx context.Context) *Context {
	if tc, ok := ctx.(*Context); ok {
		return tc
	}
	return &Context{
		Context:   ctx,
		sessionID: SessionIDFromContext(ctx),
	}
}

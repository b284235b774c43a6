package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig  = fmt.Errorf("shopagents: invalid config")
	ErrNotFound       = fmt.Errorf("shopagents: not found")
	ErrInvalidParams  = fmt.Errorf("shopagents: invalid params")
	ErrInternal       = fmt.Errorf("shopagents: internal error")
	ErrToolNotFound   = fmt.Errorf("shopagents: tool not declared by agent")
	ErrMissingHandler = fmt.Errorf("shopagents: missing tool handler")
	ErrUpstream       = fmt.Errorf("shopagents: upstream service error")
)

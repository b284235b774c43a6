package tool

import (
	"strings"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/mokiat/gog"
)

type (
	TransferRequest struct {
		RationaleForTransfer string `json:"rationale_for_transfer"`
		ConversationContext  string `json:"conversation_context"`
		DestinationAgent     string `json:"destination_agent"`
	}

	TransferResult struct {
		DestinationAgent    string  `json:"destination_agent" mapstructure:"destination_agent"`
		DidTransfer         bool    `json:"did_transfer" mapstructure:"did_transfer"`
		ConversationContext string  `json:"conversation_context,omitempty" mapstructure:"conversation_context"`
		Error               *string `json:"error,omitempty" mapstructure:"error"`
	}
)

// RegisterTransferTool registers the hand-off handler. The destination must name
// one of the calling agent's downstream agents exactly.
func RegisterTransferTool(r *Registry) error {
	return RegisterFunc(r, entity.ToolNameTransferAgents, Transfer)
}

func Transfer(ctx *Context, req TransferRequest) (TransferResult, error) {
	if req.DestinationAgent == "" {
		return TransferResult{}, errors.Wrapf(errors.ErrInvalidParams, "destination_agent is required")
	}

	agent := ctx.GetAgent()
	result := TransferResult{
		DestinationAgent:    req.DestinationAgent,
		ConversationContext: req.ConversationContext,
	}
	if !agent.CanTransferTo(req.DestinationAgent) {
		result.Error = gog.PtrOf("unknown destination agent " + req.DestinationAgent + "; available: " + strings.Join(agent.DownstreamNames(), ", "))
		return result, nil
	}
	result.DidTransfer = true

	return result, nil
}

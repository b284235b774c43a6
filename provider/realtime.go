package provider

import (
	"github.com/habiliai/shopagents/entity"
)

const (
	RealtimeEventSessionUpdate = "session.update"
	RealtimeToolChoiceAuto     = "auto"
)

type (
	// RealtimeEvent is a client event for a realtime voice session.
	RealtimeEvent struct {
		Type    string          `json:"type"`
		Session RealtimeSession `json:"session"`
	}

	RealtimeSession struct {
		Instructions string        `json:"instructions"`
		Tools        []entity.Tool `json:"tools"`
		ToolChoice   string        `json:"tool_choice"`
	}
)

// RealtimeSessionUpdate builds the event that puts an agent in charge of a
// realtime session. Tools are sent in their manifest shape unchanged.
func RealtimeSessionUpdate(agent entity.Agent) RealtimeEvent {
	tools := agent.Tools
	if tools == nil {
		tools = []entity.Tool{}
	}

	return RealtimeEvent{
		Type: RealtimeEventSessionUpdate,
		Session: RealtimeSession{
			Instructions: agent.Instructions,
			Tools:        tools,
			ToolChoice:   RealtimeToolChoiceAuto,
		},
	}
}

package entity

import (
	"github.com/samber/lo"
)

type (
	// AgentDefinition is the hand-authored description of one conversational agent.
	// Downstream holds full references and may form cycles; definitions are never
	// modified once built.
	AgentDefinition struct {
		Name              string
		PublicDescription string
		Instructions      string
		Tools             []Tool
		ToolLogic         map[string]ToolHandler
		Downstream        []*AgentDefinition

		// Remote agents run their tools elsewhere, so no local handler is required.
		Remote bool
	}

	// DownstreamSummary is what an agent keeps of a hand-off target.
	DownstreamSummary struct {
		Name              string `json:"name"`
		PublicDescription string `json:"publicDescription"`
	}

	// Agent is an injected agent, ready to be handed to a conversational runtime.
	Agent struct {
		Name              string              `json:"name"`
		PublicDescription string              `json:"publicDescription"`
		Instructions      string              `json:"instructions"`
		Tools             []Tool              `json:"tools"`
		DownstreamAgents  []DownstreamSummary `json:"downstreamAgents"`

		ToolLogic map[string]ToolHandler `json:"-"`
		Remote    bool                   `json:"-"`
	}
)

func (d *AgentDefinition) Summary() DownstreamSummary {
	return DownstreamSummary{
		Name:              d.Name,
		PublicDescription: d.PublicDescription,
	}
}

func (a Agent) Tool(name string) (Tool, bool) {
	return FindTool(a.Tools, name)
}

func (a Agent) HasTool(name string) bool {
	return HasTool(a.Tools, name)
}

func (a Agent) ToolNames() []string {
	return lo.Map(a.Tools, func(t Tool, _ int) string { return t.Name })
}

func (a Agent) DownstreamNames() []string {
	return lo.Map(a.DownstreamAgents, func(d DownstreamSummary, _ int) string { return d.Name })
}

func (a Agent) CanTransferTo(name string) bool {
	return lo.ContainsBy(a.DownstreamAgents, func(d DownstreamSummary) bool { return d.Name == name })
}

func FindAgent(agents []Agent, name string) (Agent, bool) {
	return lo.Find(agents, func(a Agent) bool { return a.Name == name })
}

package agent

import (
	"maps"

	"github.com/habiliai/shopagents/entity"
	"github.com/samber/lo"
)

// Summarize turns definitions into agent values. Tool slices are copied, missing
// lists become empty and every downstream reference is cut down to its name and
// public description.
func Summarize(defs []*entity.AgentDefinition) []entity.Agent {
	agents := make([]entity.Agent, 0, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}

		downstream := make([]entity.DownstreamSummary, 0, len(def.Downstream))
		for _, d := range def.Downstream {
			if d == nil {
				continue
			}
			downstream = append(downstream, d.Summary())
		}

		tools := make([]entity.Tool, len(def.Tools))
		copy(tools, def.Tools)

		agents = append(agents, entity.Agent{
			Name:              def.Name,
			PublicDescription: def.PublicDescription,
			Instructions:      def.Instructions,
			Tools:             tools,
			DownstreamAgents:  downstream,
			ToolLogic:         maps.Clone(def.ToolLogic),
			Remote:            def.Remote,
		})
	}
	return agents
}

// InjectTools returns new agents carrying every universal tool exactly once and, for
// agents with downstream agents, a transferAgents tool. Tools an agent already
// declares keep their position and win over injected ones; repeated names keep the
// first declaration. Running it on its own output changes nothing.
func InjectTools(agents []entity.Agent) []entity.Agent {
	out := make([]entity.Agent, 0, len(agents))
	for _, a := range agents {
		tools := lo.UniqBy(a.Tools, func(t entity.Tool) string { return t.Name })

		for _, universal := range UniversalTools() {
			if entity.HasTool(tools, universal.Name) {
				continue
			}
			tools = append(tools, universal)
		}

		downstream := lo.Map(a.DownstreamAgents, func(d entity.DownstreamSummary, _ int) entity.DownstreamSummary {
			return entity.DownstreamSummary{Name: d.Name, PublicDescription: d.PublicDescription}
		})

		if len(downstream) > 0 && !entity.HasTool(tools, entity.ToolNameTransferAgents) {
			tools = append(tools, TransferTool(downstream))
		}

		a.Tools = tools
		a.DownstreamAgents = downstream
		out = append(out, a)
	}
	return out
}

// InjectTransferTools runs the whole pipeline over hand-authored definitions.
func InjectTransferTools(defs []*entity.AgentDefinition) []entity.Agent {
	return InjectTools(Summarize(defs))
}

// DuplicateDownstreamNames reports downstream names listed more than once; such
// names end up duplicated in the transfer tool's enum.
func DuplicateDownstreamNames(a entity.Agent) []string {
	return lo.FindDuplicates(a.DownstreamNames())
}

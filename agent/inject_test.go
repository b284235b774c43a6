package agent_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	"github.com/stretchr/testify/require"
)

func countTool(a entity.Agent, name string) int {
	n := 0
	for _, t := range a.Tools {
		if t.Name == name {
			n++
		}
	}
	return n
}

func serviceAndAutomotive() []*entity.AgentDefinition {
	automotive := &entity.AgentDefinition{
		Name:              "Automotive",
		PublicDescription: "Diagnoses vehicle problems and explains repairs.",
		Instructions:      "You are a master technician.",
	}
	service := &entity.AgentDefinition{
		Name:              "Service",
		PublicDescription: "Books service appointments.",
		Instructions:      "You are the service writer.",
		Downstream:        []*entity.AgentDefinition{automotive},
	}
	return []*entity.AgentDefinition{service, automotive}
}

func TestInjectTransferToolsServiceScenario(t *testing.T) {
	agents := agent.InjectTransferTools(serviceAndAutomotive())
	require.Len(t, agents, 2)

	service, automotive := agents[0], agents[1]

	transfer, ok := service.Tool(entity.ToolNameTransferAgents)
	require.True(t, ok)
	require.Equal(t, []string{"Automotive"}, entity.EnumStrings(transfer.Parameters, agent.TransferParamDestination))
	require.Equal(t, []string{
		agent.TransferParamRationale,
		agent.TransferParamContext,
		agent.TransferParamDestination,
	}, transfer.Parameters.Required)

	require.False(t, automotive.HasTool(entity.ToolNameTransferAgents))

	for _, a := range agents {
		for _, name := range agent.UniversalToolNames {
			require.Equal(t, 1, countTool(a, name), "agent %s tool %s", a.Name, name)
		}
	}
}

func TestInjectToolCountFormula(t *testing.T) {
	downstream := &entity.AgentDefinition{Name: "Downstream", PublicDescription: "target"}

	tests := []struct {
		name     string
		def      *entity.AgentDefinition
		expected int
	}{
		{
			name:     "no tools, no downstream",
			def:      &entity.AgentDefinition{Name: "a"},
			expected: len(agent.UniversalToolNames),
		},
		{
			name: "own tool and downstream",
			def: &entity.AgentDefinition{
				Name:       "b",
				Tools:      []entity.Tool{entity.NewTool("lookup_customer", "find a customer", nil)},
				Downstream: []*entity.AgentDefinition{downstream},
			},
			expected: 1 + len(agent.UniversalToolNames) + 1,
		},
		{
			name: "universal tool already declared",
			def: &entity.AgentDefinition{
				Name:  "c",
				Tools: []entity.Tool{entity.NewTool(entity.ToolNameLogsService, "shop logs", nil)},
			},
			expected: 1 + len(agent.UniversalToolNames) - 1,
		},
		{
			name: "transfer tool already declared",
			def: &entity.AgentDefinition{
				Name:       "d",
				Tools:      []entity.Tool{entity.NewTool(entity.ToolNameTransferAgents, "custom hand-off", nil)},
				Downstream: []*entity.AgentDefinition{downstream},
			},
			expected: 1 + len(agent.UniversalToolNames),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents := agent.InjectTransferTools([]*entity.AgentDefinition{tt.def})
			require.Len(t, agents, 1)
			require.Len(t, agents[0].Tools, tt.expected)
		})
	}
}

func TestInjectToolsIsIdempotent(t *testing.T) {
	once := agent.InjectTransferTools(serviceAndAutomotive())
	twice := agent.InjectTools(once)

	onceJSON, err := json.Marshal(once)
	require.NoError(t, err)
	twiceJSON, err := json.Marshal(twice)
	require.NoError(t, err)

	require.JSONEq(t, string(onceJSON), string(twiceJSON))
	require.Equal(t, once[0].ToolNames(), twice[0].ToolNames())
}

func TestDownstreamIsReducedToNameAndDescription(t *testing.T) {
	agents := agent.InjectTransferTools(serviceAndAutomotive())

	require.Len(t, agents[0].DownstreamAgents, 1)
	data, err := json.Marshal(agents[0].DownstreamAgents[0])
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Len(t, fields, 2)
	require.Equal(t, "Automotive", fields["name"])
	require.Equal(t, "Diagnoses vehicle problems and explains repairs.", fields["publicDescription"])

	require.Empty(t, agents[1].DownstreamAgents)
	require.NotNil(t, agents[1].DownstreamAgents)
}

func TestPreDeclaredToolIsNotOverwritten(t *testing.T) {
	def := &entity.AgentDefinition{
		Name: "Parts",
		Tools: []entity.Tool{
			entity.NewTool(entity.ToolNameSearchImages, "Search the shop's own parts diagram library.", nil),
		},
	}

	agents := agent.InjectTransferTools([]*entity.AgentDefinition{def})

	require.Equal(t, entity.ToolNameSearchImages, agents[0].Tools[0].Name)
	require.Equal(t, "Search the shop's own parts diagram library.", agents[0].Tools[0].Description)
	require.Equal(t, 1, countTool(agents[0], entity.ToolNameSearchImages))
}

func TestTransferToolKeptWithoutDownstream(t *testing.T) {
	def := &entity.AgentDefinition{
		Name:  "Lonely",
		Tools: []entity.Tool{entity.NewTool(entity.ToolNameTransferAgents, "manual", nil)},
	}

	agents := agent.InjectTransferTools([]*entity.AgentDefinition{def})

	transfer, ok := agents[0].Tool(entity.ToolNameTransferAgents)
	require.True(t, ok)
	require.Equal(t, "manual", transfer.Description)
	require.Equal(t, 1, countTool(agents[0], entity.ToolNameTransferAgents))
}

func TestNoTransferToolWithoutDownstream(t *testing.T) {
	agents := agent.InjectTransferTools([]*entity.AgentDefinition{{Name: "Solo"}})
	require.False(t, agents[0].HasTool(entity.ToolNameTransferAgents))
}

func TestRepeatedOwnToolKeepsFirst(t *testing.T) {
	def := &entity.AgentDefinition{
		Name: "Dup",
		Tools: []entity.Tool{
			entity.NewTool("lookup_customer", "first", nil),
			entity.NewTool("lookup_customer", "second", nil),
		},
	}

	agents := agent.InjectTransferTools([]*entity.AgentDefinition{def})

	require.Equal(t, 1, countTool(agents[0], "lookup_customer"))
	tool, _ := agents[0].Tool("lookup_customer")
	require.Equal(t, "first", tool.Description)
}

func TestDuplicateDownstreamNamesSurfaceInEnum(t *testing.T) {
	a := &entity.AgentDefinition{Name: "Automotive", PublicDescription: "one"}
	b := &entity.AgentDefinition{Name: "Automotive", PublicDescription: "two"}
	front := &entity.AgentDefinition{Name: "Front", Downstream: []*entity.AgentDefinition{a, b}}

	agents := agent.InjectTransferTools([]*entity.AgentDefinition{front})

	transfer, ok := agents[0].Tool(entity.ToolNameTransferAgents)
	require.True(t, ok)
	require.Equal(t, []string{"Automotive", "Automotive"}, entity.EnumStrings(transfer.Parameters, agent.TransferParamDestination))
	require.Equal(t, []string{"Automotive"}, agent.DuplicateDownstreamNames(agents[0]))
}

func TestCyclicDownstreamIsCut(t *testing.T) {
	service := &entity.AgentDefinition{Name: "Service", PublicDescription: "bookings"}
	automotive := &entity.AgentDefinition{Name: "Automotive", PublicDescription: "repairs"}
	service.Downstream = []*entity.AgentDefinition{automotive}
	automotive.Downstream = []*entity.AgentDefinition{service}

	agents := agent.InjectTransferTools([]*entity.AgentDefinition{service, automotive})

	data, err := json.Marshal(agents)
	require.NoError(t, err)
	require.Contains(t, string(data), `"downstreamAgents":[{"name":"Service","publicDescription":"bookings"}]`)

	for _, a := range agents {
		require.True(t, a.HasTool(entity.ToolNameTransferAgents))
	}
}

func TestInjectionDoesNotMutateDefinitions(t *testing.T) {
	defs := serviceAndAutomotive()
	custom := entity.NewTool("lookup_customer", "find a customer", nil)
	defs[0].Tools = []entity.Tool{custom}

	_ = agent.InjectTransferTools(defs)

	require.Len(t, defs[0].Tools, 1)
	require.Len(t, defs[0].Downstream, 1)
	require.Same(t, defs[1], defs[0].Downstream[0])
}

func TestTransferToolDescription(t *testing.T) {
	tool := agent.TransferTool([]entity.DownstreamSummary{
		{Name: "Automotive", PublicDescription: "Diagnoses vehicle problems."},
		{Name: "Billing"},
	})

	require.Equal(t, entity.ToolTypeFunction, tool.Type)
	require.True(t, strings.HasSuffix(tool.Description, "Available Agents:\n- Automotive: Diagnoses vehicle problems.\n- Billing: No description"))
}

func TestToolManifestShape(t *testing.T) {
	tool := agent.TransferTool([]entity.DownstreamSummary{{Name: "Automotive", PublicDescription: "repairs"}})

	data, err := json.Marshal(tool)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, "function", m["type"])
	require.Equal(t, "transferAgents", m["name"])

	params, ok := m["parameters"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "object", params["type"])
	require.ElementsMatch(t, []any{"rationale_for_transfer", "conversation_context", "destination_agent"}, params["required"])

	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	dest, ok := props["destination_agent"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "string", dest["type"])
	require.Equal(t, []any{"Automotive"}, dest["enum"])
}

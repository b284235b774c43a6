package entity

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/sjson"
)

const (
	ToolTypeFunction = "function"

	ToolNameSetMemory       = "set_memory"
	ToolNameGetResearchData = "get_research_data"
	ToolNameInvoiceService  = "invoice_service"
	ToolNameLogsService     = "logs_service"
	ToolNameSearchImages    = "search_images"

	// ToolNameTransferAgents is the synthesized hand-off tool.
	ToolNameTransferAgents = "transferAgents"
)

type (
	// Tool is the manifest of one callable capability, in the shape conversational
	// runtimes expect: {type, name, description, parameters}.
	Tool struct {
		Type        string             `json:"type"`
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Parameters  *jsonschema.Schema `json:"parameters"`
	}

	// ToolHandler executes a tool call. Arguments arrive as the raw JSON object the
	// runtime produced.
	ToolHandler func(ctx context.Context, args json.RawMessage) (any, error)
)

func NewTool(name, description string, parameters *jsonschema.Schema) Tool {
	if parameters == nil {
		parameters = ObjectSchema(nil)
	}
	return Tool{
		Type:        ToolTypeFunction,
		Name:        name,
		Description: description,
		Parameters:  parameters,
	}
}

// MarshalJSON emits the manifest with parameters always carrying a required list.
func (t Tool) MarshalJSON() ([]byte, error) {
	params, err := t.ParametersJSON()
	if err != nil {
		return nil, err
	}

	type tool Tool
	return json.Marshal(struct {
		tool
		Parameters json.RawMessage `json:"parameters"`
	}{tool: tool(t), Parameters: params})
}

// ParametersJSON encodes the parameter schema. An empty required list is
// written as [] instead of being dropped.
func (t Tool) ParametersJSON() ([]byte, error) {
	params := t.Parameters
	if params == nil {
		params = ObjectSchema(nil)
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	if len(params.Required) == 0 {
		return sjson.SetRawBytes(data, "required", []byte("[]"))
	}
	return data, nil
}

// ParametersMap renders the parameter schema as a generic JSON object.
func (t Tool) ParametersMap() (map[string]any, error) {
	data, err := t.ParametersJSON()
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func FindTool(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

func HasTool(tools []Tool, name string) bool {
	_, ok := FindTool(tools, name)
	return ok
}

package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
)

// ToAnthropicTools converts an agent's tools to messages API tool params.
func ToAnthropicTools(agent entity.Agent) ([]anthropic.ToolUnionParam, error) {
	tools := make([]anthropic.ToolUnionParam, 0, len(agent.Tools))
	for _, t := range agent.Tools {
		params, err := t.ParametersMap()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert parameters of %s", t.Name)
		}

		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       "object",
					Properties: params["properties"],
				},
			},
		})
	}

	return tools, nil
}

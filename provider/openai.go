package provider

import (
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// ToOpenAITools converts an agent's tools to chat completion tool params.
func ToOpenAITools(agent entity.Agent) ([]goopenai.ChatCompletionToolParam, error) {
	tools := make([]goopenai.ChatCompletionToolParam, 0, len(agent.Tools))
	for _, t := range agent.Tools {
		params, err := t.ParametersMap()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert parameters of %s", t.Name)
		}

		tools = append(tools, goopenai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: goopenai.Opt[string](t.Description),
				Strict:      goopenai.Opt[bool](false),
				Parameters:  shared.FunctionParameters(params),
			},
		})
	}

	return tools, nil
}

package agent

import (
	"github.com/habiliai/shopagents/config"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/stringutils"
)

// LoadDefinitions builds definitions from an agent set file. Downstream agents are
// referenced by name and must be declared in the same file.
func LoadDefinitions(cfg config.AgentSetConfig) ([]*entity.AgentDefinition, error) {
	defs := make([]*entity.AgentDefinition, 0, len(cfg.Agents))
	byName := make(map[string]*entity.AgentDefinition, len(cfg.Agents))

	for _, ac := range cfg.Agents {
		if ac.Name == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent set %s: agent name is required", cfg.Key)
		}
		if _, ok := byName[ac.Name]; ok {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent set %s: duplicate agent %s", cfg.Key, ac.Name)
		}

		tools := make([]entity.Tool, 0, len(ac.Tools))
		for _, tc := range ac.Tools {
			if tc.Name == "" {
				return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent %s: tool name is required", ac.Name)
			}
			params, err := entity.SchemaFromMap(tc.Parameters)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent %s: invalid parameters for tool %s: %v", ac.Name, tc.Name, err)
			}
			tools = append(tools, entity.NewTool(tc.Name, stringutils.Sanitize(tc.Description), params))
		}

		def := &entity.AgentDefinition{
			Name:              ac.Name,
			PublicDescription: stringutils.Sanitize(ac.PublicDescription),
			Instructions:      stringutils.Sanitize(ac.Instructions),
			Tools:             tools,
			Remote:            ac.Remote,
		}
		defs = append(defs, def)
		byName[ac.Name] = def
	}

	for i, ac := range cfg.Agents {
		for _, name := range ac.DownstreamAgents {
			target, ok := byName[name]
			if !ok {
				return nil, errors.Wrapf(errors.ErrInvalidConfig, "agent %s: unknown downstream agent %s", ac.Name, name)
			}
			defs[i].Downstream = append(defs[i].Downstream, target)
		}
	}

	return defs, nil
}

// RegisterFromConfig loads and registers every agent set file.
func RegisterFromConfig(registry *Registry, sets []config.AgentSetConfig) error {
	for _, set := range sets {
		defs, err := LoadDefinitions(set)
		if err != nil {
			return err
		}
		if err := registry.Register(set.Key, defs, set.Default); err != nil {
			return err
		}
	}
	return nil
}

package config

import (
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type (
	ToolConfig struct {
		Name        string         `yaml:"name"`
		Description string         `yaml:"description"`
		Parameters  map[string]any `yaml:"parameters"`
	}

	AgentConfig struct {
		Name              string       `yaml:"name"`
		PublicDescription string       `yaml:"publicDescription"`
		Instructions      string       `yaml:"instructions"`
		Remote            bool         `yaml:"remote"`
		DownstreamAgents  []string     `yaml:"downstreamAgents"`
		Tools             []ToolConfig `yaml:"tools"`
	}

	AgentSetConfig struct {
		Key     string        `yaml:"key"`
		Default bool          `yaml:"default"`
		Agents  []AgentConfig `yaml:"agents"`
	}
)

func LoadAgentSetFromFile(file string) (set AgentSetConfig, err error) {
	var yamlBytes []byte
	if yamlBytes, err = os.ReadFile(file); err != nil {
		err = errors.Wrapf(err, "failed to read file %s", file)
		return
	}

	if err = yaml.Unmarshal(yamlBytes, &set); err != nil {
		err = errors.Wrapf(err, "failed to unmarshal file %s", file)
		return
	}

	return
}

func LoadAgentSetsFromFiles(files []string) ([]AgentSetConfig, error) {
	sets := make([]AgentSetConfig, 0, len(files))
	for _, file := range files {
		set, err := LoadAgentSetFromFile(file)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// FindAgentSetFiles expands doublestar patterns (e.g. "agents/**/*.yaml") into a sorted,
// de-duplicated file list.
func FindAgentSetFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid agent set pattern %s", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/habiliai/shopagents/config"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentSetFromFile(t *testing.T) {
	set, err := config.LoadAgentSetFromFile("testdata/technician.agentset.yaml")
	require.NoError(t, err)

	require.Equal(t, "technicianAssistant", set.Key)
	require.False(t, set.Default)
	require.Len(t, set.Agents, 2)

	diagnostics := set.Agents[0]
	require.Equal(t, []string{"parts"}, diagnostics.DownstreamAgents)
	require.Len(t, diagnostics.Tools, 1)
	require.Equal(t, "object", diagnostics.Tools[0].Parameters["type"])
	require.Contains(t, diagnostics.Instructions, "trouble code")
	require.True(t, set.Agents[1].Remote)
}

func TestFindAgentSetFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	for _, name := range []string{"a.yaml", "nested/b.yaml", "nested/skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("key: x\n"), 0644))
	}

	files, err := config.FindAgentSetFiles([]string{
		filepath.Join(dir, "**", "*.yaml"),
		filepath.Join(dir, "a.yaml"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "nested", "b.yaml"),
	}, files)
}

func TestAgentSetPatterns(t *testing.T) {
	conf := config.NewRuntimeConfig()
	conf.AgentSetFiles = " agents/*.yaml, ,extra/**/*.yml"
	require.Equal(t, []string{"agents/*.yaml", "extra/**/*.yml"}, conf.AgentSetPatterns())
}

package main

import (
	"github.com/habiliai/shopagents/bridge"
	"github.com/habiliai/shopagents/errors"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *rootFlags) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "mcp <agent-set> <agent>",
		Short: "Expose one agent's tools as an MCP server on stdio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			a, ok := r.Agents().Agent(args[0], args[1])
			if !ok {
				return errors.Wrapf(errors.ErrNotFound, "agent %s in set %s", args[1], args[0])
			}

			s, err := bridge.NewMCPServer("shopagents-"+a.Name, version, a, r.Dispatcher(), sessionID)
			if err != nil {
				return err
			}

			r.Logger().Info("serving mcp on stdio", "agent_set", args[0], "agent", a.Name, "tools", len(a.Tools))
			return bridge.ServeMCP(s)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Memory scope for set_memory calls; global when empty")

	return cmd
}

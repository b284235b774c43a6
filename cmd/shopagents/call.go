package main

import (
	"encoding/json"

	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/tool"
	"github.com/spf13/cobra"
)

func newCallCmd(flags *rootFlags) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "call <agent-set> <agent> <tool> [json-args]",
		Short: "Run a single tool call as the given agent",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			call := tool.Call{Name: args[2]}
			if len(args) == 4 {
				if !json.Valid([]byte(args[3])) {
					return errors.Wrapf(errors.ErrInvalidParams, "arguments are not valid JSON")
				}
				call.Arguments = json.RawMessage(args[3])
			}

			r, err := newRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := cmd.Context()
			if sessionID != "" {
				ctx = tool.WithSessionID(ctx, sessionID)
			}
			result, callErr := r.Call(ctx, args[0], args[1], call)
			if result != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return errors.WithStack(err)
				}
			}
			return callErr
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Memory scope for set_memory calls")

	return cmd
}

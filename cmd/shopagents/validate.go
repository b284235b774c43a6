package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/habiliai/shopagents/agent"
	"github.com/spf13/cobra"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every agent set and check that all tools have handlers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			r, err := newRuntime(cmd, flags)
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), err)
				return err
			}
			defer r.Close()

			for _, key := range r.Agents().Keys() {
				agents, _ := r.Agents().Get(key)
				fmt.Fprintf(out, "%s %s (%d agents)\n", color.GreenString("✓"), key, len(agents))
				for _, a := range agents {
					if dups := agent.DuplicateDownstreamNames(a); len(dups) > 0 {
						fmt.Fprintf(out, "  %s %s lists %v more than once\n", color.YellowString("!"), a.Name, dups)
					}
				}
			}
			return nil
		},
	}
}

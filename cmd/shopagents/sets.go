package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newSetsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List registered agent sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			out := cmd.OutOrStdout()
			for _, key := range r.Agents().Keys() {
				agents, _ := r.Agents().Get(key)
				marker := " "
				if key == r.Agents().DefaultKey() {
					marker = "*"
				}
				names := make([]string, 0, len(agents))
				for _, a := range agents {
					names = append(names, a.Name)
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, key, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show [agent-set]",
		Short: "Print the injected agents of a set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			key := r.Agents().DefaultKey()
			if len(args) > 0 {
				key = args[0]
			}
			agents, ok := r.Agents().Get(key)
			if !ok {
				return errors.Wrapf(errors.ErrNotFound, "agent set %q", key)
			}

			data, err := renderAgents(agents, output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	return cmd
}

func renderAgents(agents []entity.Agent, output string) ([]byte, error) {
	data, err := json.MarshalIndent(agents, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	switch output {
	case "json":
		return append(data, '\n'), nil
	case "yaml":
		return yaml.JSONToYAML(data)
	}
	return nil, errors.Wrapf(errors.ErrInvalidParams, "unknown output format %q", output)
}

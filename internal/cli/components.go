package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle/simhost"
	"github.com/wesleyorama2/cyclebench/internal/output"
)

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the simulated components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, noColor := globalFlags(cmd)
			registry := simhost.DefaultRegistry()
			output.NewConsole(cmd.OutOrStdout(), noColor, false).
				PrintComponents(registry.Names(), registry.Describe)
			return nil
		},
	}
}

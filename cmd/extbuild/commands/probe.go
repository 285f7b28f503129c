package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report the compiler and toolkits discovered on this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Probe(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

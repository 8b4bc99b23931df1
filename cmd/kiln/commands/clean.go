package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build cache and unit artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dist, _ := cmd.Flags().GetBool("dist")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ProjectOptions: projectOptions(cmd),
				Dist:           dist,
			})
		},
	}
	cmd.Flags().Bool("dist", false, "Also remove the distributable outputs")
	return cmd
}

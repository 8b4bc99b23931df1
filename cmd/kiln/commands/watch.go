package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				BuildOptions: buildOptions(cmd),
				Debounce:     debounce,
			})
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().Duration("debounce", 0, "Quiet period before a rebuild (default 150ms)")
	return cmd
}

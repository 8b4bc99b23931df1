package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild changed units and regenerate the library outputs",
		Args:  cobra.NoArgs,
		RunE:  c.runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false, "Rebuild every unit regardless of the cache")
	cmd.Flags().IntP("parallelism", "j", 0, "Maximum number of units built concurrently (default: configured or number of CPUs)")
	cmd.Flags().Duration("unit-timeout", 0, "Abort a unit build after this duration (0 disables the limit)")
	cmd.Flags().String("metrics-file", "", "Write build metrics in Prometheus text format to this file")
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	return c.app.Build(cmd.Context(), buildOptions(cmd))
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	force, _ := cmd.Flags().GetBool("force")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	opts := app.BuildOptions{
		ProjectOptions: projectOptions(cmd),
		Force:          force,
		Parallelism:    parallelism,
		MetricsFile:    metricsFile,
	}
	if cmd.Flags().Changed("unit-timeout") {
		timeout, _ := cmd.Flags().GetDuration("unit-timeout")
		opts.UnitTimeout = &timeout
	}
	return opts
}

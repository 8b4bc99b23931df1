// Package commands implements the CLI commands for the kiln build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	jsonLogs    func(bool)
	verboseLogs func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Status(ctx context.Context, opts app.ProjectOptions) (domain.ChangeSet, error)
	Clean(ctx context.Context, opts app.CleanOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONLogs registers the switch toggled by the --json flag.
func WithJSONLogs(enable func(bool)) Option {
	return func(c *CLI) {
		c.jsonLogs = enable
	}
}

// WithVerboseLogs registers the switch toggled by the --verbose flag.
func WithVerboseLogs(enable func(bool)) Option {
	return func(c *CLI) {
		c.verboseLogs = enable
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "Incremental builds for component libraries",
		Long:          "kiln rebuilds only the components that changed and regenerates the library bundle, type declarations and stylesheet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", domain.ConfigFileName, "Configuration file, relative to the project directory")
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output, including stage and unit spans")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.jsonLogs != nil {
			jsonLogs, _ := cmd.Flags().GetBool("json")
			c.jsonLogs(jsonLogs)
		}
		if c.verboseLogs != nil {
			verbose, _ := cmd.Flags().GetBool("verbose")
			c.verboseLogs(verbose)
		}
	}

	// A bare "kiln" builds.
	addBuildFlags(rootCmd)
	rootCmd.RunE = c.runBuild

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func projectOptions(cmd *cobra.Command) app.ProjectOptions {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	return app.ProjectOptions{Dir: dir, ConfigPath: configPath}
}

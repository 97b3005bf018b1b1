package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/pkg/buildinfo"
	"github.com/matzehuels/codecity/pkg/config"
)

// configFlag is the persistent --config value, read by loadConfig.
var configFlag string

// Execute runs the codecity CLI and returns an error if any command fails.
// This is the main entry point for the CLI application. The given context
// cancels long-running commands (scan, serve) on SIGINT/SIGTERM.
//
// The function sets up the root command with all subcommands (scan, render,
// serve, explore, cache, completion), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "codecity",
		Short:        "CodeCity visualizes a code base as a city",
		Long:         `CodeCity turns a project directory into a city layout: directories become districts, files become buildings sized by file size, and imports become roads. The layout is deterministic, so the same project always produces the same city.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(newScanCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig reads the file named by --config, or the default location when
// the flag is unset. A missing default file is not an error.
func loadConfig() (config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadDefault()
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/internal/server"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	exclude       []string
	includeHidden bool
	rootSize      float64
	edges         bool
}

// newServeCmd creates the serve command, which exposes a project's city
// layout over the HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{edges: true}

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a city layout over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, argDir(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080, or server.addr from config)")
	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVar(&opts.includeHidden, "hidden", false, "include dotfiles and dot-directories")
	cmd.Flags().Float64Var(&opts.rootSize, "root-size", 0, "side length of the root plot (default 80)")
	cmd.Flags().BoolVar(&opts.edges, "edges", opts.edges, "extract import edges as roads")

	return cmd
}

func runServe(cmd *cobra.Command, dir string, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	c, err := newCacheFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   addr,
		Runner: runner,
		Logger: logger,
		Options: pipeline.Options{
			Root:          dir,
			Exclude:       mergeExcludes(cfg, opts.exclude),
			IncludeHidden: opts.includeHidden || cfg.Scan.IncludeHidden,
			RootSize:      opts.rootSize,
			Edges:         opts.edges,
			Logger:        logger,
		},
	})

	// Build eagerly so a broken project fails at startup, not on the
	// first request.
	p := newProgress(logger)
	if _, err := srv.Build(ctx); err != nil {
		return err
	}
	p.done("Built initial snapshot")

	return srv.Run(ctx)
}

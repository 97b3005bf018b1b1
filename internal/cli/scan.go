package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/pkg/config"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	output        string   // output file path; "-" or empty means stdout
	exclude       []string // extra exclusion patterns
	noDefaults    bool     // disable built-in exclusion list
	includeHidden bool     // scan dotfiles
	rootSize      float64  // side length of the root plot
	edges         bool     // extract import edges
	refresh       bool     // bypass cached results
}

// newScanCmd creates the scan command. It runs the scan and layout stages
// and writes the layout as JSON.
func newScanCmd() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Build a city layout from a project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, argDir(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVar(&opts.noDefaults, "no-default-excludes", false, "do not skip .git, node_modules, vendor, ...")
	cmd.Flags().BoolVar(&opts.includeHidden, "hidden", false, "include dotfiles and dot-directories")
	cmd.Flags().Float64Var(&opts.rootSize, "root-size", 0, "side length of the root plot (default 80)")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "extract import edges as roads")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute instead of using cached results")

	return cmd
}

func runScan(cmd *cobra.Command, dir string, opts *scanOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Root:              dir,
		Exclude:           mergeExcludes(cfg, opts.exclude),
		NoDefaultExcludes: opts.noDefaults,
		IncludeHidden:     opts.includeHidden || cfg.Scan.IncludeHidden,
		RootSize:          opts.rootSize,
		Edges:             opts.edges,
		Refresh:           opts.refresh,
		Formats:           []string{pipeline.FormatJSON},
		Logger:            logger,
	}

	c, err := newCacheFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	p.done("Scanned " + dir)

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	if opts.output == "" || opts.output == "-" {
		_, err = os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
		return err
	}

	if err := os.WriteFile(opts.output, result.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return err
	}
	printSuccess("Wrote layout")
	printFile(opts.output)
	printStats(result.Stats.BuildingCount, result.Stats.DistrictCount, result.Stats.EdgeCount,
		result.CacheInfo.LayoutHit)
	printNextStep("Render it", "codecity render "+dir+" -f svg")
	return nil
}

// argDir returns the directory argument, defaulting to the current dir.
func argDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// mergeExcludes combines config-file patterns with flag patterns.
func mergeExcludes(cfg config.Config, flags []string) []string {
	if len(cfg.Scan.Exclude) == 0 {
		return flags
	}
	return append(append([]string{}, cfg.Scan.Exclude...), flags...)
}

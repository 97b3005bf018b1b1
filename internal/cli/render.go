package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/pkg/pipeline"
	"github.com/matzehuels/codecity/pkg/render/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string   // output base path; per-format extension is appended
	formats       []string // output formats: svg, json, dot, png
	exclude       []string // extra exclusion patterns
	includeHidden bool     // scan dotfiles
	rootSize      float64  // side length of the root plot
	edges         bool     // draw import roads in the plan
	labels        bool     // district names in SVG plans
	clusters      bool     // district clusters in DOT output
	refresh       bool     // bypass cached results
}

// newRenderCmd creates the render command for generating artifacts.
// It supports city plans (svg, json) and road diagrams (dot, png).
//
// Default settings:
//   - format: svg
//   - output base: "city" (producing city.svg, city.json, ...)
//   - labels: true (district names on the plan)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		output: "city",
		labels: true,
	}

	cmd := &cobra.Command{
		Use:   "render [dir|layout.json]",
		Short: "Render a project or a saved layout as city artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd, argDir(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output base path (extension appended per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.exclude, "exclude", "e", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().BoolVar(&opts.includeHidden, "hidden", false, "include dotfiles and dot-directories")
	cmd.Flags().Float64Var(&opts.rootSize, "root-size", 0, "side length of the root plot (default 80)")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "draw import roads in the plan")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw district names in SVG plans")
	cmd.Flags().BoolVar(&opts.clusters, "clusters", false, "group DOT output by top-level district")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute instead of using cached results")

	return cmd
}

func runRender(cmd *cobra.Command, dir string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(opts.formats) == 0 {
		opts.formats = cfg.Render.Formats
	}

	// A regular file argument is a saved layout from `codecity scan -o`.
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return renderLayoutFile(cmd, dir, opts)
	}

	pipeOpts := pipeline.Options{
		Root:          dir,
		Exclude:       mergeExcludes(cfg, opts.exclude),
		IncludeHidden: opts.includeHidden || cfg.Scan.IncludeHidden,
		RootSize:      opts.rootSize,
		Edges:         opts.edges,
		Labels:        opts.labels,
		Clusters:      opts.clusters,
		Refresh:       opts.refresh,
		Formats:       opts.formats,
		Logger:        logger,
	}

	c, err := newCacheFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	sp := newSpinner("Building city for " + dir)
	sp.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	sp.Stop()
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	printSuccess("Rendered %s", dir)
	for _, format := range opts.formats {
		path := outputPath(opts.output, format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.BuildingCount, result.Stats.DistrictCount, result.Stats.EdgeCount,
		result.CacheInfo.RenderHit)
	return nil
}

// renderLayoutFile re-renders a saved layout document without rescanning.
func renderLayoutFile(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	layout, err := plan.ParseJSON(data)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, logger)
	artifacts, err := runner.Render(ctx, layout.City, layout.Edges, pipeline.Options{
		Formats:  opts.formats,
		Labels:   opts.labels,
		Clusters: opts.clusters,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", path)
	for _, format := range opts.formats {
		out := outputPath(opts.output, format)
		if err := os.WriteFile(out, artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(out)
	}
	printStats(layout.Stats.Buildings, layout.Stats.Districts, len(layout.Edges), true)
	return nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, an empty slice is returned so config defaults can apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			formats = append(formats, trimmed)
		}
	}
	return formats
}

// outputPath appends the format extension unless base already carries it.
func outputPath(base, format string) string {
	if strings.HasSuffix(base, "."+format) {
		return base
	}
	return base + "." + format
}

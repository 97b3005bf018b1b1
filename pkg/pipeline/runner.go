package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/cache"
	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/observability"
	"github.com/matzehuels/codecity/pkg/scan"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete scan → layout → edges → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Scan
	scanStart := time.Now()
	t, warnings, err := r.Scan(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Tree = t
	result.Warnings = warnings
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.FileCount, _ = t.Count()

	treeData, err := marshalTree(t)
	if err != nil {
		return nil, fmt.Errorf("serialize tree: %w", err)
	}
	result.TreeHash = cache.Hash(treeData)

	r.Logger.Info("scanned project",
		"files", result.Stats.FileCount,
		"duration", result.Stats.ScanTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	c, layoutHit, err := r.BuildCityWithCacheInfo(ctx, t, result.TreeHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.City = c
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	stats := city.Summarize(c)
	result.Stats.BuildingCount = stats.Buildings
	result.Stats.DistrictCount = stats.Districts

	r.Logger.Info("computed layout",
		"buildings", stats.Buildings,
		"districts", stats.Districts,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Edges (optional)
	if opts.Edges {
		edgesStart := time.Now()
		edges, edgesHit, err := r.ExtractEdgesWithCacheInfo(ctx, t, result.TreeHash, opts)
		if err != nil {
			return nil, fmt.Errorf("edges: %w", err)
		}
		result.Edges = edges
		result.Stats.EdgesTime = time.Since(edgesStart)
		result.Stats.EdgeCount = len(edges)
		result.CacheInfo.EdgesHit = edgesHit

		r.Logger.Info("extracted imports",
			"edges", len(edges),
			"duration", result.Stats.EdgesTime)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, result.Edges, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scan reads the project directory into a file tree.
func (r *Runner) Scan(ctx context.Context, opts Options) (*tree.Node, []string, error) {
	if err := opts.ValidateForScan(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnScanStart(ctx, opts.Root)
	start := time.Now()

	res, err := scan.Scan(opts.Root, scan.Options{
		Exclude:           opts.Exclude,
		NoDefaultExcludes: opts.NoDefaultExcludes,
		IncludeHidden:     opts.IncludeHidden,
	})

	var fileCount int
	if res != nil {
		fileCount, _ = res.Root.Count()
	}
	observability.Pipeline().OnScanComplete(ctx, opts.Root, fileCount, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	warnings := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, w.Error())
	}
	return res.Root, warnings, nil
}

// BuildCityWithCacheInfo computes the layout with caching and returns cache hit info.
func (r *Runner) BuildCityWithCacheInfo(ctx context.Context, t *tree.Node, treeHash string, opts Options) (*city.Node, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(layoutHash(treeHash, opts.RootSize))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached city.Node
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	c, err := r.BuildCity(ctx, t, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(c); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return c, false, nil
}

// BuildCity computes the layout without caching.
func (r *Runner) BuildCity(ctx context.Context, t *tree.Node, opts Options) (*city.Node, error) {
	opts.SetLayoutDefaults()

	files, dirs := t.Count()
	observability.Pipeline().OnLayoutStart(ctx, files+dirs)
	start := time.Now()

	c := city.BuildAt(t, 0, 0, opts.RootSize, opts.RootSize, 0)

	observability.Pipeline().OnLayoutComplete(ctx, city.Summarize(c).Buildings, time.Since(start), nil)
	return c, nil
}

// ExtractEdgesWithCacheInfo extracts import edges with caching and returns cache hit info.
func (r *Runner) ExtractEdgesWithCacheInfo(ctx context.Context, t *tree.Node, treeHash string, opts Options) ([]deps.Edge, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.EdgeKey(treeHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []deps.Edge
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "edges")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "edges")
	}

	res, err := deps.Extract(ctx, opts.Root, t, opts.Concurrency)
	if err != nil {
		return nil, false, err
	}
	for _, w := range res.Warnings {
		r.Logger.Warn("import extraction", "warning", w)
	}

	if data, err := json.Marshal(res.Edges); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "edges", len(data))
	}

	return res.Edges, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *city.Node, edges []deps.Edge, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the rendered inputs
	layoutData, err := json.Marshal(c)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	edgesData, _ := json.Marshal(edges)
	inputHash := cache.Hash(append(layoutData, edgesData...))

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(inputHash, artifactVariant(format, opts))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := r.Render(ctx, c, edges, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(inputHash, artifactVariant(format, opts))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// layoutHash derives the layout cache identity from the tree content and the
// layout parameters that change the result.
func layoutHash(treeHash string, rootSize float64) string {
	if rootSize == DefaultRootSize {
		return treeHash
	}
	return cache.Hash([]byte(treeHash + "|" + strconv.FormatFloat(rootSize, 'g', -1, 64)))
}

// artifactVariant encodes the render options that change an artifact's bytes.
func artifactVariant(format string, opts Options) string {
	return fmt.Sprintf("%s:labels=%t:clusters=%t", format, opts.Labels, opts.Clusters)
}

func marshalTree(t *tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := tree.WriteJSON(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

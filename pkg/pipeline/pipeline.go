// Package pipeline provides the core city-building pipeline for CodeCity.
//
// This package implements the complete scan → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Scan: Read the project directory into a file tree
//  2. Layout: Compute the city layout from the tree
//  3. Edges: Extract import edges from Go sources (optional)
//  4. Render: Generate output in various formats (SVG, JSON, DOT, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Root:    "/src/myproject",
//	    Edges:   true,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Scan only
//	t, warnings, err := runner.Scan(ctx, opts)
//
//	// Layout with an existing tree
//	c, err := runner.BuildCity(ctx, t, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultRootSize is the side length of the root city plot.
	DefaultRootSize = city.DefaultRootSize

	// DefaultConcurrency is the worker count for import extraction.
	DefaultConcurrency = 8
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// roadFormats are the formats rendered from the import graph rather than
// the city plan; requesting one implies edge extraction.
var roadFormats = map[string]bool{
	FormatDOT: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the city pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scan options
	Root              string   `json:"root"`
	Exclude           []string `json:"exclude,omitempty"`
	NoDefaultExcludes bool     `json:"no_default_excludes,omitempty"`
	IncludeHidden     bool     `json:"include_hidden,omitempty"`

	// Layout options
	RootSize float64 `json:"root_size,omitempty"`

	// Edge options
	Edges       bool `json:"edges,omitempty"`
	Concurrency int  `json:"concurrency,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Labels   bool     `json:"labels,omitempty"`   // district names in SVG plans
	Clusters bool     `json:"clusters,omitempty"` // district clusters in DOT output

	// Refresh bypasses cached results and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the scanned file tree.
	Tree *tree.Node

	// TreeHash is the content hash of the serialized tree.
	TreeHash string

	// City is the computed layout.
	City *city.Node

	// Edges are the extracted import edges, when requested.
	Edges []deps.Edge

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists non-fatal problems encountered along the way.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount     int
	BuildingCount int
	DistrictCount int
	EdgeCount     int
	ScanTime      time.Duration
	LayoutTime    time.Duration
	EdgesTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	EdgesHit  bool // Whether import edges came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForScan(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForScan checks required fields for scanning.
func (o *Options) ValidateForScan() error {
	if o.Root == "" {
		return errors.New(errors.ErrCodeInvalidInput, "root directory is required")
	}
	for _, p := range o.Exclude {
		if err := errors.ValidateExcludePattern(p); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.RootSize <= 0 {
		o.RootSize = DefaultRootSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	// Road diagrams cannot be drawn without edges.
	for _, f := range o.Formats {
		if roadFormats[f] {
			o.Edges = true
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsRoads returns true if any requested format renders the import graph.
func (o *Options) NeedsRoads() bool {
	for _, f := range o.Formats {
		if roadFormats[f] {
			return true
		}
	}
	return false
}

package pipeline

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForScan(t *testing.T) {
	// Missing root
	opts := Options{}
	if err := opts.ValidateForScan(); err == nil {
		t.Error("Missing root should fail")
	}

	// Traversal in exclude pattern
	opts = Options{Root: "/src/proj", Exclude: []string{"../secrets"}}
	if err := opts.ValidateForScan(); err == nil {
		t.Error("Traversal pattern should fail")
	}

	// Valid
	opts = Options{Root: "/src/proj", Exclude: []string{"*.min.js"}}
	if err := opts.ValidateForScan(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default not set")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.RootSize != DefaultRootSize {
		t.Errorf("RootSize should be %f, got %f", DefaultRootSize, opts.RootSize)
	}
	if opts.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency should be %d, got %d", DefaultConcurrency, opts.Concurrency)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Edges {
		t.Error("plan formats should not force edge extraction")
	}
}

func TestRoadFormatsImplyEdges(t *testing.T) {
	opts := Options{Formats: []string{"dot"}}
	opts.SetRenderDefaults()

	if !opts.Edges {
		t.Error("dot format should force edge extraction")
	}
	if !opts.NeedsRoads() {
		t.Error("NeedsRoads should be true for dot")
	}

	opts = Options{Formats: []string{"svg", "json"}}
	opts.SetRenderDefaults()
	if opts.NeedsRoads() {
		t.Error("NeedsRoads should be false for plan formats")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Root: "/src/proj"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalRootSize := opts.RootSize
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.RootSize != originalRootSize {
		t.Error("RootSize changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestValidateAndSetDefaultsRejectsBadFormat(t *testing.T) {
	opts := Options{Root: "/src/proj", Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unsupported format should fail")
	}
}

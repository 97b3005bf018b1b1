package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/codecity/pkg/config"
)

func TestArgDir(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args defaults to cwd", args: nil, want: "."},
		{name: "explicit dir", args: []string{"./proj"}, want: "./proj"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argDir(tt.args); got != tt.want {
				t.Errorf("argDir(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestMergeExcludes(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Exclude = []string{"*.log", "tmp"}

	got := mergeExcludes(cfg, []string{"dist"})
	want := []string{"*.log", "tmp", "dist"}
	if len(got) != len(want) {
		t.Fatalf("mergeExcludes() returned %d patterns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mergeExcludes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeExcludesNoConfig(t *testing.T) {
	got := mergeExcludes(config.Default(), []string{"dist"})
	if len(got) != 1 || got[0] != "dist" {
		t.Errorf("mergeExcludes() = %v, want [dist]", got)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "svg", want: []string{"svg"}},
		{name: "multiple", input: "svg,json", want: []string{"svg", "json"}},
		{name: "whitespace", input: " svg , png ", want: []string{"svg", "png"}},
		{name: "trailing comma", input: "svg,", want: []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		format string
		want   string
	}{
		{name: "appends extension", base: "city", format: "svg", want: "city.svg"},
		{name: "keeps existing extension", base: "city.svg", format: "svg", want: "city.svg"},
		{name: "different extension appended", base: "city.svg", format: "json", want: "city.svg.json"},
		{name: "nested path", base: "out/plan", format: "png", want: "out/plan.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.base, tt.format); got != tt.want {
				t.Errorf("outputPath(%q, %q) = %q, want %q", tt.base, tt.format, got, tt.want)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Skipf("no user cache dir available: %v", err)
	}
	if !strings.HasSuffix(dir, "codecity") {
		t.Errorf("cacheDir() = %q, want a codecity subdirectory", dir)
	}
}

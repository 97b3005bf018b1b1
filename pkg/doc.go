// Package pkg provides the core libraries for CodeCity layout and rendering.
//
// # Overview
//
// CodeCity turns a project directory into a city: directories become
// districts, files become buildings sized by file size, and imports become
// roads. The pkg directory is organized into four main areas:
//
//  1. [tree], [scan] - File-tree model and directory scanning
//  2. [city] - Deterministic spatial layout (districts, buildings, bounds)
//  3. [deps] - Import extraction across language ecosystems
//  4. [render], [pipeline] - Artifact generation and orchestration
//
// # Architecture
//
// The typical data flow through CodeCity:
//
//	Project Directory
//	         ↓
//	    [scan] package (walk files into a tree)
//	         ↓
//	    [city] package (squarified layout + clamping)
//	         ↓
//	    [deps] package (imports → road edges)
//	         ↓
//	    [render] package (plan + roads artifacts)
//	         ↓
//	    SVG/JSON/DOT/PNG output
//
// # Quick Start
//
//	res, err := scan.Scan("./myproject", scan.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c := city.Build(res.Root)
//	svg := plan.RenderSVG(c, plan.WithLabels())
//
// The [pipeline] package wraps these stages with caching and is the entry
// point used by the CLI and the HTTP server. Supporting packages: [cache]
// for the file/redis backends, [config] for the TOML config file, [errors]
// for coded errors, [observability] for instrumentation hooks, and
// [buildinfo] for version metadata.
package pkg

// Package server exposes a computed city layout over an HTTP API.
//
// The server scans and lays out one project, keeps the result as an
// in-memory snapshot keyed by tree hash, and serves it read-only. A rescan
// endpoint rebuilds the snapshot asynchronously so API consumers never wait
// on a scan.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the pipeline; a nil Runner gets a cacheless default.
	Runner *pipeline.Runner

	// Options are the base pipeline options; Root is required.
	Options pipeline.Options

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// snapshot is one fully built city, immutable once stored.
type snapshot struct {
	TreeHash  string          `json:"tree_hash"`
	BuiltAt   time.Time       `json:"built_at"`
	Stats     city.Stats      `json:"stats"`
	Warnings  []string        `json:"warnings,omitempty"`
	City      *city.Node      `json:"city"`
	Edges     []deps.Edge     `json:"edges,omitempty"`
	index     *city.Index
}

// Server serves a project's city layout.
type Server struct {
	addr   string
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router

	mu      sync.RWMutex
	current *snapshot

	jobs *jobRegistry
}

// New creates a Server. The first snapshot is built lazily on first use or
// explicitly via [Server.Build].
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	// The API serves layout data; artifact rendering stays with the CLI.
	cfg.Options.Formats = []string{pipeline.FormatJSON}

	s := &Server{
		addr:   cfg.Addr,
		runner: cfg.Runner,
		opts:   cfg.Options,
		logger: cfg.Logger,
		jobs:   newJobRegistry(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// Build runs the pipeline and replaces the current snapshot.
func (s *Server) Build(ctx context.Context) (*snapshot, error) {
	result, err := s.runner.Execute(ctx, s.opts)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		TreeHash: result.TreeHash,
		BuiltAt:  time.Now().UTC(),
		Stats:    city.Summarize(result.City),
		Warnings: result.Warnings,
		City:     result.City,
		Edges:    result.Edges,
		index:    city.NewIndex(result.City),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Info("snapshot built",
		"tree_hash", snap.TreeHash[:12],
		"buildings", snap.Stats.Buildings,
		"districts", snap.Stats.Districts)
	return snap, nil
}

// snapshotFor returns the current snapshot, building it on first use.
// The tree hash memoizes rebuilds: an unchanged project is answered from
// the pipeline cache without recomputation.
func (s *Server) snapshotFor(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.current
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return s.Build(ctx)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr, "root", s.opts.Root)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

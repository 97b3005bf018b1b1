package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/deps"
	"github.com/matzehuels/codecity/pkg/errors"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/city", s.handleCity)
		r.Get("/buildings", s.handleBuildings)
		r.Get("/districts", s.handleDistricts)
		r.Get("/bounds", s.handleBounds)
		r.Get("/stats", s.handleStats)
		r.Get("/edges", s.handleEdges)
		r.Post("/rescan", s.handleRescan)
		r.Get("/jobs/{id}", s.handleJob)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// ?path= looks up a single building instead of listing all of them.
	if ref := r.URL.Query().Get("path"); ref != "" {
		if err := errors.ValidateTreePath(ref); err != nil {
			writeError(w, err)
			return
		}
		b, ok := snap.index.Resolve(ref)
		if !ok {
			writeError(w, errors.New(errors.ErrCodeNotFound, "no building matches %q", ref))
			return
		}
		writeJSON(w, http.StatusOK, b)
		return
	}

	writeJSON(w, http.StatusOK, city.FlattenBuildings(snap.City))
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, city.FlattenDistricts(snap.City))
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, city.Bounds(snap.City))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Stats)
}

// road is an edge with its endpoints resolved to building rects, ready for
// a client to draw without its own lookup pass.
type road struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	FromRect city.Rect `json:"from_rect"`
	ToRect   city.Rect `json:"to_rect"`
}

func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshotFor(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// ?resolve=true returns roads with endpoint rects; edges whose endpoints
	// do not resolve to a building are dropped.
	if r.URL.Query().Get("resolve") == "true" {
		roads := make([]road, 0, len(snap.Edges))
		for _, e := range snap.Edges {
			from, ok := snap.index.Resolve(e.From)
			if !ok {
				continue
			}
			to, ok := snap.index.Resolve(e.To)
			if !ok || from == to {
				continue
			}
			roads = append(roads, road{From: e.From, To: e.To, FromRect: from.Rect, ToRect: to.Rect})
		}
		writeJSON(w, http.StatusOK, roads)
		return
	}

	edges := snap.Edges
	if edges == nil {
		edges = []deps.Edge{}
	}
	writeJSON(w, http.StatusOK, edges)
}

// handleRescan starts an asynchronous rebuild and answers immediately with
// a job id the client can poll.
func (s *Server) handleRescan(w http.ResponseWriter, r *http.Request) {
	job := s.jobs.start()
	resp := *job

	go func() {
		// Detached from the request context: the rebuild must outlive the
		// HTTP exchange that triggered it.
		snap, err := s.Build(context.Background())
		var hash string
		if snap != nil {
			hash = snap.TreeHash
		}
		s.jobs.finish(job.ID, hash, err)
		if err != nil {
			s.logger.Error("rescan failed", "job", job.ID, "err", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := s.jobs.get(id)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "unknown job %q", id))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job states.
const (
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// Job tracks one asynchronous rescan.
type Job struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	TreeHash  string    `json:"tree_hash,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// jobRegistry stores rescan jobs by id. Entries are never evicted; rescans
// are operator-triggered and rare.
type jobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func newJobRegistry() *jobRegistry {
	return &jobRegistry{jobs: make(map[string]*Job)}
}

// start registers a new running job and returns its id.
func (r *jobRegistry) start() *Job {
	job := &Job{
		ID:        uuid.NewString(),
		State:     JobRunning,
		StartedAt: time.Now().UTC(),
	}
	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()
	return job
}

// finish marks a job done or failed.
func (r *jobRegistry) finish(id, treeHash string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return
	}
	job.EndedAt = time.Now().UTC()
	if err != nil {
		job.State = JobFailed
		job.Error = err.Error()
		return
	}
	job.State = JobDone
	job.TreeHash = treeHash
}

// get returns a copy of the job, so callers never see concurrent updates.
func (r *jobRegistry) get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

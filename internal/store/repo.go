package store

import (
	"context"
	"time"
)

// TemplateCount is how many records of a run came from one template.
type TemplateCount struct {
	Template string
	Count    int
}

// Run is one completed generate invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	NumExamples int
	Output      string
	Format      string
	Seed        int64
	Catalog     string
	Templates   []TemplateCount
}

// Duration is the wall time of the run.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunRepo manages the history of generate runs.
type RunRepo interface {
	// Save stores a run and its template counts. An empty ID is replaced
	// with a new UUID.
	Save(ctx context.Context, run *Run) error

	// List returns the most recent runs first, without template counts.
	// A limit of 0 returns all runs.
	List(ctx context.Context, limit int) ([]Run, error)

	// Get returns the run whose ID equals or uniquely starts with id,
	// or nil if there is none.
	Get(ctx context.Context, id string) (*Run, error)

	// Prune deletes all but the keep most recent runs and returns the
	// number deleted.
	Prune(ctx context.Context, keep int) (int, error)
}

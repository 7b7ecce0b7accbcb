// Package store persists placement run records: one entry per call to
// pkg/placer.Run, keyed by RunID, recording the input DB's content hash,
// whether tough mode was used, and the outcome. This lets the serve
// command answer "what happened to run X" after the fact, and lets a
// caller poll a long-running placement without holding the connection
// open. Adapted from the teacher's session Store interface
// (pkg/session.Store), generalized from authenticated-user sessions with
// OAuth state tokens to placement run records.
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a run record does not exist.
	ErrNotFound = errors.New("store: not found")
)

// Status is a run record's lifecycle stage.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// RunRecord records one placer.Run invocation.
type RunRecord struct {
	RunID     string    `json:"run_id" bson:"_id"`
	DBHash    string    `json:"db_hash" bson:"db_hash"`
	Status    Status    `json:"status" bson:"status"`
	ErrorMsg  string    `json:"error_msg,omitempty" bson:"error_msg,omitempty"`
	HPWL      float64   `json:"hpwl,omitempty" bson:"hpwl,omitempty"`
	ToughMode bool      `json:"tough_mode" bson:"tough_mode"`
	StartedAt time.Time `json:"started_at" bson:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// Done reports whether the run has finished (successfully or not).
func (r *RunRecord) Done() bool {
	return r.Status == StatusSucceeded || r.Status == StatusFailed
}

// Store is the interface for run-record persistence backends.
type Store interface {
	// Put creates or replaces a run record.
	Put(ctx context.Context, rec *RunRecord) error

	// Get retrieves a run record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, runID string) (*RunRecord, error)

	// Delete removes a run record. Not an error if the record doesn't exist.
	Delete(ctx context.Context, runID string) error

	// List returns run records started at or after since, most recent first.
	List(ctx context.Context, since time.Time, limit int) ([]*RunRecord, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

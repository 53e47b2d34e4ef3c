// Package job runs one external-tool invocation at a time on its own
// goroutine and hands the outcome back to the interactive goroutine.
package job

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"framecut/domain/clip"
)

// ErrJobRunning is returned by Start while another job is still active.
var ErrJobRunning = errors.New("a job is already running")

// Status is the runner's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

// String returns the status name used in progress output.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Task is the work executed on the worker goroutine. It must not touch any
// interactive state; everything it needs travels in the Request snapshot.
type Task func(ctx context.Context, req clip.Request) error

// Completion is delivered exactly once per started job, on the Completions
// channel. Request is the launch-time snapshot, so a handler that chains a
// follow-up job always sees the bounds the user confirmed, never the live
// selection.
type Completion struct {
	ID      string
	Request clip.Request
	Err     error
}

// Runner executes at most one job at a time. Workers report back through a
// buffered channel that the interactive goroutine drains, so completion
// handling always happens off the worker.
//
// There is no cancellation: dismissing a progress display leaves the
// external process running, matching the tool being wrapped. Jobs still in
// flight at shutdown are not awaited.
type Runner struct {
	mu     sync.Mutex
	status Status
	active string

	completions chan Completion
}

// NewRunner creates an idle runner.
func NewRunner() *Runner {
	return &Runner{completions: make(chan Completion, 1)}
}

// Start launches task on a worker goroutine for the given snapshot and
// returns the job ID. It fails with ErrJobRunning while a previous job is
// active; a completion handler may Start the next job immediately after
// receiving the previous Completion.
func (r *Runner) Start(ctx context.Context, req clip.Request, task Task) (string, error) {
	r.mu.Lock()
	if r.status == StatusRunning {
		r.mu.Unlock()
		return "", ErrJobRunning
	}
	id := uuid.NewString()
	r.status = StatusRunning
	r.active = id
	r.mu.Unlock()

	go func() {
		err := task(ctx, req)

		r.mu.Lock()
		if err != nil {
			r.status = StatusFailed
		} else {
			r.status = StatusSucceeded
		}
		r.active = ""
		r.mu.Unlock()

		// Status is settled before the send, so the receiver can chain
		// the next Start without racing the busy check.
		r.completions <- Completion{ID: id, Request: req, Err: err}
	}()

	return id, nil
}

// Completions returns the channel carrying one Completion per started job.
func (r *Runner) Completions() <-chan Completion {
	return r.completions
}

// Status returns the current lifecycle state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

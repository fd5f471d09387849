package engine

import (
	"time"

	"scout/internal/executor"
	"scout/internal/planner"
	"scout/internal/rollback"
)

// RunResult represents the outcome of a sorting run.
type RunResult struct {
	// RunID uniquely identifies this run
	RunID string

	// StartedAt and FinishedAt bracket the run
	StartedAt  time.Time
	FinishedAt time.Time

	// Request echoes the effective request parameters
	Source      string
	Destination string
	Mode        string
	Kind        string
	DryRun      bool

	// Plan is the plan that was (or would have been) executed
	Plan *planner.Plan

	// Records is the execution transcript, empty for dry runs.
	// Operations never dispatched before cancellation are absent.
	Records []executor.Record

	// Cancelled reports whether the run was cut short by its context
	Cancelled bool

	// Rollback is non-nil when a rollback was attempted
	Rollback *rollback.Report
}

// Succeeded returns the count of operations that landed at their planned
// destination.
func (r *RunResult) Succeeded() int { return r.count(executor.OutcomeSucceeded) }

// Renamed returns the count of operations diverted by a name collision.
func (r *RunResult) Renamed() int { return r.count(executor.OutcomeRenamed) }

// Failed returns the count of operations that failed.
func (r *RunResult) Failed() int { return r.count(executor.OutcomeFailed) }

// Completed returns the count of operations that mutated the filesystem.
func (r *RunResult) Completed() int {
	return r.Succeeded() + r.Renamed()
}

// FailedRecords returns the failed entries of the transcript in
// completion order.
func (r *RunResult) FailedRecords() []executor.Record {
	var out []executor.Record
	for _, rec := range r.Records {
		if rec.Failed() {
			out = append(out, rec)
		}
	}
	return out
}

func (r *RunResult) count(outcome string) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Outcome == outcome {
			n++
		}
	}
	return n
}

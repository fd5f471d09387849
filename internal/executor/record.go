package executor

import "scout/internal/planner"

// Outcome constants for execution records.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRenamed   = "renamed"
	OutcomeFailed    = "failed"
)

// Record describes what actually happened to one planned operation.
// Records are appended in completion order, which may differ from plan
// order; the transcript is the sole input to rollback.
type Record struct {
	// Op is the planned operation this record accounts for
	Op planner.Operation

	// Outcome is OutcomeSucceeded, OutcomeRenamed, or OutcomeFailed
	Outcome string

	// Dest is the realized destination path. For renamed outcomes this
	// differs from Op.Dest; for failures it is the path that was
	// attempted.
	Dest string

	// Reason carries the failure description for OutcomeFailed
	Reason string
}

// Completed reports whether the operation mutated the filesystem
// (succeeded or renamed) and is therefore eligible for rollback.
func (r Record) Completed() bool {
	return r.Outcome == OutcomeSucceeded || r.Outcome == OutcomeRenamed
}

// Failed reports whether the operation failed.
func (r Record) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// Observer receives execution progress callbacks. Implementations render
// progress without the executor depending on any output capability.
type Observer interface {
	// ExecutionStarted is called once before the first operation runs.
	ExecutionStarted(totalOps int, totalBytes int64)

	// OperationCompleted is called once per completed operation, from
	// worker goroutines, in the same order records are appended to the
	// transcript. Implementations must not block for long; they hold up
	// the transcript while running.
	OperationCompleted(rec Record)
}

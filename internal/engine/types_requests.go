package engine

import "scout/internal/executor"

// RunRequest represents a request to sort a source directory into a
// destination.
type RunRequest struct {
	// Source is the directory whose entries are sorted
	Source string

	// Destination is the directory bucket folders are created under
	Destination string

	// Mode is one of planner.ModeFlat, ModeDeep, ModeFreeze
	Mode string

	// Kind is planner.KindMove or planner.KindCopy
	Kind string

	// Parallelism is the worker count; zero picks a hardware default
	Parallelism int

	// RollbackOnFailure reverses completed operations when any
	// operation fails or the run is cancelled
	RollbackOnFailure bool

	// DryRun performs planning only without touching the filesystem
	DryRun bool

	// Observer receives execution progress callbacks; may be nil
	Observer executor.Observer
}

package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"scout/internal/executor"
	"scout/internal/planner"
	"scout/internal/rollback"
)

// LockFileName is created inside the destination for the duration of a
// run so two runs never organize the same destination concurrently.
const LockFileName = ".scout.lock"

// Run executes a sorting run. The returned RunResult is non-nil whenever
// planning succeeded, including dry runs and runs with failed operations;
// the error return is reserved for fatal pre-flight conditions.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	// The planner's containment check compares cleaned absolute paths,
	// so both roots are normalized here before anything reads them.
	source, err := filepath.Abs(req.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", ErrValidation, req.Source, err)
	}
	destination, err := filepath.Abs(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: destination %s: %v", ErrValidation, req.Destination, err)
	}

	info, err := e.fs.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, source)
	}

	// Dry runs only plan, so they neither create the destination nor
	// take the lock.
	if !req.DryRun {
		if err := e.fs.MkdirAll(destination, 0755); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDestinationUnwritable, destination, err)
		}

		lock := flock.New(filepath.Join(destination, LockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDestinationUnwritable, destination, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", ErrLocked, destination)
		}
		defer lock.Unlock()
	}

	result := &RunResult{
		RunID:       uuid.NewString(),
		StartedAt:   e.clock.Now(),
		Source:      source,
		Destination: destination,
		Mode:        req.Mode,
		Kind:        req.Kind,
		DryRun:      req.DryRun,
	}

	plan, err := planner.Build(e.fs, source, destination, req.Mode, req.Kind)
	if err != nil {
		return nil, err
	}
	result.Plan = plan

	e.logger.Info("run planned",
		"run_id", result.RunID,
		"mode", req.Mode,
		"kind", req.Kind,
		"operations", len(plan.Operations),
		"skipped", len(plan.Skipped),
		"total_bytes", plan.TotalBytes,
	)

	if req.DryRun {
		result.FinishedAt = e.clock.Now()
		return result, nil
	}

	workers := req.Parallelism
	if workers == 0 {
		workers = executor.DefaultWorkers()
	}
	exec := executor.New(e.fs, e.hasher, workers, req.Observer)
	result.Records = exec.Execute(ctx, plan)
	result.Cancelled = ctx.Err() != nil

	for _, rec := range result.FailedRecords() {
		e.logger.Warn("operation failed",
			"run_id", result.RunID,
			"source", rec.Op.Source,
			"dest", rec.Dest,
			"reason", rec.Reason,
		)
	}

	if req.RollbackOnFailure && (result.Failed() > 0 || result.Cancelled) && result.Completed() > 0 {
		e.logger.Info("rolling back",
			"run_id", result.RunID,
			"completed", result.Completed(),
			"failed", result.Failed(),
			"cancelled", result.Cancelled,
		)
		result.Rollback = rollback.New(e.fs, e.hasher).Rollback(result.Records)
		if !result.Rollback.Clean() {
			for _, f := range result.Rollback.Failures {
				e.logger.Error("rollback failure",
					"run_id", result.RunID,
					"dest", f.Dest,
					"source", f.Source,
					"reason", f.Reason,
				)
			}
		}
	}

	result.FinishedAt = e.clock.Now()
	e.logger.Info("run finished",
		"run_id", result.RunID,
		"succeeded", result.Succeeded(),
		"renamed", result.Renamed(),
		"failed", result.Failed(),
		"cancelled", result.Cancelled,
	)
	return result, nil
}

func (e *Engine) validate(req *RunRequest) error {
	if req.Source == "" {
		return fmt.Errorf("%w: source is required", ErrValidation)
	}
	if req.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if !planner.ValidMode(req.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, req.Mode)
	}
	if !planner.ValidKind(req.Kind) {
		return fmt.Errorf("%w: unknown operation %q", ErrValidation, req.Kind)
	}
	if req.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must not be negative", ErrValidation)
	}
	return nil
}

// Package executor runs planned operations with bounded parallelism.
//
// Each worker takes one operation at a time: ensure the bucket directory
// exists, resolve the final destination, perform the move or copy, and
// append a record to the transcript. A single operation's failure never
// aborts siblings; the engine decides afterwards whether the batch
// triggers rollback.
package executor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"scout/internal/fsops"
	"scout/internal/hash"
	"scout/internal/planner"
)

// DefaultWorkers returns the default parallelism, derived from available
// hardware with a floor of one.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// Executor executes plans against the filesystem.
type Executor struct {
	fs       fsops.FS
	hasher   hash.Hasher
	workers  int
	observer Observer
}

// New creates an Executor with the given parallelism. Values below one
// fall back to one worker.
func New(fs fsops.FS, hasher hash.Hasher, workers int, observer Observer) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		fs:       fs,
		hasher:   hasher,
		workers:  workers,
		observer: observer,
	}
}

// Execute runs every operation in the plan and returns the transcript in
// completion order. Cancelling the context stops dispatching new
// operations immediately; in-flight operations finish so no file is ever
// half-written. Operations never dispatched are absent from the
// transcript.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan) []Record {
	if e.observer != nil {
		e.observer.ExecutionStarted(len(plan.Operations), plan.TotalBytes)
	}

	resolver := NewResolver(e.fs)
	jobs := make(chan planner.Operation)
	records := make([]Record, 0, len(plan.Operations))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for op := range jobs {
				rec := e.run(resolver, op)
				mu.Lock()
				records = append(records, rec)
				// Invoked under the lock so callbacks arrive in
				// transcript order.
				if e.observer != nil {
					e.observer.OperationCompleted(rec)
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, op := range plan.Operations {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- op:
		}
	}
	close(jobs)
	wg.Wait()

	return records
}

// run executes a single operation and produces its record.
func (e *Executor) run(resolver *Resolver, op planner.Operation) Record {
	// Idempotent: concurrent workers may create the same bucket.
	if err := e.fs.MkdirAll(filepath.Dir(op.Dest), 0755); err != nil {
		return Record{
			Op:      op,
			Outcome: OutcomeFailed,
			Dest:    op.Dest,
			Reason:  fmt.Sprintf("failed to create bucket directory: %v", err),
		}
	}

	dest, renamed, err := resolver.Resolve(op.Dest, op.Subtree)
	if err != nil {
		return Record{
			Op:      op,
			Outcome: OutcomeFailed,
			Dest:    op.Dest,
			Reason:  fmt.Sprintf("failed to resolve destination: %v", err),
		}
	}

	var opErr error
	switch {
	case op.Subtree && op.Kind == planner.KindCopy:
		opErr = e.fs.CopyTree(op.Source, dest)
	case op.Subtree:
		opErr = MoveTree(e.fs, op.Source, dest)
	case op.Kind == planner.KindCopy:
		opErr = e.fs.CopyFile(op.Source, dest)
	default:
		opErr = MoveFile(e.fs, e.hasher, op.Source, dest)
	}
	if opErr != nil {
		return Record{Op: op, Outcome: OutcomeFailed, Dest: dest, Reason: opErr.Error()}
	}

	outcome := OutcomeSucceeded
	if renamed {
		outcome = OutcomeRenamed
	}
	return Record{Op: op, Outcome: outcome, Dest: dest}
}

// MoveFile moves a single file. Within one volume the rename is atomic;
// across volumes it falls back to copy, verify, then delete the source.
// The source is never deleted before the destination is confirmed
// complete and flushed. Rollback reuses this to restore moves across
// volume boundaries.
func MoveFile(fs fsops.FS, hasher hash.Hasher, src, dst string) error {
	err := fs.Rename(src, dst)
	if err == nil || !crossDevice(err) {
		return err
	}

	if err := fs.CopyFile(src, dst); err != nil {
		return err
	}

	srcInfo, err := fs.Stat(src)
	if err != nil {
		_ = fs.Remove(dst)
		return fmt.Errorf("failed to stat source after copy: %w", err)
	}
	dstInfo, err := fs.Stat(dst)
	if err != nil {
		_ = fs.Remove(dst)
		return fmt.Errorf("failed to stat destination after copy: %w", err)
	}
	if srcInfo.Size() != dstInfo.Size() {
		_ = fs.Remove(dst)
		return fmt.Errorf("size mismatch after cross-volume copy: source %d bytes, destination %d bytes", srcInfo.Size(), dstInfo.Size())
	}

	equal, err := hash.Equal(hasher, src, dst)
	if err != nil {
		_ = fs.Remove(dst)
		return fmt.Errorf("failed to verify cross-volume copy: %w", err)
	}
	if !equal {
		_ = fs.Remove(dst)
		return errors.New("content mismatch after cross-volume copy")
	}

	// The source is still intact at this point, so the copy is removed
	// rather than left as a stray duplicate.
	if err := fs.Remove(src); err != nil {
		_ = fs.Remove(dst)
		return fmt.Errorf("failed to remove source after verified copy: %w", err)
	}
	return nil
}

// MoveTree moves a whole subtree, falling back to copy-then-delete when
// the rename crosses a volume boundary.
func MoveTree(fs fsops.FS, src, dst string) error {
	err := fs.Rename(src, dst)
	if err == nil || !crossDevice(err) {
		return err
	}

	if err := fs.CopyTree(src, dst); err != nil {
		return err
	}
	return fs.RemoveAll(src)
}

// crossDevice reports whether err is a cross-volume rename failure.
func crossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// Package rollback reverses completed operations after a failed or
// cancelled batch.
//
// The execution transcript is the sole input: entries are processed in
// strict reverse of completion order, moves are restored to their
// original source paths, copies are deleted from the destination, and
// bucket directories left empty are pruned so the destination tree
// returns to its pre-run state for every reversed entry.
package rollback

import (
	"fmt"
	"path/filepath"

	"scout/internal/executor"
	"scout/internal/fsops"
	"scout/internal/hash"
	"scout/internal/planner"
)

// Failure records a single entry the reversal could not undo.
type Failure struct {
	// Dest is the realized destination that could not be reversed
	Dest string

	// Source is the original source path the entry belonged to
	Source string

	// Reason is a human-readable explanation
	Reason string
}

// Report summarizes a reversal pass.
type Report struct {
	// Reversed is the number of entries successfully undone
	Reversed int

	// Failures lists unrecoverable entries, in reversal order
	Failures []Failure
}

// Clean reports whether every eligible entry was reversed.
func (r *Report) Clean() bool {
	return len(r.Failures) == 0
}

// Manager reverses execution transcripts.
type Manager struct {
	fs     fsops.FS
	hasher hash.Hasher
}

// New creates a Manager.
func New(fs fsops.FS, hasher hash.Hasher) *Manager {
	return &Manager{fs: fs, hasher: hasher}
}

// Rollback undoes the completed entries of the transcript in reverse
// completion order. Failed records never generate reversal work. An
// entry that cannot be reversed is recorded and reversal continues with
// the remaining entries; the Manager appends only to its own report and
// never mutates the transcript.
func (m *Manager) Rollback(records []executor.Record) *Report {
	report := &Report{}
	touched := make(map[string]bool)

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if !rec.Completed() {
			continue
		}
		touched[filepath.Dir(rec.Dest)] = true

		if err := m.reverse(rec); err != nil {
			report.Failures = append(report.Failures, Failure{
				Dest:   rec.Dest,
				Source: rec.Op.Source,
				Reason: err.Error(),
			})
			continue
		}
		report.Reversed++
	}

	// Prune bucket directories (and _Folders) this run emptied. Remove
	// fails on non-empty directories, which is exactly the guard needed
	// to leave pre-existing content alone.
	for dir := range touched {
		_ = m.fs.Remove(dir)
	}

	return report
}

// reverse undoes a single completed entry.
func (m *Manager) reverse(rec executor.Record) error {
	if rec.Op.Kind == planner.KindCopy {
		// The source was never touched; deleting the copy is enough.
		if rec.Op.Subtree {
			return m.fs.RemoveAll(rec.Dest)
		}
		return m.fs.Remove(rec.Dest)
	}

	// Moves return to their recorded original source, recreating the
	// parent if needed.
	if err := m.fs.MkdirAll(filepath.Dir(rec.Op.Source), 0755); err != nil {
		return fmt.Errorf("failed to recreate source parent: %w", err)
	}
	if rec.Op.Subtree {
		return executor.MoveTree(m.fs, rec.Dest, rec.Op.Source)
	}
	return executor.MoveFile(m.fs, m.hasher, rec.Dest, rec.Op.Source)
}

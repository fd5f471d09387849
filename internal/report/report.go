// Package report turns a run result into human and machine readable
// summaries. Reporting is glue around the result object and never feeds
// back into execution.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scout/internal/engine"
	"scout/internal/fsops"
)

// maxInlineFailures bounds how many failed operations the console
// summary lists before referring to the full report.
const maxInlineFailures = 5

// FailedOperation describes one failed operation in a summary.
type FailedOperation struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Reason string `json:"reason"`
}

// SkippedEntry describes one entry the planner left alone.
type SkippedEntry struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RollbackSummary describes the outcome of a rollback attempt.
type RollbackSummary struct {
	Reversed int      `json:"reversed"`
	Failures []string `json:"failures,omitempty"`
}

// Summary is the report schema shared by all output formats.
type Summary struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Mode        string    `json:"mode"`
	Operation   string    `json:"operation"`
	DryRun      bool      `json:"dry_run"`
	Cancelled   bool      `json:"cancelled"`

	Planned    int   `json:"planned"`
	Succeeded  int   `json:"succeeded"`
	Renamed    int   `json:"renamed"`
	Failed     int   `json:"failed"`
	Skipped    int   `json:"skipped"`
	TotalBytes int64 `json:"total_bytes"`

	FailedOperations []FailedOperation `json:"failed_operations,omitempty"`
	Skips            []SkippedEntry    `json:"skips,omitempty"`
	Rollback         *RollbackSummary  `json:"rollback,omitempty"`
}

// NewSummary builds a Summary from a run result.
func NewSummary(result *engine.RunResult) *Summary {
	s := &Summary{
		RunID:       result.RunID,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		Source:      result.Source,
		Destination: result.Destination,
		Mode:        result.Mode,
		Operation:   result.Kind,
		DryRun:      result.DryRun,
		Cancelled:   result.Cancelled,
		Succeeded:   result.Succeeded(),
		Renamed:     result.Renamed(),
		Failed:      result.Failed(),
	}

	if result.Plan != nil {
		s.Planned = len(result.Plan.Operations)
		s.Skipped = len(result.Plan.Skipped)
		s.TotalBytes = result.Plan.TotalBytes
		for _, skip := range result.Plan.Skipped {
			s.Skips = append(s.Skips, SkippedEntry{Path: skip.Path, Reason: skip.Reason})
		}
	}

	for _, rec := range result.FailedRecords() {
		s.FailedOperations = append(s.FailedOperations, FailedOperation{
			Source: rec.Op.Source,
			Dest:   rec.Dest,
			Reason: rec.Reason,
		})
	}

	if result.Rollback != nil {
		rb := &RollbackSummary{Reversed: result.Rollback.Reversed}
		for _, f := range result.Rollback.Failures {
			rb.Failures = append(rb.Failures, fmt.Sprintf("%s: %s", f.Dest, f.Reason))
		}
		s.Rollback = rb
	}

	return s
}

// Render produces the console summary table with failed-operation detail.
func (s *Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "Count"})
	tw.AppendRows([]table.Row{
		{"Planned", s.Planned},
		{"Succeeded", s.Succeeded},
		{"Renamed", s.Renamed},
		{"Failed", s.Failed},
		{"Skipped", s.Skipped},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Run %s (%s %s)\n", s.RunID, s.Operation, s.Mode)
	if s.DryRun {
		buf.WriteString("Dry run: no files were touched.\n")
	}
	if s.Cancelled {
		buf.WriteString("Run was cancelled before all operations dispatched.\n")
	}
	buf.WriteString(tw.Render())
	buf.WriteByte('\n')

	if len(s.FailedOperations) > 0 {
		buf.WriteString("\nFailed operations:\n")
		for i, op := range s.FailedOperations {
			if i == maxInlineFailures {
				fmt.Fprintf(&buf, "  ... and %d more (see the saved report)\n", len(s.FailedOperations)-maxInlineFailures)
				break
			}
			fmt.Fprintf(&buf, "  %s: %s\n", op.Source, op.Reason)
		}
	}

	if s.Rollback != nil {
		fmt.Fprintf(&buf, "\nRolled back %d completed operations.\n", s.Rollback.Reversed)
		for _, f := range s.Rollback.Failures {
			fmt.Fprintf(&buf, "  rollback failure: %s\n", f)
		}
	}

	return buf.String()
}

// FileName returns the base name reports of the given extension are
// saved under, derived from the run start time.
func (s *Summary) FileName(ext string) string {
	return fmt.Sprintf("scout_report_%s.%s", s.StartedAt.UTC().Format("20060102T150405Z"), ext)
}

// WriteJSON saves the summary as JSON into dir and returns the full path.
func (s *Summary) WriteJSON(fsys fsops.FS, dir string) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	path := filepath.Join(dir, s.FileName("json"))
	if err := fsys.AtomicWrite(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// WriteCSV saves the summary as CSV into dir and returns the full path.
// The file carries one row per outcome class followed by one row per
// failed operation.
func (s *Summary) WriteCSV(fsys fsops.FS, dir string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"run_id", s.RunID},
		{"source", s.Source},
		{"destination", s.Destination},
		{"mode", s.Mode},
		{"operation", s.Operation},
		{"planned", strconv.Itoa(s.Planned)},
		{"succeeded", strconv.Itoa(s.Succeeded)},
		{"renamed", strconv.Itoa(s.Renamed)},
		{"failed", strconv.Itoa(s.Failed)},
		{"skipped", strconv.Itoa(s.Skipped)},
		{"total_bytes", strconv.FormatInt(s.TotalBytes, 10)},
	}
	for _, op := range s.FailedOperations {
		rows = append(rows, []string{"failed_operation", op.Source, op.Dest, op.Reason})
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(dir, s.FileName("csv"))
	if err := fsys.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

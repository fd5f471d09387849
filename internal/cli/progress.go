package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"scout/internal/executor"
)

// progressObserver renders a progress bar while operations execute. The
// executor calls it from worker goroutines; progressbar serializes
// internally.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

// newProgressObserver returns an observer when stderr is a terminal and
// nil otherwise, so piped and scripted runs stay quiet.
func newProgressObserver() *progressObserver {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil
	}
	return &progressObserver{}
}

func (p *progressObserver) ExecutionStarted(totalOps int, totalBytes int64) {
	p.bar = progressbar.Default(int64(totalOps), "Sorting")
}

func (p *progressObserver) OperationCompleted(rec executor.Record) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// finish clears the bar once execution ends.
func (p *progressObserver) finish() {
	if p != nil && p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Package engine provides the core business logic for scout runs.
//
// The engine package acts as the orchestration layer between CLI commands
// and the lower-level phases. It validates the request, locks the
// destination, builds the plan, executes it, and decides whether a partial
// failure triggers rollback.
package engine

import (
	"log/slog"

	"scout/internal/clock"
	"scout/internal/fsops"
	"scout/internal/hash"
	"scout/internal/logging"
)

// Engine orchestrates a sorting run.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Engine with the given dependencies. A nil logger
// disables logging.
func New(fs fsops.FS, hasher hash.Hasher, clk clock.Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}
}

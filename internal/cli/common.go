package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"scout/internal/clock"
	"scout/internal/config"
	"scout/internal/engine"
	"scout/internal/fsops"
	"scout/internal/hash"
	"scout/internal/logging"
)

// newEngine creates a new engine with real implementations of all
// dependencies. The returned close function flushes the run log.
func newEngine() (*engine.Engine, *config.Paths, func(), error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{Path: paths.LogFile})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open run log: %w", err)
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}

	return engine.New(fs, hasher, clk, logger), paths, closeLog, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

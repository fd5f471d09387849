// Package logging constructs the slog logger scout writes its run log with.
//
// Console output goes through the CLI's formatting helpers; the structured
// log is a per-run audit trail appended to the log file under the scout
// data directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options describes logger construction parameters.
type Options struct {
	// Level is the minimum level recorded ("debug", "info", "warn", "error").
	Level string

	// Path is the log file. Empty means log to stderr.
	Path string
}

// New constructs a slog logger using the provided options. When Path is
// set the file is opened in append mode so successive runs share one log.
func New(opts Options) (*slog.Logger, func(), error) {
	w, closeFn, err := openWriter(opts.Path)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime {
				attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
			}
			return attr
		},
	})
	return slog.New(handler), closeFn, nil
}

// Discard returns a logger that drops everything. Used in tests and when
// the data directory is unavailable.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, func() { _ = file.Close() }, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"scout/internal/fsops"
	"scout/internal/planner"
)

// Settings holds the remembered inputs from the previous run. They are
// only ever used to pre-fill CLI defaults; the engine itself is a pure
// function of the request it receives.
type Settings struct {
	Source            string `toml:"source"`
	Destination       string `toml:"destination"`
	Mode              string `toml:"mode"`
	Operation         string `toml:"operation"`
	ReportFormat      string `toml:"report_format"`
	Parallelism       int    `toml:"parallelism"`
	RollbackOnFailure bool   `toml:"rollback_on_failure"`
	UseColors         bool   `toml:"use_colors"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		Mode:              planner.ModeFlat,
		Operation:         planner.KindMove,
		ReportFormat:      "console",
		RollbackOnFailure: true,
		UseColors:         true,
	}
}

// LoadSettings reads the remembered settings from path. A missing file
// yields the defaults; a corrupt file is an error so the caller can
// surface it instead of silently discarding preferences.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes the settings to path atomically.
func SaveSettings(fsys fsops.FS, path string, settings *Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := fsys.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

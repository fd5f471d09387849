// Package config manages scout configuration and filesystem paths.
//
// Configuration includes the locations of scout data directories, which can
// be customized via environment variables, and the remembered settings from
// the previous run. The default root is ~/.scout/ containing the settings
// file, the log file, and saved reports.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by scout.
type Paths struct {
	// Root is the base directory for all scout data (default: ~/.scout)
	Root string

	// Reports is the directory JSON and CSV reports are written to
	Reports string

	// Settings is the path to the remembered-settings file
	Settings string

	// LogFile is the path to the run log
	LogFile string
}

// DefaultPaths returns the default paths for scout.
// Paths can be overridden with environment variables:
// - SCOUT_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("SCOUT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".scout")
	}

	return &Paths{
		Root:     root,
		Reports:  filepath.Join(root, "reports"),
		Settings: filepath.Join(root, "config.toml"),
		LogFile:  filepath.Join(root, "scout.log"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Reports,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scout/internal/classify"
	"scout/internal/fsops"
)

// Build walks the source tree in the given mode and produces the ordered
// operation sequence for one run. Both roots must be absolute, cleaned
// paths. The filesystem is never mutated here.
func Build(fs fsops.FS, sourceRoot, destRoot, mode, kind string) (*Plan, error) {
	if !ValidMode(mode) {
		return nil, fmt.Errorf("unknown sort mode: %s", mode)
	}
	if !ValidKind(kind) {
		return nil, fmt.Errorf("unknown operation kind: %s", kind)
	}

	plan := NewPlan(sourceRoot, destRoot, mode, kind)

	switch mode {
	case ModeDeep:
		if err := walkDeep(fs, plan, sourceRoot); err != nil {
			return nil, err
		}
	default:
		if err := walkTop(fs, plan); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// walkTop enumerates direct children only, covering flat and freeze modes.
func walkTop(fs fsops.FS, plan *Plan) error {
	entries, err := fs.ReadDir(plan.SourceRoot)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(plan.SourceRoot, entry.Name())

		if isWithin(plan.DestRoot, path) {
			plan.AddSkip(path, SkipDestination)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			plan.AddSkip(path, SkipSymlink)
			continue
		}

		if entry.IsDir() {
			if plan.Mode == ModeFreeze {
				plan.AddOperation(Operation{
					Source:  path,
					Dest:    filepath.Join(plan.DestRoot, FoldersDir, entry.Name()),
					Kind:    plan.Kind,
					Subtree: true,
				})
			}
			// Flat mode ignores directories entirely.
			continue
		}

		if !entry.Type().IsRegular() {
			// Sockets, devices and the like are outside scope.
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		addFileOperation(plan, FileEntry{
			Path:    path,
			Size:    info.Size(),
			RelPath: entry.Name(),
		})
	}

	return nil
}

// walkDeep recursively enumerates every regular file under dir. Traversal
// is depth-first in lexicographic order, which ReadDir guarantees.
func walkDeep(fs fsops.FS, plan *Plan, dir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if isWithin(plan.DestRoot, path) {
			plan.AddSkip(path, SkipDestination)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			plan.AddSkip(path, SkipSymlink)
			continue
		}

		if entry.IsDir() {
			if err := walkDeep(fs, plan, path); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		rel, err := filepath.Rel(plan.SourceRoot, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		addFileOperation(plan, FileEntry{
			Path:    path,
			Size:    info.Size(),
			RelPath: rel,
		})
	}

	return nil
}

// addFileOperation converts a discovered entry into its planned operation.
// Nesting information is discarded; only the bucket matters.
func addFileOperation(plan *Plan, entry FileEntry) {
	name := filepath.Base(entry.Path)
	bucket := classify.Bucket(name)
	plan.AddOperation(Operation{
		Source: entry.Path,
		Dest:   filepath.Join(plan.DestRoot, bucket, name),
		Kind:   plan.Kind,
		Bucket: bucket,
		Size:   entry.Size,
	})
}

// isWithin reports whether path equals root or lies underneath it.
func isWithin(root, path string) bool {
	if root == path {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

package executor

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"scout/internal/fsops"
)

// Resolver computes non-colliding destination paths at execution time.
// Occupancy depends on pre-existing files plus everything this run has
// already claimed, so resolution and claiming happen as one atomic step
// under a single mutex. All methods are goroutine-safe.
type Resolver struct {
	fs      fsops.FS
	mu      sync.Mutex
	claimed map[string]bool
}

// NewResolver creates a ready-to-use resolver.
func NewResolver(fs fsops.FS) *Resolver {
	return &Resolver{
		fs:      fs,
		claimed: make(map[string]bool),
	}
}

// Resolve returns the final destination for the intended path and claims
// it for the caller. If the path is free it is returned unchanged;
// otherwise candidates "name (1).ext", "name (2).ext", … are probed in
// increasing order and the first free one is claimed. The renamed return
// reports whether a substitution happened. Directory destinations
// (subtree moves) suffix the whole name instead of splitting an
// extension.
func (r *Resolver) Resolve(intended string, dir bool) (dest string, renamed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	free, err := r.free(intended)
	if err != nil {
		return "", false, err
	}
	if free {
		r.claimed[intended] = true
		return intended, false, nil
	}

	parent := filepath.Dir(intended)
	base := filepath.Base(intended)
	ext := ""
	stem := base
	if !dir {
		ext = filepath.Ext(base)
		stem = strings.TrimSuffix(base, ext)
	}

	// No upper bound: pathological collision runs degrade linearly
	// instead of failing.
	for n := 1; ; n++ {
		candidate := filepath.Join(parent, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		free, err := r.free(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			r.claimed[candidate] = true
			return candidate, true, nil
		}
	}
}

// free reports whether path is neither claimed by this run nor present
// on the filesystem. Callers must hold r.mu.
func (r *Resolver) free(path string) (bool, error) {
	if r.claimed[path] {
		return false, nil
	}
	exists, err := r.fs.Exists(path)
	if err != nil {
		return false, fmt.Errorf("failed to probe destination %s: %w", path, err)
	}
	return !exists, nil
}

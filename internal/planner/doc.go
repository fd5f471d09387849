// Package planner handles the planning phase of a sorting run.
//
// The planner walks the source tree and generates a deterministic, ordered
// list of planned operations without touching the filesystem. Collisions
// with pre-existing destination files are deliberately not resolved here;
// occupancy depends on execution order, so resolution belongs to the
// executor.
//
// Key responsibilities:
//   - Enumerate source files per mode (flat, deep, freeze)
//   - Map each file to its destination bucket path
//   - Exclude symlinks and the destination root from the walk
//   - Guarantee lexicographic traversal order for reproducible runs
package planner

package planner

import (
	"os"
	"path/filepath"
	"testing"

	"scout/internal/fsops"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func destPaths(plan *Plan) []string {
	paths := make([]string, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		paths = append(paths, op.Dest)
	}
	return paths
}

func TestBuild_RejectsBadInputs(t *testing.T) {
	fs := fsops.NewRealFS()

	if _, err := Build(fs, "/src", "/dst", "sideways", KindMove); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := Build(fs, "/src", "/dst", ModeFlat, "teleport"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuild_Flat(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.TXT"), "a")
	writeFile(t, filepath.Join(src, "b.txt"), "b")
	writeFile(t, filepath.Join(src, "c"), "c")
	writeFile(t, filepath.Join(src, "nested", "d.txt"), "d")

	plan, err := Build(fs, src, dst, ModeFlat, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := []string{
		filepath.Join(dst, "txt", "a.TXT"),
		filepath.Join(dst, "txt", "b.txt"),
		filepath.Join(dst, "no_extension", "c"),
	}
	got := destPaths(plan)
	if len(got) != len(want) {
		t.Fatalf("expected %d operations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("operation %d dest = %q, want %q", i, got[i], want[i])
		}
	}

	// Files in subdirectories must not be planned in flat mode.
	for _, op := range plan.Operations {
		if filepath.Dir(op.Source) != src {
			t.Errorf("flat mode planned a nested file: %s", op.Source)
		}
	}
}

func TestBuild_Deep(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "top.txt"), "1")
	writeFile(t, filepath.Join(src, "photos", "cat.JPG"), "2")
	writeFile(t, filepath.Join(src, "photos", "old", "dog.jpg"), "3")
	writeFile(t, filepath.Join(src, "docs", "cv.pdf"), "4")

	plan, err := Build(fs, src, dst, ModeDeep, KindCopy)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(plan.Operations) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(plan.Operations))
	}

	// Every reachable regular file appears exactly once, bucketed by
	// extension with nesting discarded.
	wantDest := map[string]bool{
		filepath.Join(dst, "pdf", "cv.pdf"):  false,
		filepath.Join(dst, "jpg", "cat.JPG"): false,
		filepath.Join(dst, "jpg", "dog.jpg"): false,
		filepath.Join(dst, "txt", "top.txt"): false,
	}
	for _, op := range plan.Operations {
		seen, ok := wantDest[op.Dest]
		if !ok {
			t.Errorf("unexpected destination %q", op.Dest)
			continue
		}
		if seen {
			t.Errorf("destination %q planned twice", op.Dest)
		}
		wantDest[op.Dest] = true
	}
	for dest, seen := range wantDest {
		if !seen {
			t.Errorf("destination %q missing from plan", dest)
		}
	}
}

func TestBuild_Deep_Deterministic(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "z.txt"), "z")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "mid", "m.txt"), "m")

	first, err := Build(fs, src, dst, ModeDeep, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	second, err := Build(fs, src, dst, ModeDeep, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	firstPaths := destPaths(first)
	secondPaths := destPaths(second)
	if len(firstPaths) != len(secondPaths) {
		t.Fatalf("runs produced different operation counts")
	}
	for i := range firstPaths {
		if firstPaths[i] != secondPaths[i] {
			t.Errorf("operation %d differs between runs: %q vs %q", i, firstPaths[i], secondPaths[i])
		}
	}

	// Lexicographic: a.txt before mid/m.txt before z.txt.
	wantOrder := []string{
		filepath.Join(src, "a.txt"),
		filepath.Join(src, "mid", "m.txt"),
		filepath.Join(src, "z.txt"),
	}
	for i, op := range first.Operations {
		if op.Source != wantOrder[i] {
			t.Errorf("operation %d source = %q, want %q", i, op.Source, wantOrder[i])
		}
	}
}

func TestBuild_Freeze(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "loose.txt"), "loose")
	writeFile(t, filepath.Join(src, "project", "main.go"), "package main")
	writeFile(t, filepath.Join(src, "project", "sub", "util.go"), "package sub")

	plan, err := Build(fs, src, dst, ModeFreeze, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var files, subtrees int
	for _, op := range plan.Operations {
		if op.Subtree {
			subtrees++
			want := filepath.Join(dst, FoldersDir, "project")
			if op.Dest != want {
				t.Errorf("subtree dest = %q, want %q", op.Dest, want)
			}
		} else {
			files++
		}
	}
	if files != 1 || subtrees != 1 {
		t.Errorf("expected 1 file + 1 subtree operation, got %d + %d", files, subtrees)
	}
}

func TestBuild_SkipsSymlinks(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "real.txt"), "real")
	if err := os.Symlink(filepath.Join(src, "real.txt"), filepath.Join(src, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	plan, err := Build(fs, src, dst, ModeFlat, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(plan.Operations) != 1 {
		t.Errorf("expected 1 operation, got %d", len(plan.Operations))
	}
	if len(plan.Skipped) != 1 {
		t.Fatalf("expected 1 skip, got %d", len(plan.Skipped))
	}
	if plan.Skipped[0].Reason != SkipSymlink {
		t.Errorf("skip reason = %q, want %q", plan.Skipped[0].Reason, SkipSymlink)
	}
}

func TestBuild_ExcludesDestinationInsideSource(t *testing.T) {
	fs := fsops.NewRealFS()

	for _, mode := range []string{ModeFlat, ModeDeep, ModeFreeze} {
		t.Run(mode, func(t *testing.T) {
			src := t.TempDir()
			dst := filepath.Join(src, "sorted")
			writeFile(t, filepath.Join(src, "a.txt"), "a")
			writeFile(t, filepath.Join(dst, "txt", "previous.txt"), "old")

			plan, err := Build(fs, src, dst, mode, KindMove)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			for _, op := range plan.Operations {
				if isWithin(dst, op.Source) {
					t.Errorf("%s mode planned a file inside the destination: %s", mode, op.Source)
				}
			}
			var skipped bool
			for _, skip := range plan.Skipped {
				if skip.Path == dst && skip.Reason == SkipDestination {
					skipped = true
				}
			}
			if !skipped {
				t.Error("destination root not recorded as skipped")
			}
		})
	}
}

func TestPlan_TotalBytes(t *testing.T) {
	fs := fsops.NewRealFS()
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.txt"), "aaaa")
	writeFile(t, filepath.Join(src, "b.txt"), "bb")

	plan, err := Build(fs, src, dst, ModeFlat, KindMove)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if plan.TotalBytes != 6 {
		t.Errorf("TotalBytes = %d, want 6", plan.TotalBytes)
	}
}

package fsops

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestRealFS_CopyFile(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "hello world")

	// Backdate the source so time preservation is observable.
	past := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatalf("failed to set source times: %v", err)
	}

	if err := fs.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("destination content = %q, want %q", data, "hello world")
	}

	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("failed to stat destination: %v", err)
	}
	if !dstInfo.ModTime().Truncate(time.Second).Equal(past) {
		t.Errorf("destination mtime = %v, want %v", dstInfo.ModTime(), past)
	}

	// Source must be untouched.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source vanished after copy: %v", err)
	}
}

func TestRealFS_CopyFile_RejectsDirectory(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	if err := fs.CopyFile(dir, filepath.Join(dir, "out")); err == nil {
		t.Error("expected error when copying a directory as a file")
	}
}

func TestRealFS_CopyTree(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "nested", "b.txt"), "b")
	writeFile(t, filepath.Join(src, "nested", "deep", "c.txt"), "c")

	dst := filepath.Join(dir, "out")
	if err := fs.CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree() error: %v", err)
	}

	for _, rel := range []string{"a.txt", "nested/b.txt", "nested/deep/c.txt"} {
		path := filepath.Join(dst, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s in copied tree: %v", rel, err)
		}
	}
}

func TestRealFS_CopyTree_PreservesSymlinks(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(src, "target.txt"), "target")
	if err := os.Symlink("target.txt", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	dst := filepath.Join(dir, "out")
	if err := fs.CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree() error: %v", err)
	}

	target, err := os.Readlink(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("copied entry is not a symlink: %v", err)
	}
	if target != "target.txt" {
		t.Errorf("symlink target = %q, want %q", target, "target.txt")
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	path := filepath.Join(dir, "sub", "report.json")
	if err := fs.AtomicWrite(path, []byte(`{"ok":true}`), 0644); err != nil {
		t.Fatalf("AtomicWrite() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("written content = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after atomic write, got %d", len(entries))
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if exists {
		t.Error("expected missing path to not exist")
	}

	path := filepath.Join(dir, "present")
	writeFile(t, path, "x")

	exists, err = fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if !exists {
		t.Error("expected present path to exist")
	}
}

func TestRealFS_ReadDir_Sorted(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	for _, name := range []string{"zebra.txt", "apple.txt", "mango.txt"} {
		writeFile(t, filepath.Join(dir, name), name)
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}

	want := []string{"apple.txt", "mango.txt", "zebra.txt"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, entry := range entries {
		if entry.Name() != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entry.Name(), want[i])
		}
	}
}

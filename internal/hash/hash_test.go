package hash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSHA256Hasher_HashFile(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewSHA256Hasher()

	t.Run("deterministic for same file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "test.txt")
		if err := os.WriteFile(testFile, []byte("hello world"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		hash1, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		hash2, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed on second call: %v", err)
		}
		if hash1 == "" || hash1 != hash2 {
			t.Errorf("HashFile inconsistent: got %s and %s", hash1, hash2)
		}
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		file1 := filepath.Join(tmpDir, "file1.txt")
		file2 := filepath.Join(tmpDir, "file2.txt")
		if err := os.WriteFile(file1, []byte("content A"), 0644); err != nil {
			t.Fatalf("failed to write file1: %v", err)
		}
		if err := os.WriteFile(file2, []byte("content B"), 0644); err != nil {
			t.Fatalf("failed to write file2: %v", err)
		}

		hash1, _ := hasher.HashFile(file1)
		hash2, _ := hasher.HashFile(file2)
		if hash1 == hash2 {
			t.Error("different files produced same hash")
		}
	})

	t.Run("empty file hashes to known value", func(t *testing.T) {
		emptyFile := filepath.Join(tmpDir, "empty.txt")
		if err := os.WriteFile(emptyFile, []byte{}, 0644); err != nil {
			t.Fatalf("failed to write empty file: %v", err)
		}

		hash, err := hasher.HashFile(emptyFile)
		if err != nil {
			t.Fatalf("HashFile failed for empty file: %v", err)
		}
		want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if hash != want {
			t.Errorf("empty file hash = %s, want %s", hash, want)
		}
	})

	t.Run("non-existent file returns error", func(t *testing.T) {
		if _, err := hasher.HashFile(filepath.Join(tmpDir, "missing.txt")); err == nil {
			t.Error("expected error for non-existent file, got nil")
		}
	})
}

func TestEqual(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewSHA256Hasher()

	same1 := filepath.Join(tmpDir, "same1.bin")
	same2 := filepath.Join(tmpDir, "same2.bin")
	other := filepath.Join(tmpDir, "other.bin")
	for path, content := range map[string]string{
		same1: "identical payload",
		same2: "identical payload",
		other: "something else",
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	equal, err := Equal(hasher, same1, same2)
	if err != nil {
		t.Fatalf("Equal() error: %v", err)
	}
	if !equal {
		t.Error("expected identical files to compare equal")
	}

	equal, err = Equal(hasher, same1, other)
	if err != nil {
		t.Fatalf("Equal() error: %v", err)
	}
	if equal {
		t.Error("expected differing files to compare unequal")
	}

	if _, err := Equal(hasher, same1, filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error when one side is missing")
	}
}

func TestFakeHasher(t *testing.T) {
	hasher := NewFakeHasher()

	hash, err := hasher.HashFile("/some/path")
	if err != nil {
		t.Errorf("FakeHasher should not return error, got: %v", err)
	}
	if hash != "fakehash" {
		t.Errorf("expected default hash 'fakehash', got: %s", hash)
	}

	hasher.SetHash("/test/file.txt", "custom-hash-123")
	hash, _ = hasher.HashFile("/test/file.txt")
	if hash != "custom-hash-123" {
		t.Errorf("expected configured hash, got: %s", hash)
	}
}

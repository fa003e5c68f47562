package oma

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteReadFile(t *testing.T) {
	rec := sampleRecord()
	path := filepath.Join(t.TempDir(), "scan.oma")

	if err := WriteFile(path, rec); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.oma"))
	if err == nil {
		t.Fatal("want an error for a missing file")
	}

	// A disk error is neither a format nor a truncation failure; callers
	// rely on the distinction to report it differently.
	if errors.Is(err, ErrBadMagic) || IsTruncated(err) {
		t.Errorf("missing file misclassified: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("underlying cause lost: %v", err)
	}
}

func TestReadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.oma")
	if err := os.WriteFile(path, []byte("not an oma file at all"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFile(path)
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic through the wrap", err)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("pass\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("jobs/etl.py")
	mustWrite("jobs/nested/clean.py")
	mustWrite("jobs/notes.md")
	mustWrite("__pycache__/etl.cpython-311.pyc")
	mustWrite(".venv/lib/site.py")

	files, err := discoverFiles([]string{dir}, []string{"__pycache__", ".venv"})
	if err != nil {
		t.Fatalf("discoverFiles() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("discoverFiles() = %v, want 2 python files", files)
	}
	for _, f := range files {
		if filepath.Ext(f) != ".py" {
			t.Errorf("non-python file discovered: %s", f)
		}
	}
}

func TestDiscoverFilesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.py")
	if err := os.WriteFile(path, []byte("pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := discoverFiles([]string{path}, nil)
	if err != nil {
		t.Fatalf("discoverFiles() error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("discoverFiles() = %v, want [%s]", files, path)
	}
}

func TestDiscoverFilesMissingPath(t *testing.T) {
	if _, err := discoverFiles([]string{"/does/not/exist"}, nil); err == nil {
		t.Error("discoverFiles() should fail on a missing path")
	}
}

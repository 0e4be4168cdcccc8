package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenLogCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sword-rain.log")

	w, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog failed: %v", err)
	}
	if _, err := w.Write([]byte("Test log message\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	w.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected log file to be created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestOpenLogDiscard(t *testing.T) {
	w, err := openLog("-")
	if err != nil {
		t.Fatalf("openLog failed: %v", err)
	}
	if n, err := w.Write([]byte("dropped")); err != nil || n != 7 {
		t.Errorf("Expected discard write of 7, got %d %v", n, err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

package kv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, ok, _ := s.Get("missing"); ok {
		t.Error("Get on empty store should report not found")
	}

	if err := s.Set("queue", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get("queue")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"1"}]` {
		t.Errorf("unexpected value %s", v)
	}

	if err := s.Delete("queue"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get("queue"); ok {
		t.Error("value should be gone after Delete")
	}

	// Deleting a missing key is a no-op.
	if err := s.Delete("queue"); err != nil {
		t.Errorf("deleting missing key should not error, got %v", err)
	}
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	s, _ := Open(t.TempDir())
	if err := s.Set("k", []byte(`{broken`)); err == nil {
		t.Error("expected error for invalid JSON value")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, _ := Open(dir)
	if err := s.Set("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Simulated process restart: a fresh Store over the same directory.
	s2, _ := Open(dir)
	v, ok, err := s2.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
	}
	if string(v) != `"v"` {
		t.Errorf("unexpected value after reopen: %s", v)
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := Open(dir)
	if _, ok, err := s.Get("k"); ok || err != nil {
		t.Errorf("corrupt file should read as empty store, ok=%v err=%v", ok, err)
	}
}

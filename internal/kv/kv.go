// Package kv provides a small durable key-value blob store backed by a
// single JSON file. Writes use the temp-file, fsync, rename pattern so a
// crash mid-write never corrupts existing state.
package kv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "kv.json"

// Store is a file-backed map of string keys to opaque JSON blobs. The file
// is read lazily on first access and cached; all mutations go through the
// in-memory copy followed by a full rewrite of the file.
type Store struct {
	mu     sync.Mutex
	path   string
	loaded bool
	data   map[string]json.RawMessage
}

// Open returns a Store rooted at dir. The directory is created if missing;
// the backing file is created on first write.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating kv dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// Get returns the blob stored under key and whether it exists.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, false, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

// Set stores the blob under key and persists. The in-memory map is only
// updated once the file write succeeds.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	prev, had := s.data[key]
	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	s.data[key] = cp
	if err := s.persist(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key and persists. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.persist(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// load reads the backing file once. A missing file means an empty store; a
// malformed file is treated as empty rather than fatal, since the store
// holds replayable state only.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	s.data = make(map[string]json.RawMessage)
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &s.data); err != nil {
			s.data = make(map[string]json.RawMessage)
		}
	}
	s.loaded = true
	return nil
}

func (s *Store) persist() error {
	b, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("marshaling kv state: %w", err)
	}
	return WriteFileAtomic(s.path, b)
}

// WriteFileAtomic writes data to path via a temp file in the same
// directory, fsyncs, and renames into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

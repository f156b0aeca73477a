// pkg/kvstore/file.go
package kvstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the default Store backend: a single JSON file holding a flat
// key/value map, rewritten and fsynced on every mutation. It is the Go
// analogue of the browser's local storage the dashboard originally relied on.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	data map[string]string
	path string
}

// OpenFileStore opens (or creates) the store file at path. A missing or
// malformed file starts the store empty rather than failing: persisted
// local state is best-effort and carries no schema version.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: create dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open %s: %w", path, err)
	}
	s := &FileStore{file: f, path: path}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("kvstore: stat %s: %w", s.path, err)
	}
	s.data = map[string]string{}
	if info.Size() == 0 {
		return nil
	}
	dec := json.NewDecoder(s.file)
	var data map[string]string
	if err := dec.Decode(&data); err != nil {
		// Unreadable state is discarded, not fatal.
		return nil
	}
	s.data = data
	return nil
}

// Get returns the value for key, or ErrNotFound.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key and flushes to disk before returning.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flushLocked()
}

// Delete removes key and flushes to disk. Deleting a missing key is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

// Close closes the underlying file.
func (s *FileStore) Close() error { return s.file.Close() }

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("kvstore: seek %s: %w", s.path, err)
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.data); err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", s.path, err)
	}
	// truncate in case new content is shorter
	pos, _ := s.file.Seek(0, io.SeekCurrent)
	if err := s.file.Truncate(pos); err != nil {
		return fmt.Errorf("kvstore: truncate %s: %w", s.path, err)
	}
	return s.file.Sync()
}

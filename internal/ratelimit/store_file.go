package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the rate-limit mapping in a single JSON file. It suits
// single-instance deployments; use RedisStore when multiple instances share
// the limit.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the mapping from disk. A missing or unreadable file yields an
// empty mapping so a corrupted state file resets the window instead of
// blocking submissions.
func (s *FileStore) Load(ctx context.Context) (map[string]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	entries := map[string]int64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]int64{}, nil
	}
	return entries, nil
}

// Save rewrites the mapping file. The new contents are written to a
// temporary file and renamed into place, so a crash mid-write never leaves a
// truncated mapping behind.
func (s *FileStore) Save(ctx context.Context, entries map[string]int64) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode rate limit entries: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

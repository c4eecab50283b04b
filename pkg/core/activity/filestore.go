package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// FileStore persists the activity log as a single JSON file, read and written
// whole. There is no partial update; the in-memory log is the source of truth.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole log. A missing file is an empty log, not an error.
func (s *FileStore) Load() ([]model.ActivityEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read activity log: %w", err)
	}

	var entries []model.ActivityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse activity log: %w", err)
	}
	return entries, nil
}

// Save overwrites the whole log
func (s *FileStore) Save(entries []model.ActivityEntry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create activity log directory: %w", err)
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode activity log: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}

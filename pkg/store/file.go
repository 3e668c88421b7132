package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/permgroup/pkg/errors"
)

// FileStore keeps one JSON file per record in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store in baseDir.
// If baseDir is empty, defaults to ~/.config/permgroup/groups/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "permgroup", "groups")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(id string) (string, error) {
	if !ValidID(id) {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid group id %q", id)
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.recordPath(id)
	if err != nil {
		return nil, err
	}
	return readRecord(path)
}

func readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(strings.TrimSuffix(filepath.Base(path), ".json"))
		}
		return nil, storageErr(err, "read record file")
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageErr(err, "parse record %s", path)
	}
	return &rec, nil
}

func (s *FileStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(rec.ID)
	if err != nil {
		return err
	}
	stamp(rec)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return storageErr(err, "marshal record")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return storageErr(err, "write record file")
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return storageErr(err, "remove record file")
	}
	return nil
}

func (s *FileStore) List(context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, storageErr(err, "read store dir")
	}
	var out []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rec, err := readRecord(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the record files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps one JSON file per record.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store. If baseDir is empty it defaults to
// $XDG_STATE_HOME/typst/history or ~/.local/state/typst/history.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func defaultDir() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "typst", "history"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "typst", "history"), nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Append(ctx context.Context, rec Record) error {
	normalize(&rec)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0600); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (s *FileStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if n := limitOrDefault(limit); len(records) > n {
		records = records[:n]
	}
	return records, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for record files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

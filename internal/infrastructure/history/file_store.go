package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// FileStore appends release records to a jsonl file. It backs the SQLite
// store when the database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a history store at the given path; empty defaults to
// ~/.gitgo/history/history.jsonl.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(userHome(), ".gitgo", "history", "history.jsonl")
	}
	return &FileStore{path: path}
}

// Save implements ports.ReleaseHistory.
func (f *FileStore) Save(record domain.ReleaseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Records loads release entries, newest first (best-effort).
func (f *FileStore) Records(limit int) ([]domain.ReleaseRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.ReleaseRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.ReleaseRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	// Appended oldest-first on disk.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.ReleaseHistory = (*FileStore)(nil)

// Package history persists completed release runs in a local SQLite
// database, with a JSONL file fallback when the database cannot be opened.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// SQLiteStore persists release history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the history database. An empty path
// defaults to ~/.gitgo/history/history.db.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(userHome(), ".gitgo", "history", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		// fallback to file store
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS releases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		version TEXT,
		summary TEXT,
		source TEXT,
		model TEXT,
		file_count INTEGER,
		staged INTEGER,
		tagged INTEGER,
		committed INTEGER,
		pushed INTEGER,
		error TEXT,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.ReleaseRecord) error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO releases
		(timestamp, version, summary, source, model, file_count, staged, tagged, committed, pushed, error, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339),
		record.Version,
		record.Summary,
		record.Source,
		record.Model,
		record.FileCount,
		boolToInt(record.Staged),
		boolToInt(record.Tagged),
		boolToInt(record.Committed),
		boolToInt(record.Pushed),
		record.ErrorText,
		record.DurationMS,
	)
	return err
}

// Records returns the most recent release entries, newest first.
func (s *SQLiteStore) Records(limit int) ([]domain.ReleaseRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Records(limit)
	}
	builder := strings.Builder{}
	builder.WriteString(`SELECT timestamp, version, summary, source, model, file_count,
		staged, tagged, committed, pushed, error, duration_ms FROM releases ORDER BY datetime(timestamp) DESC`)
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.ReleaseRecord
	for rows.Next() {
		var rec domain.ReleaseRecord
		var ts string
		var staged, tagged, committed, pushed int
		if err := rows.Scan(&ts, &rec.Version, &rec.Summary, &rec.Source, &rec.Model, &rec.FileCount,
			&staged, &tagged, &committed, &pushed, &rec.ErrorText, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Staged = staged == 1
		rec.Tagged = tagged == 1
		rec.Committed = committed == 1
		rec.Pushed = pushed == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fallbackPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".jsonl"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ReleaseHistory = (*SQLiteStore)(nil)

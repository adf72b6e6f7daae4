// Package sqlite keeps the catalog snapshot in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlabtree/internal/ports"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = "1"
	snapshotKey   = "catalog"
)

// Extensions that select the SQLite store over the JSON file store
var Extensions = []string{".db", ".sqlite", ".sqlite3"}

// SnapshotStore implements ports.SnapshotStore on a SQLite file. The
// database is opened per operation so an abandoned load never holds it.
type SnapshotStore struct {
	path string
	now  func() time.Time
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store for the database at path
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path, now: time.Now}
}

// Handles reports whether path names a SQLite database
func Handles(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Location returns the database path
func (s *SnapshotStore) Location() string {
	return s.path
}

// Read returns the stored payload. A missing database or row wraps
// fs.ErrNotExist.
func (s *SnapshotStore) Read() ([]byte, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	var payload []byte
	err := s.withDB(func(db *sql.DB) error {
		return db.QueryRow(`SELECT payload FROM snapshots WHERE key = ?`, snapshotKey).Scan(&payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no snapshot in %s: %w", s.path, fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Write replaces the stored payload in one transaction
func (s *SnapshotStore) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return s.withDB(func(db *sql.DB) error {
		tx, err := begin(db)
		if err != nil {
			return err
		}
		if err := tx.upsert(snapshotKey, data, s.now().Unix()); err != nil {
			tx.rollback()
			return err
		}
		return tx.commit()
	})
}

// Clear deletes the stored payload. A missing database is not an error.
func (s *SnapshotStore) Clear() error {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return s.withDB(func(db *sql.DB) error {
		_, err := db.Exec(`DELETE FROM snapshots WHERE key = ?`, snapshotKey)
		return err
	})
}

// WrittenAt returns when the payload was last written. A missing database
// wraps fs.ErrNotExist and is not created.
func (s *SnapshotStore) WrittenAt() (time.Time, error) {
	if _, err := os.Stat(s.path); err != nil {
		return time.Time{}, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	var secs int64
	err := s.withDB(func(db *sql.DB) error {
		return db.QueryRow(`SELECT written_at FROM snapshots WHERE key = ?`, snapshotKey).Scan(&secs)
	})
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}

func (s *SnapshotStore) withDB(fn func(db *sql.DB) error) error {
	db, err := open(s.path)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			written_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	var version string
	err = db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to update metadata: %w", err)
		}
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	case version != schemaVersion:
		db.Close()
		return nil, fmt.Errorf("unsupported cache schema version %q", version)
	}

	return db, nil
}

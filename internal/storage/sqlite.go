package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteKV stores keys in a single kv table.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. An existing file
// that is not a usable database is renamed aside and a new one created.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	kv, err := openSQLite(path)
	if err == nil {
		return kv, nil
	}
	if !isNotADatabase(err) {
		return nil, err
	}
	if _, qerr := quarantine(path, orDiscard(logger), err); qerr != nil {
		return nil, qerr
	}
	return openSQLite(path)
}

// isNotADatabase reports whether err means the file at the store path is
// not an SQLite database. A locked or unreadable database is not.
func isNotADatabase(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code()&0xff == sqlite3.SQLITE_NOTADB
	}
	return strings.Contains(err.Error(), "file is not a database")
}

func openSQLite(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	kv := &SQLiteKV{db: db}
	if err := kv.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return kv, nil
}

func (s *SQLiteKV) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`)
	return err
}

func (s *SQLiteKV) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteKV) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

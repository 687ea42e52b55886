// Package storage persists the board to a local key-value store.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned by KV.Get for a key that was never set.
var ErrNotFound = errors.New("storage: key not found")

// KV is a string-keyed blob store, the local equivalent of a browser's
// localStorage.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the KV store at path. BackendAuto picks SQLite for .db,
// .sqlite and .sqlite3 files and the JSON file store otherwise. A store
// file that cannot be read as its backend is moved aside and replaced by
// an empty one; logger may be nil.
func Open(backend, path string, logger *slog.Logger) (KV, error) {
	if backend == "" || backend == BackendAuto {
		backend = backendFor(path)
	}
	switch backend {
	case BackendJSON:
		return OpenFile(path, logger)
	case BackendSQLite:
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func backendFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendJSON
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// quarantine renames a store file that could not be read to
// <path>.corrupt-<timestamp> and returns the new name.
func quarantine(path string, logger *slog.Logger, cause error) (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405.000000000"))
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("move corrupt store aside: %w", err)
	}
	logger.Warn("store unreadable, starting empty", "path", path, "backup", backup, "error", cause)
	return backup, nil
}

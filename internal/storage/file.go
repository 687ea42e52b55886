package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const tempFilePrefix = ".stickies-tmp-"

// FileKV keeps every key in one JSON object on disk. Values are stored as
// strings, the way localStorage holds them.
type FileKV struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFile loads the store at path, creating its directory if needed. A
// missing file is an empty store; the file is only written on Set. A file
// that is not a JSON object is renamed aside and the store starts empty.
func OpenFile(path string, logger *slog.Logger) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	kv := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv.values); err != nil {
		if _, qerr := quarantine(path, orDiscard(logger), err); qerr != nil {
			return nil, qerr
		}
		kv.values = make(map[string]string)
	}
	return kv, nil
}

func (f *FileKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Set stores value under key and rewrites the file atomically.
func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = string(value)

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err == nil {
		err = writeFileAtomic(f.path, data, 0644)
	}
	if err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *FileKV) Close() error {
	return nil
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over filename, so readers never see a partial store.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

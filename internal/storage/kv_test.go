package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	file, err := Open(BackendAuto, filepath.Join(dir, "board.json"), nil)
	require.NoError(t, err)
	db, err := Open(BackendAuto, filepath.Join(dir, "board.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		file.Close()
		db.Close()
	})
	return map[string]KV{"json": file, "sqlite": db}
}

func TestKV_GetSet(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set("k", []byte("v1")))
			require.NoError(t, kv.Set("k", []byte("v2")))

			got, err := kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))
		})
	}
}

func TestOpen_PicksBackend(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(BackendAuto, filepath.Join(dir, "notes.sqlite"), nil)
	require.NoError(t, err)
	defer kv.Close()
	assert.IsType(t, &SQLiteKV{}, kv)

	kv2, err := Open("", filepath.Join(dir, "notes.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv2)

	_, err = Open("redis", filepath.Join(dir, "x"), nil)
	assert.Error(t, err)
}

func TestFileKV_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.json")

	kv, err := OpenFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, kv.Set(NotesKey, []byte(`[]`)))
	require.NoError(t, kv.Set("other", []byte("x")))

	reopened, err := OpenFile(path, nil)
	require.NoError(t, err)
	got, err := reopened.Get(NotesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileKV_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	kv, err := OpenFile(path, nil)
	require.NoError(t, err)

	_, err = kv.Get(NotesKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoFileExists(t, path)

	backups, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "corrupt data is kept aside")

	require.NoError(t, kv.Set(NotesKey, []byte(`[]`)))
	assert.FileExists(t, path)
}

func TestSQLiteKV_NotADatabaseStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	garbage := []byte(strings.Repeat("this is not a sqlite database. ", 64))
	require.NoError(t, os.WriteFile(path, garbage, 0644))

	kv, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(NotesKey)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, kv.Set(NotesKey, []byte(`[]`)))

	backups, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, garbage, data)
}

func TestSQLiteKV_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")

	kv, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	require.NoError(t, kv.Set(NotesKey, []byte(`[{"id":"a"}]`)))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(NotesKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
}

func TestIsNotADatabase(t *testing.T) {
	assert.True(t, isNotADatabase(errors.New("init schema: file is not a database (26)")))
	assert.False(t, isNotADatabase(errors.New("database is locked (5)")))
}

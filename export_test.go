package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/board"
)

func sampleNotes() []board.Note {
	return []board.Note{
		{ID: "a", Content: "Buy milk", X: 20, Y: 20},
		{ID: "b", Content: "Call mom about the weekend plans", X: 240, Y: 140, Pinned: true},
	}
}

func TestExportBoard_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")

	require.NoError(t, exportBoard(sampleNotes(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
}

func TestExportBoard_TXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")

	require.NoError(t, exportBoard(sampleNotes(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "|Buy milk")
	assert.Contains(t, text, "pinned")
	assert.Equal(t, "", strings.Split(text, "\n")[0], "margin row above the first note")
}

func TestExportBoard_Errors(t *testing.T) {
	dir := t.TempDir()

	err := exportBoard(nil, filepath.Join(dir, "empty.png"))
	assert.ErrorIs(t, err, errNothingToExport)
	assert.NoFileExists(t, filepath.Join(dir, "empty.png"))

	err = exportBoard(sampleNotes(), filepath.Join(dir, "board.gif"))
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestBounds(t *testing.T) {
	r, err := bounds(sampleNotes())
	require.NoError(t, err)
	assert.Equal(t, board.Rect{X: 0, Y: 0, W: 460, H: 260}, r)
}

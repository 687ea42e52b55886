package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"stickies/internal/board"
)

// canvasHeight is the number of screen rows showing the board, input bar
// row included.
func (m *model) canvasHeight() int {
	h := m.height - footerRows
	if h < inputBarRows {
		h = inputBarRows
	}
	return h
}

// screenToBoard converts a screen cell to board coordinates.
func (m *model) screenToBoard(col, row int) board.Point {
	return board.Point{X: m.panX + col*cellWidth, Y: m.panY + row*cellHeight}
}

// inputBarRect is where the input bar sits on the board right now. Notes
// may not be created or dropped under it.
func (m *model) inputBarRect() board.Rect {
	width := m.width
	if width < 1 {
		width = 80
	}
	return board.Rect{
		X: m.panX,
		Y: m.panY,
		W: width * cellWidth,
		H: inputBarRows * cellHeight,
	}
}

// syncLayout tells the board where the input bar currently is.
func (m *model) syncLayout() {
	m.board.SetReservedRegion(m.inputBarRect())
}

func (m *model) selectedNote() (board.Note, bool) {
	if m.selectedID == "" {
		return board.Note{}, false
	}
	n, ok := m.board.Get(m.selectedID)
	if !ok {
		m.selectedID = ""
	}
	return n, ok
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText flattens pasted text to a single input line and drops
// control characters.
func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			result.WriteRune(' ')
		case r >= 32 && r != 127:
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

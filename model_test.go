package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/board"
)

func newTestModel(t *testing.T, confirmations bool) (model, *board.Board, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	n := 0
	b := board.New(nil,
		board.WithClock(clock),
		board.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("n%d", n)
		}),
	)
	t.Cleanup(b.Close)

	config := defaultConfig()
	config.Confirmations = confirmations
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := initialModel(b, config, logger)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, b, clock
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typeNotes(m model, contents ...string) model {
	m = send(m, runes("n"))
	for _, c := range contents {
		m = send(m, runes(c), enter)
	}
	return send(m, esc)
}

func TestModel_TypeAndEnterCreatesNote(t *testing.T) {
	m, b, _ := newTestModel(t, false)

	m = send(m, runes("n"))
	require.Equal(t, ModeInput, m.mode)

	m = send(m, runes("Buy milk"), enter)

	notes := b.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Buy milk", notes[0].Content)
	assert.Equal(t, board.Point{X: 20, Y: 20}, notes[0].Position())
	assert.Empty(t, m.input.Value(), "input clears after a note is added")
	assert.Equal(t, notes[0].ID, m.selectedID)
}

func TestModel_BlankInputIsIgnored(t *testing.T) {
	m, b, _ := newTestModel(t, false)

	m = send(m, runes("n"), runes("   "), enter)

	assert.Empty(t, b.Notes())
	assert.Empty(t, m.errorMessage)
}

func TestModel_KeyboardMoveOntoNoteReverts(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A", "B")

	second, ok := b.Get("n2")
	require.True(t, ok)
	require.Equal(t, board.Point{X: 240, Y: 140}, second.Position())
	require.Equal(t, "n2", m.selectedID)

	m = send(m, runes("m"))
	require.Equal(t, ModeMove, m.mode)
	for range 10 {
		m = send(m, runes("h"))
	}
	for range 4 {
		m = send(m, runes("k"))
	}
	require.Equal(t, 140, m.moveX)
	require.Equal(t, 60, m.moveY)

	m = send(m, enter)

	second, _ = b.Get("n2")
	assert.Equal(t, board.Point{X: 240, Y: 140}, second.Position())
	assert.Equal(t, ModeNormal, m.mode)
	assert.Contains(t, m.successMessage, "taken")
}

func TestModel_KeyboardMoveToFreeSpot(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	m = send(m, runes("m"), runes("j"), runes("j"), runes("l"), enter)

	note, _ := b.Get("n1")
	assert.Equal(t, board.Point{X: 30, Y: 60}, note.Position())
}

func TestModel_MoveCancelKeepsPosition(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	m = send(m, runes("m"), runes("j"), esc)

	note, _ := b.Get("n1")
	assert.Equal(t, board.Point{X: 20, Y: 20}, note.Position())
	assert.Empty(t, m.moveID)
}

func TestModel_DeleteThenUndo(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "Buy milk")

	m = send(m, runes("d"))
	assert.Empty(t, b.Notes())
	require.Len(t, b.Pending(), 1)
	assert.Contains(t, m.renderUndoBar(), `Undo delete "Buy milk"`)

	m = send(m, runes("u"))
	require.Len(t, b.Notes(), 1)
	assert.Empty(t, b.Pending())
	assert.Equal(t, "n1", m.selectedID)
}

func TestModel_DeleteAsksForConfirmation(t *testing.T) {
	m, b, _ := newTestModel(t, true)
	m = typeNotes(m, "A")

	m = send(m, runes("d"))
	require.Equal(t, ModeConfirm, m.mode)
	assert.Len(t, b.Notes(), 1)

	m = send(m, runes("n"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, b.Notes(), 1)

	m = send(m, runes("d"), runes("y"))
	assert.Empty(t, b.Notes())
	assert.Len(t, b.Pending(), 1)
}

func TestModel_UndoAfterExpiryDoesNothing(t *testing.T) {
	m, b, clock := newTestModel(t, false)
	m = typeNotes(m, "A")
	m = send(m, runes("d"))

	clock.Advance(board.UndoWindow)
	require.Eventually(t, func() bool { return len(b.Pending()) == 0 }, time.Second, time.Millisecond)

	m = send(m, runes("u"))
	assert.Empty(t, b.Notes())
	assert.Empty(t, m.renderUndoBar())
}

func TestModel_NumberKeyUndoesThatDeletion(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A", "B")

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("d"))
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("d"))
	require.Len(t, b.Pending(), 2)
	first := b.Pending()[0].ID

	m = send(m, runes("1"))
	require.Len(t, b.Notes(), 1)
	assert.Equal(t, first, b.Notes()[0].ID)
	assert.Len(t, b.Pending(), 1)
}

func TestModel_MouseDrag(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	m = send(m,
		tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
	)
	assert.True(t, m.dragging)
	assert.Equal(t, 490, m.moveX)
	assert.Equal(t, 180, m.moveY)

	m = send(m, tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	note, _ := b.Get("n1")
	assert.Equal(t, board.Point{X: 490, Y: 180}, note.Position())
	assert.False(t, m.dragging)
}

func TestModel_MouseDropOnInputBarReverts(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	m = send(m,
		tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 40, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 40, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)

	note, _ := b.Get("n1")
	assert.Equal(t, board.Point{X: 20, Y: 20}, note.Position())
}

func TestModel_ClickUndoBar(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")
	m = send(m, runes("d"))
	require.Empty(t, b.Notes())

	m = send(m, tea.MouseMsg{X: 1, Y: m.height - footerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Len(t, b.Notes(), 1)
}

func TestModel_PinAndEdit(t *testing.T) {
	m, b, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	m = send(m, runes("p"))
	note, _ := b.Get("n1")
	assert.True(t, note.Pinned)

	m = send(m, runes("e"))
	require.Equal(t, ModeEditing, m.mode)
	m = send(m, runes("!"), tea.KeyMsg{Type: tea.KeyCtrlS})

	note, _ = b.Get("n1")
	assert.Equal(t, "A!", note.Content)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_ViewFillsScreen(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m = typeNotes(m, "Buy milk")

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, m.height)
	assert.Contains(t, m.View(), "Buy milk")
	assert.Contains(t, lines[len(lines)-1], "Mode: NORMAL")
}

func TestModel_ExportToBadDirectoryShowsError(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m = typeNotes(m, "A")

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	m.config.ExportDirectory = filepath.Join(blocker, "exports")

	m = send(m, runes("S"))
	require.Equal(t, ModeFileInput, m.mode)
	m = send(m, enter)

	assert.Equal(t, ModeFileInput, m.mode, "stays in the prompt so the name can be retried")
	assert.Contains(t, m.errorMessage, "export directory")
}

package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stickies/internal/board"
)

// undoButton is one entry of the undo bar and the columns it covers.
type undoButton struct {
	id       string
	label    string
	startCol int
	endCol   int
}

// undoButtons lays out one button per pending deletion, oldest first, as
// they appear in the undo bar.
func (m *model) undoButtons() []undoButton {
	pending := m.board.Pending()
	now := m.board.Now()

	buttons := make([]undoButton, 0, len(pending))
	col := 0
	for i, d := range pending {
		label := undoButtonStyle.Render(undoLabel(i, d, now))
		w := lipgloss.Width(label)
		buttons = append(buttons, undoButton{id: d.ID, label: label, startCol: col, endCol: col + w})
		col += w + 1
	}
	return buttons
}

func undoLabel(index int, d board.DeletedNote, now time.Time) string {
	secs := int((d.Remaining(now) + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d Undo delete %q %ds", index+1, d.Preview(undoPreviewLen), secs)
}

func (m *model) renderUndoBar() string {
	buttons := m.undoButtons()
	if len(buttons) == 0 {
		return ""
	}
	var line string
	for i, b := range buttons {
		if i > 0 {
			line += " "
		}
		line += b.label
	}
	return line
}

// undoAt handles a click on the undo bar.
func (m *model) undoAt(col int) {
	for _, b := range m.undoButtons() {
		if col >= b.startCol && col < b.endCol {
			m.undo(b.id)
			return
		}
	}
}

// undoNth restores the n-th (1-based) button of the undo bar.
func (m *model) undoNth(n int) {
	pending := m.board.Pending()
	if n < 1 || n > len(pending) {
		return
	}
	m.undo(pending[n-1].ID)
}

func (m *model) undo(id string) {
	note, ok, err := m.board.Undo(id)
	m.reportRestore(note, ok, err)
}

func (m *model) undoLatest() {
	note, ok, err := m.board.UndoLatest()
	m.reportRestore(note, ok, err)
}

func (m *model) reportRestore(note board.Note, ok bool, err error) {
	if !ok {
		return
	}
	m.selectedID = note.ID
	m.setResult(fmt.Sprintf("Restored %q", note.Preview(undoPreviewLen)), err)
}

// deleteNote soft-deletes id and starts the countdown refresh.
func (m *model) deleteNote(id string) tea.Cmd {
	note, _ := m.board.Get(id)
	ok, err := m.board.Delete(id)
	if !ok {
		return nil
	}
	if m.selectedID == id {
		m.selectedID = ""
	}
	m.setResult(fmt.Sprintf("Deleted %q, press u to undo", note.Preview(undoPreviewLen)), err)
	return m.startTicking()
}

func (m *model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

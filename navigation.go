package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stickies/internal/board"
)

// direction turns a navigation key into a cell step, doubled with shift.
func (m *model) direction(msg tea.KeyMsg) (dx, dy int, ok bool) {
	speed := 1
	switch msg.String() {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		speed = 2
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		return -speed, 0, true
	case key.Matches(msg, m.keys.Right):
		return speed, 0, true
	case key.Matches(msg, m.keys.Up):
		return 0, -speed, true
	case key.Matches(msg, m.keys.Down):
		return 0, speed, true
	}
	return 0, 0, false
}

func (m *model) handlePan(dx, dy int) {
	m.panX += dx * cellWidth
	m.panY += dy * cellHeight
	if m.panX < 0 {
		m.panX = 0
	}
	if m.panY < 0 {
		m.panY = 0
	}
	m.syncLayout()
}

// handleMoveStep nudges the note being moved. Notes stay on the board's
// positive quadrant.
func (m *model) handleMoveStep(dx, dy int) {
	m.moveX += dx * cellWidth
	m.moveY += dy * cellHeight
	if m.moveX < 0 {
		m.moveX = 0
	}
	if m.moveY < 0 {
		m.moveY = 0
	}
}

// cycleSelection selects the next (step 1) or previous (step -1) note in
// board order.
func (m *model) cycleSelection(step int) {
	notes := m.board.Notes()
	if len(notes) == 0 {
		m.selectedID = ""
		return
	}
	current := -1
	for i, n := range notes {
		if n.ID == m.selectedID {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = (current + step + len(notes)) % len(notes)
	} else if step < 0 {
		next = len(notes) - 1
	}
	m.selectedID = notes[next].ID
	m.ensureVisible(notes[next])
}

// ensureVisible pans so that n is on screen below the input bar.
func (m *model) ensureVisible(n board.Note) {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	viewW := m.width * cellWidth
	top := m.panY + inputBarRows*cellHeight
	bottom := m.panY + m.canvasHeight()*cellHeight

	switch {
	case n.X < m.panX:
		m.panX = n.X - n.X%cellWidth
	case n.X+board.NoteWidth > m.panX+viewW:
		m.panX = n.X + board.NoteWidth - viewW
		m.panX += (cellWidth - m.panX%cellWidth) % cellWidth
	}
	switch {
	case n.Y < top:
		m.panY = n.Y - inputBarRows*cellHeight
		m.panY -= ((m.panY % cellHeight) + cellHeight) % cellHeight
	case n.Y+board.NoteHeight > bottom:
		m.panY = n.Y + board.NoteHeight - m.canvasHeight()*cellHeight
		m.panY += (cellHeight - m.panY%cellHeight) % cellHeight
	}
	if m.panX < 0 {
		m.panX = 0
	}
	if m.panY < 0 {
		m.panY = 0
	}
	m.syncLayout()
}

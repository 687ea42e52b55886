package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stickies/internal/board"
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	renderWidth := m.width
	if renderWidth < 1 {
		renderWidth = 1
	}
	renderHeight := m.canvasHeight()

	highlightID, hx, hy := "", 0, 0
	if m.moveID != "" {
		highlightID, hx, hy = m.moveID, m.moveX, m.moveY
	} else if n, ok := m.board.Get(m.selectedID); ok {
		highlightID, hx, hy = n.ID, n.X, n.Y
	}
	canvas := renderBoard(m.board.Notes(), renderWidth, renderHeight, m.panX, m.panY, highlightID, hx, hy)

	// The top row of the board is covered by the input bar.
	canvas[0] = m.inputBarView(renderWidth)

	var result strings.Builder
	for _, line := range canvas {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.renderUndoBar())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) inputBarView(width int) string {
	line := m.input.View()
	if w := lipgloss.Width(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return inputBarStyle.MaxWidth(width).Render(line)
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeInput:
		status = "Mode: INPUT | Enter=add note, Ctrl+V=paste, Esc=done"
	case ModeEditing:
		text := strings.ReplaceAll(m.editor.Value(), "\n", " ")
		status = fmt.Sprintf("Mode: EDIT | Text: %s█ | Enter=newline, Ctrl+S=save, Esc=cancel",
			runewidth.Truncate(text, max(10, m.width-60), "…"))
	case ModeMove:
		status = fmt.Sprintf("Mode: MOVE | Position: (%d,%d) | hjkl/arrows=move, Enter=finish, Esc=cancel", m.moveX, m.moveY)
	case ModeFileInput:
		if m.errorMessage != "" {
			status = fmt.Sprintf("Mode: FILE | ERROR: %s | Export filename: %s█ | Enter=retry, Esc=cancel", m.errorMessage, m.filename)
		} else {
			status = fmt.Sprintf("Mode: FILE | Export filename: %s█ | .png or .txt, Enter=confirm, Esc=cancel", m.filename)
		}
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteNote:
			message = "Delete this note? (y/n)"
			if n, ok := m.board.Get(m.confirmID); ok {
				message = fmt.Sprintf("Delete %q? (y/n)", n.Preview(undoPreviewLen))
			}
		case ConfirmQuit:
			message = "Quit stickies? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status = fmt.Sprintf("Mode: %s | Notes: %d", m.modeString(), len(m.board.Notes()))
		if n, ok := m.board.Get(m.selectedID); ok {
			status += fmt.Sprintf(" | Selected: %q", n.Preview(undoPreviewLen))
			if n.Pinned {
				status += " (pinned)"
			}
		}
		if m.successMessage != "" {
			status += " | " + successStyle.Render(m.successMessage)
		}
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
		return status
	}
	return statusStyle.Render(status)
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	case ModeEditing:
		return "EDIT"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpLines() []string {
	lines := []string{
		titleStyle.Render("Stickies Help"),
		"",
	}
	for _, section := range m.keys.helpSections() {
		lines = append(lines, section.title+":")
		for _, b := range section.bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-16s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		"Mouse:",
		"  drag a note      move it; dropping on another note sends it back",
		"  click undo bar   restore that deleted note",
		"",
		fmt.Sprintf("Deleted notes can be restored for %s.", board.UndoWindow),
	)
	return lines
}

func (m model) helpHeight() int {
	return max(1, m.height-1)
}

func (m model) maxHelpScroll() int {
	return max(0, len(m.helpLines())-m.helpHeight())
}

func (m model) helpView() string {
	helpLines := m.helpLines()
	startLine := min(m.helpScroll, m.maxHelpScroll())
	endLine := min(startLine+m.helpHeight(), len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, any other key to close",
		startLine+1, endLine, len(helpLines))
	return result
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stickies/internal/board"
)

func initialModel(b *board.Board, config *Config, logger *slog.Logger) model {
	input := textinput.New()
	input.Placeholder = "Enter a note"
	input.Prompt = "> "
	input.CharLimit = 500

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.SetWidth(noteCols * 2)
	editor.SetHeight(noteRows)

	return model{
		board:  b,
		config: config,
		logger: logger,
		keys:   defaultKeyMap(),
		mode:   ModeNormal,
		input:  input,
		editor: editor,
	}
}

func (m model) Init() tea.Cmd {
	if len(m.board.Pending()) > 0 {
		return tick()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.syncLayout()
		return m, nil

	case tickMsg:
		if len(m.board.Pending()) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, tick()

	case boardChangedMsg:
		if msg.Kind == board.Expired {
			m.logger.Info("deleted note expired", "id", msg.Note.ID)
		}
		if msg.Kind == board.Deleted {
			return m, m.startTicking()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeEditing:
			return m.handleEditKey(msg)
		case ModeMove:
			return m.handleMoveKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	if r := msg.Runes; msg.Type == tea.KeyRunes && len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
		m.undoNth(int(r[0] - '0'))
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = true
		m.helpScroll = 0
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.selectedID = ""
		return m, nil
	case key.Matches(msg, m.keys.New):
		m.mode = ModeInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Next):
		m.cycleSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.cycleSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		m.undoLatest()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.mode = ModeFileInput
		m.filename = "board.png"
		return m, nil
	}

	if dx, dy, ok := m.direction(msg); ok {
		m.handlePan(dx, dy)
		return m, nil
	}

	note, ok := m.selectedNote()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEditing
		m.editor.SetValue(note.Content)
		return m, m.editor.Focus()
	case key.Matches(msg, m.keys.Pin):
		_, err := m.board.TogglePin(note.ID)
		m.setResult("", err)
	case key.Matches(msg, m.keys.Copy):
		if err := copyToClipboard(note.Content); err != nil {
			m.setResult("", fmt.Errorf("copy to clipboard: %w", err))
		} else {
			m.setResult("Copied to clipboard", nil)
		}
	case key.Matches(msg, m.keys.Move):
		m.startMove(note)
		m.mode = ModeMove
	case key.Matches(msg, m.keys.Delete):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteNote
			m.confirmID = note.ID
			return m, nil
		}
		return m, m.deleteNote(note.ID)
	}
	return m, nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.syncLayout()
		note, ok, err := m.board.Create(m.input.Value())
		if !ok {
			return m, nil
		}
		m.input.Reset()
		m.selectedID = note.ID
		m.ensureVisible(note)
		m.setResult("", err)
		return m, nil
	case key.Matches(msg, m.keys.Paste):
		text, err := readClipboardText()
		if err != nil {
			m.setResult("", fmt.Errorf("read clipboard: %w", err))
			return m, nil
		}
		m.input.SetValue(m.input.Value() + cleanClipboardText(text))
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.Blur()
		m.mode = ModeNormal
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.editor.Blur()
		m.mode = ModeNormal
		_, err := m.board.Edit(m.selectedID, m.editor.Value())
		m.setResult("", err)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endMove()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.finishMove()
		return m, nil
	}
	if dx, dy, ok := m.direction(msg); ok {
		m.handleMoveStep(dx, dy)
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteNote:
			id := m.confirmID
			m.confirmID = ""
			return m, m.deleteNote(id)
		case ConfirmOverwriteFile:
			path, err := m.config.GetExportPath(m.filename)
			if err != nil {
				m.setResult("", err)
				return m, nil
			}
			m.export(path)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmID = ""
	}
	return m, nil
}

func (m model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyEnter:
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "filename required"
			return m, nil
		}
		if filepath.Ext(m.filename) == "" {
			m.filename += ".png"
		}
		path, err := m.config.GetExportPath(m.filename)
		if err != nil {
			m.logger.Error("export failed", "error", err)
			m.errorMessage = err.Error()
			return m, nil
		}
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		m.mode = ModeNormal
		m.export(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.helpScroll < m.maxHelpScroll() {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || (m.mode != ModeNormal && m.mode != ModeMove) {
		return m, nil
	}
	p := m.screenToBoard(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == m.height-footerRows {
			m.undoAt(msg.X)
			return m, nil
		}
		if msg.Y < inputBarRows {
			m.mode = ModeInput
			return m, m.input.Focus()
		}
		note, ok := noteAt(m.board.Notes(), p)
		if !ok {
			m.selectedID = ""
			return m, nil
		}
		m.selectedID = note.ID
		m.startMove(note)
		m.dragging = true
		m.dragOffsetX = p.X - note.X
		m.dragOffsetY = p.Y - note.Y

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		m.moveX = max(0, p.X-m.dragOffsetX)
		m.moveY = max(0, p.Y-m.dragOffsetY)

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.finishMove()
	}
	return m, nil
}

func (m *model) startMove(n board.Note) {
	m.moveID = n.ID
	m.moveX, m.moveY = n.X, n.Y
	m.originalMoveX, m.originalMoveY = n.X, n.Y
}

// finishMove ends a drag and asks the board to keep the note where it was
// dropped. A drop on another note or on the input bar sends it back.
func (m *model) finishMove() {
	id := m.moveID
	to := board.Point{X: m.moveX, Y: m.moveY}
	last := board.Point{X: m.originalMoveX, Y: m.originalMoveY}
	m.endMove()

	if to == last {
		return
	}
	note, ok, err := m.board.Move(id, to, last, m.inputBarRect())
	if !ok {
		return
	}
	if err == nil && note.Position() != to {
		m.setResult("That spot is taken, note returned", nil)
		return
	}
	m.setResult("", err)
}

func (m *model) endMove() {
	m.moveID = ""
	m.dragging = false
	m.mode = ModeNormal
}

// setResult reports an operation outcome on the status line.
func (m *model) setResult(success string, err error) {
	if err != nil {
		m.logger.Error("operation failed", "error", err)
		m.errorMessage = err.Error()
		m.successMessage = ""
		return
	}
	m.errorMessage = ""
	m.successMessage = success
}

func (m *model) export(path string) {
	if err := exportBoard(m.board.Notes(), path); err != nil {
		m.setResult("", err)
		return
	}
	absPath, _ := filepath.Abs(path)
	m.setResult(fmt.Sprintf("Exported to %s", absPath), nil)
}

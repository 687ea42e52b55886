package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"stickies/internal/board"
)

type model struct {
	width      int
	height     int
	board      *board.Board
	config     *Config
	logger     *slog.Logger
	keys       keyMap
	mode       Mode
	help       bool
	helpScroll int

	input  textinput.Model
	editor textarea.Model

	selectedID string
	panX       int
	panY       int

	// A note being moved, by keyboard or mouse, is drawn at moveX/moveY
	// until the move ends. originalMoveX/Y is where it started.
	moveID        string
	moveX         int
	moveY         int
	originalMoveX int
	originalMoveY int
	dragging      bool
	dragOffsetX   int
	dragOffsetY   int

	confirmAction ConfirmAction
	confirmID     string

	filename       string
	errorMessage   string
	successMessage string
	ticking        bool
}

// boardChangedMsg carries a board change into the update loop.
type boardChangedMsg board.Change

type tickMsg struct{}

type keyMap struct {
	New     key.Binding
	Next    key.Binding
	Prev    key.Binding
	Edit    key.Binding
	Pin     key.Binding
	Copy    key.Binding
	Move    key.Binding
	Delete  key.Binding
	Undo    key.Binding
	Export  key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Save    key.Binding
	Paste   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:     key.NewBinding(key.WithKeys("n", "i"), key.WithHelp("n/i", "type a new note")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select next note")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "select previous note")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit selected note")),
		Pin:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin/unpin selected note")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy selected note to clipboard")),
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move selected note")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete selected note")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo last delete (1-9 for a specific one)")),
		Export:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export board (.png or .txt)")),
		Left:    key.NewBinding(key.WithKeys("h", "left", "H", "shift+left"), key.WithHelp("h/←", "pan or move left")),
		Right:   key.NewBinding(key.WithKeys("l", "right", "L", "shift+right"), key.WithHelp("l/→", "pan or move right")),
		Up:      key.NewBinding(key.WithKeys("k", "up", "K", "shift+up"), key.WithHelp("k/↑", "pan or move up")),
		Down:    key.NewBinding(key.WithKeys("j", "down", "J", "shift+down"), key.WithHelp("j/↓", "pan or move down")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add note / finish move")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel / clear selection")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save edit")),
		Paste:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste clipboard into input")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpSections groups bindings for the help screen.
func (k keyMap) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Notes", []key.Binding{k.New, k.Next, k.Prev, k.Edit, k.Pin, k.Copy, k.Move, k.Delete, k.Undo}},
		{"Board", []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Export}},
		{"Input", []key.Binding{k.Confirm, k.Cancel, k.Save, k.Paste}},
		{"General", []key.Binding{k.Help, k.Quit}},
	}
}

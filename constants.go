package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeEditing
	ModeMove
	ModeFileInput
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteNote ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

// Each terminal cell stands for cellWidth×cellHeight board units, so a
// 200×100 note is drawn as a 20×5 card.
const (
	cellWidth  = 10
	cellHeight = 20
)

const (
	inputBarRows = 1
	footerRows   = 2 // undo bar and status line

	undoPreviewLen = 10
	tickInterval   = 250 * time.Millisecond
)

package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"stickies/internal/board"
)

const (
	noteCols = board.NoteWidth / cellWidth
	noteRows = board.NoteHeight / cellHeight
)

// floorDiv divides rounding toward negative infinity, so notes partly
// left of or above the viewport land in the right cell.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func newGrid(width, height int) [][]rune {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}
	return grid
}

func gridLines(grid [][]rune) []string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

// renderBoard draws notes into a width×height grid whose top-left cell is
// board position (panX, panY). The note with highlightID is drawn with #
// borders at (hx, hy) instead of its stored position.
func renderBoard(notes []board.Note, width, height, panX, panY int, highlightID string, hx, hy int) []string {
	grid := newGrid(width, height)
	var highlighted *board.Note
	for i := range notes {
		n := notes[i]
		if n.ID == highlightID {
			n.X, n.Y = hx, hy
			highlighted = &n
			continue
		}
		drawNote(grid, n, false, floorDiv(n.X-panX, cellWidth), floorDiv(n.Y-panY, cellHeight))
	}
	// Drawn last so a dragged note stays visible over the others.
	if highlighted != nil {
		drawNote(grid, *highlighted, true, floorDiv(highlighted.X-panX, cellWidth), floorDiv(highlighted.Y-panY, cellHeight))
	}
	return gridLines(grid)
}

func drawNote(grid [][]rune, note board.Note, isSelected bool, noteX, noteY int) {
	var corner, horizontal, vertical rune
	if isSelected {
		corner = '#'
		horizontal = '#'
		vertical = '#'
	} else {
		corner = '+'
		horizontal = '-'
		vertical = '|'
	}

	for y := noteY; y < noteY+noteRows; y++ {
		if y < 0 || y >= len(grid) {
			continue
		}
		for x := noteX; x < noteX+noteCols; x++ {
			if x < 0 || x >= len(grid[y]) {
				continue
			}
			switch {
			case (y == noteY || y == noteY+noteRows-1) && (x == noteX || x == noteX+noteCols-1):
				grid[y][x] = corner
			case y == noteY || y == noteY+noteRows-1:
				grid[y][x] = horizontal
			case x == noteX || x == noteX+noteCols-1:
				grid[y][x] = vertical
			default:
				grid[y][x] = ' '
			}
		}
	}

	if note.Pinned {
		putText(grid, noteX+2, noteY, "pinned", noteCols-4)
	}

	for i, line := range noteLines(note.Content, noteCols-2, noteRows-2) {
		putText(grid, noteX+1, noteY+1+i, line, noteCols-2)
	}
}

// noteLines wraps content to fit a card interior, marking cut text with an
// ellipsis.
func noteLines(content string, width, rows int) []string {
	wrapped := strings.Split(wordwrap.String(content, width), "\n")
	var lines []string
	for _, line := range wrapped {
		lines = append(lines, runewidth.Truncate(line, width, "…"))
	}
	if len(lines) > rows {
		lines = lines[:rows]
		last := lines[rows-1]
		if runewidth.StringWidth(last) >= width {
			last = runewidth.Truncate(last, width-1, "")
		}
		lines[rows-1] = last + "…"
	}
	return lines
}

func putText(grid [][]rune, x, y int, text string, maxWidth int) {
	if y < 0 || y >= len(grid) {
		return
	}
	i := 0
	for _, r := range text {
		if i >= maxWidth {
			break
		}
		if cx := x + i; cx >= 0 && cx < len(grid[y]) {
			grid[y][cx] = r
		}
		i++
	}
}

// noteAt returns the topmost note containing board position p.
func noteAt(notes []board.Note, p board.Point) (board.Note, bool) {
	for i := len(notes) - 1; i >= 0; i-- {
		r := notes[i].Rect()
		if p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom() {
			return notes[i], true
		}
	}
	return board.Note{}, false
}

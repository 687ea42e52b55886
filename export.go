package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"stickies/internal/board"
)

var errNothingToExport = errors.New("nothing to export")

var (
	noteFill   = color.RGBA{R: 0xff, G: 0xf1, B: 0x76, A: 0xff}
	pinnedFill = color.RGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}
)

// exportBoard writes the board to filename, as a PNG image or as the text
// grid the terminal shows, depending on the extension.
func exportBoard(notes []board.Note, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return exportPNG(notes, filename)
	case ".txt":
		return exportTXT(notes, filename)
	default:
		return fmt.Errorf("unsupported export format %q (use .png or .txt)", filepath.Ext(filename))
	}
}

// bounds is the smallest rect holding every note, grown by Margin.
func bounds(notes []board.Note) (board.Rect, error) {
	if len(notes) == 0 {
		return board.Rect{}, errNothingToExport
	}
	minX, minY := notes[0].X, notes[0].Y
	maxX, maxY := notes[0].Rect().Right(), notes[0].Rect().Bottom()
	for _, n := range notes[1:] {
		r := n.Rect()
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}
	return board.Rect{
		X: minX - board.Margin,
		Y: minY - board.Margin,
		W: maxX - minX + 2*board.Margin,
		H: maxY - minY + 2*board.Margin,
	}, nil
}

func exportPNG(notes []board.Note, filename string) error {
	area, err := bounds(notes)
	if err != nil {
		return err
	}

	dc := gg.NewContext(area.W, area.H)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	fontSize := 12.0
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, n := range notes {
		drawNotePNG(dc, n, area, fontSize)
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

func drawNotePNG(dc *gg.Context, n board.Note, area board.Rect, lineHeight float64) {
	x := float64(n.X - area.X)
	y := float64(n.Y - area.Y)
	w := float64(board.NoteWidth)
	h := float64(board.NoteHeight)

	if n.Pinned {
		dc.SetColor(pinnedFill)
	} else {
		dc.SetColor(noteFill)
	}
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	if n.Pinned {
		dc.DrawCircle(x+w-8, y+8, 3)
		dc.Fill()
	}

	padding := 8.0
	maxLines := int((h - 2*padding) / lineHeight)
	lines := dc.WordWrap(n.Content, w-2*padding)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "…"
	}
	for i, line := range lines {
		dc.DrawString(line, x+padding, y+padding+float64(i+1)*lineHeight)
	}
}

// exportTXT writes the same card drawing the terminal uses, sized to fit
// every note.
func exportTXT(notes []board.Note, filename string) error {
	area, err := bounds(notes)
	if err != nil {
		return err
	}

	panX := floorDiv(area.X, cellWidth) * cellWidth
	panY := floorDiv(area.Y, cellHeight) * cellHeight
	width := floorDiv(area.Right()-panX+cellWidth-1, cellWidth)
	height := floorDiv(area.Bottom()-panY+cellHeight-1, cellHeight)

	rendered := renderBoard(notes, width, height, panX, panY, "", 0, 0)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range rendered {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	return nil
}

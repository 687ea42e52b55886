package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 200, H: 100}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same box", a, true},
		{"partial", Rect{X: 199, Y: 99, W: 10, H: 10}, true},
		{"touching right edge", Rect{X: 200, Y: 0, W: 200, H: 100}, false},
		{"touching bottom edge", Rect{X: 0, Y: 100, W: 200, H: 100}, false},
		{"corner touch", Rect{X: 200, Y: 100, W: 5, H: 5}, false},
		{"apart", Rect{X: 500, Y: 500, W: 5, H: 5}, false},
		{"empty rect inside", Rect{X: 50, Y: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestInitialPosition(t *testing.T) {
	t.Run("empty board starts at margin", func(t *testing.T) {
		assert.Equal(t, Point{X: 20, Y: 20}, InitialPosition(nil))
	})

	t.Run("pushes past an overlapping note", func(t *testing.T) {
		notes := []Note{{ID: "a", X: 20, Y: 20}}
		assert.Equal(t, Point{X: 240, Y: 140}, InitialPosition(notes))
	})

	t.Run("ignores notes that do not overlap the candidate", func(t *testing.T) {
		notes := []Note{{ID: "a", X: 600, Y: 600}}
		assert.Equal(t, Point{X: 20, Y: 20}, InitialPosition(notes))
	})

	t.Run("stays clear of the reserved region", func(t *testing.T) {
		bar := Rect{X: 0, Y: 0, W: 800, H: 40}
		p := InitialPosition(nil, bar)
		assert.False(t, Footprint(p).Overlaps(bar))
		assert.Equal(t, Point{X: 820, Y: 60}, p)
	})

	t.Run("rescans when a later push lands on an earlier obstacle", func(t *testing.T) {
		notes := []Note{
			{ID: "low", X: 250, Y: 150},
			{ID: "first", X: 20, Y: 20},
		}
		p := InitialPosition(notes)
		for _, n := range notes {
			assert.False(t, Footprint(p).Overlaps(n.Rect()), "overlaps %s", n.ID)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		notes := []Note{{ID: "a", X: 20, Y: 20}, {ID: "b", X: 240, Y: 140}}
		assert.Equal(t, InitialPosition(notes), InitialPosition(notes))
	})
}

func TestInitialPosition_SequenceNeverOverlaps(t *testing.T) {
	bar := Rect{X: 0, Y: 380, W: 2000, H: 40}
	var notes []Note
	for i := 0; i < 25; i++ {
		p := InitialPosition(notes, bar)
		notes = append(notes, Note{ID: fmt.Sprint(i), X: p.X, Y: p.Y})
	}

	for i, a := range notes {
		assert.False(t, a.Rect().Overlaps(bar), "note %s overlaps the bar", a.ID)
		for _, b := range notes[i+1:] {
			assert.False(t, a.Rect().Overlaps(b.Rect()), "%s overlaps %s", a.ID, b.ID)
		}
	}
}

func TestWouldCollide(t *testing.T) {
	notes := []Note{
		{ID: "a", X: 20, Y: 20},
		{ID: "b", X: 400, Y: 20},
	}
	bar := Rect{X: 0, Y: 300, W: 1000, H: 40}

	assert.True(t, WouldCollide(Point{X: 100, Y: 50}, "b", notes, bar), "hits a")
	assert.False(t, WouldCollide(Point{X: 30, Y: 30}, "a", notes, bar), "own box is excluded")
	assert.False(t, WouldCollide(Point{X: 220, Y: 20}, "b", notes, bar), "touching edge")
	assert.True(t, WouldCollide(Point{X: 20, Y: 250}, "a", notes, bar), "hits the bar")
	assert.False(t, WouldCollide(Point{X: 20, Y: 200}, "a", notes, bar), "touching the bar")
	assert.False(t, WouldCollide(Point{X: 20, Y: 250}, "a", notes, Rect{}), "no reserved region")
}

package board

const (
	// NoteWidth and NoteHeight are the fixed footprint of every note.
	NoteWidth  = 200
	NoteHeight = 100

	// Margin is the gap kept around automatically placed notes.
	Margin = 20
)

type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle in board coordinates.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and o share positive area on both axes.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Footprint returns the rectangle a note occupies at p.
func Footprint(p Point) Rect {
	return Rect{X: p.X, Y: p.Y, W: NoteWidth, H: NoteHeight}
}

package board

import "strings"

// Note is a single card on the board. Position is the top-left corner.
type Note struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Pinned  bool   `json:"pinned,omitempty"`
}

func (n Note) Position() Point {
	return Point{X: n.X, Y: n.Y}
}

func (n Note) Rect() Rect {
	return Footprint(n.Position())
}

// Preview returns the first limit runes of the content, with an ellipsis
// when it was cut.
func (n Note) Preview(limit int) string {
	text := strings.Join(strings.Fields(n.Content), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

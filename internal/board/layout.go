package board

// InitialPosition picks where a new note goes. Starting at (Margin, Margin),
// every obstacle that a note at the candidate would overlap pushes the
// candidate below its bottom edge and right of its right edge. Notes are
// scanned in order, then the reserved regions, and the scan repeats until a
// pass moves nothing. The candidate only ever moves down and right, past
// each obstacle it hits, so every obstacle pushes at most once.
//
// The result is deterministic for a given input order. It is a push-down
// heuristic, not a packer: gaps left by dragged notes are never reused.
func InitialPosition(notes []Note, reserved ...Rect) Point {
	p := Point{X: Margin, Y: Margin}

	obstacles := make([]Rect, 0, len(notes)+len(reserved))
	for _, n := range notes {
		obstacles = append(obstacles, n.Rect())
	}
	obstacles = append(obstacles, reserved...)

	for moved := true; moved; {
		moved = false
		for _, r := range obstacles {
			if !Footprint(p).Overlaps(r) {
				continue
			}
			if p.Y < r.Bottom() {
				p.Y = r.Bottom() + Margin
			}
			if p.X < r.Right() {
				p.X = r.Right() + Margin
			}
			moved = true
		}
	}
	return p
}

// WouldCollide reports whether a note placed at p would overlap any note
// other than excludeID, or the reserved region.
func WouldCollide(p Point, excludeID string, notes []Note, reserved Rect) bool {
	box := Footprint(p)
	if box.Overlaps(reserved) {
		return true
	}
	for _, n := range notes {
		if n.ID == excludeID {
			continue
		}
		if box.Overlaps(n.Rect()) {
			return true
		}
	}
	return false
}

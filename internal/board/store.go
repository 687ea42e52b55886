package board

import (
	"slices"
	"strings"
)

// Store is the ordered set of active notes. Mutations never write into a
// slice that has been handed out: each one builds a fresh slice.
type Store struct {
	notes []Note
}

// NewStore returns a store seeded with notes, in order.
func NewStore(notes []Note) *Store {
	return &Store{notes: slices.Clone(notes)}
}

// Notes returns a copy of the active notes.
func (s *Store) Notes() []Note {
	return slices.Clone(s.notes)
}

func (s *Store) Len() int {
	return len(s.notes)
}

func (s *Store) Get(id string) (Note, bool) {
	i := s.index(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Create appends a note holding content at the position chosen by
// InitialPosition. Blank content is rejected.
func (s *Store) Create(id, content string, reserved ...Rect) (Note, bool) {
	if strings.TrimSpace(content) == "" {
		return Note{}, false
	}
	p := InitialPosition(s.notes, reserved...)
	note := Note{ID: id, Content: content, X: p.X, Y: p.Y}
	s.notes = append(slices.Clip(s.notes), note)
	return note, true
}

func (s *Store) Edit(id, content string) bool {
	return s.update(id, func(n *Note) { n.Content = content })
}

func (s *Store) TogglePin(id string) bool {
	return s.update(id, func(n *Note) { n.Pinned = !n.Pinned })
}

// Move places the note at to, or back at last when to would collide.
// The returned note carries the position that was kept.
func (s *Store) Move(id string, to, last Point, reserved Rect) (Note, bool) {
	dest := to
	if WouldCollide(to, id, s.notes, reserved) {
		dest = last
	}
	var moved Note
	ok := s.update(id, func(n *Note) {
		n.X, n.Y = dest.X, dest.Y
		moved = *n
	})
	return moved, ok
}

func (s *Store) Remove(id string) (Note, bool) {
	i := s.index(id)
	if i < 0 {
		return Note{}, false
	}
	note := s.notes[i]
	s.notes = slices.Concat(s.notes[:i], s.notes[i+1:])
	return note, true
}

// Restore appends a previously removed note with its id, content and
// position. The pin flag is not carried back.
func (s *Store) Restore(n Note) {
	n.Pinned = false
	s.notes = append(slices.Clip(s.notes), n)
}

func (s *Store) update(id string, fn func(*Note)) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	next := slices.Clone(s.notes)
	fn(&next[i])
	s.notes = next
	return true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

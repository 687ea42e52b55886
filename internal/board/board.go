// Package board holds the sticky-notes state: the active notes, the
// soft-deleted notes waiting out their undo window, and the placement and
// collision rules that keep notes from overlapping.
package board

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Saver mirrors the active notes somewhere durable. It is called with the
// full active set after every committed change.
type Saver interface {
	Save(notes []Note) error
}

// ChangeKind says what happened to a note.
type ChangeKind int

const (
	Created ChangeKind = iota
	Edited
	Pinned
	Moved
	Reverted
	Deleted
	Restored
	Expired
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Edited:
		return "edited"
	case Pinned:
		return "pinned"
	case Moved:
		return "moved"
	case Reverted:
		return "reverted"
	case Deleted:
		return "deleted"
	case Restored:
		return "restored"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Change is published to subscribers after a note changes.
type Change struct {
	Kind ChangeKind
	Note Note
}

type options struct {
	clock  clockwork.Clock
	logger *slog.Logger
	newID  func() string
	notes  []Note
}

// Option configures a Board.
type Option func(*options)

// WithClock sets the clock driving undo countdowns.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIDFunc replaces the UUIDv7 id generator.
func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithNotes seeds the board, typically with what storage loaded.
func WithNotes(notes []Note) Option {
	return func(o *options) {
		o.notes = notes
	}
}

// Board is the application state container. It owns the Store and the
// Trash, persists the active set after each change and notifies
// subscribers. Intents are serialized with countdown callbacks, which run
// on their own goroutines.
type Board struct {
	mu       sync.Mutex
	store    *Store
	trash    *Trash
	saver    Saver
	clock    clockwork.Clock
	logger   *slog.Logger
	newID    func() string
	reserved Rect

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Change)
}

// New creates a board that writes through saver. A nil saver disables
// persistence.
func New(saver Saver, opts ...Option) *Board {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.newID == nil {
		o.newID = newUUID
	}

	b := &Board{
		store:  NewStore(o.notes),
		saver:  saver,
		clock:  o.clock,
		logger: o.logger,
		newID:  o.newID,
	}
	b.trash = NewTrash(o.clock, b.expired)
	return b
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SetReservedRegion records the area new notes must stay clear of, usually
// the input bar as currently laid out.
func (b *Board) SetReservedRegion(r Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reserved = r
}

func (b *Board) ReservedRegion() Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reserved
}

// Notes returns the active notes in creation order.
func (b *Board) Notes() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Notes()
}

func (b *Board) Get(id string) (Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Get(id)
}

// Pending returns the soft-deleted notes in deletion order.
func (b *Board) Pending() []DeletedNote {
	return b.trash.Pending()
}

// Now is the board clock's current time, for showing undo countdowns.
func (b *Board) Now() time.Time {
	return b.clock.Now()
}

// Create adds a note with content. Blank content is ignored and reports
// false.
func (b *Board) Create(content string) (Note, bool, error) {
	b.mu.Lock()
	id := b.uniqueIDLocked()
	note, ok := b.store.Create(id, content, b.reserved)
	if !ok {
		b.mu.Unlock()
		return Note{}, false, nil
	}
	err := b.persistLocked()
	b.mu.Unlock()

	b.logger.Debug("note created", "id", note.ID, "x", note.X, "y", note.Y)
	b.publish(Change{Kind: Created, Note: note})
	return note, true, err
}

// Edit replaces the content of id. Unknown ids report false.
func (b *Board) Edit(id, content string) (bool, error) {
	return b.mutate(id, Edited, func() bool { return b.store.Edit(id, content) })
}

// TogglePin flips the pin flag of id. Pinning has no effect on layout.
func (b *Board) TogglePin(id string) (bool, error) {
	return b.mutate(id, Pinned, func() bool { return b.store.TogglePin(id) })
}

// Move ends a drag of id at to. When to collides with another note or with
// reserved, the note goes back to last. The returned note has the position
// that was kept.
func (b *Board) Move(id string, to, last Point, reserved Rect) (Note, bool, error) {
	b.mu.Lock()
	note, ok := b.store.Move(id, to, last, reserved)
	if !ok {
		b.mu.Unlock()
		return Note{}, false, nil
	}
	err := b.persistLocked()
	b.mu.Unlock()

	kind := Moved
	if note.Position() != to {
		kind = Reverted
		b.logger.Debug("move rejected", "id", id, "x", to.X, "y", to.Y)
	}
	b.publish(Change{Kind: kind, Note: note})
	return note, true, err
}

// Delete moves id into the trash, where it can be restored with Undo until
// UndoWindow elapses.
func (b *Board) Delete(id string) (bool, error) {
	b.mu.Lock()
	note, ok := b.store.Remove(id)
	if !ok {
		b.mu.Unlock()
		return false, nil
	}
	b.trash.Add(note)
	err := b.persistLocked()
	b.mu.Unlock()

	b.logger.Debug("note deleted", "id", id)
	b.publish(Change{Kind: Deleted, Note: note})
	return true, err
}

// Undo restores a pending deletion. It reports false, and does nothing,
// when id is not pending.
func (b *Board) Undo(id string) (Note, bool, error) {
	b.mu.Lock()
	note, ok := b.trash.Take(id)
	if !ok {
		b.mu.Unlock()
		return Note{}, false, nil
	}
	b.store.Restore(note)
	restored, _ := b.store.Get(id)
	err := b.persistLocked()
	b.mu.Unlock()

	b.logger.Debug("note restored", "id", id)
	b.publish(Change{Kind: Restored, Note: restored})
	return restored, true, err
}

// UndoLatest restores the most recently deleted pending note.
func (b *Board) UndoLatest() (Note, bool, error) {
	id, ok := b.trash.Latest()
	if !ok {
		return Note{}, false, nil
	}
	return b.Undo(id)
}

// Subscribe registers fn for every Change. Expired changes arrive on the
// clock's goroutine. The returned func unregisters fn.
func (b *Board) Subscribe(fn func(Change)) func() {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(slices.Clip(b.subs), subscriber{id: id, fn: fn})
	return func() {
		b.subMu.Lock()
		defer b.subMu.Unlock()
		b.subs = slices.DeleteFunc(slices.Clone(b.subs), func(s subscriber) bool { return s.id == id })
	}
}

// Close stops all undo countdowns. Pending notes are discarded.
func (b *Board) Close() {
	b.trash.Clear()
}

func (b *Board) mutate(id string, kind ChangeKind, fn func() bool) (bool, error) {
	b.mu.Lock()
	if !fn() {
		b.mu.Unlock()
		return false, nil
	}
	note, _ := b.store.Get(id)
	err := b.persistLocked()
	b.mu.Unlock()

	b.publish(Change{Kind: kind, Note: note})
	return true, err
}

func (b *Board) expired(n Note) {
	b.logger.Debug("deleted note expired", "id", n.ID)
	b.publish(Change{Kind: Expired, Note: n})
}

func (b *Board) persistLocked() error {
	if b.saver == nil {
		return nil
	}
	if err := b.saver.Save(b.store.Notes()); err != nil {
		b.logger.Error("saving notes failed", "error", err)
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// maxIDAttempts is how many taken ids the configured generator may return
// before the board switches to UUIDs.
const maxIDAttempts = 8

// uniqueIDLocked draws ids until one is free among active and pending
// notes. Generated ids only repeat with an injected generator.
func (b *Board) uniqueIDLocked() string {
	gen := b.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			b.logger.Warn("id generator keeps returning taken ids, using uuids", "attempts", attempt)
			gen = newUUID
		}
		id := gen()
		if !b.store.Has(id) && !b.trash.Has(id) {
			return id
		}
	}
}

func (b *Board) publish(c Change) {
	b.subMu.Lock()
	subs := b.subs
	b.subMu.Unlock()

	for _, s := range subs {
		s.fn(c)
	}
}

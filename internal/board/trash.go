package board

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// UndoWindow is how long a deleted note stays recoverable.
const UndoWindow = 5000 * time.Millisecond

// DeletedNote is a note waiting out its undo window.
type DeletedNote struct {
	Note
	Deadline time.Time
}

// Remaining returns the time left before the note expires, never negative.
func (d DeletedNote) Remaining(now time.Time) time.Duration {
	if left := d.Deadline.Sub(now); left > 0 {
		return left
	}
	return 0
}

type pendingNote struct {
	deleted DeletedNote
	timer   clockwork.Timer
}

// Trash holds soft-deleted notes. Each entry has its own countdown; the
// first of Take and expiry wins and the other becomes a no-op.
type Trash struct {
	clock    clockwork.Clock
	window   time.Duration
	onExpire func(Note)

	mu      sync.Mutex
	pending map[string]*pendingNote
	order   []string
}

// NewTrash creates a Trash that counts down on clock. onExpire, if set, is
// called without the Trash lock held, from the clock's goroutine.
func NewTrash(clock clockwork.Clock, onExpire func(Note)) *Trash {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Trash{
		clock:    clock,
		window:   UndoWindow,
		onExpire: onExpire,
		pending:  make(map[string]*pendingNote),
	}
}

// Add starts the undo window for n. Deleting an id that is already pending
// replaces the earlier entry and its countdown.
func (t *Trash) Add(n Note) DeletedNote {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dropLocked(n.ID)

	entry := &pendingNote{
		deleted: DeletedNote{Note: n, Deadline: t.clock.Now().Add(t.window)},
	}
	entry.timer = t.clock.AfterFunc(t.window, func() { t.expire(n.ID, entry) })
	t.pending[n.ID] = entry
	t.order = append(t.order, n.ID)
	return entry.deleted
}

// Take removes id from the trash and returns its note. It reports false
// when id is not pending, either because it expired or was already taken.
func (t *Trash) Take(id string) (Note, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.pending[id]
	if !ok {
		return Note{}, false
	}
	t.dropLocked(id)
	return entry.deleted.Note, true
}

// Latest returns the id of the most recently deleted pending note.
func (t *Trash) Latest() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.order) == 0 {
		return "", false
	}
	return t.order[len(t.order)-1], true
}

// Has reports whether id is pending.
func (t *Trash) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[id]
	return ok
}

// Pending lists the pending notes in deletion order.
func (t *Trash) Pending() []DeletedNote {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]DeletedNote, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.pending[id].deleted)
	}
	return out
}

func (t *Trash) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Clear stops every countdown and forgets all pending notes.
func (t *Trash) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, entry := range t.pending {
		entry.timer.Stop()
	}
	t.pending = make(map[string]*pendingNote)
	t.order = nil
}

// expire runs when entry's countdown fires. The entry may already have been
// taken, or replaced by a newer deletion of the same id; both leave it alone.
func (t *Trash) expire(id string, entry *pendingNote) {
	t.mu.Lock()
	if t.pending[id] != entry {
		t.mu.Unlock()
		return
	}
	delete(t.pending, id)
	t.order = slices.DeleteFunc(t.order, func(o string) bool { return o == id })
	t.mu.Unlock()

	if t.onExpire != nil {
		t.onExpire(entry.deleted.Note)
	}
}

func (t *Trash) dropLocked(id string) {
	entry, ok := t.pending[id]
	if !ok {
		return
	}
	entry.timer.Stop()
	delete(t.pending, id)
	t.order = slices.DeleteFunc(t.order, func(o string) bool { return o == id })
}

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"stickies/internal/board"
)

// NotesKey is the key the note list lives under.
const NotesKey = "stickyNotes"

// maxCoordinate bounds stored positions so note rects stay far from int
// overflow.
const maxCoordinate = 1 << 30

// record is the stored shape of a note. Coordinates are read as numbers
// and rounded, since boards written by a browser may hold fractions.
type record struct {
	ID      noteID  `json:"id"`
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Pinned  bool    `json:"pinned,omitempty"`
}

// noteID accepts both string ids and the numeric, timestamp ids of older
// boards.
type noteID string

func (id *noteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = noteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id: %w", err)
	}
	*id = noteID(n.String())
	return nil
}

// Repository reads and writes the note list as a JSON array under one key.
type Repository struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// NewRepository stores notes in kv under NotesKey. logger may be nil.
func NewRepository(kv KV, logger *slog.Logger) *Repository {
	return &Repository{kv: kv, key: NotesKey, logger: orDiscard(logger)}
}

// Load returns the stored notes. Missing or unreadable data yields an empty
// board; the reason is logged, never returned.
func (r *Repository) Load() []board.Note {
	data, err := r.kv.Get(r.key)
	if errors.Is(err, ErrNotFound) {
		return []board.Note{}
	}
	if err != nil {
		r.logger.Warn("reading stored notes failed, starting empty", "key", r.key, "error", err)
		return []board.Note{}
	}

	notes, err := decodeNotes(data)
	if err != nil {
		r.logger.Warn("stored notes are invalid, starting empty", "key", r.key, "error", err)
		return []board.Note{}
	}
	r.logger.Debug("loaded notes", "count", len(notes))
	return notes
}

// Save writes notes, replacing whatever was stored.
func (r *Repository) Save(notes []board.Note) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return err
	}
	if err := r.kv.Set(r.key, data); err != nil {
		return fmt.Errorf("write %s: %w", r.key, err)
	}
	return nil
}

func encodeNotes(notes []board.Note) ([]byte, error) {
	records := make([]record, len(notes))
	for i, n := range notes {
		records[i] = record{
			ID:      noteID(n.ID),
			Content: n.Content,
			X:       float64(n.X),
			Y:       float64(n.Y),
			Pinned:  n.Pinned,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}
	return data, nil
}

func decodeNotes(data []byte) ([]board.Note, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return []board.Note{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]board.Note, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		id := string(rec.ID)
		if id == "" || seen[id] {
			return nil, fmt.Errorf("decode notes: missing or duplicate id %q", id)
		}
		seen[id] = true
		if math.Abs(rec.X) > maxCoordinate || math.Abs(rec.Y) > maxCoordinate {
			return nil, fmt.Errorf("decode notes: note %q position (%g,%g) out of range", id, rec.X, rec.Y)
		}
		notes = append(notes, board.Note{
			ID:      id,
			Content: rec.Content,
			X:       int(math.Round(rec.X)),
			Y:       int(math.Round(rec.Y)),
			Pinned:  rec.Pinned,
		})
	}
	return notes, nil
}

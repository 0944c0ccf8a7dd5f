package song

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable   = errors.New("song table has no notes")
	ErrInvalidBeats = errors.New("note duration must be at least one beat")
	ErrUnknownPitch = errors.New("pitch index out of range")
	ErrBadPeriod    = errors.New("audible pitch period must be at least 2 ticks")
)

// Pitch indexes the pitch lookup.
type Pitch uint8

// Note is one entry of the song table.
type Note struct {
	Pitch Pitch
	Beats uint8
}

// Table is an immutable, cyclic sequence of notes.
type Table struct {
	notes  []Note
	lookup Lookup
}

// NewTable validates notes against the lookup and builds a table.
// The notes slice is copied.
func NewTable(notes []Note, lookup Lookup) (*Table, error) {
	if len(notes) == 0 {
		return nil, ErrEmptyTable
	}

	for i, n := range notes {
		if n.Beats == 0 {
			return nil, fmt.Errorf("note %d: %w", i, ErrInvalidBeats)
		}
		if !lookup.Contains(n.Pitch) {
			return nil, fmt.Errorf("note %d: pitch %d: %w", i, n.Pitch, ErrUnknownPitch)
		}
	}

	return &Table{
		notes:  append([]Note(nil), notes...),
		lookup: lookup,
	}, nil
}

// Len returns the number of notes, always at least one.
func (t *Table) Len() int {
	return len(t.notes)
}

// NoteAt returns the note at index i. Indices wrap around, so every int is
// a valid index.
func (t *Table) NoteAt(i int) Note {
	i %= len(t.notes)
	if i < 0 {
		i += len(t.notes)
	}
	return t.notes[i]
}

// Next returns the index following i, wrapping after the last note.
func (t *Table) Next(i int) int {
	return (i + 1) % len(t.notes)
}

// Lookup returns the pitch lookup the table was validated against.
func (t *Table) Lookup() Lookup {
	return t.lookup
}

// MaxBeats returns the longest note duration in the table.
func (t *Table) MaxBeats() uint8 {
	var m uint8
	for _, n := range t.notes {
		m = max(m, n.Beats)
	}
	return m
}

// Notes returns a copy of the table contents.
func (t *Table) Notes() []Note {
	return append([]Note(nil), t.notes...)
}

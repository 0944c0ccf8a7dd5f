package song

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItsyBitsySpider(t *testing.T) {
	tbl := ItsyBitsySpider()

	require.Equal(t, 48, tbl.Len())
	assert.Equal(t, Note{Pitch: G3, Beats: 1}, tbl.NoteAt(0))
	assert.Equal(t, Note{Pitch: Rest, Beats: 1}, tbl.NoteAt(47))
	assert.Equal(t, Note{Pitch: C4, Beats: 7}, tbl.NoteAt(46))
	assert.Equal(t, uint8(7), tbl.MaxBeats())

	for i, n := range tbl.Notes() {
		assert.GreaterOrEqual(t, n.Beats, uint8(1), "note %d", i)
		assert.True(t, tbl.Lookup().Contains(n.Pitch), "note %d", i)
	}
}

func TestTable_Cyclic(t *testing.T) {
	tbl := ItsyBitsySpider()

	assert.Equal(t, tbl.NoteAt(0), tbl.NoteAt(48))
	assert.Equal(t, tbl.NoteAt(47), tbl.NoteAt(-1))
	assert.Equal(t, 0, tbl.Next(47))
	assert.Equal(t, 1, tbl.Next(0))

	i := 0
	for iter := 0; iter < tbl.Len(); iter++ {
		i = tbl.Next(i)
	}
	assert.Equal(t, 0, i, "N advances return to the first note")
}

func TestNewTable_Validation(t *testing.T) {
	lookup := ReferenceLookup()

	tests := []struct {
		name  string
		notes []Note
		err   error
	}{
		{"empty", nil, ErrEmptyTable},
		{"zero beats", []Note{{G3, 1}, {C4, 0}}, ErrInvalidBeats},
		{"pitch out of range", []Note{{Pitch(7), 1}}, ErrUnknownPitch},
		{"single rest", []Note{{Rest, 1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.notes, lookup)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, tbl)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.notes), tbl.Len())
		})
	}
}

func TestNewTable_CopiesInput(t *testing.T) {
	notes := []Note{{G3, 1}, {C4, 2}}
	tbl, err := NewTable(notes, ReferenceLookup())
	require.NoError(t, err)

	notes[0] = Note{G4, 3}
	assert.Equal(t, Note{G3, 1}, tbl.NoteAt(0))
}

func TestLookup_PeriodFor(t *testing.T) {
	l := ReferenceLookup()

	ticks, audible := l.PeriodFor(G3)
	assert.True(t, audible)
	assert.Equal(t, PeriodG3, ticks)
	assert.Equal(t, PeriodG3/2, l.HalfPeriod(G3))

	ticks, audible = l.PeriodFor(Rest)
	assert.False(t, audible)
	assert.Zero(t, ticks)
	assert.Zero(t, l.HalfPeriod(Rest))

	_, audible = l.PeriodFor(Pitch(200))
	assert.False(t, audible)

	assert.Equal(t, "G4", l.Name(G4))
	assert.Equal(t, "rest", l.Name(Rest))
	assert.Equal(t, "?", l.Name(Pitch(99)))
	assert.Equal(t, Rest, l.Rest())
}

func TestLookup_Frequencies(t *testing.T) {
	l := ReferenceLookup()

	tests := []struct {
		pitch Pitch
		hz    float64
	}{
		{G3, 196.0},
		{C4, 261.6},
		{E4, 329.6},
		{G4, 392.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.hz, l.FrequencyHz(tt.pitch, ToneClockHz), 0.2, l.Name(tt.pitch))
	}
	assert.Zero(t, l.FrequencyHz(Rest, ToneClockHz))
}

func TestNewLookup_Validation(t *testing.T) {
	_, err := NewLookup([]uint16{100, 0}, []string{"a", "b"}, 5)
	assert.ErrorIs(t, err, ErrUnknownPitch)

	_, err = NewLookup([]uint16{100, 1, 0}, []string{"a", "b", "rest"}, 2)
	assert.ErrorIs(t, err, ErrBadPeriod)

	_, err = NewLookup([]uint16{100, 0}, []string{"a"}, 1)
	assert.Error(t, err)

	l, err := NewLookup([]uint16{100, 0}, []string{"a", "rest"}, 1)
	require.NoError(t, err)
	assert.True(t, l.Contains(0))
	assert.False(t, l.Contains(2))
}

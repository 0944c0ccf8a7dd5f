package song

// Tone timer periods at 6 MHz (SMCLK 48 MHz / 8).
const (
	PeriodG3 uint16 = 30612 // 196 Hz
	PeriodC4 uint16 = 22933 // 261.6 Hz
	PeriodD4 uint16 = 20432 // 293.7 Hz
	PeriodE4 uint16 = 18202 // 329.6 Hz
	PeriodF4 uint16 = 17180 // 349.2 Hz
	PeriodG4 uint16 = 15307 // 392 Hz
)

// Pitch indices of the reference lookup.
const (
	G3 Pitch = iota
	C4
	D4
	E4
	F4
	G4
	Rest
)

// ToneClockHz is the tone timer clock the reference periods assume.
const ToneClockHz = 6_000_000

var referencePeriods = []uint16{PeriodG3, PeriodC4, PeriodD4, PeriodE4, PeriodF4, PeriodG4, 0}

var referenceNames = []string{"G3", "C4", "D4", "E4", "F4", "G4", "rest"}

var spiderPitches = [...]Pitch{
	G3, C4, C4, C4, D4, E4, E4, E4, D4, C4, D4, E4, D4, E4, E4, F4, G4, G4, F4, E4, F4, G4, E4, C4,
	C4, D4, E4, E4, D4, C4, D4, E4, C4, G3, G3, C4, C4, C4, D4, E4, E4, E4, D4, C4, D4, E4, C4, Rest,
}

var spiderBeats = [...]uint8{
	1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 4, 2, 1, 1, 3, 1, 1, 1, 1, 1, 4, 2,
	1, 1, 3, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 7, 1,
}

// ReferenceLookup returns the pitch lookup for the built-in melody.
func ReferenceLookup() Lookup {
	l, err := NewLookup(referencePeriods, referenceNames, Rest)
	if err != nil {
		panic(err)
	}
	return l
}

// ItsyBitsySpider returns the built-in 48-note melody.
func ItsyBitsySpider() *Table {
	notes := make([]Note, len(spiderPitches))
	for i := range spiderPitches {
		notes[i] = Note{Pitch: spiderPitches[i], Beats: spiderBeats[i]}
	}

	t, err := NewTable(notes, ReferenceLookup())
	if err != nil {
		panic(err)
	}
	return t
}

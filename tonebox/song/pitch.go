package song

import "fmt"

// Lookup maps pitch indices to timer periods. One index is reserved for
// the rest, which has no period.
type Lookup struct {
	periods []uint16
	names   []string
	rest    Pitch
}

// NewLookup builds a lookup from per-pitch periods (in tone timer ticks per
// full cycle) and display names. The rest index must be in range; its
// period entry is ignored.
func NewLookup(periods []uint16, names []string, rest Pitch) (Lookup, error) {
	if int(rest) >= len(periods) {
		return Lookup{}, fmt.Errorf("rest index %d: %w", rest, ErrUnknownPitch)
	}
	if len(names) != len(periods) {
		return Lookup{}, fmt.Errorf("%d names for %d pitches", len(names), len(periods))
	}
	for i, p := range periods {
		if Pitch(i) != rest && p < 2 {
			return Lookup{}, fmt.Errorf("pitch %d (%s): %w", i, names[i], ErrBadPeriod)
		}
	}

	return Lookup{
		periods: append([]uint16(nil), periods...),
		names:   append([]string(nil), names...),
		rest:    rest,
	}, nil
}

// Contains reports whether p is a valid pitch index.
func (l Lookup) Contains(p Pitch) bool {
	return int(p) < len(l.periods)
}

// Rest returns the reserved rest index.
func (l Lookup) Rest() Pitch {
	return l.rest
}

// PeriodFor returns the full-cycle period of p in tone timer ticks, and
// false when p is the rest (or unknown), in which case the channel must
// stay muted.
func (l Lookup) PeriodFor(p Pitch) (ticks uint16, audible bool) {
	if p == l.rest || !l.Contains(p) {
		return 0, false
	}
	return l.periods[p], true
}

// HalfPeriod returns the toggle point for a 50% duty cycle.
func (l Lookup) HalfPeriod(p Pitch) uint16 {
	ticks, _ := l.PeriodFor(p)
	return ticks / 2
}

// Name returns the display name of p.
func (l Lookup) Name(p Pitch) string {
	if !l.Contains(p) {
		return "?"
	}
	return l.names[p]
}

// FrequencyHz returns the tone frequency of p for a timer clocked at clockHz,
// or 0 for the rest.
func (l Lookup) FrequencyHz(p Pitch, clockHz uint64) float64 {
	ticks, audible := l.PeriodFor(p)
	if !audible {
		return 0
	}
	return float64(clockHz) / float64(ticks)
}

package button

import "time"

// DefaultDelay is how long the line must hold a new level before the
// change is reported.
const DefaultDelay = 5 * time.Millisecond

// Edge is a debounced transition of the button.
type Edge int

const (
	NoEdge Edge = iota
	PressEdge
	ReleaseEdge
)

func (e Edge) String() string {
	switch e {
	case NoEdge:
		return "none"
	case PressEdge:
		return "press"
	case ReleaseEdge:
		return "release"
	default:
		return "unknown"
	}
}

// DebounceState is the state of a Debouncer.
type DebounceState int

const (
	Idle       DebounceState = iota // released and stable
	Debouncing                      // pressed, not yet stable
	Pressed                         // pressed and stable
	Released                        // released, not yet stable
)

func (s DebounceState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Debouncer turns raw line samples into press and release edges. It is
// polled, never blocks, and keeps no clock of its own: callers pass the
// sample time. A press seen while a previous press is still down is not
// reported again until a release has been observed.
type Debouncer struct {
	delay time.Duration
	state DebounceState
	since time.Duration
}

// NewDebouncer returns a debouncer in the Idle state.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// State returns the current state.
func (d *Debouncer) State() DebounceState {
	return d.state
}

// Reset forgets any in-flight transition.
func (d *Debouncer) Reset() {
	d.state = Idle
	d.since = 0
}

// Poll feeds one sample taken at time now and reports the edge it
// completes, if any.
func (d *Debouncer) Poll(pressed bool, now time.Duration) Edge {
	switch d.state {
	case Idle:
		if pressed {
			d.state = Debouncing
			d.since = now
		}
	case Debouncing:
		switch {
		case !pressed:
			d.state = Idle
		case now-d.since >= d.delay:
			d.state = Pressed
			return PressEdge
		}
	case Pressed:
		if !pressed {
			d.state = Released
			d.since = now
		}
	case Released:
		switch {
		case pressed:
			d.state = Pressed
		case now-d.since >= d.delay:
			d.state = Idle
			return ReleaseEdge
		}
	}
	return NoEdge
}

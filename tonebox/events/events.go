package events

import "sync"

// Type represents the kind of sequencer event.
type Type int

const (
	GapDeadline Type = iota
	AdvanceDeadline
	ModeChange
)

func (t Type) String() string {
	switch t {
	case GapDeadline:
		return "gap"
	case AdvanceDeadline:
		return "advance"
	case ModeChange:
		return "mode"
	default:
		return "unknown"
	}
}

// Event is one entry of the playback trace.
type Event struct {
	Ticks  uint64 // sequencer timer ticks counted when the event happened
	Type   Type
	Index  int    // cursor after the event
	Detail string // pitch name for advances, mode name for mode changes
}

// Recorder keeps the most recent events, dropping the oldest once full.
// A nil *Recorder discards everything.
type Recorder struct {
	mu        sync.Mutex
	events    []Event
	limit     int
	total     uint64
	listeners []func(Event)
}

// NewRecorder creates a recorder retaining up to limit events.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{
		events: make([]Event, 0, min(limit, 1024)),
		limit:  limit,
	}
}

// Record appends an event and notifies listeners.
func (r *Recorder) Record(e Event) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if len(r.events) == r.limit {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, e)
	r.total++
	listeners := r.listeners
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}

// Subscribe registers a callback invoked for every recorded event.
func (r *Recorder) Subscribe(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Events returns a copy of the retained events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns the retained events of one type, oldest first.
func (r *Recorder) Filter(t Type) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Total returns how many events were recorded, including dropped ones.
func (r *Recorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

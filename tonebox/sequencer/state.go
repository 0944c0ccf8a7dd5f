package sequencer

// Mode is the playback mode, changed only by the control loop.
type Mode int

const (
	Stopped Mode = iota
	Running
	Paused
)

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// State is the note phase, changed only by the interrupt handler.
type State int

const (
	Idle State = iota
	PlayingTone
	Resting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlayingTone:
		return "playing"
	case Resting:
		return "resting"
	default:
		return "unknown"
	}
}

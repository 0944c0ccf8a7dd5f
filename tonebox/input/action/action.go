package action

// Action represents input actions the player reacts to
type Action int

const (
	// Board controls
	BoardSwitchS2 Action = iota

	// Host controls
	HostAudioMuteToggle
	HostSnapshot
	HostQuit
)

func (a Action) String() string {
	switch a {
	case BoardSwitchS2:
		return "S2"
	case HostAudioMuteToggle:
		return "mute"
	case HostSnapshot:
		return "snapshot"
	case HostQuit:
		return "quit"
	default:
		return "unknown"
	}
}

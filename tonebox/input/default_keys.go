package input

import "github.com/valerio/go-tonebox/tonebox/input/action"

// DefaultKeyMap maps key names to actions. Backends may extend it.
var DefaultKeyMap = map[string]action.Action{
	"Space": action.BoardSwitchS2,
	"b":     action.BoardSwitchS2,

	"m":      action.HostAudioMuteToggle,
	"d":      action.HostSnapshot,
	"Escape": action.HostQuit,
	"q":      action.HostQuit,
}

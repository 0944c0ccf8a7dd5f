package backend

import (
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/audio"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
)

// Backend is a frontend for the player: it shows the board state and turns
// platform input into actions.
type Backend interface {
	// Init configures the backend. It must be called before Update.
	Init(config BackendConfig) error

	// Update presents the snapshot and returns the input events gathered
	// since the previous call.
	Update(snap *debug.Snapshot) ([]InputEvent, error)

	// Cleanup releases platform resources.
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title     string
	LogLevel  slog.Level
	Callbacks BackendCallbacks
}

// BackendCallbacks allows backends to talk back to the player
type BackendCallbacks struct {
	OnQuit func() // backend requests shutdown, e.g. on a signal
}

// InputEvent is one action produced by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// AudioSink plays the samples of a provider until closed.
type AudioSink interface {
	Start(p audio.Provider) error
	Close() error
}

// NoAudio is a sink that plays nothing.
type NoAudio struct{}

func (NoAudio) Start(audio.Provider) error { return nil }
func (NoAudio) Close() error               { return nil }

var _ AudioSink = NoAudio{}

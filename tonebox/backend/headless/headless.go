package headless

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/valerio/go-tonebox/tonebox/backend"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
	"github.com/valerio/go-tonebox/tonebox/timing"
)

// HoldFrames is how long a scripted press keeps the switch down.
const HoldFrames = 6

// Backend drives the player without a display: it presses S2 at scripted
// frames and quits after maxFrames.
type Backend struct {
	config     backend.BackendConfig
	frameCount int
	maxFrames  int
	presses    []int // frame numbers, ascending
	next       int
	releaseAt  int

	snapshotConfig SnapshotConfig
	last           *debug.Snapshot
}

// SnapshotConfig holds configuration for periodic state dumps
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // dump every N frames
	Directory string // where dumps are written
}

// New returns a headless backend running for maxFrames frames and pressing
// S2 at the given frames.
func New(maxFrames int, presses []int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		presses:        presses,
		releaseAt:      -1,
		snapshotConfig: snapshotConfig,
	}
}

// FramesFor converts an emulated duration to a frame count.
func FramesFor(d time.Duration) int {
	return int(d / timing.FrameDuration())
}

// PressFrames converts press times to frame numbers, rejecting presses
// that would overlap.
func PressFrames(at []time.Duration) ([]int, error) {
	frames := make([]int, len(at))
	for i, d := range at {
		if d < 0 {
			return nil, fmt.Errorf("press at %v: negative time", d)
		}
		frames[i] = FramesFor(d)
		if i > 0 && frames[i] <= frames[i-1]+HoldFrames {
			return nil, fmt.Errorf("press at %v: too close to the press at %v", d, at[i-1])
		}
	}
	return frames, nil
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"presses", len(h.presses),
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)
	return nil
}

// Update advances the script by one frame.
func (h *Backend) Update(snap *debug.Snapshot) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	frame := h.frameCount
	h.frameCount++
	h.last = snap

	if frame == h.releaseAt {
		events = append(events, backend.InputEvent{Action: action.BoardSwitchS2, Type: event.Release})
		h.releaseAt = -1
	}
	if h.next < len(h.presses) && frame == h.presses[h.next] {
		slog.Debug("Scripted S2 press", "frame", frame)
		events = append(events, backend.InputEvent{Action: action.BoardSwitchS2, Type: event.Press})
		h.releaseAt = frame + HoldFrames
		h.next++
	}

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(snap)
	}

	if h.frameCount%60 == 0 && snap != nil {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames, "note", snap.Cursor, "mode", snap.Mode)
	}

	if h.frameCount >= h.maxFrames {
		slog.Info("Headless execution completed", "frames", h.maxFrames)
		events = append(events, backend.InputEvent{Action: action.HostQuit, Type: event.Press})
	}

	return events, nil
}

func (h *Backend) Cleanup() error {
	if h.snapshotConfig.Enabled && h.last != nil && h.frameCount%h.snapshotConfig.Interval != 0 {
		h.saveSnapshot(h.last)
	}
	return nil
}

// Frames returns how many frames were processed.
func (h *Backend) Frames() int {
	return h.frameCount
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}
	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "tonebox-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}
	return config, nil
}

func (h *Backend) saveSnapshot(snap *debug.Snapshot) {
	if snap == nil {
		return
	}
	if _, err := debug.SaveSnapshot(snap, h.snapshotConfig.Directory, h.frameCount); err != nil {
		slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
	}
}

var _ backend.Backend = (*Backend)(nil)

package tonebox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/valerio/go-tonebox/tonebox/audio"
	"github.com/valerio/go-tonebox/tonebox/backend"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/input"
	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
	"github.com/valerio/go-tonebox/tonebox/timing"
)

// RunConfig configures the frame loop.
type RunConfig struct {
	Backend backend.Backend
	Limiter timing.Limiter // nil runs unpaced
	Audio   backend.AudioSink
	WavPath string // record the speaker to this file when set

	BackendConfig backend.BackendConfig

	// BlockingControl runs the blocking control loop on its own goroutine,
	// debounced in wall-clock time, instead of polling it from emulation.
	BlockingControl bool

	SnapshotDir string // where HostSnapshot dumps go
}

// Run drives the board one frame at a time: advance emulation, hand a
// snapshot to the backend, apply its input, wait for the next frame. It
// returns when the backend asks to quit or ctx is done.
func (p *Player) Run(ctx context.Context, cfg RunConfig) (rerr error) {
	if cfg.Backend == nil {
		return errors.New("no backend")
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	if s, ok := limiter.(interface{ Stop() }); ok {
		defer s.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bcfg := cfg.BackendConfig
	onQuit := bcfg.Callbacks.OnQuit
	bcfg.Callbacks.OnQuit = func() {
		if onQuit != nil {
			onQuit()
		}
		cancel()
	}
	if err := cfg.Backend.Init(bcfg); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if err := cfg.Backend.Cleanup(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()

	if cfg.WavPath != "" {
		w := audio.NewWavWriter(cfg.WavPath)
		p.AddAudioTap(w.WriteSample)
		defer func() {
			if err := w.Close(); err != nil {
				rerr = errors.Join(rerr, err)
			}
		}()
	}

	if cfg.Audio != nil {
		if err := cfg.Audio.Start(p.Audio()); err != nil {
			return fmt.Errorf("failed to start audio: %w", err)
		}
		defer cfg.Audio.Close()
	}

	quit := false
	frame := 0
	manager := input.NewManager(p)
	manager.On(action.HostQuit, event.Press, func() { quit = true })
	manager.On(action.HostAudioMuteToggle, event.Press, func() {
		p.board.Sampler.ToggleMute()
		slog.Info("Audio mute toggled", "muted", p.board.Sampler.Muted())
	})
	manager.On(action.HostSnapshot, event.Press, func() {
		if _, err := debug.SaveSnapshot(p.Snapshot(), cfg.SnapshotDir, frame); err != nil {
			slog.Error("Failed to save snapshot", "error", err)
		}
	})

	var wg sync.WaitGroup
	if cfg.BlockingControl {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.RunControlLoop(ctx, p.WallClockButton()); err != nil {
				slog.Error("Control loop stopped", "error", err)
			}
		}()
		defer wg.Wait()
		defer cancel()
	}

	slog.Info("Player running", "notes", p.Song().Len(), "fps", timing.TargetFPS())
	limiter.Reset()

	for ; !quit; frame++ {
		if ctx.Err() != nil {
			break
		}

		p.AdvanceSamples(timing.SamplesPerFrame)

		evs, err := cfg.Backend.Update(p.Snapshot())
		if err != nil {
			return fmt.Errorf("backend update at frame %d: %w", frame, err)
		}
		for _, ev := range evs {
			manager.Trigger(ev.Action, ev.Type)
		}

		limiter.WaitForNextFrame()
	}

	slog.Info("Player stopped", "elapsed", p.Elapsed(), "note", p.Cursor(), "mode", p.Mode())
	return nil
}

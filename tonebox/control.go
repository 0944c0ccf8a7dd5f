package tonebox

import (
	"context"
	"errors"
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/button"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
)

// controlLoop is the firmware main loop in polled form: a debounced press
// followed by a release toggles playback.
type controlLoop struct {
	btn     *button.Button
	seq     *sequencer.Sequencer
	pressed bool
}

func newControlLoop(btn *button.Button, seq *sequencer.Sequencer) *controlLoop {
	return &controlLoop{btn: btn, seq: seq}
}

func (c *controlLoop) poll() {
	switch c.btn.Poll() {
	case button.PressEdge:
		c.pressed = true
	case button.ReleaseEdge:
		if c.pressed {
			c.pressed = false
			c.seq.Toggle()
		}
	}
}

// lockedLine reads S2 under the player lock, so a blocking control loop
// can sample it while the board runs.
type lockedLine struct {
	p *Player
}

func (l lockedLine) Pressed() bool {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	return l.p.s2.Pressed()
}

// WallClockButton returns a button on S2 debounced in wall-clock time,
// for use with RunControlLoop.
func (p *Player) WallClockButton(opts ...button.Option) *button.Button {
	return button.New(lockedLine{p}, opts...)
}

// RunControlLoop is the firmware main loop in blocking form. It waits for
// a press edge and then a release edge on btn, toggles playback, and
// repeats until ctx is done. While it runs, the cooperative loop polled by
// AdvanceSamples is disabled.
func (p *Player) RunControlLoop(ctx context.Context, btn *button.Button) error {
	p.setCooperative(false)
	defer p.setCooperative(true)

	for {
		if err := btn.WaitForPressEdge(ctx); err != nil {
			return ignoreCanceled(err)
		}
		if err := btn.WaitForReleaseEdge(ctx); err != nil {
			return ignoreCanceled(err)
		}

		mode := p.Toggle()
		slog.Debug("Control loop toggled playback", "mode", mode, "at", p.Elapsed())
	}
}

func (p *Player) setCooperative(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cooperative = on
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

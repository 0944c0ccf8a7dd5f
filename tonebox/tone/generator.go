package tone

import (
	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
	"github.com/valerio/go-tonebox/tonebox/timer"
)

// State is the externally visible state of the tone output.
type State struct {
	Muted  bool
	Period uint16 // full cycle in timer ticks
}

// Generator produces a square wave on one compare channel of a free-running
// timer: CCR0 sets the period, CCRn the toggle point, and the set/reset
// output mode gives a 50% duty cycle. Muting only changes the output mode,
// so the counter keeps running and a new period applies on the next
// rollover.
type Generator struct {
	t       *timer.Timer
	channel int
}

// New returns a generator driving the given channel (1-4) of t.
func New(t *timer.Timer, channel int) *Generator {
	return &Generator{t: t, channel: channel}
}

// Configure programs the timer: SMCLK / 8, up mode, counter cleared, the
// output channel muted. The counter starts running immediately.
func (g *Generator) Configure() {
	g.t.Write(addr.CTL, addr.TASSELSMCLK|addr.ID8|addr.MCUp|addr.TACLR)
	g.t.Write(addr.CCTL0, 0)
	g.t.Write(addr.CCTL(g.channel), 0)
}

// SetFrequency programs a new period in ticks. Periods below 2 ticks cannot
// be represented and are ignored.
func (g *Generator) SetFrequency(period uint16) {
	if period < 2 {
		return
	}
	g.t.Write(addr.CCR0, period-1)
	g.t.Write(addr.CCR(g.channel), period/2)
}

// Mute stops the output from toggling by selecting output mode 0 with the
// OUT bit low.
func (g *Generator) Mute() {
	cctl := g.t.Read(addr.CCTL(g.channel))
	cctl = bit.Clear(cctl, addr.OUTMODMask|addr.OUT)
	g.t.Write(addr.CCTL(g.channel), cctl)
}

// Unmute selects the set/reset output mode.
func (g *Generator) Unmute() {
	g.RestoreOutputMode(addr.OUTMOD3)
}

// Muted reports whether the output is held low.
func (g *Generator) Muted() bool {
	return g.OutputMode() == addr.OUTMOD0
}

// OutputMode returns the channel's OUTMOD bits, in position.
func (g *Generator) OutputMode() uint16 {
	return g.t.Read(addr.CCTL(g.channel)) & addr.OUTMODMask
}

// RestoreOutputMode writes OUTMOD bits previously returned by OutputMode.
func (g *Generator) RestoreOutputMode(bits uint16) {
	cctl := g.t.Read(addr.CCTL(g.channel))
	g.t.Write(addr.CCTL(g.channel), bit.Replace(cctl, addr.OUTMODMask, bits))
}

// Period returns the programmed full-cycle period in ticks.
func (g *Generator) Period() uint16 {
	return g.t.Read(addr.CCR0) + 1
}

// State returns the current mute flag and period.
func (g *Generator) State() State {
	return State{Muted: g.Muted(), Period: g.Period()}
}

// Channel returns the compare channel driving the pin.
func (g *Generator) Channel() int {
	return g.channel
}

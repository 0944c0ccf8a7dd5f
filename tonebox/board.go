package tonebox

import (
	"time"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/audio"
	"github.com/valerio/go-tonebox/tonebox/clock"
	"github.com/valerio/go-tonebox/tonebox/gpio"
	"github.com/valerio/go-tonebox/tonebox/timer"
)

// Board wires the peripherals of the emulated launchpad: TA0 and TA1, ports
// P1 (switch S2 on P1.4) and P2 (RGB LED on P2.0-2, speaker on P2.4).
//
// Emulation advances one audio sample at a time. Each step converts the
// sample period into cycles of the clock each timer has selected, ticks
// the timers, then samples the speaker pin.
type Board struct {
	Clock   *clock.System
	TA0     *timer.Timer
	TA1     *timer.Timer
	P1      *gpio.Port
	P2      *gpio.Port
	Sampler *audio.Sampler

	dividers map[clock.Source]*sourceDivider
	samples  uint64
}

type sourceDivider struct {
	hz uint64
	d  *clock.Divider
}

// NewBoard returns a board in its power-on state.
func NewBoard() *Board {
	return &Board{
		Clock:    clock.NewSystem(),
		TA0:      timer.New("TA0"),
		TA1:      timer.New("TA1"),
		P1:       gpio.NewPort("P1"),
		P2:       gpio.NewPort("P2"),
		Sampler:  audio.NewSampler(),
		dividers: make(map[clock.Source]*sourceDivider),
	}
}

// cyclesPerSample returns how many cycles of src elapse during the next
// sample period. Fractions carry over between samples.
func (b *Board) cyclesPerSample(src clock.Source) int {
	hz := b.Clock.Frequency(src)
	sd := b.dividers[src]
	if sd == nil || sd.hz != hz {
		sd = &sourceDivider{hz: hz, d: clock.NewDivider(hz, audio.SampleRate)}
		b.dividers[src] = sd
	}
	return int(sd.d.Cycles(1))
}

func (b *Board) tickTimer(t *timer.Timer) {
	var src clock.Source
	switch t.ClockSource() {
	case addr.TASSELACLK:
		src = clock.ACLK
	case addr.TASSELSMCLK:
		src = clock.SMCLK
	default:
		// TACLK and INCLK pins are not connected
		return
	}
	t.Tick(b.cyclesPerSample(src))
}

// Step advances the board by one sample period.
func (b *Board) Step() {
	b.tickTimer(b.TA0)
	b.tickTimer(b.TA1)
	b.samples++

	b.Sampler.Push(b.speakerDuty())
}

// Advance runs n sample periods.
func (b *Board) Advance(n int) {
	for iter := 0; iter < n; iter++ {
		b.Step()
	}
}

// speakerDuty returns the fraction of the last sample period the speaker
// pin was high.
func (b *Board) speakerDuty() float64 {
	high, span := b.TA0.TakeOutput(1)
	if !b.P2.PeripheralSelected(addr.Speaker) {
		if b.P2.In()&addr.Speaker != 0 {
			return 1
		}
		return 0
	}
	if span == 0 {
		if b.TA0.Output(1) {
			return 1
		}
		return 0
	}
	return float64(high) / float64(span)
}

// Samples returns how many sample periods have elapsed since power-up.
func (b *Board) Samples() uint64 {
	return b.samples
}

// Elapsed returns the emulated time since power-up.
func (b *Board) Elapsed() time.Duration {
	return time.Duration(b.samples) * time.Second / audio.SampleRate
}

// SetSwitch drives S2: pressed shorts the pin to ground, released leaves
// it to the pull-up.
func (b *Board) SetSwitch(pressed bool) {
	if pressed {
		b.P1.Drive(addr.Switch2, false)
	} else {
		b.P1.Float(addr.Switch2)
	}
}

// SwitchPressed reports whether S2 is held down.
func (b *Board) SwitchPressed() bool {
	return b.P1.In()&addr.Switch2 == 0 && b.P1.Read(addr.PxREN)&addr.Switch2 != 0
}

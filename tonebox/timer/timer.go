package timer

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
)

// Mode is the counting mode selected by the MC field of CTL.
type Mode uint8

const (
	Stop Mode = iota
	Up
	Continuous
	UpDown
)

func (m Mode) String() string {
	switch m {
	case Stop:
		return "stop"
	case Up:
		return "up"
	case Continuous:
		return "continuous"
	case UpDown:
		return "up/down"
	default:
		return "unknown"
	}
}

// outAction is what an output unit does on a compare event.
type outAction uint8

const (
	keep outAction = iota
	set
	reset
	toggle
)

// outModes maps OUTMOD to the action taken when the counter reaches the
// channel's CCRn (onMatch) and when it reaches CCR0 (onPeriod).
// Mode 0 drives the OUT bit directly and never changes the latch.
var outModes = [8]struct{ onMatch, onPeriod outAction }{
	0: {keep, keep},
	1: {set, keep},
	2: {toggle, reset},
	3: {set, reset},
	4: {toggle, keep},
	5: {reset, keep},
	6: {toggle, set},
	7: {reset, set},
}

// maxRedispatch bounds how many times a vector is re-entered in a row when
// its handler leaves the flag set. Real hardware would re-trigger forever.
const maxRedispatch = 8

// Timer emulates a 16-bit Timer_A peripheral with five capture/compare
// channels. Only compare mode is emulated.
//
// In up mode the counter runs 0..CCR0 inclusive, so the period is CCR0+1
// ticks: CCIFG0 is raised when the counter reaches CCR0 and TAIFG on the
// following tick, when it rolls over to zero. Lowering CCR0 below the
// current count makes the counter roll to zero on the next tick.
type Timer struct {
	name string

	ctl  uint16
	r    uint16
	cctl [addr.TimerChannels]uint16
	ccr  [addr.TimerChannels]uint16
	out  [addr.TimerChannels]bool // output unit latches

	prescale uint64 // source cycles not yet turned into counter ticks
	counted  uint64 // ticks counted since creation, never reset

	// output accounting since the last TakeOutput, per channel
	high [addr.TimerChannels]uint64
	span [addr.TimerChannels]uint64

	inIRQ  bool
	storms uint64

	// InterruptHandler serves the TAxIFG and CCIFG1-4 sources (the "N"
	// vector). It runs synchronously from Tick and must clear the flags it
	// services.
	InterruptHandler func()
	// CCR0InterruptHandler serves CCIFG0.
	CCR0InterruptHandler func()
}

// New creates a timer in its reset state: stopped, all registers zero.
func New(name string) *Timer {
	return &Timer{name: name}
}

// Name returns the instance name, e.g. "TA1".
func (t *Timer) Name() string {
	return t.name
}

// Mode returns the counting mode currently selected.
func (t *Timer) Mode() Mode {
	return Mode(bit.Field(t.ctl, addr.MCMask, 4))
}

// ClockSource returns the TASSEL bits of CTL.
func (t *Timer) ClockSource() uint16 {
	return t.ctl & addr.TASSELMask
}

// Counter returns the current value of the counter register.
func (t *Timer) Counter() uint16 {
	return t.r
}

// Counted returns the total number of ticks counted so far. Ticks are only
// counted while the timer runs, so this is the timer's notion of elapsed time.
func (t *Timer) Counted() uint64 {
	return t.counted
}

// Storms returns how many times a handler left an interrupt flag set
// after maxRedispatch consecutive calls.
func (t *Timer) Storms() uint64 {
	return t.storms
}

// Output returns the current level of a channel's output unit.
func (t *Timer) Output(ch int) bool {
	if ch < 0 || ch >= addr.TimerChannels {
		return false
	}
	return t.level(ch)
}

// TakeOutput returns how many of the ticks counted since the last call
// the channel output spent high, and how many ticks were counted in total.
func (t *Timer) TakeOutput(ch int) (high, span uint64) {
	if ch < 0 || ch >= addr.TimerChannels {
		return 0, 0
	}
	high, span = t.high[ch], t.span[ch]
	t.high[ch], t.span[ch] = 0, 0
	return high, span
}

// Read returns the value of a timer register.
func (t *Timer) Read(offset uint16) uint16 {
	switch {
	case offset == addr.CTL:
		return t.ctl
	case offset == addr.R:
		return t.r
	case isChannelReg(offset, addr.CCTL0):
		return t.cctl[channelOf(offset, addr.CCTL0)]
	case isChannelReg(offset, addr.CCR0):
		return t.ccr[channelOf(offset, addr.CCR0)]
	default:
		return 0xFFFF
	}
}

// Write stores a value into a timer register, applying the side effects
// of TACLR and output mode changes.
func (t *Timer) Write(offset uint16, value uint16) {
	switch {
	case offset == addr.CTL:
		t.writeCTL(value)
	case offset == addr.R:
		t.r = value
	case isChannelReg(offset, addr.CCTL0):
		t.writeCCTL(channelOf(offset, addr.CCTL0), value)
	case isChannelReg(offset, addr.CCR0):
		t.ccr[channelOf(offset, addr.CCR0)] = value
	default:
		slog.Debug("Ignoring write to unmapped timer register", "timer", t.name, "offset", fmt.Sprintf("0x%02X", offset))
	}
}

func (t *Timer) writeCTL(value uint16) {
	if bit.Has(value, addr.TACLR) {
		t.r = 0
		t.prescale = 0
		value = bit.Clear(value, addr.TACLR)
	}
	if bit.Field(value, addr.MCMask, 4) == uint16(UpDown) && t.Mode() != UpDown {
		slog.Warn("Up/down mode is not emulated, counting in up mode", "timer", t.name)
	}
	t.ctl = value
}

func (t *Timer) writeCCTL(ch int, value uint16) {
	oldMode := bit.Field(t.cctl[ch], addr.OUTMODMask, addr.OUTMODShift)
	newMode := bit.Field(value, addr.OUTMODMask, addr.OUTMODShift)
	if oldMode == 0 || newMode == 0 {
		// the latch takes over from (or hands back to) the OUT bit
		t.out[ch] = bit.Has(value, addr.OUT)
	}
	t.cctl[ch] = value
}

// Tick advances the timer by a number of source clock cycles. The input
// divider is applied here; interrupt handlers run synchronously at the
// exact tick their flag is raised.
func (t *Timer) Tick(cycles int) {
	if cycles <= 0 || t.Mode() == Stop {
		return
	}

	div := t.divider()
	t.prescale += uint64(cycles)
	n := t.prescale / div
	t.prescale %= div

	t.advance(n)
}

func (t *Timer) advance(n uint64) {
	for n > 0 {
		if t.Mode() == Stop || t.halted() {
			return
		}

		d := t.nextEvent()
		if d > n {
			t.count(n)
			return
		}

		t.count(d - 1)
		t.step()
		n -= d

		t.dispatch()
	}
}

// divider returns the input divider selected by ID.
func (t *Timer) divider() uint64 {
	return 1 << bit.Field(t.ctl, addr.IDMask, 6)
}

// top is the last counter value before rollover.
func (t *Timer) top() uint16 {
	if t.Mode() == Continuous {
		return 0xFFFF
	}
	return t.ccr[0]
}

// halted reports the up-mode special case where CCR0 = 0 stops counting.
func (t *Timer) halted() bool {
	return t.Mode() != Continuous && t.ccr[0] == 0
}

// nextEvent returns how many ticks away the next compare match or
// rollover is, counting the event tick itself.
func (t *Timer) nextEvent() uint64 {
	top := t.top()

	d := uint64(1)
	if t.r < top {
		d = uint64(top-t.r) + 1
	}

	for ch := 0; ch < addr.TimerChannels; ch++ {
		c := t.ccr[ch]
		if c > t.r && c <= top {
			if dd := uint64(c - t.r); dd < d {
				d = dd
			}
		}
	}
	return d
}

// count advances the counter by k ticks that contain no event.
func (t *Timer) count(k uint64) {
	if k == 0 {
		return
	}
	t.r += uint16(k)
	t.account(k)
}

// step performs one tick that carries an event.
func (t *Timer) step() {
	if t.r >= t.top() {
		t.r = 0
		t.ctl = bit.Set(t.ctl, addr.TAIFG)
	} else {
		t.r++
	}

	for ch := 0; ch < addr.TimerChannels; ch++ {
		if t.r == t.ccr[ch] {
			t.cctl[ch] = bit.Set(t.cctl[ch], addr.CCIFG)
			t.apply(ch, outModes[t.outMode(ch)].onMatch)
		}
	}
	if t.r == t.ccr[0] {
		for ch := 1; ch < addr.TimerChannels; ch++ {
			t.apply(ch, outModes[t.outMode(ch)].onPeriod)
		}
	}

	t.account(1)
}

func (t *Timer) account(k uint64) {
	t.counted += k
	for ch := 0; ch < addr.TimerChannels; ch++ {
		t.span[ch] += k
		if t.level(ch) {
			t.high[ch] += k
		}
	}
}

func (t *Timer) outMode(ch int) uint16 {
	return bit.Field(t.cctl[ch], addr.OUTMODMask, addr.OUTMODShift)
}

func (t *Timer) level(ch int) bool {
	if t.outMode(ch) == 0 {
		return bit.Has(t.cctl[ch], addr.OUT)
	}
	return t.out[ch]
}

func (t *Timer) apply(ch int, a outAction) {
	if t.outMode(ch) == 0 {
		return
	}
	switch a {
	case set:
		t.out[ch] = true
	case reset:
		t.out[ch] = false
	case toggle:
		t.out[ch] = !t.out[ch]
	}
}

func (t *Timer) pending0() bool {
	return bit.Has(t.cctl[0], addr.CCIE|addr.CCIFG)
}

func (t *Timer) pendingN() bool {
	if bit.Has(t.ctl, addr.TAIE|addr.TAIFG) {
		return true
	}
	for ch := 1; ch < addr.TimerChannels; ch++ {
		if bit.Has(t.cctl[ch], addr.CCIE|addr.CCIFG) {
			return true
		}
	}
	return false
}

// dispatch runs the interrupt handlers whose sources are pending. A vector
// is not re-entered while its handler runs; sources still pending when the
// handlers return are served again, up to maxRedispatch times.
func (t *Timer) dispatch() {
	if t.inIRQ {
		return
	}
	t.inIRQ = true
	defer func() { t.inIRQ = false }()

	for iter := 0; iter < maxRedispatch; iter++ {
		fired := false
		if t.CCR0InterruptHandler != nil && t.pending0() {
			fired = true
			t.CCR0InterruptHandler()
		}
		if t.InterruptHandler != nil && t.pendingN() {
			fired = true
			t.InterruptHandler()
		}
		if !fired {
			return
		}
	}

	if (t.CCR0InterruptHandler != nil && t.pending0()) || (t.InterruptHandler != nil && t.pendingN()) {
		t.storms++
		slog.Warn("Interrupt flag left set by handler",
			"timer", t.name,
			"ctl", fmt.Sprintf("0x%04X", t.ctl),
			"cctl1", fmt.Sprintf("0x%04X", t.cctl[1]),
			"storms", t.storms)
	}
}

func isChannelReg(offset, base uint16) bool {
	return offset >= base && offset < base+2*addr.TimerChannels && (offset-base)%2 == 0
}

func channelOf(offset, base uint16) int {
	return int(offset-base) / 2
}

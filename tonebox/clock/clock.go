package clock

import "log/slog"

// Power-on and crystal frequencies for the board.
const (
	DCOHz  = 3_000_000  // default DCO, drives MCLK/SMCLK until bring-up
	REFOHz = 32_768     // default low-frequency reference, drives ACLK
	HFXTHz = 48_000_000 // external high-frequency crystal
	LFXTHz = 32_768     // external low-frequency crystal
)

// Source identifies one of the system clock outputs.
type Source int

const (
	MCLK Source = iota
	SMCLK
	ACLK
)

func (s Source) String() string {
	switch s {
	case MCLK:
		return "MCLK"
	case SMCLK:
		return "SMCLK"
	case ACLK:
		return "ACLK"
	default:
		return "unknown"
	}
}

// System models the clock system: which oscillator feeds which clock output.
type System struct {
	hz         [3]uint64
	configured bool
}

// NewSystem returns the clock system in its power-on state.
func NewSystem() *System {
	return &System{
		hz: [3]uint64{MCLK: DCOHz, SMCLK: DCOHz, ACLK: REFOHz},
	}
}

// ConfigureClockSource switches MCLK and SMCLK to the high-frequency crystal
// and ACLK to the low-frequency crystal. Idempotent.
func (s *System) ConfigureClockSource() {
	s.hz[MCLK] = HFXTHz
	s.hz[SMCLK] = HFXTHz
	s.hz[ACLK] = LFXTHz
	if !s.configured {
		slog.Debug("Clock sources configured",
			"mclk_hz", s.hz[MCLK], "smclk_hz", s.hz[SMCLK], "aclk_hz", s.hz[ACLK])
	}
	s.configured = true
}

// Frequency returns the current frequency of a clock output in Hz.
func (s *System) Frequency(src Source) uint64 {
	if src < MCLK || src > ACLK {
		return 0
	}
	return s.hz[src]
}

// Configured reports whether ConfigureClockSource has run.
func (s *System) Configured() bool {
	return s.configured
}

// Divider converts cycles of a base clock into cycles of a target clock
// without accumulating rounding error: the fractional part is carried over
// to the next call.
type Divider struct {
	targetHz uint64
	baseHz   uint64
	acc      uint64
}

// NewDivider creates a divider producing targetHz cycles per baseHz base cycles.
func NewDivider(targetHz, baseHz uint64) *Divider {
	if baseHz == 0 {
		baseHz = 1
	}
	return &Divider{targetHz: targetHz, baseHz: baseHz}
}

// Cycles returns how many target cycles elapse during n base cycles.
func (d *Divider) Cycles(n uint64) uint64 {
	d.acc += n * d.targetHz
	c := d.acc / d.baseHz
	d.acc %= d.baseHz
	return c
}

// Reset drops any carried fraction.
func (d *Divider) Reset() {
	d.acc = 0
}

package sequencer

import (
	"errors"
	"fmt"
	"time"
)

// Default timing in sequencer timer ticks (ACLK, 32768 Hz).
const (
	DefaultGapTicks  uint16 = 0x0D00 // ~101.6 ms
	DefaultBeatTicks uint16 = 0x1FFF // ~250 ms
)

var (
	ErrZeroGap          = errors.New("gap must be at least one tick")
	ErrZeroBeat         = errors.New("beat must be at least one tick")
	ErrDeadlineOverflow = errors.New("advance deadline does not fit the 16-bit counter")
	ErrNoTable          = errors.New("no song table")
	ErrDuration         = errors.New("duration not representable in timer ticks")
)

// Config holds the two timing constants of playback, in ticks of the
// sequencer timer.
type Config struct {
	GapTicks  uint16 // note start to mute
	BeatTicks uint16 // one unit of note length
}

// DefaultConfig returns the reference timing.
func DefaultConfig() Config {
	return Config{GapTicks: DefaultGapTicks, BeatTicks: DefaultBeatTicks}
}

// ConfigFromDurations converts wall-clock durations to ticks of a timer
// running at clockHz, rounding to the nearest tick.
func ConfigFromDurations(gap, beat time.Duration, clockHz uint64) (Config, error) {
	g, err := toTicks(gap, clockHz)
	if err != nil {
		return Config{}, fmt.Errorf("gap %v: %w", gap, err)
	}
	b, err := toTicks(beat, clockHz)
	if err != nil {
		return Config{}, fmt.Errorf("beat %v: %w", beat, err)
	}
	return Config{GapTicks: g, BeatTicks: b}, nil
}

func toTicks(d time.Duration, clockHz uint64) (uint16, error) {
	if d <= 0 || clockHz == 0 {
		return 0, ErrDuration
	}
	ticks := (uint64(d)*clockHz + uint64(time.Second)/2) / uint64(time.Second)
	if ticks == 0 || ticks > 0xFFFF {
		return 0, ErrDuration
	}
	return uint16(ticks), nil
}

// Validate checks that every deadline for notes of up to maxBeats fits the
// counter.
func (c Config) Validate(maxBeats uint8) error {
	if c.GapTicks == 0 {
		return ErrZeroGap
	}
	if c.BeatTicks == 0 {
		return ErrZeroBeat
	}
	if d := c.Deadline(maxBeats); d > 1<<16 {
		return fmt.Errorf("%d ticks for %d beats: %w", d, maxBeats, ErrDeadlineOverflow)
	}
	return nil
}

// Deadline returns the ticks from note start to the advance deadline.
func (c Config) Deadline(beats uint8) uint32 {
	return uint32(c.GapTicks) + uint32(beats)*uint32(c.BeatTicks)
}

// Durations converts the configuration back to wall-clock time.
func (c Config) Durations(clockHz uint64) (gap, beat time.Duration) {
	if clockHz == 0 {
		return 0, 0
	}
	conv := func(ticks uint16) time.Duration {
		return time.Duration(uint64(ticks) * uint64(time.Second) / clockHz)
	}
	return conv(c.GapTicks), conv(c.BeatTicks)
}

package timing

import (
	"fmt"
	"time"

	"github.com/valerio/go-tonebox/tonebox/audio"
)

// Limiter paces the frame loop against the wall clock.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due. It returns
	// immediately when running behind.
	WaitForNextFrame()

	// Reset restarts pacing from now.
	Reset()
}

// NewNoOpLimiter returns a limiter that never waits (headless runs).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// SamplesPerFrame is how many audio samples, and board clock cycles, one
// frame covers.
const SamplesPerFrame = audio.SampleRate / 60

// TargetFPS returns the frame rate implied by SamplesPerFrame.
func TargetFPS() float64 {
	return float64(audio.SampleRate) / float64(SamplesPerFrame)
}

// FrameDuration returns the wall-clock length of one frame.
func FrameDuration() time.Duration {
	return time.Duration(SamplesPerFrame) * time.Second / audio.SampleRate
}

// Pacing names accepted by New.
const (
	PacingNone     = "none"
	PacingTicker   = "ticker"
	PacingAdaptive = "adaptive"
)

// New returns the limiter for a pacing name.
func New(pacing string) (Limiter, error) {
	switch pacing {
	case PacingNone:
		return NewNoOpLimiter(), nil
	case PacingTicker:
		return NewTickerLimiter(), nil
	case PacingAdaptive, "":
		return NewAdaptiveLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown pacing %q (want %s, %s or %s)", pacing, PacingNone, PacingTicker, PacingAdaptive)
	}
}

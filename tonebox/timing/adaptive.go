package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps until just before the deadline and spins the
// rest, keeping the audio buffer fed at a steady rate.
type AdaptiveLimiter struct {
	frame  time.Duration
	next   time.Time
	frames int64
	now    func() time.Time
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return &AdaptiveLimiter{
		frame: FrameDuration(),
		next:  time.Now(),
		now:   time.Now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	wait := a.next.Sub(now)

	switch {
	case wait > 2*time.Millisecond:
		time.Sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for a.now().Before(a.next) {
		}
	case wait < -5*FrameDuration():
		// far behind, e.g. after a stall: drop the backlog
		slog.Debug("Frame pacing reset", "behind", -wait, "frames", a.frames)
		a.next = now
	}

	a.next = a.next.Add(a.frame)
	a.frames++
}

func (a *AdaptiveLimiter) Reset() {
	a.next = a.now()
	a.frames = 0
}

// Frames returns how many frames were paced since the last reset.
func (a *AdaptiveLimiter) Frames() int64 {
	return a.frames
}

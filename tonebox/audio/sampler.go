package audio

import (
	"math"
	"sync"
)

// Sampler converts the level of a digital pin into PCM. Each pushed value
// is the fraction of the sample period the pin spent high, which acts as a
// box filter over the square wave. A DC blocker then removes the offset
// of a pin idling high or low.
type Sampler struct {
	prevX, prevY float64
	total        uint64

	taps []func(int16)

	mu    sync.Mutex // protects buf and muted
	buf   []int16
	muted bool
}

func NewSampler() *Sampler {
	return &Sampler{buf: make([]int16, 0, bufferRetainSize)}
}

// AddTap registers a function receiving every mono sample, muted or not.
func (s *Sampler) AddTap(fn func(int16)) {
	s.taps = append(s.taps, fn)
}

// Push appends one sample for a pin that was high for the given fraction
// of the sample period, and returns the mono sample produced.
func (s *Sampler) Push(duty float64) int16 {
	x := min(max(duty, 0), 1) * amplitude
	y := x - s.prevX + dcPole*s.prevY
	s.prevX, s.prevY = x, y

	sample := int16(math.Round(min(max(y, math.MinInt16), math.MaxInt16)))
	s.total++
	for _, fn := range s.taps {
		fn(sample)
	}

	s.mu.Lock()
	out := sample
	if s.muted {
		out = 0
	}
	s.buf = append(s.buf, out, out)
	if len(s.buf) > maxBufferSize {
		s.buf = s.buf[len(s.buf)-bufferRetainSize:]
	}
	s.mu.Unlock()

	return sample
}

// GetSamples removes and returns count interleaved samples, padding with
// silence when fewer are buffered.
func (s *Sampler) GetSamples(count int) []int16 {
	s.mu.Lock()
	defer s.mu.Unlock()

	samples := make([]int16, count)
	n := copy(samples, s.buf)
	s.buf = s.buf[:copy(s.buf, s.buf[n:])]
	return samples
}

// Buffered returns how many interleaved samples are waiting.
func (s *Sampler) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// Total returns how many mono samples were produced.
func (s *Sampler) Total() uint64 {
	return s.total
}

func (s *Sampler) ToggleMute() {
	s.mu.Lock()
	s.muted = !s.muted
	s.mu.Unlock()
}

func (s *Sampler) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Reset clears the filter state and the buffer.
func (s *Sampler) Reset() {
	s.prevX, s.prevY = 0, 0
	s.mu.Lock()
	s.buf = s.buf[:0]
	s.mu.Unlock()
}

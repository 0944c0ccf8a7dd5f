package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_DCBlocker(t *testing.T) {
	s := NewSampler()

	first := s.Push(1)
	assert.Equal(t, int16(amplitude), first, "step passes through")

	var last int16
	for iter := 0; iter < SampleRate; iter++ {
		last = s.Push(1)
	}
	assert.Less(t, abs(last), int16(10), "constant high level decays to silence")

	for iter := 0; iter < SampleRate; iter++ {
		last = s.Push(0)
	}
	assert.Less(t, abs(last), int16(10), "constant low level decays to silence")
}

func TestSampler_SquareWaveIsBalanced(t *testing.T) {
	s := NewSampler()

	var pos, neg int
	for i := 0; i < 4*SampleRate; i++ {
		v := s.Push(float64((i / 50) % 2))
		if i < SampleRate {
			continue
		}
		if v > 0 {
			pos++
		} else if v < 0 {
			neg++
		}
	}
	assert.InDelta(t, pos, neg, float64(pos)/10)
}

func TestSampler_GetSamples(t *testing.T) {
	s := NewSampler()
	s.Push(1)
	s.Push(0.5)
	assert.Equal(t, 4, s.Buffered())

	got := s.GetSamples(6)
	require.Len(t, got, 6)
	assert.Equal(t, got[0], got[1], "both channels carry the same sample")
	assert.NotZero(t, got[0])
	assert.Zero(t, got[4], "padded with silence")
	assert.Zero(t, s.Buffered())
	assert.Equal(t, uint64(2), s.Total())
}

func TestSampler_BufferIsBounded(t *testing.T) {
	s := NewSampler()
	for iter := 0; iter < maxBufferSize; iter++ {
		s.Push(1)
	}
	assert.LessOrEqual(t, s.Buffered(), maxBufferSize)
}

func TestSampler_MuteAndTaps(t *testing.T) {
	s := NewSampler()
	var tapped []int16
	s.AddTap(func(v int16) { tapped = append(tapped, v) })

	s.ToggleMute()
	assert.True(t, s.Muted())
	s.Push(1)

	assert.Equal(t, []int16{0, 0}, s.GetSamples(2), "muted output is silent")
	assert.Equal(t, []int16{amplitude}, tapped, "taps still see the signal")

	s.ToggleMute()
	assert.False(t, s.Muted())
}

func TestWavWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w := NewWavWriter(path)

	s := NewSampler()
	s.AddTap(w.WriteSample)
	for i := 0; i < SampleRate/10; i++ {
		s.Push(float64(1 - (i/25)%2))
	}
	require.Equal(t, SampleRate/10, w.Len())
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(BitDepth), dec.BitDepth)
	assert.Len(t, buf.Data, SampleRate/10)
	assert.Equal(t, amplitude, buf.Data[0])
}

func abs(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

package speaker

import (
	"errors"
	"math"

	"github.com/valerio/go-tonebox/tonebox/audio"
)

// ErrUnavailable is returned by Start on builds without speaker support.
var ErrUnavailable = errors.New("speaker output requires cgo on linux")

// providerStreamer adapts an audio.Provider to a beep streamer. It never
// drains: when the provider runs dry it pads with silence.
type providerStreamer struct {
	p   audio.Provider
	buf []int16
}

func (s *providerStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	s.buf = s.p.GetSamples(len(samples) * audio.Channels)
	for i := range samples {
		samples[i][0] = float64(s.buf[2*i]) / -math.MinInt16
		samples[i][1] = float64(s.buf[2*i+1]) / -math.MinInt16
	}
	return len(samples), true
}

func (s *providerStreamer) Err() error {
	return nil
}

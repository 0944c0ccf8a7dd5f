//go:build (linux && cgo) || windows || darwin

package speaker

import (
	"fmt"
	"log/slog"

	"github.com/gopxl/beep/v2"
	bspeaker "github.com/gopxl/beep/v2/speaker"
	"github.com/valerio/go-tonebox/tonebox/audio"
)

// Sink plays a provider through the system speaker.
type Sink struct {
	started bool
}

func New() *Sink {
	return &Sink{}
}

func (s *Sink) Start(p audio.Provider) error {
	if err := bspeaker.Init(beep.SampleRate(audio.SampleRate), audio.SampleRate/10); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	s.started = true

	var st beep.Streamer = &providerStreamer{p: p}
	bspeaker.Play(st)
	slog.Info("Speaker output started", "rate", audio.SampleRate)
	return nil
}

func (s *Sink) Close() error {
	if !s.started {
		return nil
	}
	bspeaker.Clear()
	bspeaker.Close()
	s.started = false
	return nil
}

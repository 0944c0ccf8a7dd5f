//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/go-tonebox/tonebox/audio"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	chunkSamples = 1024
	// keep about 100ms queued
	targetQueuedBytes = audio.SampleRate / 10 * audio.Channels * 2
)

// Sink plays a provider through an SDL audio queue.
type Sink struct {
	dev  sdl.AudioDeviceID
	stop chan struct{}
	done chan struct{}
}

func New() *Sink {
	return &Sink{}
}

func (s *Sink) Start(p audio.Provider) error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL audio: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: audio.Channels,
		Samples:  chunkSamples,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	s.dev = dev
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	sdl.PauseAudioDevice(dev, false)
	go s.pump(p)

	slog.Info("SDL audio started", "device", dev, "rate", audio.SampleRate)
	return nil
}

func (s *Sink) pump(p audio.Provider) {
	defer close(s.done)

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	var buf []byte
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		for sdl.GetQueuedAudioSize(s.dev) < targetQueuedBytes {
			buf = encodeS16LE(p.GetSamples(chunkSamples*audio.Channels), buf)
			if err := sdl.QueueAudio(s.dev, buf); err != nil {
				slog.Error("Failed to queue audio", "error", err)
				return
			}
		}
	}
}

func (s *Sink) Close() error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	<-s.done
	sdl.CloseAudioDevice(s.dev)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	s.stop = nil
	return nil
}

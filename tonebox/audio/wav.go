package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriter collects mono samples and writes them as a 16-bit PCM WAV
// file on Close.
type WavWriter struct {
	filename string
	buffer   []int
}

func NewWavWriter(filename string) *WavWriter {
	return &WavWriter{filename: filename}
}

// WriteSample appends one sample. It can be passed to Sampler.AddTap.
func (w *WavWriter) WriteSample(s int16) {
	w.buffer = append(w.buffer, int(s))
}

// Len returns the number of samples collected.
func (w *WavWriter) Len() int {
	return len(w.buffer)
}

// Duration returns the length of the collected audio.
func (w *WavWriter) Duration() time.Duration {
	return time.Duration(len(w.buffer)) * time.Second / SampleRate
}

// Encode writes the collected samples to ws.
func (w *WavWriter) Encode(ws io.WriteSeeker) error {
	enc := wav.NewEncoder(ws, SampleRate, BitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           w.buffer,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Close writes the file.
func (w *WavWriter) Close() (rerr error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav: %w", err)
		}
	}()

	slog.Info("Writing audio", "file", w.filename, "samples", len(w.buffer), "duration", w.Duration())
	return w.Encode(f)
}

//go:build !((linux && cgo) || windows || darwin)

package speaker

import "github.com/valerio/go-tonebox/tonebox/audio"

// Sink is unavailable on this build.
type Sink struct{}

func New() *Sink {
	return &Sink{}
}

func (s *Sink) Start(audio.Provider) error {
	return ErrUnavailable
}

func (s *Sink) Close() error {
	return nil
}

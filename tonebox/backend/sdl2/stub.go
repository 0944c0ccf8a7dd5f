//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-tonebox/tonebox/audio"
)

// Sink stub for builds without SDL2
type Sink struct{}

func New() *Sink {
	return &Sink{}
}

// Start returns an error indicating SDL2 is not available
func (s *Sink) Start(audio.Provider) error {
	return errors.New("SDL2 audio not available - build with -tags sdl2 to enable")
}

func (s *Sink) Close() error {
	return nil
}

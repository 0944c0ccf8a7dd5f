package sdl2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-tonebox/tonebox/backend"
)

func TestEncodeS16LE(t *testing.T) {
	out := encodeS16LE([]int16{1, -2, 0x1234}, nil)
	assert.Equal(t, []byte{0x01, 0x00, 0xFE, 0xFF, 0x34, 0x12}, out)

	reused := encodeS16LE([]int16{7}, out)
	assert.Equal(t, []byte{0x07, 0x00}, reused)
}

var _ backend.AudioSink = (*Sink)(nil)

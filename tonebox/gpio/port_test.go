package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-tonebox/tonebox/addr"
)

func TestPort_InputResolution(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(p *Port)
		expected uint8
	}{
		{
			name:     "floating input reads low",
			setup:    func(p *Port) {},
			expected: 0x00,
		},
		{
			name:     "pull-up reads high",
			setup:    func(p *Port) { ConfigureInputPullUp(p, addr.Switch2) },
			expected: addr.Switch2,
		},
		{
			name: "switch to ground overrides pull-up",
			setup: func(p *Port) {
				ConfigureInputPullUp(p, addr.Switch2)
				p.Drive(addr.Switch2, false)
			},
			expected: 0x00,
		},
		{
			name: "released switch reads pull-up again",
			setup: func(p *Port) {
				ConfigureInputPullUp(p, addr.Switch2)
				p.Drive(addr.Switch2, false)
				p.Float(addr.Switch2)
			},
			expected: addr.Switch2,
		},
		{
			name: "output reads back OUT",
			setup: func(p *Port) {
				ConfigureOutput(p, addr.LEDAll)
				p.Write(addr.PxOUT, addr.LEDRed)
			},
			expected: addr.LEDRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPort("P1")
			tt.setup(p)
			assert.Equal(t, tt.expected, p.Read(addr.PxIN))
		})
	}
}

func TestPort_ToneOutputRouting(t *testing.T) {
	p := NewPort("P2")
	assert.False(t, p.PeripheralSelected(addr.Speaker))

	ConfigurePinAsToneOutput(p, addr.Speaker)
	assert.True(t, p.PeripheralSelected(addr.Speaker))
	assert.Equal(t, addr.Speaker, p.Read(addr.PxDIR))
	assert.Equal(t, addr.Speaker, p.Read(addr.PxSEL0))
	assert.Equal(t, uint8(0), p.Read(addr.PxSEL1))

	// LED pins on the same port are untouched by the speaker routing
	ConfigureOutput(p, addr.LEDAll)
	assert.True(t, p.PeripheralSelected(addr.Speaker))
	assert.False(t, p.PeripheralSelected(addr.LEDRed))
}

func TestPort_INIsReadOnly(t *testing.T) {
	p := NewPort("P1")
	p.Write(addr.PxIN, 0xFF)
	assert.Equal(t, uint8(0), p.Read(addr.PxIN))
	assert.Equal(t, uint8(0xFF), p.Read(0x40), "unmapped offsets read as 0xFF")
}

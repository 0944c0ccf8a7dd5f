package indicator

import (
	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
	"github.com/valerio/go-tonebox/tonebox/gpio"
)

// LED is an indicator on port pins. Toggle flips the pins in mask, Clear
// turns every LED pin off.
type LED struct {
	port *gpio.Port
	mask uint8
}

// New returns an LED driving the pins in mask of port.
func New(port *gpio.Port, mask uint8) *LED {
	return &LED{port: port, mask: mask}
}

// Init makes all RGB LED pins outputs, driven low.
func (l *LED) Init() {
	gpio.ConfigureOutput(l.port, addr.LEDAll|l.mask)
}

func (l *LED) Toggle() {
	l.port.Write(addr.PxOUT, bit.Toggle(l.port.Read(addr.PxOUT), l.mask))
}

func (l *LED) Clear() {
	l.port.Write(addr.PxOUT, bit.Clear(l.port.Read(addr.PxOUT), addr.LEDAll|l.mask))
}

// On reports whether any pin of mask is lit.
func (l *LED) On() bool {
	return bit.Any(l.port.Read(addr.PxOUT), l.mask)
}

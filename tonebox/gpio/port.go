package gpio

import (
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
)

// Port is an 8-bit digital I/O port.
type Port struct {
	name string

	out  uint8
	dir  uint8
	ren  uint8
	sel0 uint8
	sel1 uint8

	// externally driven pins and their levels (e.g. a switch to ground)
	driven uint8
	level  uint8
}

// NewPort creates a port in its reset state: all pins inputs, no pulls.
func NewPort(name string) *Port {
	return &Port{name: name}
}

// Name returns the port name, e.g. "P2".
func (p *Port) Name() string {
	return p.name
}

// In resolves the level seen on each pin. Outputs read back their OUT bit,
// externally driven inputs read the driven level, undriven inputs with the
// resistor enabled read the pull direction (OUT bit), and floating inputs
// read low.
func (p *Port) In() uint8 {
	var in uint8
	for i := uint(0); i < 8; i++ {
		m := uint8(1) << i
		switch {
		case bit.Any(p.dir, m):
			in |= p.out & m
		case bit.Any(p.driven, m):
			in |= p.level & m
		case bit.Any(p.ren, m):
			in |= p.out & m
		}
	}
	return in
}

// Read returns the value of a port register.
func (p *Port) Read(offset uint16) uint8 {
	switch offset {
	case addr.PxIN:
		return p.In()
	case addr.PxOUT:
		return p.out
	case addr.PxDIR:
		return p.dir
	case addr.PxREN:
		return p.ren
	case addr.PxSEL0:
		return p.sel0
	case addr.PxSEL1:
		return p.sel1
	default:
		return 0xFF
	}
}

// Write stores a value into a port register. IN is read-only.
func (p *Port) Write(offset uint16, value uint8) {
	switch offset {
	case addr.PxOUT:
		p.out = value
	case addr.PxDIR:
		p.dir = value
	case addr.PxREN:
		p.ren = value
	case addr.PxSEL0:
		p.sel0 = value
	case addr.PxSEL1:
		p.sel1 = value
	case addr.PxIN:
		slog.Debug("Ignoring write to read-only register", "port", p.name, "value", value)
	}
}

// Drive forces the pins in mask to an external level, as a switch or
// another chip would.
func (p *Port) Drive(mask uint8, high bool) {
	p.driven = bit.Set(p.driven, mask)
	if high {
		p.level = bit.Set(p.level, mask)
	} else {
		p.level = bit.Clear(p.level, mask)
	}
}

// Float stops driving the pins in mask externally.
func (p *Port) Float(mask uint8) {
	p.driven = bit.Clear(p.driven, mask)
}

// PeripheralSelected reports whether every pin of mask is an output routed
// to the primary peripheral function (SEL0=1, SEL1=0, DIR=1).
func (p *Port) PeripheralSelected(mask uint8) bool {
	return bit.Has(p.sel0, mask) && !bit.Any(p.sel1, mask) && bit.Has(p.dir, mask)
}

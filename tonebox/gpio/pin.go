package gpio

import (
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
)

// ConfigurePinAsToneOutput routes the pins in mask to their timer output
// function: output direction, primary peripheral select.
func ConfigurePinAsToneOutput(p *Port, mask uint8) {
	p.Write(addr.PxDIR, bit.Set(p.Read(addr.PxDIR), mask))
	p.Write(addr.PxSEL0, bit.Set(p.Read(addr.PxSEL0), mask))
	p.Write(addr.PxSEL1, bit.Clear(p.Read(addr.PxSEL1), mask))
	slog.Debug("Pin routed to timer output", "port", p.Name(), "mask", mask)
}

// ConfigureInputPullUp makes the pins in mask GPIO inputs with the internal
// pull-up resistor enabled.
func ConfigureInputPullUp(p *Port, mask uint8) {
	p.Write(addr.PxSEL0, bit.Clear(p.Read(addr.PxSEL0), mask))
	p.Write(addr.PxSEL1, bit.Clear(p.Read(addr.PxSEL1), mask))
	p.Write(addr.PxDIR, bit.Clear(p.Read(addr.PxDIR), mask))
	p.Write(addr.PxOUT, bit.Set(p.Read(addr.PxOUT), mask))
	p.Write(addr.PxREN, bit.Set(p.Read(addr.PxREN), mask))
}

// ConfigureOutput makes the pins in mask GPIO outputs driven low.
func ConfigureOutput(p *Port, mask uint8) {
	p.Write(addr.PxSEL0, bit.Clear(p.Read(addr.PxSEL0), mask))
	p.Write(addr.PxSEL1, bit.Clear(p.Read(addr.PxSEL1), mask))
	p.Write(addr.PxDIR, bit.Set(p.Read(addr.PxDIR), mask))
	p.Write(addr.PxOUT, bit.Clear(p.Read(addr.PxOUT), mask))
}

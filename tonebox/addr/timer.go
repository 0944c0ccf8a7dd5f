package addr

// Timer_A register offsets, relative to the peripheral base.
// Reference: MSP432P4xx Technical Reference Manual, Timer_A registers.
const (
	// Control register.
	CTL uint16 = 0x00
	// Capture/compare control registers, one per channel.
	CCTL0 uint16 = 0x02
	CCTL1 uint16 = 0x04
	CCTL2 uint16 = 0x06
	CCTL3 uint16 = 0x08
	CCTL4 uint16 = 0x0A
	// Counter register.
	R uint16 = 0x10
	// Capture/compare registers, one per channel.
	CCR0 uint16 = 0x12
	CCR1 uint16 = 0x14
	CCR2 uint16 = 0x16
	CCR3 uint16 = 0x18
	CCR4 uint16 = 0x1A
)

// Timer instances on the board.
const (
	TA0Base uint32 = 0x40000000
	TA1Base uint32 = 0x40000400
)

// TimerChannels is the number of capture/compare channels per timer.
const TimerChannels = 5

// CCTL returns the control register offset of channel n.
func CCTL(n int) uint16 {
	return CCTL0 + uint16(2*n)
}

// CCR returns the compare register offset of channel n.
func CCR(n int) uint16 {
	return CCR0 + uint16(2*n)
}

// CTL bits
const (
	TASSELMask  uint16 = 0x0300 // clock source select
	TASSELTACLK uint16 = 0x0000
	TASSELACLK  uint16 = 0x0100
	TASSELSMCLK uint16 = 0x0200
	TASSELINCLK uint16 = 0x0300

	IDMask uint16 = 0x00C0 // input divider
	ID1    uint16 = 0x0000
	ID2    uint16 = 0x0040
	ID4    uint16 = 0x0080
	ID8    uint16 = 0x00C0

	MCMask       uint16 = 0x0030 // mode control
	MCStop       uint16 = 0x0000
	MCUp         uint16 = 0x0010
	MCContinuous uint16 = 0x0020
	MCUpDown     uint16 = 0x0030

	TACLR uint16 = 0x0004 // counter clear, self-clearing
	TAIE  uint16 = 0x0002 // overflow interrupt enable
	TAIFG uint16 = 0x0001 // overflow interrupt flag
)

// CCTL bits
const (
	OUTMODMask uint16 = 0x00E0
	OUTMOD0    uint16 = 0x0000 // OUT bit
	OUTMOD1    uint16 = 0x0020 // set
	OUTMOD2    uint16 = 0x0040 // toggle/reset
	OUTMOD3    uint16 = 0x0060 // set/reset
	OUTMOD4    uint16 = 0x0080 // toggle
	OUTMOD5    uint16 = 0x00A0 // reset
	OUTMOD6    uint16 = 0x00C0 // toggle/set
	OUTMOD7    uint16 = 0x00E0 // reset/set

	CCIE  uint16 = 0x0010 // compare interrupt enable
	OUT   uint16 = 0x0004 // output value in mode 0
	CCIFG uint16 = 0x0001 // compare interrupt flag
)

// OUTMODShift is the bit offset of the OUTMOD field.
const OUTMODShift = 5

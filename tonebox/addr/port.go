package addr

// Digital I/O port register offsets (8-bit ports).
const (
	PxIN   uint16 = 0x00
	PxOUT  uint16 = 0x02
	PxDIR  uint16 = 0x04
	PxREN  uint16 = 0x06
	PxSEL0 uint16 = 0x0A
	PxSEL1 uint16 = 0x0C
)

// Board pin assignments.
const (
	// Switch S2 on P1.4, active low with the internal pull-up.
	Switch2 uint8 = 0x10
	// Speaker on P2.4, routed to TA0.1.
	Speaker uint8 = 0x10
	// RGB LED2 on P2.0-P2.2.
	LEDRed   uint8 = 0x01
	LEDGreen uint8 = 0x02
	LEDBlue  uint8 = 0x04
	LEDAll   uint8 = LEDRed | LEDGreen | LEDBlue
)

package bit

// Register is any peripheral register width on the board.
type Register interface {
	~uint8 | ~uint16
}

// Has reports whether every bit of mask is set in value.
func Has[T Register](value, mask T) bool {
	return value&mask == mask
}

// Any reports whether at least one bit of mask is set in value.
func Any[T Register](value, mask T) bool {
	return value&mask != 0
}

// Set returns value with the bits of mask set to 1.
func Set[T Register](value, mask T) T {
	return value | mask
}

// Clear returns value with the bits of mask set to 0.
func Clear[T Register](value, mask T) T {
	return value &^ mask
}

// Toggle returns value with the bits of mask inverted.
func Toggle[T Register](value, mask T) T {
	return value ^ mask
}

// Field extracts the field selected by mask, shifted down by shift.
// Example: Field(0x02D4, 0x0030, 4) -> 0x1 (the MC field of a Timer_A CTL value)
func Field[T Register](value, mask T, shift uint) T {
	return (value & mask) >> shift
}

// Replace returns value with the field selected by mask replaced by the
// corresponding bits of field (already in position).
func Replace[T Register](value, mask, field T) T {
	return (value &^ mask) | (field & mask)
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet[T Register](index uint, value T) bool {
	return (value>>index)&1 == 1
}

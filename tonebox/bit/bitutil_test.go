package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAndAny(t *testing.T) {
	tests := []struct {
		value, mask uint16
		has, any    bool
	}{
		{0x02D4, 0x0010, true, true},
		{0x02D4, 0x0030, false, true},
		{0x02D4, 0x0003, false, false},
		{0xFFFF, 0x00E0, true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.has, Has(tt.value, tt.mask), "Has(%#04x, %#04x)", tt.value, tt.mask)
		assert.Equal(t, tt.any, Any(tt.value, tt.mask), "Any(%#04x, %#04x)", tt.value, tt.mask)
	}
}

func TestSetClearToggle(t *testing.T) {
	var port uint8 = 0b1010_0000

	assert.Equal(t, uint8(0b1011_0000), Set(port, 0x10))
	assert.Equal(t, uint8(0b0010_0000), Clear(port, 0x80))
	assert.Equal(t, uint8(0b1010_0001), Toggle(port, 0x01))
	assert.Equal(t, uint8(0b1010_0000), Toggle(Toggle(port, 0x01), 0x01))
}

func TestField(t *testing.T) {
	tests := []struct {
		name     string
		value    uint16
		mask     uint16
		shift    uint
		expected uint16
	}{
		{"mode control up", 0x02D4, 0x0030, 4, 1},
		{"input divider /8", 0x02D4, 0x00C0, 6, 3},
		{"clock source SMCLK", 0x02D4, 0x0300, 8, 2},
		{"output mode 3", 0x0070, 0x00E0, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Field(tt.value, tt.mask, tt.shift))
		})
	}
}

func TestReplace(t *testing.T) {
	assert.Equal(t, uint16(0x0116), Replace(uint16(0x0106), 0x0030, 0x0010))
	assert.Equal(t, uint16(0x0106), Replace(uint16(0x0136), 0x0030, 0x0000))
	// bits outside the mask in field are ignored
	assert.Equal(t, uint16(0x0070), Replace(uint16(0x0010), 0x00E0, 0xFF60))
}

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(4, uint8(0x10)))
	assert.False(t, IsSet(3, uint8(0x10)))
	assert.True(t, IsSet(9, uint16(0x0200)))
}

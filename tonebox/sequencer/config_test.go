package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromDurations(t *testing.T) {
	cfg, err := ConfigFromDurations(100*time.Millisecond, 250*time.Millisecond, 1000)
	require.NoError(t, err)
	assert.Equal(t, Config{GapTicks: 100, BeatTicks: 250}, cfg)

	cfg, err = ConfigFromDurations(250*time.Millisecond, 250*time.Millisecond, 32768)
	require.NoError(t, err)
	assert.Equal(t, uint16(8192), cfg.BeatTicks)

	_, err = ConfigFromDurations(0, time.Second, 1000)
	assert.ErrorIs(t, err, ErrDuration)

	_, err = ConfigFromDurations(time.Millisecond, 3*time.Second, 32768)
	assert.ErrorIs(t, err, ErrDuration, "beyond the 16-bit counter")
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate(7))
	assert.Equal(t, uint32(3328+3*8191), cfg.Deadline(3))

	gap, beat := cfg.Durations(32768)
	assert.InDelta(t, 101.5, float64(gap)/float64(time.Millisecond), 0.5)
	assert.InDelta(t, 250, float64(beat)/float64(time.Millisecond), 0.5)
}

package button

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/gpio"
)

func TestDebouncer(t *testing.T) {
	ms := time.Millisecond

	type sample struct {
		pressed bool
		at      time.Duration
		edge    Edge
		state   DebounceState
	}

	tests := []struct {
		name    string
		samples []sample
	}{
		{
			name: "clean press and release",
			samples: []sample{
				{true, 0, NoEdge, Debouncing},
				{true, 4 * ms, NoEdge, Debouncing},
				{true, 5 * ms, PressEdge, Pressed},
				{true, 50 * ms, NoEdge, Pressed},
				{false, 60 * ms, NoEdge, Released},
				{false, 65 * ms, ReleaseEdge, Idle},
			},
		},
		{
			name: "bounce on press",
			samples: []sample{
				{true, 0, NoEdge, Debouncing},
				{false, 1 * ms, NoEdge, Idle},
				{true, 2 * ms, NoEdge, Debouncing},
				{true, 6 * ms, NoEdge, Debouncing},
				{true, 7 * ms, PressEdge, Pressed},
			},
		},
		{
			name: "bounce on release",
			samples: []sample{
				{true, 0, NoEdge, Debouncing},
				{true, 5 * ms, PressEdge, Pressed},
				{false, 10 * ms, NoEdge, Released},
				{true, 11 * ms, NoEdge, Pressed},
				{false, 12 * ms, NoEdge, Released},
				{false, 17 * ms, ReleaseEdge, Idle},
			},
		},
		{
			name: "holding does not repeat the press",
			samples: []sample{
				{true, 0, NoEdge, Debouncing},
				{true, 5 * ms, PressEdge, Pressed},
				{true, 500 * ms, NoEdge, Pressed},
				{true, 5000 * ms, NoEdge, Pressed},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebouncer(DefaultDelay)
			for i, s := range tt.samples {
				assert.Equal(t, s.edge, d.Poll(s.pressed, s.at), "sample %d edge", i)
				assert.Equal(t, s.state, d.State(), "sample %d state", i)
			}
		})
	}
}

func TestPortLine_ActiveLow(t *testing.T) {
	p1 := gpio.NewPort("P1")
	line := Configure(p1, addr.Switch2)

	assert.False(t, line.Pressed(), "pull-up reads high")
	p1.Drive(addr.Switch2, false)
	assert.True(t, line.Pressed())
	p1.Float(addr.Switch2)
	assert.False(t, line.Pressed())
}

type fakeLine struct {
	pressed atomic.Bool
}

func (f *fakeLine) Pressed() bool { return f.pressed.Load() }

// steppingClock advances one millisecond per sample.
func steppingClock() func() time.Duration {
	var n atomic.Int64
	return func() time.Duration {
		return time.Duration(n.Add(1)) * time.Millisecond
	}
}

func TestButton_WaitForEdges(t *testing.T) {
	line := &fakeLine{}
	b := New(line, WithClock(steppingClock()), WithPollInterval(50*time.Microsecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	line.pressed.Store(true)
	require.NoError(t, b.WaitForPressEdge(ctx))
	assert.Equal(t, Pressed, b.State())

	line.pressed.Store(false)
	require.NoError(t, b.WaitForReleaseEdge(ctx))
	assert.Equal(t, Idle, b.State())
}

func TestButton_WaitHonoursContext(t *testing.T) {
	b := New(&fakeLine{}, WithPollInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := b.WaitForPressEdge(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestButton_CustomDelay(t *testing.T) {
	line := &fakeLine{}
	var now time.Duration
	b := New(line, WithDelay(20*time.Millisecond), WithClock(func() time.Duration { return now }))

	line.pressed.Store(true)
	assert.Equal(t, NoEdge, b.Poll())
	now = 19 * time.Millisecond
	assert.Equal(t, NoEdge, b.Poll())
	now = 20 * time.Millisecond
	assert.Equal(t, PressEdge, b.Poll())
}

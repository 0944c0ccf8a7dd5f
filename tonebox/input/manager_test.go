package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
)

type recordingSwitch struct {
	calls []string
}

func (r *recordingSwitch) Press()   { r.calls = append(r.calls, "press") }
func (r *recordingSwitch) Release() { r.calls = append(r.calls, "release") }

func TestManager_BoardSwitchIsNotDebounced(t *testing.T) {
	sw := &recordingSwitch{}
	m := NewManager(sw)

	fired := false
	m.On(action.BoardSwitchS2, event.Press, func() { fired = true })

	m.Trigger(action.BoardSwitchS2, event.Press)
	m.Trigger(action.BoardSwitchS2, event.Release)
	m.Trigger(action.BoardSwitchS2, event.Press)
	m.Trigger(action.BoardSwitchS2, event.Hold)

	assert.Equal(t, []string{"press", "release", "press"}, sw.calls)
	assert.False(t, fired, "switch events go to the board only")
}

func TestManager_HostActionDebounce(t *testing.T) {
	tests := []struct {
		name     string
		evt      event.Type
		between  time.Duration
		expected int
	}{
		{"rapid press is debounced", event.Press, 100 * time.Millisecond, 1},
		{"slow press is not debounced", event.Press, 400 * time.Millisecond, 2},
		{"release is never debounced", event.Release, 10 * time.Millisecond, 2},
		{"hold is never debounced", event.Hold, 10 * time.Millisecond, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			clock := time.Unix(1000, 0)
			m.now = func() time.Time { return clock }

			count := 0
			m.On(action.HostAudioMuteToggle, tt.evt, func() { count++ })

			m.Trigger(action.HostAudioMuteToggle, tt.evt)
			clock = clock.Add(tt.between)
			m.Trigger(action.HostAudioMuteToggle, tt.evt)

			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestManager_MultipleCallbacks(t *testing.T) {
	m := NewManager(nil)
	var order []int
	m.On(action.HostQuit, event.Press, func() { order = append(order, 1) })
	m.On(action.HostQuit, event.Press, func() { order = append(order, 2) })

	m.Trigger(action.HostQuit, event.Press)
	m.Trigger(action.HostSnapshot, event.Press)

	assert.Equal(t, []int{1, 2}, order)
}

func TestManager_SwitchWithoutBoard(t *testing.T) {
	m := NewManager(nil)
	fired := false
	m.On(action.BoardSwitchS2, event.Press, func() { fired = true })

	m.Trigger(action.BoardSwitchS2, event.Press)
	assert.True(t, fired, "falls back to callbacks without a board switch")
}

func TestDefaultKeyMap(t *testing.T) {
	assert.Equal(t, action.BoardSwitchS2, DefaultKeyMap["Space"])
	assert.Equal(t, action.HostQuit, DefaultKeyMap["q"])
	assert.Equal(t, "S2", action.BoardSwitchS2.String())
}

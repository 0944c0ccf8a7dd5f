package input

import (
	"time"

	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
)

// hostDebounce is the minimum time between two presses of a host action.
// Board switches are debounced by the firmware instead.
const hostDebounce = 300 * time.Millisecond

// Switch is a board switch the manager can actuate.
type Switch interface {
	Press()
	Release()
}

// Manager routes input actions to the board switch and to callbacks.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	s2            Switch
	now           func() time.Time
}

func NewManager(s2 Switch) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		s2:            s2,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if act == action.BoardSwitchS2 && m.s2 != nil {
		switch evt {
		case event.Press:
			m.s2.Press()
		case event.Release:
			m.s2.Release()
		}
		return
	}

	if evt == event.Press && m.debounced(act, evt) {
		return
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

func (m *Manager) debounced(act action.Action, evt event.Type) bool {
	now := m.now()
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}
	last, seen := m.lastTriggered[act][evt]
	if seen && now.Sub(last) < hostDebounce {
		return true
	}
	m.lastTriggered[act][evt] = now
	return false
}

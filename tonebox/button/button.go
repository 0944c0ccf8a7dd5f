package button

import (
	"context"
	"time"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/gpio"
)

// Line reports the raw level of a button.
type Line interface {
	Pressed() bool
}

// PortLine is a switch to ground on a port pin with the pull-up enabled,
// so the pin reads low while pressed.
type PortLine struct {
	port *gpio.Port
	mask uint8
}

// Configure sets up the pins in mask as pulled-up inputs and returns the
// line reading them.
func Configure(port *gpio.Port, mask uint8) *PortLine {
	gpio.ConfigureInputPullUp(port, mask)
	return &PortLine{port: port, mask: mask}
}

// Pressed reports whether the pin reads low.
func (l *PortLine) Pressed() bool {
	return l.port.Read(addr.PxIN)&l.mask == 0
}

// DefaultPollInterval is how often the blocking waits sample the line.
const DefaultPollInterval = time.Millisecond

// Button debounces a Line.
type Button struct {
	line     Line
	deb      *Debouncer
	now      func() time.Duration
	interval time.Duration
}

// Option configures a Button.
type Option func(*Button)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(b *Button) { b.deb = NewDebouncer(d) }
}

// WithClock sets the time source used to timestamp samples. The default is
// the wall clock.
func WithClock(now func() time.Duration) Option {
	return func(b *Button) { b.now = now }
}

// WithPollInterval sets how often the blocking waits sample the line.
func WithPollInterval(d time.Duration) Option {
	return func(b *Button) { b.interval = d }
}

// New returns a button reading line.
func New(line Line, opts ...Option) *Button {
	start := time.Now()
	b := &Button{
		line:     line,
		deb:      NewDebouncer(DefaultDelay),
		now:      func() time.Duration { return time.Since(start) },
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Poll samples the line once and returns the completed edge, if any.
func (b *Button) Poll() Edge {
	return b.deb.Poll(b.line.Pressed(), b.now())
}

// State returns the debouncer state.
func (b *Button) State() DebounceState {
	return b.deb.State()
}

// WaitForPressEdge blocks until a debounced press is seen or ctx is done.
func (b *Button) WaitForPressEdge(ctx context.Context) error {
	return b.waitFor(ctx, PressEdge)
}

// WaitForReleaseEdge blocks until a debounced release is seen or ctx is
// done.
func (b *Button) WaitForReleaseEdge(ctx context.Context) error {
	return b.waitFor(ctx, ReleaseEdge)
}

func (b *Button) waitFor(ctx context.Context, want Edge) error {
	if b.Poll() == want {
		return nil
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if b.Poll() == want {
				return nil
			}
		}
	}
}

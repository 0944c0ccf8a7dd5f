package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-tonebox/tonebox/backend"
	"github.com/valerio/go-tonebox/tonebox/backend/terminal/render"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/input"
	"github.com/valerio/go-tonebox/tonebox/input/action"
	"github.com/valerio/go-tonebox/tonebox/input/event"
)

const (
	statusHeight  = 14
	minTermWidth  = 60
	minTermHeight = 20
	logCapacity   = 200
)

// A terminal only reports key presses, so a held key is seen as repeated
// presses. The board switch is released once no repeat arrived for this
// long, slightly longer than a typical key repeat interval.
const keyTimeout = 100 * time.Millisecond

// Backend renders the board state with tcell and maps keys to actions.
type Backend struct {
	screen   tcell.Screen
	running  bool
	config   backend.BackendConfig
	logs     *render.LogBuffer
	logLevel *slog.LevelVar
	now      func() time.Time
	signals  chan os.Signal

	queue     []backend.InputEvent
	s2Pressed time.Time // last key repeat for the board switch
	s2Down    bool
}

// New creates a terminal backend on the real terminal.
func New() *Backend {
	return &Backend{now: time.Now}
}

func newWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, now: time.Now}
}

func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	t.logs = render.NewLogBuffer(logCapacity)
	t.logLevel = new(slog.LevelVar)
	t.logLevel.Set(config.LogLevel)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logs, t.logLevel)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("Terminal backend initialized", "title", config.Title)
	return nil
}

func (t *Backend) Update(snap *debug.Snapshot) ([]backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	select {
	case sig := <-t.signals:
		slog.Info("Received signal", "signal", sig)
		t.quit()
	default:
	}

	events := t.switchEvents(now)
	events = append(events, t.queue...)
	t.queue = nil

	if t.running && snap != nil {
		t.render(snap)
		t.screen.Show()
	}
	return events, nil
}

func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// switchEvents turns key repeats of the board switch into press and
// release edges.
func (t *Backend) switchEvents(now time.Time) []backend.InputEvent {
	held := !t.s2Pressed.IsZero() && now.Sub(t.s2Pressed) < keyTimeout

	switch {
	case held && !t.s2Down:
		t.s2Down = true
		return []backend.InputEvent{{Action: action.BoardSwitchS2, Type: event.Press}}
	case held:
		return []backend.InputEvent{{Action: action.BoardSwitchS2, Type: event.Hold}}
	case t.s2Down:
		t.s2Down = false
		t.s2Pressed = time.Time{}
		return []backend.InputEvent{{Action: action.BoardSwitchS2, Type: event.Release}}
	}
	return nil
}

func (t *Backend) quit() {
	if !t.running {
		return
	}
	t.running = false
	t.queue = append(t.queue, backend.InputEvent{Action: action.HostQuit, Type: event.Press})
	if t.config.Callbacks.OnQuit != nil {
		t.config.Callbacks.OnQuit()
	}
}

// tcellKeyNames converts tcell keys to the names used by input.DefaultKeyMap
var tcellKeyNames = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
}

func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	}
	return tcellKeyNames[ev.Key()]
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyCtrlC {
		t.quit()
		return
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case '+':
			t.changeLogLevel(-4)
			return
		case '-':
			t.changeLogLevel(4)
			return
		}
	}

	act, ok := input.DefaultKeyMap[keyName(ev)]
	if !ok {
		return
	}

	switch act {
	case action.BoardSwitchS2:
		t.s2Pressed = now
	case action.HostQuit:
		t.quit()
	default:
		t.queue = append(t.queue, backend.InputEvent{Action: act, Type: event.Press})
	}
}

// changeLogLevel moves the log filter by delta (slog levels are 4 apart).
func (t *Backend) changeLogLevel(delta slog.Level) {
	old := t.logLevel.Level()
	next := min(max(old+delta, slog.LevelDebug), slog.LevelError)
	if next != old {
		t.logLevel.Set(next)
		slog.Warn("Log filter changed", "from", old, "to", next)
	}
}

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	onStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	offStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	ledStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func (t *Backend) render(snap *debug.Snapshot) {
	w, h := t.screen.Size()
	t.screen.Clear()

	if w < minTermWidth || h < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, h/2, w, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	t.drawText(1, 0, w, " "+t.config.Title+" ", titleStyle)
	t.drawStatus(snap, w)
	t.drawHLine(statusHeight, w)
	t.drawLogs(statusHeight+1, w, h)
}

func (t *Backend) drawStatus(snap *debug.Snapshot, w int) {
	row := 2
	field := func(label, value string, style tcell.Style) {
		t.drawText(2, row, 14, label, labelStyle)
		t.drawText(16, row, w-17, value, style)
		row++
	}

	toneStyle := onStyle
	tone := fmt.Sprintf("%s  %.1f Hz  period %d", snap.Pitch, snap.FrequencyHz, snap.Period)
	if snap.Muted {
		toneStyle = offStyle
		tone += "  (muted)"
	}
	led, ledS := "○", offStyle
	if snap.LED {
		led, ledS = "●", ledStyle
	}

	field("Mode", snap.Mode, valueStyle)
	field("State", snap.State, valueStyle)
	field("Note", fmt.Sprintf("%d/%d  %d beat(s)", snap.Cursor+1, snap.Notes, snap.Beats), valueStyle)
	field("Tone", tone, toneStyle)
	field("LED", led, ledS)
	field("Deadline", fmt.Sprintf("%d ticks (note at %d)", snap.Remaining, snap.NoteElapsed), valueStyle)
	field("Elapsed", snap.Elapsed.Truncate(time.Millisecond).String(), valueStyle)
	field("Song", progressBar(snap.Cursor, snap.Notes, w-18), valueStyle)
	field("TA0", timerLine(snap.TA0), labelStyle)
	field("TA1", timerLine(snap.TA1), labelStyle)

	keys := "space/b: S2   m: mute   d: dump   +/-: log level   q: quit"
	if snap.AudioMuted {
		keys += "   [audio muted]"
	}
	t.drawText(2, row+1, w-3, keys, labelStyle)
}

func timerLine(r debug.TimerRegs) string {
	return fmt.Sprintf("%-10s CTL=%04X R=%04X CCR0=%04X CCR1=%04X CCTL1=%04X",
		r.Mode, r.CTL, r.R, r.CCR[0], r.CCR[1], r.CCTL[1])
}

func progressBar(pos, total, width int) string {
	if total <= 0 || width <= 2 {
		return ""
	}
	filled := (pos + 1) * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (t *Backend) drawLogs(startY, w, h int) {
	available := h - startY
	if available <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logs.GetRecent(available) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		t.drawText(1, startY+i, w-2, render.FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawHLine(y, w int) {
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, '─', nil, labelStyle)
	}
}

// drawText writes s at (x, y), truncated to width cells.
func (t *Backend) drawText(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if width <= 0 {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
		width--
	}
}

var _ backend.Backend = (*Backend)(nil)

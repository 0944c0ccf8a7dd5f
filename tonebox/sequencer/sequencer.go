package sequencer

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/bit"
	"github.com/valerio/go-tonebox/tonebox/events"
	"github.com/valerio/go-tonebox/tonebox/song"
	"github.com/valerio/go-tonebox/tonebox/timer"
	"github.com/valerio/go-tonebox/tonebox/tone"
)

// Tone is the part of the tone generator the sequencer drives.
type Tone interface {
	SetFrequency(period uint16)
	Mute()
	Unmute()
	OutputMode() uint16
	RestoreOutputMode(bits uint16)
}

// Indicator is notified on every deadline. It is purely informational.
type Indicator interface {
	Toggle()
	Clear()
}

// Sequencer walks the song table on a single up-mode counter. CCR1 holds
// the gap deadline and CCR0 the last tick of the note, so TAIFG marks the
// advance deadline. Both are relative to the counter's restart at zero,
// which is the start of the note.
type Sequencer struct {
	table *song.Table
	cfg   Config
	t     *timer.Timer
	tone  Tone

	indicator Indicator
	recorder  *events.Recorder

	cursor int
	mode   Mode
	phase  State
	saved  uint16 // tone output mode captured at pause
}

var _ Tone = (*tone.Generator)(nil)

// New validates the configuration against the table and returns a
// sequencer driving t. Call Init before use.
func New(table *song.Table, cfg Config, t *timer.Timer, gen Tone) (*Sequencer, error) {
	if table == nil {
		return nil, ErrNoTable
	}
	if err := cfg.Validate(table.MaxBeats()); err != nil {
		return nil, fmt.Errorf("sequencer config: %w", err)
	}
	return &Sequencer{
		table: table,
		cfg:   cfg,
		t:     t,
		tone:  gen,
	}, nil
}

// SetIndicator attaches an indicator. nil detaches it.
func (s *Sequencer) SetIndicator(ind Indicator) {
	s.indicator = ind
}

// SetRecorder attaches an event recorder. nil detaches it.
func (s *Sequencer) SetRecorder(rec *events.Recorder) {
	s.recorder = rec
}

// Init programs note 0 on the tone generator (muted) and both deadlines
// for it, then enables the timer interrupt. The counter stays stopped
// until the first Toggle.
func (s *Sequencer) Init() {
	s.t.Write(addr.CTL, addr.TASSELACLK|addr.ID1|addr.MCStop|addr.TACLR)
	s.t.Write(addr.CCTL0, 0)
	s.t.Write(addr.CCTL1, 0)

	s.cursor = 0
	s.mode = Stopped
	s.phase = PlayingTone

	note := s.table.NoteAt(0)
	s.saved = addr.OUTMOD0
	if period, audible := s.table.Lookup().PeriodFor(note.Pitch); audible {
		s.tone.SetFrequency(period)
		s.saved = addr.OUTMOD3
	}
	s.tone.Mute()
	s.programDeadlines(note)

	s.t.InterruptHandler = s.HandleInterrupt
	s.t.Write(addr.CCTL1, addr.CCIE)
	s.t.Write(addr.CTL, bit.Set(s.t.Read(addr.CTL), addr.TAIE))
}

func (s *Sequencer) programDeadlines(n song.Note) {
	s.t.Write(addr.CCR1, s.cfg.GapTicks)
	s.t.Write(addr.CCR0, uint16(s.cfg.Deadline(n.Beats)-1))
}

// HandleInterrupt serves the timer's CCIFG1 and TAIFG sources. Both flags
// are cleared whether or not they were set.
func (s *Sequencer) HandleInterrupt() {
	cctl1 := s.t.Read(addr.CCTL1)
	gap := bit.Has(cctl1, addr.CCIFG)
	s.t.Write(addr.CCTL1, bit.Clear(cctl1, addr.CCIFG))

	ctl := s.t.Read(addr.CTL)
	advance := bit.Has(ctl, addr.TAIFG)
	s.t.Write(addr.CTL, bit.Clear(ctl, addr.TAIFG))

	if gap {
		s.onGap()
	}
	if advance {
		s.onAdvance()
	}
}

func (s *Sequencer) onGap() {
	s.tone.Mute()
	s.phase = Resting
	if s.indicator != nil {
		s.indicator.Toggle()
	}
	s.recorder.Record(events.Event{
		Ticks: s.t.Counted(),
		Type:  events.GapDeadline,
		Index: s.cursor,
	})
}

func (s *Sequencer) onAdvance() {
	s.cursor = s.table.Next(s.cursor)
	note := s.table.NoteAt(s.cursor)
	lookup := s.table.Lookup()

	if period, audible := lookup.PeriodFor(note.Pitch); audible {
		s.tone.SetFrequency(period)
		s.tone.Unmute()
	} else {
		s.tone.Mute()
	}
	s.programDeadlines(note)
	s.phase = PlayingTone

	if s.indicator != nil {
		s.indicator.Clear()
	}
	s.recorder.Record(events.Event{
		Ticks:  s.t.Counted(),
		Type:   events.AdvanceDeadline,
		Index:  s.cursor,
		Detail: lookup.Name(note.Pitch),
	})
	slog.Debug("Advanced to note", "index", s.cursor, "pitch", lookup.Name(note.Pitch), "beats", note.Beats)
}

// Toggle is the button action: it pauses a running sequencer and starts
// or resumes a stopped or paused one. It returns the new mode.
func (s *Sequencer) Toggle() Mode {
	if s.mode == Running {
		s.pause()
	} else {
		s.resume()
	}

	s.recorder.Record(events.Event{
		Ticks:  s.t.Counted(),
		Type:   events.ModeChange,
		Index:  s.cursor,
		Detail: s.mode.String(),
	})
	slog.Info("Playback mode changed", "mode", s.mode, "index", s.cursor, "counter", s.t.Counter())
	return s.mode
}

// pause freezes the counter where it is. Nothing else is reprogrammed.
func (s *Sequencer) pause() {
	s.saved = s.tone.OutputMode()
	s.tone.Mute()
	s.t.Write(addr.CTL, bit.Replace(s.t.Read(addr.CTL), addr.MCMask, addr.MCStop))
	s.mode = Paused
}

func (s *Sequencer) resume() {
	s.tone.RestoreOutputMode(s.saved)
	s.t.Write(addr.CTL, bit.Replace(s.t.Read(addr.CTL), addr.MCMask, addr.MCUp))
	s.mode = Running
}

// Mode returns the playback mode.
func (s *Sequencer) Mode() Mode {
	return s.mode
}

// State returns the note phase, or Idle when not running.
func (s *Sequencer) State() State {
	if s.mode != Running {
		return Idle
	}
	return s.phase
}

// Cursor returns the index of the current note.
func (s *Sequencer) Cursor() int {
	return s.cursor
}

// Note returns the current note.
func (s *Sequencer) Note() song.Note {
	return s.table.NoteAt(s.cursor)
}

// Table returns the song being played.
func (s *Sequencer) Table() *song.Table {
	return s.table
}

// Config returns the timing configuration.
func (s *Sequencer) Config() Config {
	return s.cfg
}

// NoteElapsed returns the counted ticks since the current note started.
func (s *Sequencer) NoteElapsed() uint32 {
	return uint32(s.t.Counter())
}

// Remaining returns the counted ticks until the next deadline fires.
func (s *Sequencer) Remaining() uint32 {
	r := uint32(s.t.Counter())
	if gap := uint32(s.cfg.GapTicks); r < gap {
		return gap - r
	}
	return uint32(s.t.Read(addr.CCR0)) + 1 - r
}

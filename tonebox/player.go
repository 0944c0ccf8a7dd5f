package tonebox

import (
	"fmt"
	"sync"
	"time"

	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/audio"
	"github.com/valerio/go-tonebox/tonebox/button"
	"github.com/valerio/go-tonebox/tonebox/clock"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/events"
	"github.com/valerio/go-tonebox/tonebox/gpio"
	"github.com/valerio/go-tonebox/tonebox/indicator"
	"github.com/valerio/go-tonebox/tonebox/input"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/song"
	"github.com/valerio/go-tonebox/tonebox/tone"
)

// Config selects the song and timing of a Player.
type Config struct {
	Song       *song.Table // nil plays the built-in melody
	Sequencer  sequencer.Config
	Debounce   time.Duration
	EventLimit int // events kept for inspection
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Sequencer:  sequencer.DefaultConfig(),
		Debounce:   button.DefaultDelay,
		EventLimit: 256,
	}
}

// Player is the emulated board running the tone sequencer firmware. One
// mutex serialises the emulated hardware, its interrupt handlers and the
// control loop, as a single interrupt priority level would.
type Player struct {
	mu sync.Mutex

	board *Board
	gen   *tone.Generator
	seq   *sequencer.Sequencer
	led   *indicator.LED
	s2    *button.PortLine
	rec   *events.Recorder

	loop        *controlLoop
	cooperative bool
}

// pollSamples is the control loop polling period, one millisecond.
const pollSamples = audio.SampleRate / 1000

// New powers up the board and runs the firmware startup sequence: clocks,
// button and LED, speaker pin, tone generator on note 0 (muted), sequencer
// deadlines for note 0, timer interrupt enabled. Playback starts stopped.
func New(cfg Config) (*Player, error) {
	table := cfg.Song
	if table == nil {
		table = song.ItsyBitsySpider()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = button.DefaultDelay
	}

	b := NewBoard()
	p := &Player{
		board:       b,
		rec:         events.NewRecorder(max(cfg.EventLimit, 1)),
		cooperative: true,
	}

	b.Clock.ConfigureClockSource()

	p.s2 = button.Configure(b.P1, addr.Switch2)
	p.led = indicator.New(b.P2, addr.LEDRed)
	p.led.Init()

	gpio.ConfigurePinAsToneOutput(b.P2, addr.Speaker)

	p.gen = tone.New(b.TA0, 1)
	p.gen.Configure()

	seq, err := sequencer.New(table, cfg.Sequencer, b.TA1, p.gen)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequencer: %w", err)
	}
	seq.SetIndicator(p.led)
	seq.SetRecorder(p.rec)
	seq.Init()
	p.seq = seq

	btn := button.New(p.s2,
		button.WithDelay(cfg.Debounce),
		button.WithClock(b.Elapsed))
	p.loop = newControlLoop(btn, seq)

	return p, nil
}

// AdvanceSamples runs the board for n sample periods, polling the control
// loop every millisecond of emulated time.
func (p *Player) AdvanceSamples(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for iter := 0; iter < n; iter++ {
		p.board.Step()
		if p.cooperative && p.board.Samples()%pollSamples == 0 {
			p.loop.poll()
		}
	}
}

// Advance runs the board for d of emulated time.
func (p *Player) Advance(d time.Duration) {
	p.AdvanceSamples(int(d * audio.SampleRate / time.Second))
}

// Toggle performs the button action directly, bypassing the switch.
func (p *Player) Toggle() sequencer.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Toggle()
}

// Press holds switch S2 down.
func (p *Player) Press() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board.SetSwitch(true)
}

// Release lets switch S2 go.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board.SetSwitch(false)
}

var _ input.Switch = (*Player)(nil)

// Mode returns the playback mode.
func (p *Player) Mode() sequencer.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Mode()
}

// State returns the sequencer state, Idle unless running.
func (p *Player) State() sequencer.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.State()
}

// Cursor returns the index of the current note.
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq.Cursor()
}

// Tone returns the tone generator state.
func (p *Player) Tone() tone.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.State()
}

// Elapsed returns the emulated time since power-up.
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.board.Elapsed()
}

// Events returns the recorder of deadline fires and mode changes.
func (p *Player) Events() *events.Recorder {
	return p.rec
}

// Audio returns the speaker sample stream. It is safe to read from
// another goroutine.
func (p *Player) Audio() audio.Provider {
	return p.board.Sampler
}

// AddAudioTap registers fn to receive every mono speaker sample.
func (p *Player) AddAudioTap(fn func(int16)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board.Sampler.AddTap(fn)
}

// Song returns the table being played.
func (p *Player) Song() *song.Table {
	return p.seq.Table()
}

// Snapshot captures the board and sequencer state.
func (p *Player) Snapshot() *debug.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	note := p.seq.Note()
	lookup := p.seq.Table().Lookup()
	toneHz := p.board.Clock.Frequency(clock.SMCLK) / 8

	snap := &debug.Snapshot{
		Elapsed:     p.board.Elapsed(),
		Mode:        p.seq.Mode().String(),
		State:       p.seq.State().String(),
		Cursor:      p.seq.Cursor(),
		Notes:       p.seq.Table().Len(),
		Pitch:       lookup.Name(note.Pitch),
		Beats:       note.Beats,
		FrequencyHz: lookup.FrequencyHz(note.Pitch, toneHz),
		Muted:       p.gen.Muted(),
		LED:         p.led.On(),
		NoteElapsed: p.seq.NoteElapsed(),
		Remaining:   p.seq.Remaining(),
		TA0:         debug.CaptureTimer(p.board.TA0),
		TA1:         debug.CaptureTimer(p.board.TA1),
		Samples:     p.board.Sampler.Total(),
		AudioMuted:  p.board.Sampler.Muted(),
		TotalEvents: p.rec.Total(),
	}
	if period, audible := lookup.PeriodFor(note.Pitch); audible {
		snap.Period = period
	}

	recent := p.rec.Events()
	snap.Recent = recent[max(len(recent)-8, 0):]
	return snap
}

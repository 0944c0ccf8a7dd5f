package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"
	"github.com/valerio/go-tonebox/tonebox"
	"github.com/valerio/go-tonebox/tonebox/backend"
	"github.com/valerio/go-tonebox/tonebox/backend/headless"
	"github.com/valerio/go-tonebox/tonebox/backend/sdl2"
	"github.com/valerio/go-tonebox/tonebox/backend/speaker"
	"github.com/valerio/go-tonebox/tonebox/backend/terminal"
	"github.com/valerio/go-tonebox/tonebox/clock"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/timing"
)

var (
	gapFlag = cli.DurationFlag{
		Name:  "gap",
		Usage: "How long each note sounds before it is muted (default 0x0D00 ACLK ticks)",
	}
	beatFlag = cli.DurationFlag{
		Name:  "beat",
		Usage: "Silence after the tone per beat of the note (default 0x1FFF ACLK ticks)",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "tonebox"
	app.Description = "A button-controlled tone sequencer running on an emulated launchpad"
	app.Usage = "tonebox [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal interface",
		},
		cli.DurationFlag{
			Name:  "duration",
			Usage: "Emulated time to run in headless mode",
			Value: 10 * time.Second,
		},
		cli.StringSliceFlag{
			Name:  "press-at",
			Usage: "Press S2 at this emulated time in headless mode (repeatable, e.g. 500ms)",
		},
		cli.StringFlag{
			Name:  "wav",
			Usage: "Record the speaker to a WAV file",
		},
		gapFlag,
		beatFlag,
		cli.DurationFlag{
			Name:  "debounce",
			Usage: "Button debounce delay",
			Value: tonebox.DefaultConfig().Debounce,
		},
		cli.StringFlag{
			Name:  "audio",
			Usage: "Audio output: none, speaker or sdl2",
			Value: "none",
		},
		cli.StringFlag{
			Name:  "pacing",
			Usage: "Frame pacing: none, ticker or adaptive (headless defaults to none)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "blocking-control",
			Usage: "Debounce S2 in wall-clock time on a separate goroutine",
		},
		cli.BoolFlag{
			Name:  "dump",
			Usage: "Dump the final board state on exit",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save state snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save snapshots (default: temp directory)",
		},
	}
	app.Action = runPlayer
	app.Commands = []cli.Command{
		{
			Name:   "song",
			Usage:  "Print the built-in melody with note timings",
			Flags:  []cli.Flag{gapFlag, beatFlag},
			Action: printSong,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running tonebox", "error", err)
		os.Exit(1)
	}
}

func runPlayer(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	cfg := tonebox.DefaultConfig()
	cfg.Debounce = c.Duration("debounce")
	if cfg.Sequencer, err = sequencerConfig(c.Duration("gap"), c.Duration("beat")); err != nil {
		return err
	}

	player, err := tonebox.New(cfg)
	if err != nil {
		return err
	}

	sink, err := audioSink(c.String("audio"))
	if err != nil {
		return err
	}

	run := tonebox.RunConfig{
		Audio:           sink,
		WavPath:         c.String("wav"),
		BlockingControl: c.Bool("blocking-control"),
		SnapshotDir:     c.String("snapshot-dir"),
		BackendConfig: backend.BackendConfig{
			Title:    "tonebox",
			LogLevel: level,
		},
	}

	pacing := c.String("pacing")
	if err := checkPacing(c.Bool("headless"), run.BlockingControl, pacing); err != nil {
		return err
	}
	if c.Bool("headless") {
		if pacing == "" {
			pacing = timing.PacingNone
		}
		hb, err := headlessBackend(c)
		if err != nil {
			return err
		}
		run.Backend = hb
	} else {
		run.Backend = terminal.New()
	}
	if run.Limiter, err = timing.New(pacing); err != nil {
		return err
	}

	if err := player.Run(context.Background(), run); err != nil {
		return err
	}

	snap := player.Snapshot()
	if c.Bool("headless") {
		fmt.Println(renderSummary(snap, run.WavPath))
	}
	if c.Bool("dump") {
		debug.Dump(os.Stdout, snap)
	}
	return nil
}

func headlessBackend(c *cli.Context) (*headless.Backend, error) {
	duration := c.Duration("duration")
	if duration <= 0 {
		return nil, errors.New("headless mode requires a positive --duration")
	}

	presses, err := parsePresses(c.StringSlice("press-at"))
	if err != nil {
		return nil, err
	}

	snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"))
	if err != nil {
		return nil, err
	}

	frames := headless.FramesFor(duration)
	slog.Info("Running headless mode", "frames", frames, "presses", len(presses), "snapshot_dir", snapshots.Directory)
	return headless.New(frames, presses, snapshots), nil
}

// parsePresses converts --press-at values into frame numbers.
func parsePresses(values []string) ([]int, error) {
	at := make([]time.Duration, 0, len(values))
	for _, v := range values {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid --press-at %q: %w", v, err)
		}
		at = append(at, d)
	}
	return headless.PressFrames(at)
}

// sequencerConfig builds the timing from flag durations, keeping the
// default tick count for any duration left at zero.
func sequencerConfig(gap, beat time.Duration) (sequencer.Config, error) {
	cfg := sequencer.DefaultConfig()
	if gap == 0 && beat == 0 {
		return cfg, nil
	}

	defGap, defBeat := cfg.Durations(clock.LFXTHz)
	if gap == 0 {
		gap = defGap
	}
	if beat == 0 {
		beat = defBeat
	}
	return sequencer.ConfigFromDurations(gap, beat, clock.LFXTHz)
}

func audioSink(name string) (backend.AudioSink, error) {
	switch name {
	case "", "none":
		return backend.NoAudio{}, nil
	case "speaker":
		return speaker.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown audio output %q", name)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return level, nil
}

// checkPacing rejects an unpaced headless run with the blocking control
// loop: scripted presses then last microseconds of wall-clock time and
// never get past the debouncer.
func checkPacing(headless, blocking bool, pacing string) error {
	if headless && blocking && (pacing == "" || pacing == timing.PacingNone) {
		return errors.New("--blocking-control in headless mode requires --pacing ticker or adaptive")
	}
	return nil
}

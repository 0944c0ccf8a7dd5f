package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tonebox/tonebox/backend"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/song"
)

func TestSequencerConfig(t *testing.T) {
	cfg, err := sequencerConfig(0, 0)
	require.NoError(t, err)
	assert.Equal(t, sequencer.DefaultConfig(), cfg)

	cfg, err = sequencerConfig(0, 250*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint16(sequencer.DefaultGapTicks), cfg.GapTicks)
	assert.Equal(t, uint16(8192), cfg.BeatTicks)

	_, err = sequencerConfig(0, time.Hour)
	assert.Error(t, err)
}

func TestParsePresses(t *testing.T) {
	frames, err := parsePresses([]string{"100ms", "1s"})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 60}, frames)

	_, err = parsePresses([]string{"soon"})
	assert.Error(t, err)
}

func TestAudioSink(t *testing.T) {
	sink, err := audioSink("none")
	require.NoError(t, err)
	assert.IsType(t, backend.NoAudio{}, sink)

	_, err = audioSink("radio")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())

	_, err = parseLevel("chatty")
	assert.Error(t, err)
}

func TestRenderSong(t *testing.T) {
	out := renderSong(newStyles(), song.ItsyBitsySpider(), sequencer.DefaultConfig())
	lines := strings.Split(out, "\n")

	// title, header, 48 notes, cycle length
	assert.Len(t, lines, 51)
	assert.Contains(t, lines[2], "G3")
	assert.Contains(t, lines[2], "196.0Hz")
	assert.Contains(t, lines[49], "rest")
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(&debug.Snapshot{
		Elapsed: 2 * time.Second,
		Mode:    "running",
		State:   "playing",
		Cursor:  3,
		Notes:   48,
		Pitch:   "C4",
	}, "out.wav")

	assert.Contains(t, out, "running")
	assert.Contains(t, out, "4/48 C4")
	assert.Contains(t, out, "out.wav")
}

func TestCheckPacing(t *testing.T) {
	tests := []struct {
		name     string
		headless bool
		blocking bool
		pacing   string
		wantErr  bool
	}{
		{"terminal blocking", false, true, "", false},
		{"headless cooperative", true, false, "", false},
		{"headless blocking unpaced", true, true, "", true},
		{"headless blocking explicit none", true, true, "none", true},
		{"headless blocking ticker", true, true, "ticker", false},
		{"headless blocking adaptive", true, true, "adaptive", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPacing(tt.headless, tt.blocking, tt.pacing)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSongCommandFlags(t *testing.T) {
	assert.Equal(t, "gap", gapFlag.Name)
	assert.Equal(t, "beat", beatFlag.Name)
	assert.Contains(t, gapFlag.Usage, "sounds")
}

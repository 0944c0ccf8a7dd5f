package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli"
	"github.com/valerio/go-tonebox/tonebox/clock"
	"github.com/valerio/go-tonebox/tonebox/debug"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/song"
)

func printSong(c *cli.Context) error {
	cfg, err := sequencerConfig(c.Duration("gap"), c.Duration("beat"))
	if err != nil {
		return err
	}
	table := song.ItsyBitsySpider()
	if err := cfg.Validate(table.MaxBeats()); err != nil {
		return err
	}
	fmt.Println(renderSong(newStyles(), table, cfg))
	return nil
}

// renderSong lists every note with its pitch, frequency and timing.
func renderSong(st styles, table *song.Table, cfg sequencer.Config) string {
	lookup := table.Lookup()
	gap, beat := cfg.Durations(clock.LFXTHz)

	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("%d notes, gap %v, beat %v", table.Len(), round(gap), round(beat))))
	b.WriteString("\n")
	b.WriteString(st.header.Render(fmt.Sprintf("%4s  %-5s %9s %6s %10s %10s", "#", "pitch", "freq", "beats", "starts", "length")))
	b.WriteString("\n")

	var at time.Duration
	for i, n := range table.Notes() {
		length := gap + time.Duration(n.Beats)*beat
		freq := "-"
		if _, audible := lookup.PeriodFor(n.Pitch); audible {
			freq = fmt.Sprintf("%.1fHz", lookup.FrequencyHz(n.Pitch, song.ToneClockHz))
		}
		line := fmt.Sprintf("%4d  %-5s %9s %6d %10v %10v", i, lookup.Name(n.Pitch), freq, n.Beats, round(at), round(length))
		if n.Pitch == lookup.Rest() {
			line = st.rest.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		at += length
	}
	b.WriteString(st.label.Render("cycle") + st.value.Render(round(at).String()))
	return b.String()
}

// renderSummary describes where a headless run ended.
func renderSummary(snap *debug.Snapshot, wavPath string) string {
	st := newStyles()
	rows := [][2]string{
		{"elapsed", round(snap.Elapsed).String()},
		{"mode", snap.Mode},
		{"state", snap.State},
		{"note", fmt.Sprintf("%d/%d %s", snap.Cursor+1, snap.Notes, snap.Pitch)},
		{"events", fmt.Sprintf("%d", snap.TotalEvents)},
		{"samples", fmt.Sprintf("%d", snap.Samples)},
	}
	if wavPath != "" {
		rows = append(rows, [2]string{"wav", wavPath})
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, st.header.Render("tonebox run"))
	for _, r := range rows {
		lines = append(lines, st.label.Render(r[0])+st.value.Render(r[1]))
	}
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}

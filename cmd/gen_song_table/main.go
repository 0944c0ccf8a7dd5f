package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/valerio/go-tonebox/tonebox/clock"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/song"
)

const (
	startMarker = "<!-- MELODY:START -->"
	endMarker   = "<!-- MELODY:END -->"
)

func main() {
	var (
		readme string
		cols   int
	)
	pflag.StringVarP(&readme, "readme", "r", "README.md", "Path to README file to update in place")
	pflag.IntVarP(&cols, "cols", "c", 4, "Number of notes per row")
	pflag.Parse()

	content, err := os.ReadFile(readme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %v\n", readme, err)
		os.Exit(1)
	}

	table := renderTable(song.ItsyBitsySpider(), sequencer.DefaultConfig(), cols)
	out, err := replaceBetweenMarkers(string(content), table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", readme, err)
		os.Exit(1)
	}

	if err := os.WriteFile(readme, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", readme, err)
		os.Exit(1)
	}
}

// renderTable lays the melody out as a markdown table, cols notes per row.
func renderTable(t *song.Table, cfg sequencer.Config, cols int) string {
	if cols <= 0 {
		cols = 4
	}
	lookup := t.Lookup()
	gap, beat := cfg.Durations(clock.LFXTHz)

	var buf bytes.Buffer
	buf.WriteString("|")
	for iter := 0; iter < cols; iter++ {
		buf.WriteString(" # | note | length |")
	}
	buf.WriteString("\n|")
	for iter := 0; iter < cols; iter++ {
		buf.WriteString("---|---|---|")
	}
	buf.WriteString("\n")

	notes := t.Notes()
	for i := 0; i < len(notes); i += cols {
		buf.WriteString("|")
		for c := 0; c < cols; c++ {
			if i+c >= len(notes) {
				buf.WriteString("  |  |  |")
				continue
			}
			n := notes[i+c]
			length := (gap + time.Duration(n.Beats)*beat).Round(time.Millisecond)
			fmt.Fprintf(&buf, " %d | %s | %v |", i+c, lookup.Name(n.Pitch), length)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func replaceBetweenMarkers(content, body string) (string, error) {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return "", errors.New("markers not found; ensure " + startMarker + " and " + endMarker + " exist")
	}

	var out strings.Builder
	out.WriteString(content[:start+len(startMarker)])
	out.WriteString("\n")
	out.WriteString(body)
	after := content[end:]
	if !strings.HasPrefix(after, "\n") {
		out.WriteString("\n")
	}
	out.WriteString(after)
	return out.String(), nil
}

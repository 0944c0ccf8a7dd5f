package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tonebox/tonebox/sequencer"
	"github.com/valerio/go-tonebox/tonebox/song"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(song.ItsyBitsySpider(), sequencer.DefaultConfig(), 5)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// header, separator, ceil(48/5) rows
	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[2], "| 0 | G3 | 352ms |"), lines[2])
	assert.Contains(t, lines[11], "| 47 | rest |")
	assert.True(t, strings.HasSuffix(lines[11], "|  |  |"))
}

func TestReplaceBetweenMarkers(t *testing.T) {
	in := "intro\n" + startMarker + "\nold\n" + endMarker + "\noutro\n"
	out, err := replaceBetweenMarkers(in, "new\n")
	require.NoError(t, err)
	assert.Equal(t, "intro\n"+startMarker+"\nnew\n"+endMarker+"\noutro\n", out)

	_, err = replaceBetweenMarkers("no markers", "x")
	assert.Error(t, err)
}

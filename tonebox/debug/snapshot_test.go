package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/timer"
)

func TestCaptureTimer(t *testing.T) {
	tm := timer.New("TA1")
	tm.Write(addr.CCR0, 99)
	tm.Write(addr.CCR1, 40)
	tm.Write(addr.CCTL1, addr.CCIE)
	tm.Write(addr.CTL, addr.TASSELACLK|addr.MCUp)
	tm.Tick(10)

	regs := CaptureTimer(tm)
	assert.Equal(t, "TA1", regs.Name)
	assert.Equal(t, "up", regs.Mode)
	assert.Equal(t, uint16(10), regs.R)
	assert.Equal(t, uint16(99), regs.CCR[0])
	assert.Equal(t, uint16(40), regs.CCR[1])
	assert.Equal(t, addr.CCIE, regs.CCTL[1])
	assert.Equal(t, uint64(10), regs.Counted)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, &Snapshot{Mode: "paused", Cursor: 7, Pitch: "E4"})

	out := buf.String()
	assert.Contains(t, out, `Mode: (string) (len=6) "paused"`)
	assert.Contains(t, out, "Cursor: (int) 7")
	assert.NotContains(t, out, "0xc0", "no pointer addresses")
}

func TestSaveSnapshot(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveSnapshot(&Snapshot{Mode: "running"}, dir, 30)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, "_frame_30.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "running")
}

func TestSaveSnapshot_DistinctFrames(t *testing.T) {
	dir := t.TempDir()
	first, err := SaveSnapshot(&Snapshot{Cursor: 1}, dir, 30)
	require.NoError(t, err)
	second, err := SaveSnapshot(&Snapshot{Cursor: 2}, dir, 45)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "snapshots within the same second must not overwrite each other")
}

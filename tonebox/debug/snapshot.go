package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/valerio/go-tonebox/tonebox/addr"
	"github.com/valerio/go-tonebox/tonebox/events"
	"github.com/valerio/go-tonebox/tonebox/timer"
)

// TimerRegs is a copy of a timer's register file.
type TimerRegs struct {
	Name    string
	Mode    string
	CTL     uint16
	R       uint16
	CCTL    [addr.TimerChannels]uint16
	CCR     [addr.TimerChannels]uint16
	Counted uint64
	Storms  uint64
}

// CaptureTimer reads every register of t.
func CaptureTimer(t *timer.Timer) TimerRegs {
	regs := TimerRegs{
		Name:    t.Name(),
		Mode:    t.Mode().String(),
		CTL:     t.Read(addr.CTL),
		R:       t.Read(addr.R),
		Counted: t.Counted(),
		Storms:  t.Storms(),
	}
	for ch := 0; ch < addr.TimerChannels; ch++ {
		regs.CCTL[ch] = t.Read(addr.CCTL(ch))
		regs.CCR[ch] = t.Read(addr.CCR(ch))
	}
	return regs
}

// Snapshot is the player state handed to backends each frame.
type Snapshot struct {
	Elapsed time.Duration // emulated time since power-up

	Mode   string
	State  string
	Cursor int
	Notes  int

	Pitch       string
	Beats       uint8
	Period      uint16
	FrequencyHz float64
	Muted       bool
	LED         bool

	NoteElapsed uint32 // sequencer ticks
	Remaining   uint32 // sequencer ticks to the next deadline

	TA0 TimerRegs
	TA1 TimerRegs

	Samples     uint64
	AudioMuted  bool
	Recent      []events.Event
	TotalEvents uint64
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a full, human-readable dump of s.
func Dump(w io.Writer, s *Snapshot) {
	dumper.Fdump(w, s)
}

// SaveSnapshot dumps s to a file named after the current time and frame,
// in directory, or in the working directory when directory is empty.
func SaveSnapshot(s *Snapshot, directory string, frame int) (string, error) {
	if directory == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		directory = cwd
	}

	name := fmt.Sprintf("tonebox_snapshot_%s_frame_%d.txt", time.Now().Format("20060102_150405"), frame)
	path := filepath.Join(directory, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	Dump(f, s)
	slog.Info("Snapshot saved", "path", path, "frame", frame, "cursor", s.Cursor, "mode", s.Mode)
	return path, nil
}

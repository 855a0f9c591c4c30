package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"

	countdown "github.com/d093w1z/countdown/api"
)

// display renders foreground progress for `countdown run`.
type display interface {
	update(snap countdown.Snapshot)
	stop()
}

// newDisplay animates a spinner on a terminal and falls back to one line per
// second everywhere else.
func newDisplay(w io.Writer) display {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newSpinnerDisplay(f)
	}
	return &lineDisplay{w: w}
}

func statusText(snap countdown.Snapshot) string {
	text := countdown.FormatHMS(snap.Remaining)
	if snap.State == countdown.Paused {
		text += " (paused)"
	}
	return fmt.Sprintf("%s  %3.0f%%", text, snap.Progress()*100)
}

// ------------------- spinner -------------------

var urgencyColors = map[countdown.Urgency]func(a ...interface{}) string{
	countdown.Normal:   fmt.Sprint,
	countdown.Warning:  color.New(color.FgYellow).SprintFunc(),
	countdown.Critical: color.New(color.FgRed, color.Bold).SprintFunc(),
}

type spinnerDisplay struct {
	s *spinner.Spinner
}

func newSpinnerDisplay(w io.Writer) *spinnerDisplay {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Start()
	return &spinnerDisplay{s: s}
}

func (d *spinnerDisplay) update(snap countdown.Snapshot) {
	d.s.Lock()
	d.s.Suffix = " " + urgencyColors[snap.Urgency()](statusText(snap))
	d.s.Unlock()
}

func (d *spinnerDisplay) stop() {
	d.s.Stop()
}

// ------------------- plain lines -------------------

type lineDisplay struct {
	w    io.Writer
	last countdown.Snapshot
}

func (d *lineDisplay) update(snap countdown.Snapshot) {
	if !snap.State.Active() {
		return
	}
	if snap.Remaining == d.last.Remaining && snap.State == d.last.State {
		return
	}
	d.last = snap
	fmt.Fprintln(d.w, statusText(snap))
}

func (d *lineDisplay) stop() {}

// Package polybar drives a countdown Engine from a status bar: it prints a
// status line once per second and reads control commands from a FIFO.
//
// The command goroutine is the engine's single coordinator; every control call
// goes through it.
package polybar

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	countdown "github.com/d093w1z/countdown/api"
)

// selectionStep is how far inc/dec move the selected duration.
const selectionStep = time.Minute

var (
	fifoPipePath string

	engineMu sync.Mutex
	engine   *countdown.Engine
	notifier *countdown.Notifier

	jobMu sync.Mutex
	job   *countdown.Job

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
	stopping  = make(chan struct{})
)

// --- Engine injection ---

// SetEngine provides the engine the bar controls. Safe to call before or after Init().
func SetEngine(e *countdown.Engine) {
	engineMu.Lock()
	defer engineMu.Unlock()
	engine = e
}

// SetNotifier provides the notifier used by the detach command.
func SetNotifier(n *countdown.Notifier) {
	engineMu.Lock()
	defer engineMu.Unlock()
	notifier = n
}

func getEngine() *countdown.Engine {
	engineMu.Lock()
	defer engineMu.Unlock()
	return engine
}

func getNotifier() *countdown.Notifier {
	engineMu.Lock()
	defer engineMu.Unlock()
	return notifier
}

// --- FIFO setup ---

func Init(base string) error {
	if base == "" {
		base = os.Getenv("COUNTDOWN_PIPE")
	}
	if base == "" {
		base = filepath.Join(os.TempDir(), "countdown.pipe")
	}
	path, err := InitWithBase(base)
	if err != nil {
		return fmt.Errorf("polybar.Init: %w", err)
	}
	slog.Info("FIFO created", "path", path)
	return nil
}

func InitWithBase(base string) (string, error) {
	abs := base
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(os.TempDir(), base)
	}

	path, err := mkfifoUnique(abs, 0666)
	if err != nil {
		return "", err
	}
	fifoPipePath = path
	return path, nil
}

func mkfifoUnique(base string, mode os.FileMode) (string, error) {
	pid := os.Getpid()

	for i := 0; i < 1000; i++ {
		var path string
		if i == 0 {
			path = fmt.Sprintf("%s.%d", base, pid)
		} else {
			path = fmt.Sprintf("%s.%d.%d", base, pid, i)
		}

		err := syscall.Mkfifo(path, uint32(mode.Perm()))
		if err == nil {
			return path, nil
		}
		if errors.Is(err, os.ErrExist) {
			fi, statErr := os.Lstat(path)
			if statErr != nil {
				continue
			}
			if fi.Mode()&os.ModeNamedPipe != 0 && canUseFifo(path) {
				return path, nil
			}
			continue
		}
		return "", fmt.Errorf("mkfifo %q: %w", path, err)
	}
	return "", fmt.Errorf("unable to allocate unique FIFO for base %q after many attempts", base)
}

// canUseFifo reports whether a writer can open path without blocking, i.e.
// nobody else is already serving it.
func canUseFifo(path string) bool {
	file, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return errors.Is(err, syscall.ENXIO)
	}
	file.Close()
	return false
}

// --- Main loop ---

// Main prints the status line every second until SIGINT/SIGTERM or Shutdown.
func Main() {
	if fifoPipePath == "" {
		if err := Init(""); err != nil {
			slog.Error("polybar.Main: no FIFO, commands disabled", "error", err)
		}
	}

	startOnce.Do(func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handleCmds()
		}()
	})

	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	t := time.NewTicker(time.Second)
	defer t.Stop()

	if getEngine() == nil {
		slog.Warn("polybar.Main: no engine set, timer disabled")
	}
	slog.Debug("polybar.Main: starting main loop")

	fmt.Println(output())
	for {
		select {
		case <-t.C:
			fmt.Println(output())
		case sig := <-sigc:
			slog.Info("polybar.Main: received signal, shutting down", "signal", sig)
			Shutdown()
			return
		case <-stopping:
			slog.Debug("polybar.Main: stopping channel triggered")
			return
		}
	}
}

// Shutdown stops the command loop and removes the FIFO. A detached
// notifier job is left running.
func Shutdown() {
	slog.Debug("polybar.Shutdown: initiating shutdown")
	stopOnce.Do(func() {
		close(stopping)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		// a reader blocked in open() only returns once a writer shows up
		for waiting := true; waiting; {
			if fifoPipePath != "" {
				wakeReader(fifoPipePath)
			}
			select {
			case <-done:
				waiting = false
			case <-time.After(50 * time.Millisecond):
			}
		}

		if fifoPipePath != "" {
			if err := os.Remove(fifoPipePath); err != nil && !errors.Is(err, os.ErrNotExist) {
				slog.Warn("polybar.Shutdown: removing FIFO", "path", fifoPipePath, "error", err)
			}
		}
	})
	wg.Wait()
	slog.Debug("polybar.Shutdown: complete")
}

func wakeReader(path string) {
	file, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	file.Close()
}

func FifoPath() string { return fifoPipePath }

// DetachedJob returns the notifier job started by the last detach command.
func DetachedJob() *countdown.Job {
	jobMu.Lock()
	defer jobMu.Unlock()
	return job
}

// --- Command loop ---

func handleCmds() {
	slog.Debug("polybar.handleCmds: starting command handler")
	defer slog.Debug("polybar.handleCmds: command handler stopped")

	for {
		select {
		case <-stopping:
			return
		default:
		}

		file, err := os.OpenFile(fifoPipePath, os.O_RDONLY, os.ModeNamedPipe)
		if err != nil {
			slog.Warn("polybar.handleCmds: open FIFO", "path", fifoPipePath, "error", err)
			select {
			case <-stopping:
				return
			case <-time.After(time.Second):
				continue
			}
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if err := handleCommand(scanner.Text()); err != nil {
				slog.Info("polybar.handleCmds: command rejected", "command", scanner.Text(), "error", err)
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("polybar.handleCmds: scanner error", "error", err)
		}
		_ = file.Close()

		select {
		case <-stopping:
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// handleCommand applies one FIFO line to the engine.
func handleCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	e := getEngine()
	if e == nil {
		return errors.New("no engine set")
	}

	switch cmd := fields[0]; cmd {
	case "select":
		if len(fields) != 2 {
			return fmt.Errorf("usage: select H:M:S")
		}
		h, m, s, err := countdown.ParseHMS(fields[1])
		if err != nil {
			return err
		}
		e.SelectTime(h, m, s)
		return nil
	case "start":
		return e.Start()
	case "pause":
		return e.Pause()
	case "resume":
		return e.Resume()
	case "toggle":
		if e.State() == countdown.Running {
			return e.Pause()
		}
		return e.Start()
	case "cancel":
		return e.Cancel()
	case "inc":
		adjustSelection(e, selectionStep)
		return nil
	case "dec":
		adjustSelection(e, -selectionStep)
		return nil
	case "detach":
		return detach(e)
	default:
		return fmt.Errorf("unknown command: %q", cmd)
	}
}

func adjustSelection(e *countdown.Engine, delta time.Duration) {
	d := max(e.Snapshot().Selected()+delta, 0)
	e.SelectTime(countdown.Split(d))
}

// detach hands the time left to a background notifier and tears down the
// foreground countdown.
func detach(e *countdown.Engine) error {
	n := getNotifier()
	if n == nil {
		return errors.New("no notifier set")
	}
	snap := e.Snapshot()
	if !snap.State.Active() {
		return fmt.Errorf("%w: detach while %s", countdown.ErrIllegalTransition, snap.State)
	}
	if err := e.Cancel(); err != nil {
		return err
	}

	jobMu.Lock()
	defer jobMu.Unlock()
	if job != nil {
		job.Cancel()
	}
	job = n.Launch(context.Background(), snap.Remaining)
	return nil
}

// --- Output helpers ---

func polybarActionButton(button string, action string) string {
	lbl := strings.TrimSuffix(button, "\n")
	return fmt.Sprintf("%%{A:%s:} %s %%{A}", action, lbl)
}

func pipeCommand(cmd string) string {
	return fmt.Sprintf("echo '%s' > %s", cmd, fifoPipePath)
}

func colorize(text string, u countdown.Urgency) string {
	switch u {
	case countdown.Critical:
		return "%{F#ff5555}" + text + "%{F-}"
	case countdown.Warning:
		return "%{F#ffa500}" + text + "%{F-}"
	default:
		return text
	}
}

func output() string {
	e := getEngine()
	if e == nil {
		return "--:--:--"
	}
	snap := e.Snapshot()

	var label string
	switch snap.State {
	case countdown.Running, countdown.Paused:
		label = countdown.FormatHMS(snap.Remaining)
		if snap.State == countdown.Paused {
			label += " (paused)"
		}
	default:
		label = countdown.FormatHMS(snap.Selected())
	}

	return polybarActionButton("[-]", pipeCommand("dec")) +
		polybarActionButton(colorize(label, snap.Urgency()), pipeCommand("toggle")) +
		polybarActionButton("[+]", pipeCommand("inc"))
}

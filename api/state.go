package countdown

import "time"

// ------------------- State -------------------

type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Active reports whether a countdown is in progress, suspended or not.
func (s State) Active() bool {
	return s == Running || s == Paused
}

// ------------------- Urgency -------------------

type Urgency int

const (
	Normal Urgency = iota
	Warning
	Critical
)

const (
	WarningThreshold  = 30 * time.Second
	CriticalThreshold = 10 * time.Second
)

func (u Urgency) String() string {
	switch u {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "normal"
	}
}

// ------------------- Snapshot -------------------

// Snapshot is a consistent copy of the engine's observable fields.
type Snapshot struct {
	State     State
	Hour      int
	Minute    int
	Second    int
	Total     time.Duration
	Remaining time.Duration
}

// Selected is the duration composed from the current selection.
func (s Snapshot) Selected() time.Duration {
	return Compose(s.Hour, s.Minute, s.Second)
}

// Progress is remaining/total in [0,1]; 0 when no total is known.
func (s Snapshot) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Remaining) / float64(s.Total)
	if p > 1 {
		return 1
	}
	return p
}

func (s Snapshot) Urgency() Urgency {
	if !s.State.Active() {
		return Normal
	}
	switch {
	case s.Remaining <= CriticalThreshold:
		return Critical
	case s.Remaining <= WarningThreshold:
		return Warning
	default:
		return Normal
	}
}

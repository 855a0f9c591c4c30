package countdown

import "errors"

var (
	// ErrInvalidBudget is returned by Notifier.Run when there is no time left to count.
	ErrInvalidBudget = errors.New("countdown: budget must be positive")

	// ErrIllegalTransition is wrapped by every rejected engine operation.
	ErrIllegalTransition = errors.New("countdown: illegal state transition")

	// ErrZeroDuration is returned by Start when the selection composes to zero.
	ErrZeroDuration = errors.New("countdown: selected duration is zero")

	// ErrAlertUnavailable marks a completion alert that could not be acquired or played.
	ErrAlertUnavailable = errors.New("countdown: completion alert unavailable")

	// ErrClosed is returned by Start once Close has been called.
	ErrClosed = errors.New("countdown: engine closed")

	// ErrInvalidTime is wrapped by ParseHMS for text that is not a usable H:M:S selection.
	ErrInvalidTime = errors.New("countdown: invalid time")
)

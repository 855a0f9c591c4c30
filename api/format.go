package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TickInterval is both the wait between ticks and the amount removed per tick.
const TickInterval = 1000 * time.Millisecond

// MaxDuration is the longest whole-second duration a selection can compose to.
const MaxDuration = time.Duration(maxSeconds) * time.Second

const maxSeconds = math.MaxInt64 / int64(time.Second)

// Compose turns a picker selection into a duration. Negative fields count as
// zero; selections past MaxDuration saturate at it.
func Compose(h, m, s int) time.Duration {
	total, _ := composeSeconds(h, m, s)
	return time.Duration(total) * time.Second
}

// composeSeconds reports false when the selection does not fit in a Duration.
func composeSeconds(h, m, s int) (int64, bool) {
	fields := [3]struct{ n, unit int64 }{
		{int64(max(h, 0)), 3600},
		{int64(max(m, 0)), 60},
		{int64(max(s, 0)), 1},
	}
	var total int64
	for _, f := range fields {
		if f.n > (maxSeconds-total)/f.unit {
			return maxSeconds, false
		}
		total += f.n * f.unit
	}
	return total, true
}

// Split is the inverse of Compose; sub-second remainders are dropped.
func Split(d time.Duration) (h, m, s int) {
	if d < 0 {
		return 0, 0, 0
	}
	ms := d.Milliseconds()
	h = int(ms / (1000 * 60 * 60))
	m = int((ms % (1000 * 60 * 60)) / (1000 * 60))
	s = int((ms % (1000 * 60)) / 1000)
	return h, m, s
}

// FormatHMS renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatHMS(d time.Duration) string {
	h, m, s := Split(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseHMS accepts "H:M:S", "M:S" or "S" with non-negative integer fields.
func ParseHMS(text string) (h, m, s int, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, 0, fmt.Errorf("%w: empty", ErrInvalidTime)
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q has too many fields", ErrInvalidTime, text)
	}

	fields := make([]int, 3)
	offset := 3 - len(parts)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
		}
		fields[offset+i] = n
	}
	if _, ok := composeSeconds(fields[0], fields[1], fields[2]); !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q exceeds %s", ErrInvalidTime, text, FormatHMS(MaxDuration))
	}
	return fields[0], fields[1], fields[2], nil
}

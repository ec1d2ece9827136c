package animation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fallbacks used when a duration token does not parse to a positive value.
const (
	DefaultToggleLock = 300 * time.Millisecond
	DefaultFade       = 200 * time.Millisecond

	// SettleBuffer is added to the resolved duration before the
	// animation-active flag clears.
	SettleBuffer = 100 * time.Millisecond
)

var leadingInt = regexp.MustCompile(`^\d+`)

// ExtractMs reads the leading integer of a duration token such as "300ms"
// or "300". The boolean is false when the string has no leading integer.
func ExtractMs(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DurationOr parses a millisecond token and returns fallback unless the
// result is positive.
func DurationOr(s string, fallback time.Duration) time.Duration {
	ms, ok := ExtractMs(s)
	if !ok || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

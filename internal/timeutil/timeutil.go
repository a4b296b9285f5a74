package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// Clock is an injectable time source; handlers and the ledger take one so
// tests can pin "now" instead of racing the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System — wall-clock.
var System Clock = systemClock{}

// Static returns a clock frozen at the given epoch-ms instant.
func Static(ms int64) Clock { return staticClock(ms) }

type staticClock int64

func (c staticClock) Now() time.Time { return time.UnixMilli(int64(c)) }

// NowMs — текущий момент в epoch миллисекундах.
func NowMs(c Clock) int64 { return c.Now().UnixMilli() }

// DurationMs converts day/hour/minute fields to milliseconds.
func DurationMs(days, hours, minutes int) int64 {
	return (int64(days)*24*60 + int64(hours)*60 + int64(minutes)) * 60_000
}

// FormatDelta renders a millisecond delta as "{d}d {h}h {m}m", dropping
// zero components and truncating seconds. Non-positive deltas render "Now".
func FormatDelta(ms int64) string {
	if ms <= 0 {
		return "Now"
	}
	m := ms / 60_000
	d := m / (60 * 24)
	h := (m % (60 * 24)) / 60
	mi := m % 60

	parts := make([]string, 0, 3)
	if d > 0 {
		parts = append(parts, strconv.FormatInt(d, 10)+"d")
	}
	if h > 0 {
		parts = append(parts, strconv.FormatInt(h, 10)+"h")
	}
	if mi > 0 {
		parts = append(parts, strconv.FormatInt(mi, 10)+"m")
	}
	if len(parts) == 0 {
		return "Now"
	}
	return strings.Join(parts, " ")
}

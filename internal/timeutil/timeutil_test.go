package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "zero is now", ms: 0, want: "Now"},
		{name: "negative is now", ms: -5000, want: "Now"},
		{name: "sub-minute truncates to now", ms: 59_000, want: "Now"},
		{name: "minutes only", ms: 45 * 60_000, want: "45m"},
		{name: "hours and minutes", ms: 90 * 60_000, want: "1h 30m"},
		{name: "exact day", ms: 24 * 60 * 60_000, want: "1d"},
		{name: "all components", ms: DurationMs(2, 3, 4), want: "2d 3h 4m"},
		{name: "seconds dropped not rounded", ms: 60_000 + 59_999, want: "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDelta(tt.ms))
		})
	}
}

func TestDurationMs(t *testing.T) {
	assert.Equal(t, int64(0), DurationMs(0, 0, 0))
	assert.Equal(t, int64(30*60_000), DurationMs(0, 0, 30))
	assert.Equal(t, int64(24*60*60_000), DurationMs(1, 0, 0))
	assert.Equal(t, int64((24+1)*60*60_000+60_000), DurationMs(1, 1, 1))
}

func TestStaticClock(t *testing.T) {
	c := Static(1_700_000_000_000)
	assert.Equal(t, int64(1_700_000_000_000), NowMs(c))
	// повторный вызов не двигает время
	assert.Equal(t, int64(1_700_000_000_000), NowMs(c))
}

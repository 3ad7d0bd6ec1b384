package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/lapwing/internal/task"
)

func TestParseClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"afternoon today", "3:15 PM", time.Date(2025, 6, 1, 15, 15, 0, 0, time.UTC)},
		{"noon today", "12:30 PM", time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"already passed rolls over", "8:00 AM", time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)},
		{"exactly now rolls over", "9:00 AM", time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
		{"midnight is 12 AM", "12:00 AM", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"lowercase accepted", "3:15 pm", time.Date(2025, 6, 1, 15, 15, 0, 0, time.UTC)},
		{"padding trimmed", "  3:15 PM  ", time.Date(2025, 6, 1, 15, 15, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := task.ParseClock(tc.value, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "soon", "25:00 PM", "3:15", "3 PM"} {
		_, err := task.ParseClock(bad, now)
		assert.Error(t, err, "value %q", bad)
	}
}

func TestTimeIncrements(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	got := task.TimeIncrements(now, 4)
	assert.Equal(t, []string{"9:15 AM", "9:30 AM", "9:45 AM", "10:00 AM"}, got,
		"an on-the-hour clock still starts at the next quarter")

	now = time.Date(2025, 6, 1, 9, 7, 30, 0, time.UTC)
	got = task.TimeIncrements(now, 2)
	assert.Equal(t, []string{"9:15 AM", "9:30 AM"}, got)

	now = time.Date(2025, 6, 1, 9, 59, 0, 0, time.UTC)
	got = task.TimeIncrements(now, 1)
	assert.Equal(t, []string{"10:00 AM"}, got)

	now = time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	got = task.TimeIncrements(now, 3)
	assert.Equal(t, []string{"12:00 AM", "12:15 AM", "12:30 AM"}, got,
		"slots wrap past midnight")

	now = time.Date(2025, 6, 1, 11, 50, 0, 0, time.UTC)
	got = task.TimeIncrements(now, 1)
	assert.Equal(t, []string{"12:00 PM"}, got)

	assert.Len(t, task.TimeIncrements(now, 48), 48)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "3:15 PM", task.FormatClock(time.Date(2025, 6, 1, 15, 15, 0, 0, time.UTC)))
	assert.Equal(t, "12:05 AM", task.FormatClock(time.Date(2025, 6, 1, 0, 5, 0, 0, time.UTC)))
	assert.Equal(t, "12:00 PM", task.FormatClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func TestParseClockRoundTripsIncrements(t *testing.T) {
	now := time.Date(2025, 6, 1, 16, 42, 0, 0, time.UTC)
	for _, label := range task.TimeIncrements(now, 48) {
		parsed, err := task.ParseClock(label, now)
		require.NoError(t, err, "label %q", label)
		assert.True(t, parsed.After(now), "label %q parsed to %v, not after now", label, parsed)
		assert.Equal(t, label, task.FormatClock(parsed), "label survives the round trip")
	}
}

package task

import (
	"fmt"
	"strings"
	"time"
)

// clockLayout is the 12-hour display format used everywhere a deadline is
// shown or typed: "3:15 PM".
const clockLayout = "3:04 PM"

const incrementMinutes = 15

// TimeIncrements lists count deadline choices in 15-minute steps, starting
// at the next quarter-hour after now, formatted on the 12-hour clock.
func TimeIncrements(now time.Time, count int) []string {
	step := (now.Minute()/incrementMinutes + 1) * incrementMinutes
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location()).
		Add(time.Duration(step) * time.Minute)

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, FormatClock(start.Add(time.Duration(i*incrementMinutes)*time.Minute)))
	}
	return out
}

// ParseClock turns a "3:15 PM" string into the next occurrence of that wall
// time after now: today if still ahead, otherwise tomorrow.
func ParseClock(value string, now time.Time) (time.Time, error) {
	clock, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(value)))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected something like %q: %w",
			value, "5:30 PM", err)
	}
	target := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

// FormatClock renders a time on the 12-hour clock, no leading zero.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

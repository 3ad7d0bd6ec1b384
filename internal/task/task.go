// Package task holds the task board: the task list itself, the board-wide
// deadline countdown, lap timing between completions, and the flat-file
// stores that persist all of it.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priorities run 1 (most urgent) to 5. New tasks default to the middle.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// Task is a single item on the board. LapSeconds and CompletedAt are set
// while the task is completed and cleared if it is reopened.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	LapSeconds  *int       `json:"lap_seconds,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask validates and builds a task. A priority of 0 means "unspecified"
// and takes the default; anything else outside 1..5 is rejected.
func NewTask(text string, priority int, due *time.Time, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, fmt.Errorf("task text is empty")
	}
	if priority == 0 {
		priority = DefaultPriority
	}
	if priority < MinPriority || priority > MaxPriority {
		return Task{}, fmt.Errorf("priority must be between %d and %d, got %d",
			MinPriority, MaxPriority, priority)
	}
	return Task{
		ID:        uuid.New().String(),
		Text:      text,
		Priority:  priority,
		Deadline:  due,
		CreatedAt: now,
	}, nil
}

// Overdue reports whether the task has its own deadline in the past and is
// still open.
func (t Task) Overdue(now time.Time) bool {
	return t.Deadline != nil && !t.Completed && t.Deadline.Before(now)
}

// PriorityColor maps the priority to its display color, red through green.
func (t Task) PriorityColor() string {
	switch t.Priority {
	case 1:
		return "#dc3545"
	case 2:
		return "#fd7e14"
	case 3:
		return "#ffc107"
	case 4:
		return "#20c997"
	case 5:
		return "#28a745"
	}
	return "#6c757d"
}

// FormatLapTime renders a lap duration the way the board displays it:
// "45s" under a minute, "12m 30s" under an hour, "1h 12m 30s" above.
func FormatLapTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	hours := totalSeconds / 3600
	minutes := totalSeconds % 3600 / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

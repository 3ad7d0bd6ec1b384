package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrTaskNotFound is returned when an ID does not match any task.
var ErrTaskNotFound = errors.New("task not found")

// Board is the in-memory task list plus the timing state that spans tasks:
// the board-wide deadline countdown and the anchors used for lap timing and
// the time-spent meter. Safe for concurrent use. Time never comes from the
// board itself; callers pass the clock in.
type Board struct {
	mu    sync.RWMutex
	tasks []Task

	// deadline is the countdown target; countdownStart records when it was
	// set. lastCompletion anchors the next lap; spentStart anchors the
	// time-spent-on-current-task meter.
	deadline       *time.Time
	countdownStart *time.Time
	lastCompletion *time.Time
	spentStart     *time.Time
}

// TaskUpdate is a partial edit. Nil fields are left untouched;
// ClearDeadline removes the task's own deadline.
type TaskUpdate struct {
	Text          *string
	Priority      *int
	Deadline      *time.Time
	ClearDeadline bool
}

// Stats summarizes the board for the status line.
type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Incomplete     int     `json:"incomplete"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completion_rate"`
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Add validates the fields, appends a new task and returns it.
func (b *Board) Add(text string, priority int, due *time.Time, now time.Time) (Task, error) {
	t, err := NewTask(text, priority, due, now)
	if err != nil {
		return Task{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append(b.tasks, t)
	return t, nil
}

// Get returns the task with the given ID.
func (b *Board) Get(id string) (Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Tasks returns a copy of the list in board order.
func (b *Board) Tasks() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Len reports the number of tasks.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tasks)
}

// Update applies a partial edit and returns the updated task.
func (b *Board) Update(id string, upd TaskUpdate) (Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	t := b.tasks[i]
	if upd.Text != nil {
		text := strings.TrimSpace(*upd.Text)
		if text == "" {
			return Task{}, errors.New("task text is empty")
		}
		t.Text = text
	}
	if upd.Priority != nil {
		p := *upd.Priority
		if p < MinPriority || p > MaxPriority {
			return Task{}, fmt.Errorf("priority must be between %d and %d, got %d",
				MinPriority, MaxPriority, p)
		}
		t.Priority = p
	}
	if upd.ClearDeadline {
		t.Deadline = nil
	} else if upd.Deadline != nil {
		t.Deadline = upd.Deadline
	}
	b.tasks[i] = t
	return t, nil
}

// Complete toggles the task's completed state. Marking a task done computes
// its lap, the seconds since the previous completion (zero for the first lap
// since the anchors were set), and moves the lap and time-spent anchors
// forward. Reopening the task clears its lap without moving any anchor.
// The second return reports whether the task is now completed.
func (b *Board) Complete(id string, now time.Time) (Task, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return Task{}, false, ErrTaskNotFound
	}
	t := b.tasks[i]
	if t.Completed {
		t.Completed = false
		t.LapSeconds = nil
		t.CompletedAt = nil
		b.tasks[i] = t
		return t, false, nil
	}

	lap := 0
	if b.lastCompletion != nil {
		lap = secondsBetween(*b.lastCompletion, now)
	}
	done := now
	t.Completed = true
	t.LapSeconds = &lap
	t.CompletedAt = &done
	b.tasks[i] = t
	b.lastCompletion = &done
	b.spentStart = &done
	return t, true, nil
}

// ImportTasks appends externally sourced tasks with fresh IDs, validating
// each one first; nothing is appended if any entry is invalid. Completed
// flags survive the import, but laps are never invented for them.
func (b *Board) ImportTasks(tasks []Task, now time.Time) ([]Task, error) {
	added := make([]Task, 0, len(tasks))
	for _, src := range tasks {
		t, err := NewTask(src.Text, src.Priority, src.Deadline, now)
		if err != nil {
			return nil, err
		}
		if src.Completed {
			t.Completed = true
			done := now
			if src.CompletedAt != nil {
				done = *src.CompletedAt
			}
			t.CompletedAt = &done
			if src.LapSeconds != nil {
				lap := *src.LapSeconds
				t.LapSeconds = &lap
			}
		}
		added = append(added, t)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append(b.tasks, added...)
	return added, nil
}

// Delete removes the task with the given ID.
func (b *Board) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	return nil
}

// SetDeadline stores the countdown target and restarts all timing anchors,
// so laps and the spent meter count from the moment the deadline was set.
func (b *Board) SetDeadline(target, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := now
	b.deadline = &target
	b.countdownStart = &start
	b.lastCompletion = &start
	b.spentStart = &start
}

// ClearDeadline removes the countdown target and every timing anchor.
func (b *Board) ClearDeadline() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deadline = nil
	b.countdownStart = nil
	b.lastCompletion = nil
	b.spentStart = nil
}

// Deadline returns the countdown target, if one is set.
func (b *Board) Deadline() *time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.deadline == nil {
		return nil
	}
	d := *b.deadline
	return &d
}

// RemainingSeconds reports whole seconds until the board deadline, never
// negative, zero when no deadline is set.
func (b *Board) RemainingSeconds(now time.Time) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.deadline == nil {
		return 0
	}
	return secondsBetween(now, *b.deadline)
}

// SpentSeconds reports whole seconds since the time-spent anchor last moved,
// zero when timing has not started.
func (b *Board) SpentSeconds(now time.Time) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.spentStart == nil {
		return 0
	}
	return secondsBetween(*b.spentStart, now)
}

// SortByPriority orders tasks by priority, creation time breaking ties.
func (b *Board) SortByPriority(ascending bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.tasks, func(i, j int) bool {
		ti, tj := b.tasks[i], b.tasks[j]
		if ti.Priority != tj.Priority {
			if ascending {
				return ti.Priority < tj.Priority
			}
			return ti.Priority > tj.Priority
		}
		return ti.CreatedAt.Before(tj.CreatedAt)
	})
}

// SortByDeadline orders tasks by their own deadlines, undated tasks last,
// then priority, then creation time.
func (b *Board) SortByDeadline() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.tasks, func(i, j int) bool {
		ti, tj := b.tasks[i], b.tasks[j]
		switch {
		case ti.Deadline == nil && tj.Deadline != nil:
			return false
		case ti.Deadline != nil && tj.Deadline == nil:
			return true
		case ti.Deadline != nil && tj.Deadline != nil && !ti.Deadline.Equal(*tj.Deadline):
			return ti.Deadline.Before(*tj.Deadline)
		}
		if ti.Priority != tj.Priority {
			return ti.Priority < tj.Priority
		}
		return ti.CreatedAt.Before(tj.CreatedAt)
	})
}

// CurrentTask returns the open task to work on next: the most urgent
// priority, earliest-added among equals.
func (b *Board) CurrentTask() (Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	best := -1
	for i, t := range b.tasks {
		if t.Completed {
			continue
		}
		if best < 0 || t.Priority < b.tasks[best].Priority {
			best = i
		}
	}
	if best < 0 {
		return Task{}, false
	}
	return b.tasks[best], true
}

// Overdue returns open tasks whose own deadline has passed.
func (b *Board) Overdue(now time.Time) []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Task
	for _, t := range b.tasks {
		if t.Overdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// Stats aggregates counts and the completion rate, as a percentage rounded
// to one decimal.
func (b *Board) Stats(now time.Time) Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var s Stats
	s.Total = len(b.tasks)
	for _, t := range b.tasks {
		if t.Completed {
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	s.Incomplete = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = math.Round(float64(s.Completed)/float64(s.Total)*1000) / 10
	}
	return s
}

// AllDone reports whether the board is non-empty and fully completed.
func (b *Board) AllDone() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.tasks) == 0 {
		return false
	}
	for _, t := range b.tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

type boardJSON struct {
	Tasks          []Task     `json:"tasks"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CountdownStart *time.Time `json:"countdown_start,omitempty"`
	LastCompletion *time.Time `json:"last_completion,omitempty"`
	SpentStart     *time.Time `json:"spent_start,omitempty"`
}

// MarshalJSON writes the board file envelope: the tasks plus the timing
// anchors, so lap timing survives a restart.
func (b *Board) MarshalJSON() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return json.Marshal(boardJSON{
		Tasks:          b.tasks,
		Deadline:       b.deadline,
		CountdownStart: b.countdownStart,
		LastCompletion: b.lastCompletion,
		SpentStart:     b.spentStart,
	})
}

// UnmarshalJSON replaces the board's contents with the envelope's.
func (b *Board) UnmarshalJSON(data []byte) error {
	var f boardJSON
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = f.Tasks
	b.deadline = f.Deadline
	b.countdownStart = f.CountdownStart
	b.lastCompletion = f.LastCompletion
	b.spentStart = f.SpentStart
	return nil
}

func (b *Board) index(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// secondsBetween truncates to whole seconds and never goes negative.
func secondsBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

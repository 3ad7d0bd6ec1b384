// Package pomodoro implements the focus timer as a lazily-evaluated state
// machine. Nothing here schedules callbacks or reads the wall clock: callers
// pass time.Time into every operation, and expiry is detected only when the
// session is polled. A Session is safe for concurrent use.
package pomodoro

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// SessionType distinguishes work sessions from rest breaks.
type SessionType string

const (
	Work SessionType = "work"
	Rest SessionType = "rest"
)

// State is the lifecycle phase of the current session.
type State string

const (
	NotStarted State = "not_started"
	Running    State = "running"
	Paused     State = "paused"
	Completed  State = "completed"
)

// Lifecycle misuse is reported through sentinels so callers can downgrade
// them to warnings instead of failing the request.
var (
	ErrAlreadyRunning = errors.New("session already running")
	ErrNotRunning     = errors.New("session not running")
	ErrNotPaused      = errors.New("session not paused")
)

// Session tracks a single alternating work/rest timer. The zero value is not
// usable; construct with New and share the pointer.
type Session struct {
	mu sync.Mutex

	sessionType     SessionType
	state           State
	workMinutes     int
	restMinutes     int
	durationMinutes int

	// startTime is nil exactly while state is NotStarted. pausedElapsed is
	// authoritative only while state is Paused.
	startTime     *time.Time
	pausedElapsed int

	workCompleted int
	restCompleted int
	focusMode     bool
}

// Snapshot is one observation of the timer, shaped for the wire. The pointer
// field is set only on the poll that crosses a session boundary.
type Snapshot struct {
	RemainingSeconds      int         `json:"remaining_seconds"`
	IsWorkSession         bool        `json:"is_work_session"`
	IsRunning             bool        `json:"is_running"`
	IsPaused              bool        `json:"is_paused"`
	SessionComplete       bool        `json:"session_complete"`
	SessionChanged        bool        `json:"session_changed"`
	WorkSessionsCompleted int         `json:"work_sessions_completed"`
	RestSessionsCompleted int         `json:"rest_sessions_completed"`
	DurationMinutes       int         `json:"duration_minutes"`
	WorkMinutes           int         `json:"work_minutes"`
	RestMinutes           int         `json:"rest_minutes"`
	FocusMode             bool        `json:"is_focus_mode"`
	State                 State       `json:"state"`
	SessionType           SessionType `json:"session_type"`
	PreviousWasWork       *bool       `json:"previous_session_was_work,omitempty"`
}

// New returns a session ready to start a work period of workMinutes.
func New(workMinutes, restMinutes int) (*Session, error) {
	if err := validateMinutes(workMinutes, restMinutes); err != nil {
		return nil, err
	}
	return &Session{
		sessionType:     Work,
		state:           NotStarted,
		workMinutes:     workMinutes,
		restMinutes:     restMinutes,
		durationMinutes: workMinutes,
	}, nil
}

// Start arms the current session at now. Starting a running session is a
// no-op and returns ErrAlreadyRunning. Starting from Paused discards the
// paused progress and begins the session over.
func (s *Session) Start(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return ErrAlreadyRunning
	}
	s.arm(now)
	return nil
}

// Pause freezes a running session, capturing the elapsed whole seconds.
func (s *Session) Pause(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return ErrNotRunning
	}
	s.pausedElapsed = elapsedSeconds(*s.startTime, now)
	s.state = Paused
	return nil
}

// Resume continues a paused session. The start time is shifted so that the
// paused gap is excluded from elapsed time.
func (s *Session) Resume(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused {
		return ErrNotPaused
	}
	t := now.Add(-time.Duration(s.pausedElapsed) * time.Second)
	s.startTime = &t
	s.pausedElapsed = 0
	s.state = Running
	return nil
}

// Reset returns the timer to a fresh work session: not started, zero
// counters. The configured durations and the focus flag are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.sessionType = Work
	s.state = NotStarted
	s.durationMinutes = s.workMinutes
	s.startTime = nil
	s.pausedElapsed = 0
	s.workCompleted = 0
	s.restCompleted = 0
}

// RemainingSeconds reports the whole seconds left in the current session at
// now, never negative. A session that has not started, or has already
// advanced, reports its full duration.
func (s *Session) RemainingSeconds(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining(now)
}

// IsComplete reports whether the running session has used up its duration.
// Paused and not-started sessions are never complete.
func (s *Session) IsComplete(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete(now)
}

// Poll is the once-per-tick read. If the running session has expired it
// advances to the other type (bumps the matching counter, swaps the duration,
// re-arms at now) and the returned snapshot describes the crossing:
// SessionComplete and SessionChanged set, RemainingSeconds at the new
// session's full duration, PreviousWasWork filled in. Otherwise the snapshot
// is a plain observation.
func (s *Session) Poll(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.complete(now) {
		return s.snapshot(now)
	}

	wasWork := s.sessionType == Work
	s.advance(now)
	snap := s.snapshot(now)
	snap.SessionComplete = true
	snap.SessionChanged = true
	snap.PreviousWasWork = &wasWork
	return snap
}

// Snapshot observes the timer without advancing it, even when expired.
func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(now)
}

// UpdateSettings replaces the configured durations. Non-positive values are
// rejected and nothing changes. The current session's duration is updated in
// place; elapsed time is not, so a session may expire on the next poll.
func (s *Session) UpdateSettings(workMinutes, restMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateMinutes(workMinutes, restMinutes); err != nil {
		return err
	}
	s.workMinutes = workMinutes
	s.restMinutes = restMinutes
	if s.sessionType == Work {
		s.durationMinutes = workMinutes
	} else {
		s.durationMinutes = restMinutes
	}
	return nil
}

// ToggleFocusMode flips focus mode and reports the new value. Leaving focus
// mode resets the timer; entering it has no timing side effect.
func (s *Session) ToggleFocusMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focusMode = !s.focusMode
	if !s.focusMode {
		s.reset()
	}
	return s.focusMode
}

// SwitchType changes the session type by hand, outside the normal
// work/rest alternation. The duration follows the new type. A running
// session restarts its clock at now; counters are untouched.
func (s *Session) SwitchType(toWork bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if toWork {
		s.sessionType = Work
		s.durationMinutes = s.workMinutes
	} else {
		s.sessionType = Rest
		s.durationMinutes = s.restMinutes
	}
	if s.state == Running {
		t := now
		s.startTime = &t
		s.pausedElapsed = 0
	}
}

func (s *Session) arm(now time.Time) {
	t := now
	s.startTime = &t
	s.pausedElapsed = 0
	s.state = Running
}

// advance moves an expired session to the other type and immediately starts
// it, so the cycle continues without user input.
func (s *Session) advance(now time.Time) {
	s.state = Completed
	if s.sessionType == Work {
		s.workCompleted++
		s.sessionType = Rest
		s.durationMinutes = s.restMinutes
	} else {
		s.restCompleted++
		s.sessionType = Work
		s.durationMinutes = s.workMinutes
	}
	s.arm(now)
}

func (s *Session) remaining(now time.Time) int {
	total := s.durationMinutes * 60
	if s.startTime == nil {
		return total
	}

	var elapsed int
	switch s.state {
	case Running:
		elapsed = elapsedSeconds(*s.startTime, now)
	case Paused:
		elapsed = s.pausedElapsed
	default:
		return total
	}

	if left := total - elapsed; left > 0 {
		return left
	}
	return 0
}

func (s *Session) complete(now time.Time) bool {
	return s.state == Running && s.remaining(now) <= 0
}

func (s *Session) snapshot(now time.Time) Snapshot {
	return Snapshot{
		RemainingSeconds:      s.remaining(now),
		IsWorkSession:         s.sessionType == Work,
		IsRunning:             s.state == Running,
		IsPaused:              s.state == Paused,
		WorkSessionsCompleted: s.workCompleted,
		RestSessionsCompleted: s.restCompleted,
		DurationMinutes:       s.durationMinutes,
		WorkMinutes:           s.workMinutes,
		RestMinutes:           s.restMinutes,
		FocusMode:             s.focusMode,
		State:                 s.state,
		SessionType:           s.sessionType,
	}
}

// elapsedSeconds truncates to whole seconds; a clock that moved backward
// counts as no elapsed time.
func elapsedSeconds(from, now time.Time) int {
	d := now.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func validateMinutes(work, rest int) error {
	if work <= 0 {
		return fmt.Errorf("work minutes must be positive, got %d", work)
	}
	if rest <= 0 {
		return fmt.Errorf("rest minutes must be positive, got %d", rest)
	}
	return nil
}

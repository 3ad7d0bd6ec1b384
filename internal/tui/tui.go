// Package tui provides the full-screen Bubble Tea focus timer.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/lapwing/internal/pomodoro"
	"github.com/fakeyudi/lapwing/internal/task"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Big MM:SS readout
	readoutStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(1, 4)

	// Readout once the session is nearly over
	readoutLowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(1, 4)

	workBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("33")).
			Padding(0, 1)

	restBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("35")).
			Padding(0, 1)

	pausedBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("178")).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// lowSeconds is when the readout switches to the warning style.
const lowSeconds = 60

// tickMsg drives the once-a-second poll.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the focus timer.
type Model struct {
	timer *pomodoro.Session
	board *task.Board

	snap     pomodoro.Snapshot
	flash    string
	progress progress.Model
	width    int
	height   int
	ready    bool
	now      func() time.Time
}

// New creates the focus timer model over a live engine and board.
func New(timer *pomodoro.Session, board *task.Board) Model {
	m := Model{
		timer:    timer,
		board:    board,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		now:      time.Now,
	}
	m.snap = timer.Snapshot(m.now())
	return m
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snap = m.timer.Poll(m.now())
		if m.snap.SessionChanged && m.snap.PreviousWasWork != nil {
			if *m.snap.PreviousWasWork {
				m.flash = "Work session done, rest up"
			} else {
				m.flash = "Rest over, back to work"
			}
		}
		return m, tick()

	case tea.KeyMsg:
		now := m.now()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.flash = ""
			if err := m.timer.Start(now); err != nil {
				m.flash = "Already running"
			}
		case " ":
			if m.snap.IsPaused {
				_ = m.timer.Resume(now)
			} else {
				_ = m.timer.Pause(now)
			}
		case "r":
			m.flash = ""
			m.timer.Reset()
		case "f":
			if m.timer.ToggleFocusMode() {
				m.flash = "Focus mode on"
			} else {
				m.flash = "Focus mode off, timer reset"
			}
		case "t":
			m.timer.SwitchType(!m.snap.IsWorkSession, now)
			m.flash = ""
		}
		m.snap = m.timer.Snapshot(m.now())
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w := msg.Width - 8
		if w < 10 {
			w = 10
		}
		m.progress.Width = w
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  lapwing focus")

	var sb strings.Builder
	sb.WriteString("\n")

	// Session badge row: WORK/REST plus the run state.
	badge := restBadgeStyle.Render(" REST ")
	if m.snap.IsWorkSession {
		badge = workBadgeStyle.Render(" WORK ")
	}
	state := dimStyle.Render("press s to start")
	switch {
	case m.snap.IsPaused:
		state = pausedBadgeStyle.Render(" PAUSED ")
	case m.snap.IsRunning:
		state = dimStyle.Render("running")
	}
	sb.WriteString("  " + badge + "  " + state + "\n")

	// Readout.
	readout := readoutStyle
	if m.snap.IsRunning && m.snap.RemainingSeconds <= lowSeconds {
		readout = readoutLowStyle
	}
	sb.WriteString(readout.Render(formatRemaining(m.snap.RemainingSeconds)) + "\n")

	// Progress through the current session.
	total := m.snap.DurationMinutes * 60
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.snap.RemainingSeconds) / float64(total)
	}
	sb.WriteString("    " + m.progress.ViewAs(pct) + "\n\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)) + "  " + value + "\n")
	}
	row("Sessions:", fmt.Sprintf("%d work · %d rest",
		m.snap.WorkSessionsCompleted, m.snap.RestSessionsCompleted))
	row("Lengths:", fmt.Sprintf("%dm work / %dm rest", m.snap.WorkMinutes, m.snap.RestMinutes))
	if m.snap.FocusMode {
		row("Focus:", "on")
	}

	if cur, ok := m.board.CurrentTask(); ok {
		pr := lipgloss.NewStyle().Foreground(lipgloss.Color(cur.PriorityColor()))
		row("Up next:", taskStyle.Render(cur.Text)+pr.Render(fmt.Sprintf("  !%d", cur.Priority)))
	}
	if dl := m.board.Deadline(); dl != nil {
		left := m.board.RemainingSeconds(m.now())
		row("Deadline:", task.FormatClock(*dl)+dimStyle.Render("  ("+task.FormatLapTime(left)+" left)"))
	}

	if m.flash != "" {
		sb.WriteString("\n  " + flashStyle.Render(m.flash) + "\n")
	}

	hint := "  s start  space pause/resume  r reset  f focus  t work/rest  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(hint)

	// Pad the body so the status bar sits on the bottom row.
	body := sb.String()
	used := lipgloss.Height(title) + lipgloss.Height(body) + lipgloss.Height(statusBar)
	if pad := m.height - used; pad > 0 {
		body += strings.Repeat("\n", pad)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusBar)
}

// formatRemaining renders seconds as MM:SS, spilling into hours only when a
// session is configured longer than an hour.
func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Run starts the focus timer over the given engine and board.
func Run(timer *pomodoro.Session, board *task.Board) error {
	p := tea.NewProgram(New(timer, board), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

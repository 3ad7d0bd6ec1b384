package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	nextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the board, deadline countdown and time spent",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, board, err := openBoard()
		if err != nil {
			return err
		}

		now := time.Now()
		stats := board.Stats(now)
		width := termWidth()

		if stats.Total == 0 {
			cmd.Println("Board is empty. Add a task with 'lapwing add \"...\"'.")
			return nil
		}

		header := fmt.Sprintf("Board: %d tasks · %d done", stats.Total, stats.Completed)
		if stats.Overdue > 0 {
			header += fmt.Sprintf(" · %d overdue", stats.Overdue)
		}
		header += fmt.Sprintf(" (%.1f%% complete)", stats.CompletionRate)
		cmd.Println(headerStyle.Render(header))
		cmd.Println()

		current, hasCurrent := board.CurrentTask()
		for i, t := range board.Tasks() {
			cmd.Println(truncate(renderTaskRow(i+1, t, hasCurrent && t.ID == current.ID, now), width))
		}
		cmd.Println()

		if dl := board.Deadline(); dl != nil {
			left := board.RemainingSeconds(now)
			line := fmt.Sprintf("Deadline %s · %s left", task.FormatClock(*dl), formatCountdown(left))
			if spent := board.SpentSeconds(now); spent > 0 {
				line += fmt.Sprintf(" · %s on current task", task.FormatLapTime(spent))
			}
			if left <= GetConfig().LowTimeSeconds {
				cmd.Println(urgentStyle.Render(line))
			} else {
				cmd.Println(line)
			}
		}

		if board.AllDone() {
			cmd.Println(bannerStyle.Render("All tasks complete!"))
		}
		return nil
	},
}

// renderTaskRow formats one board line: number, checkbox, text, priority
// marker in its color, and the deadline or lap annotation.
func renderTaskRow(n int, t task.Task, isCurrent bool, now time.Time) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	text := t.Text
	if t.Completed {
		text = doneStyle.Render(text)
	}

	pr := lipgloss.NewStyle().Foreground(lipgloss.Color(t.PriorityColor())).
		Render(fmt.Sprintf("!%d", t.Priority))

	row := fmt.Sprintf("  %2d. %s %s  %s", n, box, text, pr)

	switch {
	case t.Completed && t.LapSeconds != nil && *t.LapSeconds > 0:
		row += mutedStyle.Render("  (" + task.FormatLapTime(*t.LapSeconds) + ")")
	case t.Deadline != nil && t.Overdue(now):
		row += urgentStyle.Render("  due " + task.FormatClock(*t.Deadline) + " (overdue)")
	case t.Deadline != nil:
		row += mutedStyle.Render("  due " + task.FormatClock(*t.Deadline))
	}

	if isCurrent {
		row += nextStyle.Render("  ← up next")
	}
	return row
}

// formatCountdown renders seconds as HH:MM:SS.
func formatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// termWidth returns the terminal width, falling back to 80 columns when
// stdout is not a terminal.
func termWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// truncate cuts a rendered row to the given display width.
func truncate(row string, width int) string {
	if lipgloss.Width(row) <= width {
		return row
	}
	// Trim plain-text rows rune by rune; styled rows just get returned as-is
	// rather than risk cutting an ANSI sequence in half.
	if strings.Contains(row, "\x1b") {
		return row
	}
	runes := []rune(row)
	if len(runes) <= width {
		return row
	}
	return string(runes[:width-1]) + "…"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

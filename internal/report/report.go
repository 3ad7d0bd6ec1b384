// Package report renders the task board to shareable files and parses
// checklists back into tasks.
package report

import (
	"time"

	"github.com/fakeyudi/lapwing/internal/task"
)

// Report is the complete, renderable representation of the board.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Author      string           `json:"author,omitempty" yaml:"author,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Tasks       []task.Task      `json:"tasks" yaml:"tasks"`
	Stats       task.Stats       `json:"stats" yaml:"stats"`
	BestTimes   []task.BestEntry `json:"best_times,omitempty" yaml:"best_times,omitempty"`
}

// Build assembles a report from the live board and the best-time log.
func Build(b *task.Board, best *task.BestLog, author string, now time.Time) (*Report, error) {
	entries, err := best.Entries()
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt: now,
		Author:      author,
		Deadline:    b.Deadline(),
		Tasks:       b.Tasks(),
		Stats:       b.Stats(now),
		BestTimes:   entries,
	}, nil
}

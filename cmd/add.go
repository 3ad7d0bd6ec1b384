package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/task"
)

var (
	addPriority int
	addDue      string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, board, err := openBoard()
		if err != nil {
			return err
		}

		now := time.Now()
		var due *time.Time
		if addDue != "" {
			parsed, err := task.ParseClock(addDue, now)
			if err != nil {
				return fmt.Errorf("invalid --due value: %w", err)
			}
			due = &parsed
		}

		t, err := board.Add(args[0], addPriority, due, now)
		if err != nil {
			return err
		}
		if err := store.Save(board); err != nil {
			return err
		}

		cmd.Printf("Added %q (priority %d)\n", t.Text, t.Priority)
		if t.Deadline != nil {
			cmd.Printf("Due at %s\n", task.FormatClock(*t.Deadline))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addPriority, "priority", "p", 0, "priority 1 (highest) to 5 (lowest), default 3")
	addCmd.Flags().StringVar(&addDue, "due", "", `task deadline as a clock time, e.g. "5:30 PM"`)
	rootCmd.AddCommand(addCmd)
}

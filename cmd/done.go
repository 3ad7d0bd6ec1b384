package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/task"
)

var doneCmd = &cobra.Command{
	Use:   "done <n>",
	Short: "Toggle the nth task complete and record its lap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("task number must be an integer, got %q", args[0])
		}

		store, board, err := openBoard()
		if err != nil {
			return err
		}
		tasks := board.Tasks()
		if n < 1 || n > len(tasks) {
			return fmt.Errorf("task number %d out of range (board has %d)", n, len(tasks))
		}

		t, nowDone, err := board.Complete(tasks[n-1].ID, time.Now())
		if err != nil {
			return err
		}
		if err := store.Save(board); err != nil {
			return err
		}

		if !nowDone {
			cmd.Printf("Reopened %q\n", t.Text)
			return nil
		}

		cmd.Printf("Done: %q", t.Text)
		if t.LapSeconds != nil && *t.LapSeconds > 0 {
			cmd.Printf(" in %s", task.FormatLapTime(*t.LapSeconds))

			dir, err := dataDir()
			if err != nil {
				return err
			}
			best, err := task.NewBestLog(dir)
			if err != nil {
				return err
			}
			record, err := best.Record(t.Text, *t.LapSeconds)
			if err != nil {
				return err
			}
			if record {
				cmd.Printf("  (new record!)")
			}
		}
		cmd.Println()

		if board.AllDone() {
			cmd.Println("All tasks complete. Nice work.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

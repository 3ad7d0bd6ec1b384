package cmd

import (
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/task"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the fastest recorded lap per task name",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		best, err := task.NewBestLog(dir)
		if err != nil {
			return err
		}
		entries, err := best.Entries()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			cmd.Println("No laps recorded yet. Complete a task after setting a deadline.")
			return nil
		}

		nameWidth := 0
		for _, e := range entries {
			if len(e.Name) > nameWidth {
				nameWidth = len(e.Name)
			}
		}
		// Leave room for the time column on narrow terminals.
		if limit := termWidth() - 16; nameWidth > limit && limit > 8 {
			nameWidth = limit
		}

		cmd.Println(headerStyle.Render("Best times"))
		for _, e := range entries {
			name := e.Name
			if len(name) > nameWidth {
				name = name[:nameWidth-1] + "…"
			}
			cmd.Printf("  %-*s  %s\n", nameWidth, name, mutedStyle.Render(task.FormatLapTime(e.Seconds)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bestCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/pomodoro"
	"github.com/fakeyudi/lapwing/internal/tui"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run the full-screen Pomodoro focus timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetConfig()
		timer, err := pomodoro.New(c.WorkMinutes, c.RestMinutes)
		if err != nil {
			return err
		}

		_, board, err := openBoard()
		if err != nil {
			return err
		}

		return tui.Run(timer, board)
	},
}

func init() {
	rootCmd.AddCommand(focusCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/report"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append tasks from a report or checklist file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		var parser report.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			parser = &report.JSONParser{}
		case ".yaml", ".yml":
			parser = &report.YAMLParser{}
		default:
			parser = &report.MarkdownParser{}
		}

		rep, err := parser.Parse(data)
		if err != nil {
			return err
		}
		if len(rep.Tasks) == 0 {
			return fmt.Errorf("%s contains no tasks", path)
		}

		store, board, err := openBoard()
		if err != nil {
			return err
		}
		added, err := board.ImportTasks(rep.Tasks, time.Now())
		if err != nil {
			return err
		}
		if err := store.Save(board); err != nil {
			return err
		}

		cmd.Printf("Imported %d tasks from %s\n", len(added), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/report"
	"github.com/fakeyudi/lapwing/internal/task"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the board to a shareable report file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, board, err := openBoard()
		if err != nil {
			return err
		}
		dir, err := dataDir()
		if err != nil {
			return err
		}
		best, err := task.NewBestLog(dir)
		if err != nil {
			return err
		}

		author := ""
		if p := GetProfile(); p != nil {
			author = p.Name
		}

		now := time.Now()
		rep, err := report.Build(board, best, author, now)
		if err != nil {
			return err
		}

		format := exportFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}

		var renderer report.Renderer
		var ext string
		switch format {
		case "json":
			renderer = &report.JSONRenderer{}
			ext = ".json"
		case "yaml":
			renderer = &report.YAMLRenderer{}
			ext = ".yaml"
		case "", "markdown":
			renderer = &report.MarkdownRenderer{}
			ext = ".md"
		default:
			return fmt.Errorf("unknown format %q (want markdown, json or yaml)", format)
		}

		data, err := renderer.Render(rep)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}

		outputPath := exportOutput
		if outputPath == "" {
			outputDir := GetConfig().OutputDir
			if outputDir == "" {
				outputDir = "."
			}
			outputPath = filepath.Join(outputDir, "lapwing-"+now.Format(time.RFC3339)+ext)
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}

		cmd.Printf("Exported %d tasks to %s\n", len(rep.Tasks), outputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default lapwing-<timestamp> in the output dir)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "markdown, json or yaml (overrides config)")
	rootCmd.AddCommand(exportCmd)
}

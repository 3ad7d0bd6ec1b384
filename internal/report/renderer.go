package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/lapwing/internal/task"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(rep *Report) ([]byte, error)
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(rep *Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// YAMLRenderer renders a Report as YAML.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(rep *Report) ([]byte, error) {
	return yaml.Marshal(rep)
}

// MarkdownRenderer renders a Report as a human-readable checklist with an
// embedded base64 JSON payload for lossless round-trip parsing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(rep *Report) ([]byte, error) {
	// Marshal the report to JSON and base64-encode it for the embedded payload.
	jsonBytes, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- lapwing-report-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- lapwing-data: %s -->\n\n", encoded)

	// Title.
	fmt.Fprintf(&sb, "# Task board - %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04"))

	// Summary lines.
	if rep.Author != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", rep.Author)
	}
	fmt.Fprintf(&sb, "- Done: %d/%d (%.1f%%)\n",
		rep.Stats.Completed, rep.Stats.Total, rep.Stats.CompletionRate)
	if rep.Deadline != nil {
		fmt.Fprintf(&sb, "- Deadline: %s\n", task.FormatClock(*rep.Deadline))
	}
	sb.WriteString("\n")

	// ## Checklist
	sb.WriteString("## Checklist\n\n")
	if len(rep.Tasks) == 0 {
		sb.WriteString("_No tasks._\n")
	} else {
		for _, tk := range rep.Tasks {
			box := " "
			if tk.Completed {
				box = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s", box, tk.Text)
			if tk.Priority != task.DefaultPriority {
				fmt.Fprintf(&sb, " !%d", tk.Priority)
			}
			if tk.LapSeconds != nil {
				fmt.Fprintf(&sb, " (%s)", task.FormatLapTime(*tk.LapSeconds))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	// ## Best times
	sb.WriteString("## Best times\n\n")
	if len(rep.BestTimes) == 0 {
		sb.WriteString("_No recorded laps._\n")
	} else {
		sb.WriteString("| Task | Fastest |\n")
		sb.WriteString("|------|---------|\n")
		for _, e := range rep.BestTimes {
			fmt.Fprintf(&sb, "| %s | %s |\n", e.Name, task.FormatLapTime(e.Seconds))
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

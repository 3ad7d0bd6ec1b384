package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/lapwing/internal/task"
)

// Parser deserializes a report file back into structured data.
type Parser interface {
	Parse(data []byte) (*Report, error)
}

// JSONParser parses a JSON-encoded Report.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Report, error) {
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to parse JSON report: %w", err)
	}
	return &rep, nil
}

// YAMLParser parses a YAML-encoded Report.
type YAMLParser struct{}

func (p *YAMLParser) Parse(data []byte) (*Report, error) {
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to parse YAML report: %w", err)
	}
	return &rep, nil
}

// MarkdownParser parses Markdown two ways. Files lapwing rendered carry a
// base64 JSON payload in sentinel comments and round-trip losslessly. Any
// other file is treated as a hand-written checklist: "- [ ]" / "- [x]"
// lines, an optional "!N" priority suffix, everything else skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Report, error) {
	content := string(data)

	if strings.Contains(content, "<!-- lapwing-report-version: 1 -->") {
		return parsePayload(content)
	}
	return parseChecklist(content)
}

// parsePayload extracts the embedded base64 JSON from the sentinel comments.
func parsePayload(content string) (*Report, error) {
	const prefix = "<!-- lapwing-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid lapwing report: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid lapwing report: malformed data payload")
	}
	encoded := content[start : start+end]

	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid lapwing report: corrupted base64 payload: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(jsonBytes, &rep); err != nil {
		return nil, fmt.Errorf("not a valid lapwing report: failed to parse embedded JSON: %w", err)
	}
	return &rep, nil
}

// parseChecklist reads checkbox lines into bare tasks. Priority 0 is left
// for the importer to default.
func parseChecklist(content string) (*Report, error) {
	var rep Report
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		var completed bool
		var rest string
		switch {
		case strings.HasPrefix(line, "- [ ] "):
			rest = line[len("- [ ] "):]
		case strings.HasPrefix(line, "- [x] "), strings.HasPrefix(line, "- [X] "):
			completed = true
			rest = line[len("- [x] "):]
		default:
			continue
		}

		text := strings.TrimSpace(rest)
		// A trailing parenthetical is a display annotation, not task text.
		if strings.HasSuffix(text, ")") {
			if i := strings.LastIndex(text, " ("); i > 0 {
				text = strings.TrimSpace(text[:i])
			}
		}

		priority := 0
		if fields := strings.Fields(text); len(fields) > 1 {
			last := fields[len(fields)-1]
			if len(last) == 2 && last[0] == '!' && last[1] >= '1' && last[1] <= '5' {
				priority = int(last[1] - '0')
				text = strings.TrimSpace(strings.TrimSuffix(text, last))
			}
		}
		if text == "" {
			continue
		}

		rep.Tasks = append(rep.Tasks, task.Task{
			Text:      text,
			Priority:  priority,
			Completed: completed,
		})
	}

	if len(rep.Tasks) == 0 {
		return nil, fmt.Errorf("no checklist items found")
	}
	return &rep, nil
}

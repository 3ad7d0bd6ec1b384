package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	tmp := isolate(t)
	seedBoard(t, tmp, "alpha work", "beta work")
	if _, err := executeCommand(rootCmd, "done", "1"); err != nil {
		t.Fatalf("done: %v", err)
	}

	outFile := filepath.Join(tmp, "report.md")
	out, err := executeCommand(rootCmd, "export", "-o", outFile)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Exported 2 tasks") {
		t.Errorf("unexpected export output: %q", out)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	for _, want := range []string{"lapwing-report-version", "alpha work", "beta work"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("export file missing %q", want)
		}
	}

	// Importing the same file appends fresh copies of both tasks.
	out, err = executeCommand(rootCmd, "import", outFile)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 tasks") {
		t.Errorf("unexpected import output: %q", out)
	}

	b := loadBoard(t, tmp)
	if got := b.Len(); got != 4 {
		t.Errorf("expected 4 tasks after re-import, got %d", got)
	}
	stats := b.Tasks()
	completed := 0
	for _, tk := range stats {
		if tk.Completed {
			completed++
		}
	}
	if completed != 2 {
		t.Errorf("completed flags should survive the round trip, got %d of 4", completed)
	}
}

func TestExportFormats(t *testing.T) {
	tmp := isolate(t)
	seedBoard(t, tmp, "solo")

	jsonFile := filepath.Join(tmp, "report.json")
	exportOutput, exportFormat = "", ""
	if _, err := executeCommand(rootCmd, "export", "-o", jsonFile, "--format", "json"); err != nil {
		t.Fatalf("export json: %v", err)
	}
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		t.Fatalf("reading json export: %v", err)
	}
	if !strings.Contains(string(data), `"tasks"`) {
		t.Errorf("json export should contain a tasks array, got:\n%s", data)
	}

	exportOutput, exportFormat = "", ""
	if _, err := executeCommand(rootCmd, "export", "--format", "pdf"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestImportHandwrittenChecklist(t *testing.T) {
	tmp := isolate(t)

	checklist := filepath.Join(tmp, "plan.md")
	body := "# Plan\n\n- [ ] research options !1\n- [x] kickoff meeting\n"
	if err := os.WriteFile(checklist, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(rootCmd, "import", checklist)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 tasks") {
		t.Errorf("unexpected output: %q", out)
	}

	b := loadBoard(t, tmp)
	tasks := b.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Text != "research options" || tasks[0].Priority != 1 {
		t.Errorf("first import mismatch: %+v", tasks[0])
	}
	if tasks[1].Text != "kickoff meeting" || !tasks[1].Completed {
		t.Errorf("second import mismatch: %+v", tasks[1])
	}

	if _, err := executeCommand(rootCmd, "import", filepath.Join(tmp, "absent.md")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

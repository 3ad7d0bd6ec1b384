// Package profile manages the user's persistent lapwing profile.
// The profile is stored at ~/.config/lapwing/profile.json and is created
// once via the interactive setup flow, then referenced on every command.
package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	Name          string `json:"name"`
	DefaultFormat string `json:"default_format"` // "markdown" | "json" | "yaml"
	OutputDir     string `json:"output_dir"`     // default export output dir
	WorkMinutes   int    `json:"work_minutes"`   // preferred pomodoro lengths
	RestMinutes   int    `json:"rest_minutes"`
}

// ConfigDir returns the lapwing config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lapwing"), nil
}

func profilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.json"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found — run 'lapwing setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "profile.json"), data, 0o644)
}

// ask prompts on stdout and reads one line, returning defaultVal on a blank
// answer.
func ask(r *bufio.Reader, prompt, defaultVal string) (string, error) {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line != "" {
		return line, nil
	}
	return defaultVal, nil
}

// askMinutes prompts for a positive minute count and keeps the default on
// anything it cannot parse.
func askMinutes(r *bufio.Reader, prompt string, defaultVal int) (int, error) {
	ans, err := ask(r, prompt, strconv.Itoa(defaultVal))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(ans)
	if err != nil || n <= 0 {
		fmt.Printf("  (keeping %d)\n", defaultVal)
		return defaultVal, nil
	}
	return n, nil
}

// RunSetup runs the interactive setup wizard and returns the resulting
// profile. If existing is non-nil, it seeds the default for each prompt
// (edit mode).
func RunSetup(existing *Profile) (*Profile, error) {
	r := bufio.NewReader(os.Stdin)

	prof := &Profile{
		DefaultFormat: "markdown",
		OutputDir:     ".",
		WorkMinutes:   25,
		RestMinutes:   5,
	}
	if existing != nil {
		*prof = *existing
	}

	fmt.Println()
	fmt.Println("  ┌─────────────────────────────────┐")
	fmt.Println("  │   lapwing — first-time setup    │")
	fmt.Println("  └─────────────────────────────────┘")
	fmt.Println()

	var err error

	prof.Name, err = ask(r, "  Your name (shown on exports)", prof.Name)
	if err != nil {
		return nil, err
	}

	format, err := ask(r, "  Default export format (markdown/json/yaml)", prof.DefaultFormat)
	if err != nil {
		return nil, err
	}
	switch format {
	case "json", "yaml":
		prof.DefaultFormat = format
	default:
		prof.DefaultFormat = "markdown"
	}

	prof.OutputDir, err = ask(r, "  Default export directory", prof.OutputDir)
	if err != nil {
		return nil, err
	}

	prof.WorkMinutes, err = askMinutes(r, "  Work session length, minutes", prof.WorkMinutes)
	if err != nil {
		return nil, err
	}

	prof.RestMinutes, err = askMinutes(r, "  Rest break length, minutes", prof.RestMinutes)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	return prof, nil
}

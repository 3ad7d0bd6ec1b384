package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/config"
	"github.com/fakeyudi/lapwing/internal/profile"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure lapwing (re-run anytime to edit settings)",
	// Bypass the normal PersistentPreRunE so setup works before profile exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(false)
	},
}

// runSetup runs the interactive setup wizard.
// If firstRun is true, a welcome message is shown.
func runSetup(firstRun bool) error {
	if firstRun {
		fmt.Println()
		fmt.Println("  Welcome to lapwing! Let's get you set up.")
	}

	// Load existing profile as defaults if present.
	var existing *profile.Profile
	if profile.Exists() {
		p, err := profile.Load()
		if err == nil {
			existing = p
		}
	}

	prof, err := profile.RunSetup(existing)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if err := profile.Save(prof); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	fmt.Println("  ✓ Profile saved.")

	// Drop a commented config template next to the profile so the knobs are
	// discoverable. Never overwrite an existing config.
	if path, pathErr := config.GlobalPath(); pathErr == nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				if err := os.WriteFile(path, []byte(config.DefaultTemplate), 0o644); err == nil {
					fmt.Printf("  ✓ Wrote %s\n", path)
				}
			}
		}
	}

	fmt.Println("  Setup complete. Run 'lapwing serve' or 'lapwing focus' to begin.")
	fmt.Println()
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

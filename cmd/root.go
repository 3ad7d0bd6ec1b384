package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/lapwing/internal/config"
	"github.com/fakeyudi/lapwing/internal/profile"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile, nil when none exists.
var activeProfile *profile.Profile

var rootCmd = &cobra.Command{
	Use:   "lapwing",
	Short: "Track tasks against a deadline with a Pomodoro focus timer",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}
		if err := ensureProfile(); err != nil {
			return err
		}
		return loadConfig()
	},
}

// ensureProfile runs the first-run wizard when no profile exists and stdin is
// an interactive terminal, then loads whatever profile is present. Running
// without one is fine; defaults cover everything.
func ensureProfile() error {
	if !profile.Exists() {
		if !term.IsTerminal(os.Stdin.Fd()) {
			// Non-interactive (tests, pipes): continue with defaults.
			return nil
		}
		fmt.Println()
		fmt.Println("  Welcome to lapwing! Looks like this is your first time.")
		if err := runSetup(true); err != nil {
			return err
		}
	}

	p, err := profile.Load()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	activeProfile = p
	return nil
}

// loadConfig merges the global and project config files, then lets profile
// preferences fill any field still sitting at its default.
func loadConfig() error {
	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	project, err := config.LoadProject()
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	cfg = config.Merge(global, project)

	if activeProfile != nil {
		applyProfile(&cfg, activeProfile, config.Defaults())
	}
	return nil
}

// applyProfile copies profile preferences into config fields the files left
// untouched. Config files always win over the profile.
func applyProfile(c *config.Config, p *profile.Profile, def config.Config) {
	if p.DefaultFormat != "" && c.DefaultFormat == def.DefaultFormat {
		c.DefaultFormat = p.DefaultFormat
	}
	if p.OutputDir != "" && p.OutputDir != "." && c.OutputDir == def.OutputDir {
		c.OutputDir = p.OutputDir
	}
	if p.WorkMinutes > 0 && c.WorkMinutes == def.WorkMinutes {
		c.WorkMinutes = p.WorkMinutes
	}
	if p.RestMinutes > 0 && c.RestMinutes == def.RestMinutes {
		c.RestMinutes = p.RestMinutes
	}
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetProfile returns the active user profile.
func GetProfile() *profile.Profile {
	return activeProfile
}

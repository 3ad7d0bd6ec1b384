package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all configurable lapwing settings.
type Config struct {
	WorkMinutes    int    `toml:"work_minutes"`
	RestMinutes    int    `toml:"rest_minutes"`
	ListenAddr     string `toml:"listen_addr"`
	DataDir        string `toml:"data_dir"`         // override $XDG_DATA_HOME/lapwing
	DeadlineSlots  int    `toml:"deadline_slots"`   // entries in the deadline dropdown
	LowTimeSeconds int    `toml:"low_time_seconds"` // countdown styled urgent below this
	DefaultFormat  string `toml:"default_format"`   // "markdown" | "json" | "yaml"
	OutputDir      string `toml:"output_dir"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		WorkMinutes:    25,
		RestMinutes:    5,
		ListenAddr:     "127.0.0.1:8642",
		DeadlineSlots:  48,
		LowTimeSeconds: 15 * 60,
		DefaultFormat:  "markdown",
		OutputDir:      ".",
	}
}

// GlobalPath returns the location of the global config file,
// ~/.config/lapwing/config.toml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lapwing", "config.toml"), nil
}

// LoadGlobal reads ~/.config/lapwing/config.toml.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .lapwing.toml in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".lapwing.toml", false)
}

// loadFile reads and parses a TOML config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults. Integer fields treat
// anything not positive as unset, so a config file cannot smuggle in a zero
// or negative duration.
func Merge(global, project *Config) Config {
	result := Defaults()

	// Apply global values over defaults.
	if global != nil {
		if global.WorkMinutes > 0 {
			result.WorkMinutes = global.WorkMinutes
		}
		if global.RestMinutes > 0 {
			result.RestMinutes = global.RestMinutes
		}
		if global.ListenAddr != "" {
			result.ListenAddr = global.ListenAddr
		}
		if global.DataDir != "" {
			result.DataDir = global.DataDir
		}
		if global.DeadlineSlots > 0 {
			result.DeadlineSlots = global.DeadlineSlots
		}
		if global.LowTimeSeconds > 0 {
			result.LowTimeSeconds = global.LowTimeSeconds
		}
		if global.DefaultFormat != "" {
			result.DefaultFormat = global.DefaultFormat
		}
		if global.OutputDir != "" {
			result.OutputDir = global.OutputDir
		}
	}

	// Apply project values over global.
	if project != nil {
		if project.WorkMinutes > 0 {
			result.WorkMinutes = project.WorkMinutes
		}
		if project.RestMinutes > 0 {
			result.RestMinutes = project.RestMinutes
		}
		if project.ListenAddr != "" {
			result.ListenAddr = project.ListenAddr
		}
		if project.DataDir != "" {
			result.DataDir = project.DataDir
		}
		if project.DeadlineSlots > 0 {
			result.DeadlineSlots = project.DeadlineSlots
		}
		if project.LowTimeSeconds > 0 {
			result.LowTimeSeconds = project.LowTimeSeconds
		}
		if project.DefaultFormat != "" {
			result.DefaultFormat = project.DefaultFormat
		}
		if project.OutputDir != "" {
			result.OutputDir = project.OutputDir
		}
	}

	return result
}

// DefaultTemplate is the commented starter config setup writes when no
// global file exists yet.
const DefaultTemplate = `# lapwing configuration

# Pomodoro durations, in minutes.
# work_minutes = 25
# rest_minutes = 5

# Address the web board listens on.
# listen_addr = "127.0.0.1:8642"

# Where the flat files live. Empty means $XDG_DATA_HOME/lapwing.
# data_dir = ""

# How many 15-minute slots the deadline dropdown offers.
# deadline_slots = 48

# The deadline countdown turns urgent below this many seconds.
# low_time_seconds = 900

# Default export format: "markdown", "json" or "yaml".
# default_format = "markdown"

# Where exports are written.
# output_dir = "."
`

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

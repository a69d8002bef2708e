package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors a config file on disk. Pointer fields distinguish "not
// set" from an explicit false so project files can override global ones.
type Config struct {
	Thinking    string `toml:"thinking"` // "details" | "omit"
	Timestamps  *bool  `toml:"timestamps"`
	IncludeBash *bool  `toml:"include_bash"`
	GroupTurns  *bool  `toml:"group_turns"`
	OutputDir   string `toml:"output_dir"` // base dir for relative -o paths
}

// Settings is the effective configuration after merging defaults, the
// global file and the project file.
type Settings struct {
	Thinking    string
	Timestamps  bool
	IncludeBash bool
	GroupTurns  bool
	OutputDir   string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Thinking:   "details",
		GroupTurns: true,
		OutputDir:  ".",
	}
}

// LoadGlobal reads ~/.config/pi-session-to-md/config.toml.
// Returns nil (no error) if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(home, ".config", "pi-session-to-md", "config.toml"))
}

// LoadProject reads .pisessionmd.toml in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".pisessionmd.toml")
}

func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs over the defaults, with the
// project file taking precedence.
func Merge(global, project *Config) Settings {
	result := Defaults()
	for _, cfg := range []*Config{global, project} {
		if cfg == nil {
			continue
		}
		if cfg.Thinking != "" {
			result.Thinking = cfg.Thinking
		}
		if cfg.Timestamps != nil {
			result.Timestamps = *cfg.Timestamps
		}
		if cfg.IncludeBash != nil {
			result.IncludeBash = *cfg.IncludeBash
		}
		if cfg.GroupTurns != nil {
			result.GroupTurns = *cfg.GroupTurns
		}
		if cfg.OutputDir != "" {
			result.OutputDir = cfg.OutputDir
		}
	}
	return result
}

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

// Package config loads and watches the application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogPath is the log file path. Empty logs to stderr.
	LogPath string `toml:"log_path"`

	// ViewsDir is the directory of Lua view scripts.
	ViewsDir string `toml:"views_dir"`

	// StartRegion is the name of the root region.
	StartRegion string `toml:"start_region"`

	// StartView is the view navigated to at startup.
	StartView string `toml:"start_view"`

	// WatchViews enables live reloading of edited view scripts.
	WatchViews bool `toml:"watch_views"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		ViewsDir:    "views",
		StartRegion: "main",
		StartView:   "home",
		WatchViews:  true,
	}
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a TOML configuration file over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

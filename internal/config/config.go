// Package config loads and validates capsync configuration from TOML,
// supplying repository defaults for every engine knob.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Sync tunes playback-time normalization.
type Sync struct {
	// FlashLatencyMs compensates the legacy flash bridge's
	// round-trip signaling delay.
	FlashLatencyMs int64 `toml:"flash_latency_ms"`
}

// Visibility tunes the show/auto-hide state machine.
type Visibility struct {
	AutoHideDelayMs int64 `toml:"auto_hide_delay_ms"`
	FadeDurationMs  int64 `toml:"fade_duration_ms"`
}

// Scroll tunes the freeze/centering behavior.
type Scroll struct {
	FreezeWindowMs int64 `toml:"freeze_window_ms"`
}

// Prefs locates the hidden-preference store.
type Prefs struct {
	DBPath string `toml:"db_path"`
}

// Config is the complete capsync configuration.
type Config struct {
	Sync       Sync       `toml:"sync"`
	Visibility Visibility `toml:"visibility"`
	Scroll     Scroll     `toml:"scroll"`
	Prefs      Prefs      `toml:"prefs"`
}

const (
	defaultFlashLatencyMs  = 250
	defaultAutoHideDelayMs = 2000
	defaultFadeDurationMs  = 1000
	defaultFreezeWindowMs  = 10000
	defaultPrefsDBPath     = "~/.local/share/capsync/prefs.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sync:       Sync{FlashLatencyMs: defaultFlashLatencyMs},
		Visibility: Visibility{AutoHideDelayMs: defaultAutoHideDelayMs, FadeDurationMs: defaultFadeDurationMs},
		Scroll:     Scroll{FreezeWindowMs: defaultFreezeWindowMs},
		Prefs:      Prefs{DBPath: defaultPrefsDBPath},
	}
}

// Load reads the TOML file at path, layered over defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.Sync.FlashLatencyMs < 0 {
		return fmt.Errorf("sync.flash_latency_ms must be >= 0, got %d", c.Sync.FlashLatencyMs)
	}
	if c.Visibility.AutoHideDelayMs <= 0 {
		return fmt.Errorf("visibility.auto_hide_delay_ms must be > 0, got %d", c.Visibility.AutoHideDelayMs)
	}
	if c.Visibility.FadeDurationMs <= 0 {
		return fmt.Errorf("visibility.fade_duration_ms must be > 0, got %d", c.Visibility.FadeDurationMs)
	}
	if c.Scroll.FreezeWindowMs <= 0 {
		return fmt.Errorf("scroll.freeze_window_ms must be > 0, got %d", c.Scroll.FreezeWindowMs)
	}
	if strings.TrimSpace(c.Prefs.DBPath) == "" {
		return fmt.Errorf("prefs.db_path must not be empty")
	}
	return nil
}

// PrefsDBPath returns the preference database location with the home
// shortcut expanded.
func (c Config) PrefsDBPath() string {
	return expandHome(c.Prefs.DBPath)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

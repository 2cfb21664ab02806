// Package config loads the optional budskip configuration file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/budskip/internal/tap"
)

const (
	appName        = "budskip"
	configFileName = "config.toml"
)

// Config holds the detection thresholds. Zero or negative values mean
// "use the built-in default".
type Config struct {
	DoubleTapWindowMS int `koanf:"double_tap_window_ms"` // max gap between the two taps
	SkipCooldownMS    int `koanf:"skip_cooldown_ms"`     // seeks ignored after a skip
}

// Load reads the config files in order of priority (last wins). Missing
// files are skipped.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order, later files overriding
// earlier ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/budskip/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./config.toml (pwd, highest priority)
		configFileName,
	}
}

// Timing returns the detection thresholds with defaults applied.
func (c *Config) Timing() tap.Timing {
	t := tap.DefaultTiming()
	if c.DoubleTapWindowMS > 0 {
		t.Window = time.Duration(c.DoubleTapWindowMS) * time.Millisecond
	}
	if c.SkipCooldownMS > 0 {
		t.Cooldown = time.Duration(c.SkipCooldownMS) * time.Millisecond
	}
	return t
}

// Package config loads and persists dashboard preferences as a TOML file.
// The file doubles as saved UI state: volume and visualizer mode are written
// back when the user changes them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Visualizer modes for the main panel.
const (
	VisWaveform = "waveform"
	VisSpectrum = "spectrum"
)

// Config is the dashboard configuration.
type Config struct {
	API     string `toml:"api"`      // pipeline HTTP API base URL
	Feed    string `toml:"feed"`     // websocket event feed URL
	LogFile string `toml:"log_file"` // empty disables logging

	TickMS     int     `toml:"tick_ms"`   // frame interval
	BarWidth   int     `toml:"bar_width"` // waveform bar width in cells
	BarGap     int     `toml:"bar_gap"`
	VolumeDB   float64 `toml:"volume_db"`
	Visualizer string  `toml:"visualizer"` // waveform | spectrum
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:        "http://localhost:8452",
		Feed:       "ws://localhost:8452/api/events",
		TickMS:     50,
		BarWidth:   1,
		BarGap:     1,
		VolumeDB:   0,
		Visualizer: VisWaveform,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studiomon", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error; first run simply uses the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// normalize clamps values a hand-edited file could push out of range.
func (c *Config) normalize() {
	if c.TickMS < 16 {
		c.TickMS = 16
	}
	if c.BarWidth < 1 {
		c.BarWidth = 1
	}
	if c.BarGap < 0 {
		c.BarGap = 0
	}
	c.VolumeDB = max(-30, min(6, c.VolumeDB))
	if c.Visualizer != VisWaveform && c.Visualizer != VisSpectrum {
		c.Visualizer = VisWaveform
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds user settings read from ~/.config/yim/config.json.
type Config struct {
	LineNumbers           bool   `json:"line_numbers"`
	ScrollStep            int    `json:"scroll_step"`
	MessageTimeoutSeconds int    `json:"message_timeout_seconds"`
	TimeFormat            string `json:"time_format"`
	HighlightColor        string `json:"highlight_color"`
	ColorProfile          string `json:"color_profile"`
}

// Default mirrors the behaviour of the editor without a config file.
func Default() Config {
	return Config{
		ScrollStep:            20,
		MessageTimeoutSeconds: 5,
		TimeFormat:            "15:04:05 02/01/2006",
		HighlightColor:        "11",
		ColorProfile:          "auto",
	}
}

// MessageTimeout is how long a status message stays visible; zero keeps
// it until replaced.
func (c Config) MessageTimeout() time.Duration {
	return time.Duration(c.MessageTimeoutSeconds) * time.Second
}

func configPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "yim", "config.json")
}

// Load reads the config from disk. A missing file yields the defaults.
func Load() (Config, error) {
	return LoadFile(configPath())
}

func LoadFile(p string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", p, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	if c.ScrollStep <= 0 {
		c.ScrollStep = d.ScrollStep
	}
	if c.MessageTimeoutSeconds < 0 {
		c.MessageTimeoutSeconds = 0
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.HighlightColor == "" {
		c.HighlightColor = d.HighlightColor
	}
	if c.ColorProfile == "" {
		c.ColorProfile = d.ColorProfile
	}
}

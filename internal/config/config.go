// Package config loads host settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is used when UFO_CONFIG is unset.
const DefaultPath = "ufo.toml"

// Config is the runtime configuration of both hosts.
type Config struct {
	SSH     SSHConfig     `toml:"ssh"`
	Store   StoreConfig   `toml:"store"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Loop    LoopConfig    `toml:"loop"`
}

// SSHConfig is the listen address and host key of the SSH host.
type SSHConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	HostKey string `toml:"host_key"`
}

// StoreConfig locates the high-score database.
type StoreConfig struct {
	Path string `toml:"path"` // SQLite file; empty keeps high scores in memory
}

// AudioConfig toggles sound in the local game.
type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig selects log level, encoding and destination.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty discards logs in the local game
}

// LoopConfig tunes the frame loop and key hold window.
type LoopConfig struct {
	FPS     int           `toml:"fps"`
	KeyHold time.Duration `toml:"key_hold"`
}

// Defaults returns the built-in settings.
func Defaults() *Config {
	return &Config{
		SSH: SSHConfig{
			Host:    "0.0.0.0",
			Port:    2222,
			HostKey: ".ssh/id_ed25519",
		},
		Store: StoreConfig{
			Path: "ufo.db",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Loop: LoopConfig{
			FPS:     60,
			KeyHold: 150 * time.Millisecond,
		},
	}
}

// Load reads path over Defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by UFO_CONFIG and applies env overrides.
func FromEnv() (*Config, error) {
	cfg, err := Load(GetEnv("UFO_CONFIG", DefaultPath))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Package config handles configuration loading and validation for pairview.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Fonts    FontsConfig    `yaml:"fonts"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ServerConfig holds the websocket bridge listen settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CanvasConfig holds the layout constants for generated comparison frames.
// Defaults are fixed so output is reproducible across runs.
type CanvasConfig struct {
	PairSpacing  float64 `yaml:"pair_spacing"`  // gap between pair frames
	BlockSpacing float64 `yaml:"block_spacing"` // gap inside an old/new block
	Padding      float64 `yaml:"padding"`       // frame padding

	LabelSize float64 `yaml:"label_size"` // OLD/NEW category labels
	NameSize  float64 `yaml:"name_size"`  // component base name
	KeySize   float64 `yaml:"key_size"`   // key annotation and variant line

	OldAccent  string `yaml:"old_accent"`
	NewAccent  string `yaml:"new_accent"`
	ErrorColor string `yaml:"error_color"`
	MutedColor string `yaml:"muted_color"`
	Background string `yaml:"background"`
}

// FontsConfig points at the TTF files for the three weights the generator
// preloads. Empty paths fall back to the builtin Go faces.
type FontsConfig struct {
	Regular string `yaml:"regular"`
	Medium  string `yaml:"medium"`
	Bold    string `yaml:"bold"`
}

// DatabaseConfig holds sqlite connection pool settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Canvas: CanvasConfig{
			PairSpacing:  40,
			BlockSpacing: 8,
			Padding:      16,
			LabelSize:    11,
			NameSize:     14,
			KeySize:      10,
			OldAccent:    "#D97706",
			NewAccent:    "#059669",
			ErrorColor:   "#DC2626",
			MutedColor:   "#6B7280",
			Background:   "#FFFFFF",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
	}
}

// Load reads the config file at path, applying defaults for anything not
// set. A missing file is not an error; defaults are used as-is.
func Load(path, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

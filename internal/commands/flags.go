package commands

import (
	"os"
	"path/filepath"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/core/kv"
	"github.com/pairview/pairview/internal/plugin"
)

// Flags holds the global CLI flags.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// App holds the shared services built in the Before hook; commands receive a
// pointer populated before their action runs.
type App struct {
	Config *config.Config
	KV     kv.KV
	Bus    *eventbus.EventBus
	Store  *plugin.MappingStore
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pairview", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pairview")
}

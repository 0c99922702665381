package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, "#D97706", cfg.Canvas.OldAccent)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: "0.0.0.0:9000"
canvas:
  old_accent: "#FF0000"
fonts:
  bold: "/fonts/Inter-Bold.ttf"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "#FF0000", cfg.Canvas.OldAccent)
	assert.Equal(t, "/fonts/Inter-Bold.ttf", cfg.Fonts.Bold)
	// Untouched values keep defaults.
	assert.Equal(t, "#059669", cfg.Canvas.NewAccent)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := config.Load(path, dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *config.Config) {}},
		{
			name:    "empty addr",
			mutate:  func(c *config.Config) { c.Server.Addr = "" },
			wantErr: "server.addr",
		},
		{
			name:    "zero font size",
			mutate:  func(c *config.Config) { c.Canvas.NameSize = 0 },
			wantErr: "canvas.name_size",
		},
		{
			name:    "negative spacing",
			mutate:  func(c *config.Config) { c.Canvas.PairSpacing = -1 },
			wantErr: "spacing",
		},
		{
			name:    "bad color",
			mutate:  func(c *config.Config) { c.Canvas.ErrorColor = "red" },
			wantErr: "canvas.error_color",
		},
		{
			name:    "zero open conns",
			mutate:  func(c *config.Config) { c.Database.MaxOpenConns = 0 },
			wantErr: "max_open_conns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

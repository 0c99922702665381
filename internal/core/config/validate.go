package config

import (
	"fmt"
	"regexp"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the configuration for values the generator and renderer
// cannot work with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}

	sizes := map[string]float64{
		"canvas.label_size": c.Canvas.LabelSize,
		"canvas.name_size":  c.Canvas.NameSize,
		"canvas.key_size":   c.Canvas.KeySize,
	}
	for name, v := range sizes {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", name, v)
		}
	}

	if c.Canvas.PairSpacing < 0 || c.Canvas.BlockSpacing < 0 || c.Canvas.Padding < 0 {
		return fmt.Errorf("config: canvas spacing and padding must not be negative")
	}

	colors := map[string]string{
		"canvas.old_accent":  c.Canvas.OldAccent,
		"canvas.new_accent":  c.Canvas.NewAccent,
		"canvas.error_color": c.Canvas.ErrorColor,
		"canvas.muted_color": c.Canvas.MutedColor,
		"canvas.background":  c.Canvas.Background,
	}
	for name, v := range colors {
		if !hexColorRe.MatchString(v) {
			return fmt.Errorf("config: %s must be a #RRGGBB color, got %q", name, v)
		}
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("config: database.max_open_conns must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("config: database.max_idle_conns must not be negative")
	}

	return nil
}

package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/host"
)

// FontSet holds the parsed typefaces for the three weights text nodes use.
// All weights are parsed up front; a FontSet is immutable afterwards.
type FontSet struct {
	fonts map[host.Weight]*truetype.Font
}

// LoadFonts parses the configured TTF files. Weights with no configured path
// fall back to the builtin Go faces, so the renderer works with an empty
// config.
func LoadFonts(cfg config.FontsConfig) (*FontSet, error) {
	builtin := map[host.Weight][]byte{
		host.WeightRegular: goregular.TTF,
		host.WeightMedium:  gomedium.TTF,
		host.WeightBold:    gobold.TTF,
	}
	paths := map[host.Weight]string{
		host.WeightRegular: cfg.Regular,
		host.WeightMedium:  cfg.Medium,
		host.WeightBold:    cfg.Bold,
	}

	fonts := make(map[host.Weight]*truetype.Font, len(builtin))
	for weight, data := range builtin {
		if path := paths[weight]; path != "" {
			fileData, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s font: %w", weight, err)
			}
			data = fileData
		}

		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", weight, err)
		}
		fonts[weight] = f
	}

	return &FontSet{fonts: fonts}, nil
}

// Face returns a sized face for the weight. Unknown weights fall back to
// regular so a malformed node still renders.
func (fs *FontSet) Face(w host.Weight, size float64) font.Face {
	f, ok := fs.fonts[w]
	if !ok {
		f = fs.fonts[host.WeightRegular]
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

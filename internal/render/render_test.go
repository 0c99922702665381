package render_test

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/pairview/pairview/internal/render"
	"github.com/pairview/pairview/internal/visuals"
)

func testFonts(t *testing.T) *render.FontSet {
	t.Helper()
	fonts, err := render.LoadFonts(config.FontsConfig{}) // builtin Go faces
	require.NoError(t, err)
	return fonts
}

func TestLoadFonts_BadPath(t *testing.T) {
	_, err := render.LoadFonts(config.FontsConfig{Bold: "/nope/missing.ttf"})
	assert.Error(t, err)
}

func decodePNG(t *testing.T, path string) (width, height int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	require.NoError(t, err)
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestRenderPNG_EmptyRoot(t *testing.T) {
	r := render.NewRenderer(testFonts(t))
	root := host.NewFrame("empty", host.FrameProps{Direction: host.Column, Padding: 16})

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, r.RenderPNG(root, path))

	w, h := decodePNG(t, path)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestRenderPNG_GeneratedComparison(t *testing.T) {
	h := memhost.New("FK1")
	h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "Button", Key: "FK1:old"})
	h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "ButtonV2", Key: "FK1:new"})

	gen := visuals.New(h, h, h, h, config.DefaultConfig().Canvas, zerolog.Nop())
	summary := gen.Generate(context.Background(), []mapping.Mapping{
		{OldKey: "FK1:old", NewKey: "FK1:new", OldName: "Button|size=md", NewName: "ButtonV2"},
		{OldKey: "FK1:old", NewKey: "FK1:missing", OldName: "Button", NewName: "Gone"},
	})
	assert.True(t, summary.HadErrors) // second pair has a bad key

	roots := h.Root()
	require.Len(t, roots, 1)

	r := render.NewRenderer(testFonts(t))
	path := filepath.Join(t.TempDir(), "comparison.png")
	require.NoError(t, r.RenderPNG(roots[0], path))

	w, hgt := decodePNG(t, path)
	assert.Greater(t, w, 300)
	assert.Greater(t, hgt, 200)
}

func TestRenderPNG_TextSizing(t *testing.T) {
	r := render.NewRenderer(testFonts(t))

	row := host.NewFrame("row", host.FrameProps{Direction: host.Row, Spacing: 4, Padding: 2})
	row.Append(
		host.NewText("hello", host.TextProps{Weight: host.WeightBold, Size: 14, Color: "#000000"}),
		host.NewText("world", host.TextProps{Weight: host.WeightRegular, Size: 14}),
	)

	path := filepath.Join(t.TempDir(), "text.png")
	require.NoError(t, r.RenderPNG(row, path))

	w, hgt := decodePNG(t, path)
	assert.Greater(t, w, 40)
	assert.Greater(t, hgt, 10)
}

// Package visuals builds side-by-side comparison frames for recorded
// mapping pairs, importing the referenced components best-effort.
package visuals

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/resolver"
)

// Summary is the single user-facing result of a generation batch.
type Summary struct {
	Text      string `json:"text"`
	Variant   string `json:"variant"` // success, warning, or error
	Timeout   int    `json:"timeout"` // toast duration in ms
	Fatal     bool   `json:"-"`
	HadErrors bool   `json:"-"`
	Pairs     int    `json:"-"`
}

const (
	successTimeout = 4000
	errorTimeout   = 6000

	rootFrameName = "Component Comparison"
)

// Generator orchestrates one comparison batch against the host. A Generator
// is stateless across calls; every Generate starts fresh.
type Generator struct {
	doc    host.Document
	imp    host.Importer
	fonts  host.FontLoader
	view   host.Viewport
	canvas config.CanvasConfig
	log    zerolog.Logger
}

// New creates a generator bound to the given host capabilities.
func New(doc host.Document, imp host.Importer, fonts host.FontLoader, view host.Viewport, canvas config.CanvasConfig, log zerolog.Logger) *Generator {
	return &Generator{doc: doc, imp: imp, fonts: fonts, view: view, canvas: canvas, log: log}
}

// Generate builds one pair frame per mapping, in input order, and reports a
// single summary. It never returns an error: import and per-pair failures
// degrade locally, and only font preload or root placement failure is fatal
// (in which case nothing is created).
func (g *Generator) Generate(ctx context.Context, mappings []mapping.Mapping) Summary {
	// Text nodes require their typeface loaded before styling, so all
	// three weights are preloaded up front. Without them the output would
	// be inconsistent, so this failure aborts the whole batch.
	if err := g.fonts.Load(ctx, host.WeightRegular, host.WeightMedium, host.WeightBold); err != nil {
		g.log.Error().Err(err).Msg("font preload failed")
		return fatalSummary("Failed to load fonts. No visuals were generated.")
	}

	root := host.NewFrame(rootFrameName, host.FrameProps{
		Direction: host.Column,
		Spacing:   g.canvas.PairSpacing,
		Padding:   g.canvas.Padding,
		Fill:      g.canvas.Background,
	})
	if err := g.doc.AppendToRoot(root); err != nil {
		g.log.Error().Err(err).Msg("could not place comparison container")
		return fatalSummary("Failed to create the comparison frame. No visuals were generated.")
	}

	hadErrors := false
	for i, m := range mappings {
		pair, importFailures, err := g.buildPair(ctx, m)
		if err != nil {
			// Unexpected construction failure: skip this pair, keep going.
			hadErrors = true
			g.log.Warn().Err(err).Int("index", i).Str("old", m.OldKey).Str("new", m.NewKey).
				Msg("skipped mapping: pair construction failed")
			continue
		}
		if importFailures > 0 {
			hadErrors = true
			g.log.Warn().Int("index", i).Int("failures", importFailures).
				Msg("pair rendered with import errors")
		}
		root.Append(pair)
	}

	g.view.FocusOn(root)

	pairs := len(root.Children)
	if hadErrors {
		return Summary{
			Text:      "Comparison generated with some errors. Check the canvas for details.",
			Variant:   "warning",
			Timeout:   errorTimeout,
			HadErrors: true,
			Pairs:     pairs,
		}
	}
	return Summary{
		Text:    fmt.Sprintf("Generated %d %s.", pairs, plural(pairs, "comparison")),
		Variant: "success",
		Timeout: successTimeout,
		Pairs:   pairs,
	}
}

// buildPair constructs the frame for one mapping: an OLD block and a NEW
// block side by side. Panics and unexpected errors are contained here so a
// single bad mapping cannot abort its siblings.
func (g *Generator) buildPair(ctx context.Context, m mapping.Mapping) (pair *host.Node, importFailures int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pair, importFailures = nil, 0
			err = fmt.Errorf("build pair: %v", r)
		}
	}()

	oldBase, _ := mapping.SplitName(m.OldName)
	newBase, _ := mapping.SplitName(m.NewName)

	pair = host.NewFrame(oldBase+" vs "+newBase, host.FrameProps{
		Direction: host.Row,
		Spacing:   g.canvas.PairSpacing,
		Padding:   g.canvas.Padding,
	})

	oldBlock, oldOK := g.buildSide(ctx, "OLD", g.canvas.OldAccent, m.OldKey, m.OldName)
	newBlock, newOK := g.buildSide(ctx, "NEW", g.canvas.NewAccent, m.NewKey, m.NewName)
	if !oldOK {
		importFailures++
	}
	if !newOK {
		importFailures++
	}

	pair.Append(oldBlock, newBlock)
	return pair, importFailures, nil
}

// buildSide builds one half of a pair: category label, name block, key
// annotation, and the imported instance or an inline error marker. The
// second return is false when the import failed.
func (g *Generator) buildSide(ctx context.Context, label, accent, key, name string) (*host.Node, bool) {
	block := host.NewFrame(label+" "+name, host.FrameProps{
		Direction: host.Column,
		Spacing:   g.canvas.BlockSpacing,
		Padding:   g.canvas.Padding,
	})

	block.Append(host.NewText(label, host.TextProps{
		Weight: host.WeightBold,
		Size:   g.canvas.LabelSize,
		Color:  accent,
	}))

	base, variant := mapping.SplitName(name)
	block.Append(host.NewText(base, host.TextProps{
		Weight: host.WeightMedium,
		Size:   g.canvas.NameSize,
	}))
	if variant != "" {
		block.Append(host.NewText(variant, host.TextProps{
			Weight: host.WeightRegular,
			Size:   g.canvas.KeySize,
			Color:  g.canvas.MutedColor,
		}))
	}

	qualified := resolver.FormatKey(g.doc, key)
	block.Append(host.NewText(qualified, host.TextProps{
		Weight: host.WeightRegular,
		Size:   g.canvas.KeySize,
		Color:  g.canvas.MutedColor,
	}))

	inst, err := g.imp.ImportComponent(ctx, qualified)
	if err != nil {
		g.log.Warn().Err(err).Str("key", qualified).Msg("component import failed")
		block.Append(g.errorMarker(err))
		return block, false
	}

	block.Append(inst)
	return block, true
}

// errorMarker is the inline marker rendered where an instance should have
// been.
func (g *Generator) errorMarker(cause error) *host.Node {
	marker := host.NewFrame("Import failed", host.FrameProps{
		Direction: host.Column,
		Spacing:   g.canvas.BlockSpacing / 2,
		Padding:   g.canvas.Padding / 2,
		Stroke:    g.canvas.ErrorColor,
	})
	marker.Append(
		host.NewText("Import failed", host.TextProps{
			Weight: host.WeightBold,
			Size:   g.canvas.NameSize,
			Color:  g.canvas.ErrorColor,
		}),
		host.NewText(cause.Error(), host.TextProps{
			Weight: host.WeightRegular,
			Size:   g.canvas.KeySize,
			Color:  g.canvas.MutedColor,
		}),
	)
	return marker
}

func fatalSummary(text string) Summary {
	return Summary{Text: text, Variant: "error", Timeout: errorTimeout, Fatal: true, HadErrors: true}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

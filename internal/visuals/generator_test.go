package visuals_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/pairview/pairview/internal/visuals"
)

func newGenerator(h *memhost.Host) *visuals.Generator {
	return visuals.New(h, h, h, h, config.DefaultConfig().Canvas, zerolog.Nop())
}

func registerButton(h *memhost.Host, key, name string) {
	h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: name, Key: key})
}

// findTexts flattens all text content under a node, depth-first.
func findTexts(n *host.Node) []string {
	var out []string
	if n.Kind == host.KindText && n.Text != nil {
		out = append(out, n.Text.Content)
	}
	for _, c := range n.Children {
		out = append(out, findTexts(c)...)
	}
	return out
}

func countKind(n *host.Node, kind host.Kind) int {
	count := 0
	if n.Kind == kind {
		count++
	}
	for _, c := range n.Children {
		count += countKind(c, kind)
	}
	return count
}

func TestGenerate_EmptyList(t *testing.T) {
	h := memhost.New("FK1")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), nil)

	assert.Equal(t, "success", summary.Variant)
	assert.False(t, summary.HadErrors)
	assert.Equal(t, 0, summary.Pairs)

	root := h.Root()
	require.Len(t, root, 1)
	assert.Empty(t, root[0].Children)
	assert.Same(t, root[0], h.Focused())
}

func TestGenerate_PreloadsAllThreeWeights(t *testing.T) {
	h := memhost.New("FK1")
	newGenerator(h).Generate(context.Background(), nil)

	assert.True(t, h.Loaded(host.WeightRegular))
	assert.True(t, h.Loaded(host.WeightMedium))
	assert.True(t, h.Loaded(host.WeightBold))
}

func TestGenerate_OnePairBothImportsSucceed(t *testing.T) {
	h := memhost.New("FK1")
	registerButton(h, "FK1:old-btn", "Button")
	registerButton(h, "FK1:new-btn", "ButtonV2")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), []mapping.Mapping{{
		OldKey: "FK1:old-btn", NewKey: "new-btn",
		OldName: "Button|size=md", NewName: "ButtonV2",
	}})

	assert.Equal(t, "success", summary.Variant)
	assert.Equal(t, 1, summary.Pairs)

	root := h.Root()
	require.Len(t, root, 1)
	require.Len(t, root[0].Children, 1)

	pair := root[0].Children[0]
	require.Len(t, pair.Children, 2)
	assert.Equal(t, 2, countKind(pair, host.KindInstance))

	texts := findTexts(pair)
	assert.Contains(t, texts, "OLD")
	assert.Contains(t, texts, "NEW")
	assert.Contains(t, texts, "Button")
	assert.Contains(t, texts, "size=md")
	// Bare keys get qualified with the document namespace.
	assert.Contains(t, texts, "FK1:new-btn")
}

func TestGenerate_OneBadOneGoodKey(t *testing.T) {
	h := memhost.New("")
	registerButton(h, "GOOD", "Button")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), []mapping.Mapping{{
		OldKey: "BAD", NewKey: "GOOD",
		OldName: "A", NewName: "B",
	}})

	assert.Equal(t, "warning", summary.Variant)
	assert.True(t, summary.HadErrors)
	assert.False(t, summary.Fatal)
	assert.Equal(t, 1, summary.Pairs)

	root := h.Root()
	require.Len(t, root, 1)
	require.Len(t, root[0].Children, 1)

	pair := root[0].Children[0]
	assert.Equal(t, 1, countKind(pair, host.KindInstance))
	assert.Contains(t, findTexts(pair), "Import failed")
}

func TestGenerate_AllMappingsAttempted(t *testing.T) {
	h := memhost.New("")
	registerButton(h, "GOOD", "Button")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), []mapping.Mapping{
		{OldKey: "BAD1", NewKey: "BAD2", OldName: "A", NewName: "B"},
		{OldKey: "GOOD", NewKey: "GOOD", OldName: "C", NewName: "D"},
	})

	assert.True(t, summary.HadErrors)
	// The failing first mapping does not abort the second.
	assert.Equal(t, 2, summary.Pairs)
}

func TestGenerate_FontFailureIsFatal(t *testing.T) {
	h := memhost.New("FK1")
	h.FontErr = errors.New("network down")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), []mapping.Mapping{{
		OldKey: "a", NewKey: "b", OldName: "A", NewName: "B",
	}})

	assert.True(t, summary.Fatal)
	assert.Equal(t, "error", summary.Variant)
	// Nothing placed on the page.
	assert.Empty(t, h.Root())
}

func TestGenerate_ContainerFailureIsFatal(t *testing.T) {
	h := memhost.New("FK1")
	h.AppendErr = errors.New("page is locked")
	gen := newGenerator(h)

	summary := gen.Generate(context.Background(), nil)

	assert.True(t, summary.Fatal)
	assert.Equal(t, "error", summary.Variant)
	assert.Empty(t, h.Root())
}

func TestGenerate_PairsPreserveInputOrder(t *testing.T) {
	h := memhost.New("")
	registerButton(h, "K1", "One")
	registerButton(h, "K2", "Two")
	gen := newGenerator(h)

	gen.Generate(context.Background(), []mapping.Mapping{
		{OldKey: "K1", NewKey: "K1", OldName: "First", NewName: "FirstV2"},
		{OldKey: "K2", NewKey: "K2", OldName: "Second", NewName: "SecondV2"},
	})

	root := h.Root()
	require.Len(t, root, 1)
	require.Len(t, root[0].Children, 2)
	assert.Equal(t, "First vs FirstV2", root[0].Children[0].Name)
	assert.Equal(t, "Second vs SecondV2", root[0].Children[1].Name)
}

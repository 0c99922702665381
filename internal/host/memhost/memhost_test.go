package memhost_test

import (
	"context"
	"testing"

	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportComponent(t *testing.T) {
	h := memhost.New("FK1")
	comp := h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "Button", Key: "FK1:btn"})

	inst, err := h.ImportComponent(context.Background(), "FK1:btn")
	require.NoError(t, err)
	assert.Equal(t, host.KindInstance, inst.Kind)
	assert.Same(t, comp, inst.Master)
	assert.NotEmpty(t, inst.ID)

	// Each import yields a distinct instance.
	inst2, err := h.ImportComponent(context.Background(), "FK1:btn")
	require.NoError(t, err)
	assert.NotEqual(t, inst.ID, inst2.ID)
}

func TestRegisterComponent_KeyStoredAsGiven(t *testing.T) {
	h := memhost.New("FK1")
	h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "Button", Key: "btn"})

	// The catalog does not qualify bare keys with the namespace.
	_, err := h.ImportComponent(context.Background(), "btn")
	require.NoError(t, err)

	_, err = h.ImportComponent(context.Background(), "FK1:btn")
	assert.ErrorIs(t, err, host.ErrUnknownComponent)
}

func TestImportComponent_Unknown(t *testing.T) {
	h := memhost.New("FK1")

	_, err := h.ImportComponent(context.Background(), "FK1:missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrUnknownComponent)
}

func TestSelectionChangeCallbacks(t *testing.T) {
	h := memhost.New("FK1")
	var fired int
	remove := h.OnSelectionChange(func() { fired++ })

	node := &host.Node{Kind: host.KindOther, Name: "rect"}
	h.SetSelection(node)
	h.SetSelection()

	assert.Equal(t, 2, fired)
	assert.Empty(t, h.Selection())

	// A removed callback no longer fires; other callbacks are untouched.
	var other int
	h.OnSelectionChange(func() { other++ })
	remove()
	h.SetSelection(node)

	assert.Equal(t, 2, fired)
	assert.Equal(t, 1, other)
}

func TestFontLoadRecordsWeights(t *testing.T) {
	h := memhost.New("FK1")

	require.NoError(t, h.Load(context.Background(), host.WeightRegular, host.WeightBold))
	assert.True(t, h.Loaded(host.WeightRegular))
	assert.True(t, h.Loaded(host.WeightBold))
	assert.False(t, h.Loaded(host.WeightMedium))
}

func TestAppendToRootFailureInjection(t *testing.T) {
	h := memhost.New("FK1")
	h.AppendErr = assert.AnError

	err := h.AppendToRoot(host.NewFrame("root", host.FrameProps{}))
	require.Error(t, err)
	assert.Empty(t, h.Root())
}

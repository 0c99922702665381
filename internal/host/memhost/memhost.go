// Package memhost is an in-memory reference implementation of the host
// capability interfaces. It backs the package tests and the render command,
// where no live design tool is attached.
package memhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pairview/pairview/internal/host"
)

// Host implements host.Document, host.Importer, host.FontLoader, and
// host.Viewport over an in-memory scene graph and component catalog.
type Host struct {
	mu          sync.Mutex
	namespaceID string
	catalog     map[string]*host.Node // qualified key -> component
	root        []*host.Node
	selection   []*host.Node
	onSelection map[int]func()
	nextCB      int
	loaded      map[host.Weight]bool
	focused     *host.Node

	// Failure injection for exercising the fatal paths.
	FontErr   error
	AppendErr error
}

// New creates an empty host with the given document namespace id.
func New(namespaceID string) *Host {
	return &Host{
		namespaceID: namespaceID,
		catalog:     make(map[string]*host.Node),
		onSelection: make(map[int]func()),
		loaded:      make(map[host.Weight]bool),
	}
}

// RegisterComponent adds a component node to the catalog under its key and
// returns it. Keys are stored as given; bare keys are only qualified by the
// resolver when a message formats them.
func (h *Host) RegisterComponent(c *host.Node) *host.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	h.catalog[c.Key] = c
	return c
}

// NamespaceID implements host.Document.
func (h *Host) NamespaceID() string { return h.namespaceID }

// Selection implements host.Document.
func (h *Host) Selection() []*host.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*host.Node, len(h.selection))
	copy(out, h.selection)
	return out
}

// SetSelection replaces the selection and fires registered callbacks.
func (h *Host) SetSelection(nodes ...*host.Node) {
	h.mu.Lock()
	h.selection = nodes
	callbacks := make([]func(), 0, len(h.onSelection))
	for _, fn := range h.onSelection {
		callbacks = append(callbacks, fn)
	}
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// OnSelectionChange implements host.Document.
func (h *Host) OnSelectionChange(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextCB
	h.nextCB++
	h.onSelection[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.onSelection, id)
	}
}

// AppendToRoot implements host.Document.
func (h *Host) AppendToRoot(n *host.Node) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.AppendErr != nil {
		return h.AppendErr
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	h.root = append(h.root, n)
	return nil
}

// Root returns the nodes appended to the document page so far.
func (h *Host) Root() []*host.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*host.Node, len(h.root))
	copy(out, h.root)
	return out
}

// ImportComponent implements host.Importer. Returns a fresh instance node
// referencing the cataloged component, or host.ErrUnknownComponent.
func (h *Host) ImportComponent(_ context.Context, key string) (*host.Node, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	master, ok := h.catalog[key]
	if !ok {
		return nil, fmt.Errorf("import %q: %w", key, host.ErrUnknownComponent)
	}
	return &host.Node{
		ID:     uuid.NewString(),
		Kind:   host.KindInstance,
		Name:   master.Name,
		Master: master,
	}, nil
}

// Load implements host.FontLoader. Weights are recorded so tests can assert
// the preload happened before any text was created.
func (h *Host) Load(_ context.Context, weights ...host.Weight) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FontErr != nil {
		return h.FontErr
	}
	for _, w := range weights {
		h.loaded[w] = true
	}
	return nil
}

// Loaded reports whether a weight has been loaded.
func (h *Host) Loaded(w host.Weight) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded[w]
}

// FocusOn implements host.Viewport.
func (h *Host) FocusOn(n *host.Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focused = n
}

// Focused returns the node last focused in the viewport.
func (h *Host) Focused() *host.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

// Package host defines the capability boundary between the plugin core and
// the design-tool host: the node model plus the narrow interfaces the core
// calls for documents, component import, font loading, and the viewport.
package host

import (
	"context"
	"errors"
)

// ErrUnknownComponent is returned by Importer implementations when no
// component exists for the requested key.
var ErrUnknownComponent = errors.New("unknown component key")

// Document is the host's open document: its component namespace, the current
// selection, and the page the plugin appends generated output to.
type Document interface {
	// NamespaceID returns the document's component namespace id, or an
	// empty string when the document has none.
	NamespaceID() string

	// Selection returns the currently selected nodes.
	Selection() []*Node

	// AppendToRoot places a node onto the document's current page.
	AppendToRoot(n *Node) error

	// OnSelectionChange registers a callback fired on every selection
	// change and returns a handle that removes it. Callbacks run on the
	// host's event loop, one at a time.
	OnSelectionChange(fn func()) (remove func())
}

// Importer fetches a component by its qualified key and returns a fresh
// instance of it.
type Importer interface {
	ImportComponent(ctx context.Context, key string) (*Node, error)
}

// FontLoader loads typeface weights. Every weight used by a text node must
// be loaded before the node is styled.
type FontLoader interface {
	Load(ctx context.Context, weights ...Weight) error
}

// Viewport scrolls and zooms the host viewport.
type Viewport interface {
	FocusOn(n *Node)
}

// Package resolver derives stable keys and human-readable labels from
// design-surface nodes, normalizing the host's variant naming quirks.
package resolver

import (
	"strings"

	"github.com/pairview/pairview/internal/host"
)

// ResolveKey returns the stable component key for a node: a component's own
// key, or the referenced master's key for an instance. The second return is
// false for any other node kind; absence of a key is expected, not an error.
func ResolveKey(n *host.Node) (string, bool) {
	switch n.Kind {
	case host.KindComponent:
		return n.Key, true
	case host.KindInstance:
		if n.Master != nil {
			return n.Master.Key, true
		}
		return "", false
	default:
		return "", false
	}
}

// ResolveLabel computes a display label for a node.
//
// The base name starts as the node's own name (an instance uses its master's
// name). Variant-style names (containing "=") belonging to a variant set are
// collapsed to the set's family name. Independently of that swap, a non-empty
// variant property list is appended as "base|k=v, k=v" in stored order, so
// the label keeps its distinguishing variant info even after the base name
// was collapsed.
func ResolveLabel(n *host.Node) string {
	switch n.Kind {
	case host.KindComponent, host.KindInstance:
	default:
		return n.Name
	}

	target := n
	if n.Kind == host.KindInstance && n.Master != nil {
		target = n.Master
	}

	name := target.Name
	if strings.Contains(name, "=") && target.VariantSet != nil {
		name = target.VariantSet.Name
	}

	props := n.VariantProps
	if len(props) == 0 {
		props = target.VariantProps
	}
	if len(props) > 0 {
		pairs := make([]string, len(props))
		for i, p := range props {
			pairs[i] = p.Key + "=" + p.Value
		}
		name = name + "|" + strings.Join(pairs, ", ")
	}

	return name
}

// FormatKey qualifies a bare component key with the document's namespace id.
// Keys that already contain ":" are assumed fully qualified and returned
// unchanged. With no document or no namespace id the key is returned as-is;
// a later import on it is expected to fail cleanly.
func FormatKey(doc host.Document, raw string) string {
	if strings.Contains(raw, ":") {
		return raw
	}
	if doc == nil {
		return raw
	}
	ns := doc.NamespaceID()
	if ns == "" {
		return raw
	}
	return ns + ":" + raw
}

// Describe builds the ComponentInfo fields for a node: its qualified key and
// resolved label. The second return is false when the node has no key.
func Describe(doc host.Document, n *host.Node) (key, label string, ok bool) {
	key, ok = ResolveKey(n)
	if !ok {
		return "", "", false
	}
	return FormatKey(doc, key), ResolveLabel(n), true
}

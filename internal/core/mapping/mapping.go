// Package mapping defines the migration-pair record exchanged with the
// presentation layer and persisted by the plugin.
package mapping

import "strings"

// Mapping is one recorded migration pair between an old and a new component.
// Instances are treated as immutable once handed to the visuals generator.
type Mapping struct {
	OldKey  string `json:"oldKey"`
	NewKey  string `json:"newKey"`
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
	Notes   string `json:"notes"`
}

// PersistedSet is the blob stored under the plugin's single storage key.
type PersistedSet struct {
	Mappings  []Mapping `json:"mappings"`
	Timestamp int64     `json:"timestamp"` // ms since epoch
}

// ComponentInfo describes one currently-selected component. It is rebuilt
// from scratch on every selection change and never persisted.
type ComponentInfo struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	ID      string `json:"id"`
	Library string `json:"library,omitempty"`
}

// SplitName splits a display name of the form "base|variantProps" into its
// base name and optional variant suffix. Names without a pipe return an
// empty suffix.
func SplitName(name string) (base, variant string) {
	base, variant, _ = strings.Cut(name, "|")
	return base, variant
}

// Library extracts the namespace prefix from a qualified key. Returns an
// empty string for bare local ids.
func Library(key string) string {
	ns, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return ns
}

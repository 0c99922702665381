package plugin

import "github.com/pairview/pairview/internal/core/mapping"

// Inbound message types sent by the presentation layer.
const (
	TypeCopySelectedKey        = "copySelectedKey"
	TypeGenerateVisuals        = "generateVisuals"
	TypeSaveMappings           = "saveMappings"
	TypeLoadMappings           = "loadMappings"
	TypeGetInitialSelection    = "getInitialSelection"
	TypeInsertComponentsByKeys = "insertComponentsByKeys"
)

// Outbound message types.
const (
	TypeKeyCopied                = "keyCopied"
	TypeMessage                  = "message"
	TypeLoadedMappings           = "loadedMappings"
	TypeSelectionChange          = "selectionChange"
	TypeComponentInsertionResult = "componentInsertionResult"
)

// toastErrorTimeout is the duration in milliseconds for error toasts; the
// success duration comes from the generation summary.
const toastErrorTimeout = 6000

// Inbound is the envelope for every message from the presentation layer,
// tagged by Type. Only the fields relevant to the type are set.
type Inbound struct {
	Type     string                `json:"type"`
	Mappings []mapping.Mapping     `json:"mappings,omitempty"`
	Data     *mapping.PersistedSet `json:"data,omitempty"`
	Keys     []string              `json:"keys,omitempty"`
}

// KeyCopied replies to copySelectedKey.
type KeyCopied struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Toast is a transient user-facing message shown by the presentation layer.
type Toast struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Variant string `json:"variant"`
	Timeout int    `json:"timeout"`
}

// LoadedMappings replies to loadMappings. Data is an explicit null when
// nothing is stored.
type LoadedMappings struct {
	Type string                `json:"type"`
	Data *mapping.PersistedSet `json:"data"`
}

// SelectionChange pushes the current selection to the presentation layer.
type SelectionChange struct {
	Type      string                  `json:"type"`
	Selection []mapping.ComponentInfo `json:"selection"`
}

// InsertionResult replies to insertComponentsByKeys.
type InsertionResult struct {
	Type          string   `json:"type"`
	Success       bool     `json:"success"`
	InsertedCount int      `json:"insertedCount"`
	ErrorCount    int      `json:"errorCount"`
	Errors        []string `json:"errors"`
}

package eventbus

import "github.com/pairview/pairview/internal/core/mapping"

// SelectionChangedPayload is emitted after the selection notifier pushed a
// fresh ComponentInfo list to the presentation layer.
type SelectionChangedPayload struct {
	Selection []mapping.ComponentInfo
}

// VisualsGeneratedPayload is emitted when a comparison batch finishes.
type VisualsGeneratedPayload struct {
	Pairs     int
	HadErrors bool
	Fatal     bool
}

// MappingsSavedPayload is emitted after a mapping set was written to storage.
type MappingsSavedPayload struct {
	Count     int
	Timestamp int64
}

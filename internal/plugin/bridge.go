// Package plugin is the message boundary between the presentation layer and
// the core: a type-tagged dispatch over the host capabilities, the selection
// notifier, and the mapping persistence bridge.
package plugin

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/resolver"
	"github.com/pairview/pairview/internal/visuals"
)

// Bridge handles inbound messages one at a time per connection. Generation
// batches are serialized across connections by a single-slot in-flight guard.
type Bridge struct {
	doc   host.Document
	imp   host.Importer
	view  host.Viewport
	gen   *visuals.Generator
	store *MappingStore
	bus   *eventbus.EventBus
	log   zerolog.Logger

	inFlight atomic.Bool
}

// NewBridge wires the bridge to its collaborators.
func NewBridge(doc host.Document, imp host.Importer, view host.Viewport, gen *visuals.Generator, store *MappingStore, bus *eventbus.EventBus, log zerolog.Logger) *Bridge {
	return &Bridge{doc: doc, imp: imp, view: view, gen: gen, store: store, bus: bus, log: log}
}

// Handle processes one inbound message and returns the reply message, or nil
// for fire-and-forget messages.
func (b *Bridge) Handle(ctx context.Context, in Inbound) any {
	switch in.Type {
	case TypeCopySelectedKey:
		return b.copySelectedKey()
	case TypeGenerateVisuals:
		return b.generateVisuals(ctx, in.Mappings)
	case TypeSaveMappings:
		b.saveMappings(ctx, in.Data)
		return nil
	case TypeLoadMappings:
		return b.loadMappings(ctx)
	case TypeGetInitialSelection:
		return SelectionChange{Type: TypeSelectionChange, Selection: SelectionInfo(b.doc)}
	case TypeInsertComponentsByKeys:
		return b.insertByKeys(ctx, in.Keys)
	default:
		b.log.Warn().Str("type", in.Type).Msg("unknown message type")
		return Toast{
			Type:    TypeMessage,
			Text:    fmt.Sprintf("Unknown message type %q.", in.Type),
			Variant: "error",
			Timeout: toastErrorTimeout,
		}
	}
}

func (b *Bridge) copySelectedKey() KeyCopied {
	sel := b.doc.Selection()
	if len(sel) == 0 {
		return KeyCopied{Type: TypeKeyCopied, Error: "Nothing is selected."}
	}

	key, ok := resolver.ResolveKey(sel[0])
	if !ok {
		return KeyCopied{Type: TypeKeyCopied, Error: "The selected layer has no component key."}
	}

	return KeyCopied{
		Type:    TypeKeyCopied,
		Success: true,
		Key:     resolver.FormatKey(b.doc, key),
	}
}

func (b *Bridge) generateVisuals(ctx context.Context, mappings []mapping.Mapping) Toast {
	// Overlapping batches would interleave host calls unpredictably, so a
	// second request is refused while one is running.
	if !b.inFlight.CompareAndSwap(false, true) {
		return Toast{
			Type:    TypeMessage,
			Text:    "A comparison is already being generated.",
			Variant: "error",
			Timeout: toastErrorTimeout,
		}
	}
	defer b.inFlight.Store(false)

	summary := b.gen.Generate(ctx, mappings)

	// Same contract as saveMappings: the record is best-effort and a
	// failure only gets logged.
	if err := b.store.RecordRun(ctx, summary.Pairs, summary.HadErrors || summary.Fatal); err != nil {
		b.log.Error().Err(err).Msg("run record failed")
	}

	b.bus.PublishVisualsGenerated(eventbus.VisualsGeneratedPayload{
		Pairs:     summary.Pairs,
		HadErrors: summary.HadErrors,
		Fatal:     summary.Fatal,
	})

	return Toast{
		Type:    TypeMessage,
		Text:    summary.Text,
		Variant: summary.Variant,
		Timeout: summary.Timeout,
	}
}

// saveMappings is fire-and-forget toward the presentation layer: the store
// reports failure, but the caller only logs it.
func (b *Bridge) saveMappings(ctx context.Context, data *mapping.PersistedSet) {
	if data == nil {
		b.log.Warn().Msg("saveMappings without payload")
		return
	}

	if err := b.store.Save(ctx, *data); err != nil {
		b.log.Error().Err(err).Msg("mapping save failed")
		return
	}

	b.bus.PublishMappingsSaved(eventbus.MappingsSavedPayload{
		Count:     len(data.Mappings),
		Timestamp: data.Timestamp,
	})
}

func (b *Bridge) loadMappings(ctx context.Context) LoadedMappings {
	set, err := b.store.Load(ctx)
	if err != nil {
		// Read failures resolve to "no data" so the presentation layer
		// always receives a well-formed response.
		b.log.Error().Err(err).Msg("mapping load failed")
		set = nil
	}
	return LoadedMappings{Type: TypeLoadedMappings, Data: set}
}

func (b *Bridge) insertByKeys(ctx context.Context, keys []string) InsertionResult {
	res := InsertionResult{Type: TypeComponentInsertionResult, Errors: []string{}}

	var last *host.Node
	for _, k := range keys {
		qualified := resolver.FormatKey(b.doc, k)
		inst, err := b.imp.ImportComponent(ctx, qualified)
		if err != nil {
			res.ErrorCount++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", k, err))
			continue
		}
		if err := b.doc.AppendToRoot(inst); err != nil {
			res.ErrorCount++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", k, err))
			continue
		}
		res.InsertedCount++
		last = inst
	}

	if last != nil {
		b.view.FocusOn(last)
	}
	res.Success = res.ErrorCount == 0
	return res
}

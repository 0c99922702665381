package plugin

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/core/mapping"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/resolver"
)

// DefaultMountDelay is how long the notifier waits after activation before
// the first push, giving the presentation layer time to finish mounting.
const DefaultMountDelay = 500 * time.Millisecond

// SelectionInfo maps the current selection to ComponentInfo records,
// skipping nodes with no resolvable key. Always returns a non-nil slice so
// empty selections serialize as [] rather than null.
func SelectionInfo(doc host.Document) []mapping.ComponentInfo {
	out := []mapping.ComponentInfo{}
	for _, n := range doc.Selection() {
		key, label, ok := resolver.Describe(doc, n)
		if !ok {
			continue
		}
		out = append(out, mapping.ComponentInfo{
			Key:     key,
			Name:    label,
			ID:      n.ID,
			Library: mapping.Library(key),
		})
	}
	return out
}

// Notifier pushes the full selection list to the presentation layer on every
// host selection change, and once shortly after activation. It keeps no
// state between events.
type Notifier struct {
	doc        host.Document
	bus        *eventbus.EventBus
	send       func(SelectionChange)
	mountDelay time.Duration
	log        zerolog.Logger
}

// NewNotifier creates a notifier that delivers pushes through send.
func NewNotifier(doc host.Document, bus *eventbus.EventBus, send func(SelectionChange), log zerolog.Logger) *Notifier {
	return &Notifier{
		doc:        doc,
		bus:        bus,
		send:       send,
		mountDelay: DefaultMountDelay,
		log:        log,
	}
}

// WithMountDelay overrides the initial-push delay.
func (n *Notifier) WithMountDelay(d time.Duration) *Notifier {
	n.mountDelay = d
	return n
}

// Start registers the selection-change callback and schedules the delayed
// initial push. The callback is removed and the initial push skipped once
// ctx is canceled.
func (n *Notifier) Start(ctx context.Context) {
	remove := n.doc.OnSelectionChange(n.push)

	go func() {
		<-ctx.Done()
		remove()
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(n.mountDelay):
			n.push()
		}
	}()
}

func (n *Notifier) push() {
	infos := SelectionInfo(n.doc)
	n.send(SelectionChange{Type: TypeSelectionChange, Selection: infos})
	n.bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Selection: infos})
	n.log.Debug().Int("count", len(infos)).Msg("selection pushed")
}

// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within pairview.
package eventbus

import (
	"context"
	"sync"
)

// Event names a bus event type.
type Event string

// All bus events, sorted A-Z.
const (
	EventMappingsSaved    Event = "mappings.saved"
	EventSelectionChanged Event = "selection.changed"
	EventVisualsGenerated Event = "visuals.generated"
)

const defaultBuffer = 64

type envelope struct {
	event   Event
	payload any
}

// EventBus dispatches typed events to subscribers on a single background
// goroutine. Publishing never blocks; events are dropped when the buffer is
// full and the OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	mu    sync.RWMutex
	subs  map[Event][]func(any)
	hooks hooks
}

// New creates a bus with the default buffer size.
func New() *EventBus {
	return &EventBus{
		ch:   make(chan envelope, defaultBuffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start runs the dispatch loop until ctx is canceled.
func (bus *EventBus) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case env := <-bus.ch:
				bus.dispatch(env)
			}
		}
	}()
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.runOnPublish(event, payload)
	default:
		bus.runOnDrop(event, payload)
	}
}

// PublishSelectionChanged publishes a selection.changed event.
func (bus *EventBus) PublishSelectionChanged(p SelectionChangedPayload) {
	bus.send(EventSelectionChanged, p)
}

// SubscribeSelectionChanged subscribes to selection.changed events.
func (bus *EventBus) SubscribeSelectionChanged(fn func(SelectionChangedPayload)) {
	bus.subscribe(EventSelectionChanged, func(p any) {
		if payload, ok := p.(SelectionChangedPayload); ok {
			fn(payload)
		}
	})
}

// PublishVisualsGenerated publishes a visuals.generated event.
func (bus *EventBus) PublishVisualsGenerated(p VisualsGeneratedPayload) {
	bus.send(EventVisualsGenerated, p)
}

// SubscribeVisualsGenerated subscribes to visuals.generated events.
func (bus *EventBus) SubscribeVisualsGenerated(fn func(VisualsGeneratedPayload)) {
	bus.subscribe(EventVisualsGenerated, func(p any) {
		if payload, ok := p.(VisualsGeneratedPayload); ok {
			fn(payload)
		}
	})
}

// PublishMappingsSaved publishes a mappings.saved event.
func (bus *EventBus) PublishMappingsSaved(p MappingsSavedPayload) {
	bus.send(EventMappingsSaved, p)
}

// SubscribeMappingsSaved subscribes to mappings.saved events.
func (bus *EventBus) SubscribeMappingsSaved(fn func(MappingsSavedPayload)) {
	bus.subscribe(EventMappingsSaved, func(p any) {
		if payload, ok := p.(MappingsSavedPayload); ok {
			fn(payload)
		}
	})
}

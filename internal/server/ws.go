// Package server exposes the plugin bridge to the presentation layer over a
// websocket, one message loop per connection.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/plugin"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10

	outboundBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Handler serves the plugin message channel.
type Handler struct {
	bridge     *plugin.Bridge
	doc        host.Document
	bus        *eventbus.EventBus
	log        zerolog.Logger
	mountDelay time.Duration
}

// New creates a handler over the given bridge and document.
func New(bridge *plugin.Bridge, doc host.Document, bus *eventbus.EventBus, log zerolog.Logger) *Handler {
	return &Handler{
		bridge:     bridge,
		doc:        doc,
		bus:        bus,
		log:        log,
		mountDelay: plugin.DefaultMountDelay,
	}
}

// WithMountDelay overrides the notifier's initial-push delay.
func (h *Handler) WithMountDelay(d time.Duration) *Handler {
	h.mountDelay = d
	return h
}

// Routes returns the handler's HTTP mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	return mux
}

// HandleWS upgrades the connection and runs its message loop: replies and
// selection-change pushes share one outbound channel drained by the write
// pump.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		h.log.Warn().Err(err).Msg("set read deadline failed")
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan any, outboundBuffer)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// The notifier unregisters from the host when ctx is canceled; the
	// guard covers pushes racing that teardown.
	notifier := plugin.NewNotifier(h.doc, h.bus, func(sc plugin.SelectionChange) {
		if ctx.Err() != nil {
			return
		}
		h.push(writeCh, sc)
	}, h.log).WithMountDelay(h.mountDelay)
	notifier.Start(ctx)

	for {
		var in plugin.Inbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn().Err(err).Msg("websocket read failed")
			}
			break
		}
		if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
			break
		}

		if reply := h.bridge.Handle(ctx, in); reply != nil {
			h.push(writeCh, reply)
		}
	}

	cancel()
	<-writerDone
}

func (h *Handler) push(ch chan<- any, msg any) {
	select {
	case ch <- msg:
	default:
		h.log.Warn().Msg("outbound buffer full, message dropped")
	}
}

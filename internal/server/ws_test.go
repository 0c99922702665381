package server_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairview/pairview/internal/core/config"
	"github.com/pairview/pairview/internal/core/eventbus"
	"github.com/pairview/pairview/internal/core/kv"
	"github.com/pairview/pairview/internal/data/db"
	"github.com/pairview/pairview/internal/data/stores"
	"github.com/pairview/pairview/internal/host"
	"github.com/pairview/pairview/internal/host/memhost"
	"github.com/pairview/pairview/internal/plugin"
	"github.com/pairview/pairview/internal/server"
	"github.com/pairview/pairview/internal/visuals"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func dialTestServer(t *testing.T, h *memhost.Host) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus := eventbus.New()
	bus.Start(ctx)

	canvas := config.DefaultConfig().Canvas
	gen := visuals.New(h, h, h, h, canvas, zerolog.Nop())
	store := plugin.NewMappingStore(newTestKV(t))
	bridge := plugin.NewBridge(h, h, h, gen, store, bus, zerolog.Nop())

	handler := server.New(bridge, h, bus, zerolog.Nop()).WithMountDelay(time.Hour)
	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHandleWS_CopySelectedKeyRoundTrip(t *testing.T) {
	h := memhost.New("FK1")
	comp := h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "Button", Key: "btn"})
	h.SetSelection(comp)

	conn := dialTestServer(t, h)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "copySelectedKey"}))

	var reply plugin.KeyCopied
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, plugin.TypeKeyCopied, reply.Type)
	assert.True(t, reply.Success)
	assert.Equal(t, "FK1:btn", reply.Key)
}

func TestHandleWS_UnknownTypeGetsErrorToast(t *testing.T) {
	h := memhost.New("FK1")
	conn := dialTestServer(t, h)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))

	var reply plugin.Toast
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, plugin.TypeMessage, reply.Type)
	assert.Equal(t, "error", reply.Variant)
}

func TestHandleWS_SelectionEventPushed(t *testing.T) {
	h := memhost.New("FK1")
	comp := h.RegisterComponent(&host.Node{Kind: host.KindComponent, Name: "Button", Key: "FK1:btn"})
	conn := dialTestServer(t, h)

	// Ask for the initial selection first so the connection is known live,
	// then trigger a host-side change.
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "getInitialSelection"}))

	var initial plugin.SelectionChange
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Empty(t, initial.Selection)

	h.SetSelection(comp)

	var pushed plugin.SelectionChange
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.Equal(t, plugin.TypeSelectionChange, pushed.Type)
	require.Len(t, pushed.Selection, 1)
	assert.Equal(t, "FK1:btn", pushed.Selection[0].Key)
}

func TestHandleWS_LoadMappingsNullData(t *testing.T) {
	h := memhost.New("FK1")
	conn := dialTestServer(t, h)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "loadMappings"}))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "null", string(payload["data"]))
}

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alfagnish/itemsd/internal/events"
	"github.com/alfagnish/itemsd/internal/items"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWSHandler(t *testing.T) {
	hub := events.NewHub(0)
	store := items.NewStore(hub)

	r := chi.NewRouter()
	r.Route("/ws", NewWSHandler(hub, zap.NewNop()).Routes)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	created := store.Create(items.Draft{Title: "streamed"})
	done := true
	store.Update(created.ID, items.Patch{Completed: &done})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var e items.Event
	require.NoError(t, conn.ReadJSON(&e))
	assert.Equal(t, items.Event{Type: items.EventCreated, Item: items.Item{ID: 1, Title: "streamed"}}, e)

	require.NoError(t, conn.ReadJSON(&e))
	assert.Equal(t, items.Event{Type: items.EventUpdated, Item: items.Item{ID: 1, Title: "streamed", Completed: true}}, e)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

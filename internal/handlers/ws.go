package handlers

import (
	"net/http"
	"time"

	"github.com/alfagnish/itemsd/internal/events"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins (CORS is handled at the middleware level).
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler streams item change events to WebSocket clients.
type WSHandler struct {
	hub *events.Hub
	log *zap.Logger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *events.Hub, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

// Routes registers the WebSocket endpoint.
func (h *WSHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleWS)
}

// HandleWS upgrades the connection and forwards every item event as a
// JSON text frame until the client goes away. Client frames are read and
// discarded so that close frames are processed.
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug("websocket read error", zap.Error(err))
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(e); err != nil {
				h.log.Debug("websocket write error", zap.Error(err))
				return
			}
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	ws "github.com/nextlogicai/nextlogic-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades teacher dashboard connections to the live
// activity feed.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for the upgrade request is enforced by the router middleware.
		return true
	},
}

// Serve handles the WebSocket connection request. The route is admin-gated
// by the router, so only authenticated teachers reach this point.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

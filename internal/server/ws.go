// Package server provides the HTTP surface of the control pipeline: the
// WebSocket control-event stream for the renderer, the tuning-profile API,
// and debug endpoints.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// ControlHandler streams control events and camera-state snapshots to
// renderer clients over WebSocket.
type ControlHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewControlHandler creates a ControlHandler with no connected clients.
func NewControlHandler() *ControlHandler {
	return &ControlHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ControlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ControlHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a typed JSON message to all connected clients. It is a
// no-op with no clients, so high-rate callers pay nothing when nobody is
// listening.
//
// Broadcasts arrive from both pipeline loops concurrently, and a gorilla
// connection supports only one writer at a time, so the write phase holds
// the exclusive lock.
func (h *ControlHandler) Broadcast(msgType string, payload any) {
	h.mu.RLock()
	empty := len(h.clients) == 0
	h.mu.RUnlock()
	if empty {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"type": msgType,
		"data": payload,
	})
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	h.mu.Lock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
	h.mu.Unlock()
}

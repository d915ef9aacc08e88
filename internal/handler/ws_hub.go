package handler

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSEvent is the envelope for all WebSocket messages.
type WSEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ClientMessage is the envelope for messages sent from the client.
type ClientMessage struct {
	Action string `json:"action"` // "watch" or "unwatch"
}

// WSConn wraps a WebSocket connection with its user.
type WSConn struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Hub fans battle events out to the combatants' connections and to
// connections that asked to watch every battle.
type Hub struct {
	mu          sync.RWMutex
	connections map[*WSConn]bool
	watchers    map[*WSConn]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*WSConn]bool),
		watchers:    make(map[*WSConn]bool),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

// Unregister removes a connection from the hub and the watcher set.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.connections[c] {
		return
	}
	delete(h.connections, c)
	delete(h.watchers, c)
	close(c.send)
}

// Watch subscribes a connection to every battle event.
func (h *Hub) Watch(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		h.watchers[c] = true
	}
}

// Unwatch stops delivering other players' battles to a connection.
func (h *Hub) Unwatch(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers, c)
}

// BroadcastBattleEvent implements service.Broadcaster. Each connection
// receives the event at most once, whether it belongs to a combatant,
// a watcher, or both.
func (h *Hub) BroadcastBattleEvent(userIDs []string, eventType string, data any) {
	msg, err := json.Marshal(WSEvent{Type: eventType, Data: data})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal WebSocket event")
		return
	}

	users := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.connections {
		if !users[c.userID] && !h.watchers[c] {
			continue
		}
		select {
		case c.send <- msg:
		default:
			log.Warn().Str("userId", c.userID).Str("type", eventType).Msg("Dropping WebSocket message, buffer full")
		}
	}
}

// ConnectionCount returns the total number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// WatcherCount returns the number of connections watching all battles.
func (h *Hub) WatcherCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

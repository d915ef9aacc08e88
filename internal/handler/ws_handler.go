package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gorilla/websocket"

	"github.com/freeeve/war-simulator/internal/auth"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler handles the battle event feed.
type WSHandler struct {
	hub      *Hub
	resolver auth.IdentityResolver
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub, resolver auth.IdentityResolver) *WSHandler {
	return &WSHandler{hub: hub, resolver: resolver}
}

// ServeWS handles GET /api/v1/ws and upgrades to WebSocket.
// Auth via ?token= query parameter since browsers can't set headers on the upgrade.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "missing token parameter")
		return
	}

	userID, err := h.resolver.ResolveCallerIdentity(tokenStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSConn{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufSize),
	}
	h.hub.Register(client)

	welcome, _ := json.Marshal(WSEvent{Type: "connected", Data: map[string]string{"user_id": userID}})
	client.send <- welcome

	go h.writePump(client)
	go h.readPump(client)

	log.Info().Str("userId", userID).Int("total", h.hub.ConnectionCount()).Msg("WebSocket client connected")
}

// readPump reads messages from the WebSocket connection.
func (h *WSHandler) readPump(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		log.Info().Str("userId", c.userID).Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("userId", c.userID).Msg("WebSocket unexpected close")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Action {
		case "watch":
			h.hub.Watch(c)
		case "unwatch":
			h.hub.Unwatch(c)
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Batch whatever else is queued into this frame.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

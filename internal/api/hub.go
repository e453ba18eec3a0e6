package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-scout/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// matchMessage is the frame pushed to connected clients on every record update
type matchMessage struct {
	Type      string              `json:"type"`
	Payload   *models.MatchRecord `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

// wsClient is one WebSocket subscriber
type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan matchMessage
	hub  *Hub
}

// Hub maintains the set of active clients and pushes match record updates
// to them. Implements service.Broadcaster.
type Hub struct {
	clients    map[*wsClient]bool
	clientsMu  sync.RWMutex
	broadcast  chan *models.MatchRecord
	register   chan *wsClient
	unregister chan *wsClient
	logger     *logrus.Logger
	upgrader   websocket.Upgrader
}

// NewHub creates a new broadcast hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan *models.MatchRecord, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run starts the hub's main loop and blocks until the context is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			h.clientsMu.Unlock()
			h.logger.WithField("client_id", c.id).Debug("WebSocket client connected")

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMu.Unlock()
			h.logger.WithField("client_id", c.id).Debug("WebSocket client disconnected")

		case record := <-h.broadcast:
			h.push(record)
		}
	}
}

// BroadcastMatch queues a record update for all connected clients. Drops
// the update when the buffer is full rather than blocking the pipeline.
func (h *Hub) BroadcastMatch(record *models.MatchRecord) {
	select {
	case h.broadcast <- record:
	default:
		h.logger.Warn("Broadcast buffer full, dropping match update")
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) push(record *models.MatchRecord) {
	h.clientsMu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := matchMessage{
		Type:      "match_update",
		Payload:   record,
		Timestamp: time.Now().UTC(),
	}

	for _, c := range clients {
		select {
		case c.send <- message:
		default:
			// Slow consumer, disconnect it
			h.logger.WithField("client_id", c.id).Warn("Client buffer full, disconnecting")
			go func(c *wsClient) { h.unregister <- c }(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// ServeWS upgrades an HTTP request to a WebSocket subscription
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("WebSocket upgrade failed")
		return
	}

	c := &wsClient{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan matchMessage, sendBufferSize),
		hub:  h,
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so close frames and pongs are processed
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pushes queued messages and periodic pings to the connection
func (c *wsClient) writePump() {
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
			if err := c.conn.WriteJSON(message); err != nil {
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

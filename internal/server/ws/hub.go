package ws

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

type client struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	isClosed atomic.Bool
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.isClosed.Load() {
		return websocket.ErrCloseSent
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

func (c *client) close() {
	if c.isClosed.CompareAndSwap(false, true) {
		c.writeMu.Lock()
		_ = c.conn.Close()
		c.writeMu.Unlock()
	}
}

// Hub fans order events out to every connected dashboard client.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// Register adds a connection and returns its hub identifier.
func (h *Hub) Register(conn *websocket.Conn) string {
	id := uuid.NewString()
	c := newClient(conn)

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	return id
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

// Broadcast sends the payload to every client, dropping the ones whose
// writes fail.
func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	snapshot := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		snapshot[id] = c
	}
	h.mu.RUnlock()

	for id, c := range snapshot {
		if err := c.send(v); err != nil {
			h.logger.Warn("dropping websocket client", slog.String("client", id), slog.String("error", err.Error()))
			h.Unregister(id)
		}
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// Package ws pushes catalog change events to websocket subscribers.
//
// A single Hub fans out every event to all connected clients. Clients that
// cannot keep up are disconnected rather than allowed to block the
// broadcast loop.
package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		stop:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes register, unregister and broadcast events until Stop is
// called. It is meant to run on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("websocket client connected", zap.String("client", client.id), zap.Int("clients", count))

		case client := <-h.unregister:
			h.removeClient(client)
			h.logger.Debug("websocket client disconnected", zap.String("client", client.id), zap.Int("clients", h.ClientCount()))

		case message := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				targets = append(targets, client)
			}
			h.mutex.RUnlock()

			var slow []*Client
			for _, client := range targets {
				select {
				case client.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			for _, client := range slow {
				// Slow consumer; drop it instead of stalling the hub.
				h.removeClient(client)
			}

		case <-h.stop:
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// Stop terminates the Run loop and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// Broadcast queues a message for every connected client. The message is
// dropped when the hub buffer is full so publishers never block.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping message")
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

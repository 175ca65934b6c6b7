package websocket

import (
	"encoding/json"
	"sync"

	"github.com/tmoreau/boutique-backend/internal/app/model"
	"github.com/tmoreau/boutique-backend/pkg/logger"
)

// Event is what the admin feed pushes to connected panels.
type Event struct {
	Type  string       `json:"type"`
	Order *model.Order `json:"order,omitempty"`
}

// Client is one connected admin panel.
type Client struct {
	Hub  *Hub
	Conn *Conn
	Send chan []byte
}

// Hub fans order events out to every connected admin panel.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin feed client connected", map[string]interface{}{
				"total_clients": count,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin feed client disconnected", map[string]interface{}{
				"total_clients": count,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop the event rather than block
					// the hub.
					logger.Warn("Admin feed client send buffer full, dropping event", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the feed.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// NotifyOrderCreated pushes a freshly recorded order to every panel.
func (h *Hub) NotifyOrderCreated(order *model.Order) {
	payload, err := json.Marshal(Event{Type: "order_created", Order: order})
	if err != nil {
		logger.Error("Failed to serialize order event", err, nil)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Admin feed broadcast buffer full, dropping event", nil)
	}
}

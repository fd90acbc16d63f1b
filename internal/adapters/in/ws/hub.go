// Package ws pushes committed order changes to live dashboards over
// WebSocket. Kitchen displays subscribe to their tenant's room; admins may
// subscribe to any tenant.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ordering/internal/adapters/out/kafka"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// Event is one frame sent to subscribers.
type Event struct {
	Type    string                    `json:"type"`
	Payload kafka.OrderChangedMessage `json:"payload"`
}

type roomEvent struct {
	tenantID string
	message  []byte
}

// Hub keeps one room of clients per tenant and fans events out to it.
// All room bookkeeping happens on the Run goroutine.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent
	done       chan struct{}
	logger     *slog.Logger

	mu      sync.RWMutex
	clients int
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomEvent, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done. Remaining
// clients are disconnected on exit.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
			}
			h.rooms = make(map[string]map[*Client]struct{})
			h.setClients(0)
			return nil

		case c := <-h.register:
			room := h.rooms[c.tenantID]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[c.tenantID] = room
			}
			room[c] = struct{}{}
			h.setClients(h.Clients() + 1)

		case c := <-h.unregister:
			h.drop(c)

		case ev := <-h.broadcast:
			for c := range h.rooms[ev.tenantID] {
				select {
				case c.send <- ev.message:
				default:
					h.logger.Warn("dropping slow websocket client", slog.String("tenant_id", ev.tenantID))
					h.drop(c)
				}
			}
		}
	}
}

// Publish implements ports.OrderEventPublisher. Events are queued for the
// tenant room; when the queue is full the event is dropped for live clients,
// who can always re-read the order.
func (h *Hub) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	for _, e := range events {
		message, err := json.Marshal(Event{Type: string(e.Kind), Payload: kafka.NewOrderChangedMessage(e)})
		if err != nil {
			return err
		}
		select {
		case h.broadcast <- roomEvent{tenantID: e.TenantID.String(), message: message}:
		case <-ctx.Done():
			return ctx.Err()
		default:
			h.logger.WarnContext(ctx, "websocket broadcast queue full", slog.String("order_id", e.OrderID.String()))
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients
}

// Subscribe registers a client for the tenant's room. It is used by Serve
// and by tests that do not need a real connection.
func (h *Hub) Subscribe(tenantID kernel.UUID, buffer int) *Client {
	c := &Client{hub: h, tenantID: tenantID.String(), send: make(chan []byte, buffer)}
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
	return c
}

func (h *Hub) drop(c *Client) {
	room, ok := h.rooms[c.tenantID]
	if !ok {
		return
	}
	if _, exists := room[c]; !exists {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.tenantID)
	}
	h.setClients(h.Clients() - 1)
}

func (h *Hub) setClients(n int) {
	h.mu.Lock()
	h.clients = n
	h.mu.Unlock()
}

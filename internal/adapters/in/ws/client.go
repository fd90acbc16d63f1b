package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ordering/internal/core/domain/model/kernel"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Callers are authenticated by token before the upgrade.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one dashboard connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	tenantID string
	send     chan []byte
}

// Messages exposes the client's outbound queue. It is closed when the hub drops the client.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// Leave unregisters the client.
func (c *Client) Leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// Serve upgrades the request and streams the tenant's order events until
// the peer disconnects. The caller has already authorized access to tenantID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, tenantID kernel.UUID) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := h.Subscribe(tenantID, sendBuffer)
	c.conn = conn

	go c.writePump()
	c.readPump()
	return nil
}

// readPump only detects disconnects; dashboards never send commands over the socket.
func (c *Client) readPump() {
	defer func() {
		c.Leave()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

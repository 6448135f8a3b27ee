// Package live pushes fresh leaderboard snapshots to connected dashboards
// over websockets, so everyone watching sees scores move the moment a
// countdown position is entered.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Client wraps one websocket connection. Send goes through a guarded channel
// so a slow consumer never blocks a broadcast.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	closed bool
	mu     sync.Mutex
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// Hub fans broadcast payloads out to every connected client. One hub per
// process; controllers hand it freshly computed leaderboard snapshots after
// each mutation.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		quit:       make(chan struct{}),
	}
}

// Run is the hub's event loop; start it once with `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logging.Log.Infof("LIVE: client connected, %d watching", len(h.clients))

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				client.close()
				logging.Log.Infof("LIVE: client disconnected, %d watching", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.trySend(message) {
					delete(h.clients, client)
					client.close()
					logging.Log.Warnf("LIVE: dropped a stalled client, %d watching", len(h.clients))
				}
			}

		case <-h.quit:
			for client := range h.clients {
				client.close()
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// Register attaches a freshly upgraded connection and starts its pumps.
func (h *Hub) Register(client *Client) {
	h.register <- client
	go client.writePump()
	go client.readPump(h)
}

// Broadcast marshals the payload once and queues it for every client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		logging.Log.Errorf("LIVE: failed to marshal %s broadcast: %v", event, err)
		return
	}
	h.broadcast <- message
}

// Send queues a payload for this client alone, used for the initial snapshot
// right after connecting.
func (c *Client) Send(event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		logging.Log.Errorf("LIVE: failed to marshal %s message: %v", event, err)
		return
	}
	c.trySend(message)
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

// readPump discards inbound messages; clients are watch-only. Its real job
// is noticing the close and unregistering.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Log.Warnf("LIVE: unexpected close: %v", err)
			}
			return
		}
	}
}

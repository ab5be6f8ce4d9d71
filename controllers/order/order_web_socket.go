package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/sirupsen/logrus"
)

const (
	writeWait = 5 * time.Second

	// sendBuffer is how many events a client may fall behind before it
	// is dropped.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient is one connected screen. send is drained by its own writer
// goroutine and closed by the hub when the client is removed.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes every purchase event to the connected front-desk screens.
// It is a kiosk.Notifier; Notify never waits on the network.
type Hub struct {
	log logrus.FieldLogger

	mu      sync.Mutex
	clients map[*wsClient]bool
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{log: log, clients: make(map[*wsClient]bool)}
}

// GET /orders/ws
func (h *Hub) OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go h.writePump(client)

	// Clients only listen; reading detects when they go away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}

// writePump is the only goroutine that writes to client.conn.
func (h *Hub) writePump(client *wsClient) {
	defer client.conn.Close()
	for data := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.WithError(err).Debug("dropping websocket client")
			h.remove(client)
			return
		}
	}
	_ = client.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}

// remove unregisters client and closes its send channel once.
func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *wsClient) {
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify queues ev as JSON for every client. A client whose buffer is
// full is dropped instead of waited on.
func (h *Hub) Notify(ev kiosk.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("encode order event failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("websocket client too slow, dropping")
			h.removeLocked(client)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.removeLocked(client)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	clientBuffer   = 64
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS middleware upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type streamEnvelope struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// StreamHub fans engine events out to connected websocket clients. It
// satisfies service.EventPublisher, so trade, lifecycle and claim events
// reach the browser on the same path they reach the MQ.
type StreamHub struct {
	mu      sync.RWMutex
	clients map[*streamClient]struct{}
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewStreamHub() *StreamHub {
	return &StreamHub{clients: make(map[*streamClient]struct{})}
}

// Publish implements service.EventPublisher. Slow clients are dropped rather
// than allowed to stall the fan-out.
func (h *StreamHub) Publish(topic string, message interface{}) error {
	payload, err := json.Marshal(streamEnvelope{Topic: topic, Payload: message})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			logger.Warn("dropping slow websocket client")
			go h.remove(client)
		}
	}
	return nil
}

// Serve handles a websocket upgrade on the event stream endpoint.
func (h *StreamHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := &streamClient{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(client)
	go h.readLoop(client)
}

func (h *StreamHub) writeLoop(client *streamClient) {
	defer client.conn.Close()
	for payload := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(client)
			return
		}
	}
}

// readLoop discards inbound frames; the stream is one-way. It exists to
// notice disconnects and to answer pings.
func (h *StreamHub) readLoop(client *streamClient) {
	client.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}

func (h *StreamHub) remove(client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}

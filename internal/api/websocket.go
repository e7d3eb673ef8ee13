package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/alert"
)

const (
	writeWait       = 5 * time.Second
	broadcastBuffer = 256
)

// ErrHubFull is returned when the broadcast queue is saturated.
var ErrHubFull = errors.New("stream queue full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans analysis events out to websocket subscribers. It implements
// alert.Publisher.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.Mutex
	logger    *zap.Logger
}

// NewHub creates an idle hub. Call Run to start delivering.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		broadcast: make(chan []byte, broadcastBuffer),
		clients:   make(map[*websocket.Conn]bool),
		logger:    logger,
	}
}

// Run delivers queued messages until ctx is done, then closes all clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) deliver(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		// A stalled client must not block the hub
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			client.Close()
			delete(h.clients, client)
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Subscribe upgrades the request and registers the connection.
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Info("stream client connected", zap.Int("clients", total))

	// Reads only detect disconnects; subscribers never send.
	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
			h.logger.Info("stream client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Debug("websocket read failed", zap.Error(err))
				}
				return
			}
		}
	}()
}

// Name implements alert.Publisher.
func (h *Hub) Name() string { return "websocket" }

// Publish implements alert.Publisher. It never blocks; events are dropped
// with ErrHubFull when the queue is saturated.
func (h *Hub) Publish(_ context.Context, e alert.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
		return nil
	default:
		return ErrHubFull
	}
}

var _ alert.Publisher = (*Hub)(nil)

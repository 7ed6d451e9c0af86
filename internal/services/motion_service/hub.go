package motion_service

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
)

const (
	clientBuffer = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
)

// Hub раздает сообщения подключенным клиентам websocket.
// Медленный клиент теряет сообщения, остальных он не задерживает.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logging.Logger
	mu       sync.RWMutex
	clients  map[int64]*wsClient
	nextID   int64
}

type wsClient struct {
	id     int64
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger.WithPrefix("STREAM"),
		clients: make(map[int64]*wsClient),
	}
}

// ServeStream переводит запрос на websocket и блокируется до отключения клиента.
func (h *Hub) ServeStream(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &wsClient{
		id:     atomic.AddInt64(&h.nextID, 1),
		conn:   conn,
		sendCh: make(chan []byte, clientBuffer),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	h.logger.Info("Stream client connected", "client", client.id, "remote_addr", r.RemoteAddr)

	go client.writePump(h.logger)
	client.readPump()

	h.mu.Lock()
	delete(h.clients, client.id)
	h.mu.Unlock()
	h.logger.Info("Stream client disconnected", "client", client.id)
	return nil
}

// Broadcast ставит сообщение в очередь каждого клиента, не блокируясь.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.sendCh <- data:
		case <-c.done:
		default:
			h.logger.Debug("Dropping stream message, client buffer is full", "client", c.id)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close отключает всех клиентов.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.close()
	}
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump читает входящие сообщения только ради pong и закрытия соединения.
func (c *wsClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump(logger *logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("Stream write failed", "client", c.id, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/screening-backend/internal/goroutine"
	"github.com/ignatzorin/screening-backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client одно WebSocket подключение. Клиент только получает события.
type Client struct {
	id   uuid.UUID
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

// NewClient создаёт нового клиента.
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:   uuid.New(),
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 16),
	}
}

// Run регистрирует клиента и обслуживает соединение до его закрытия.
func (c *Client) Run() {
	c.hub.Register(c)
	goroutine.SafeGo("ws write pump", c.writePump)
	goroutine.Run("ws read pump", c.readPump)
}

// readPump читает только управляющие кадры; выход означает закрытие соединения.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4 * 1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.WithError(err).Debug("ws: соединение закрыто")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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

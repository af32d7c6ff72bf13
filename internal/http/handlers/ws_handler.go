package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/ws"
)

// WSHandler подписывает клиентов на события модели.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт хэндлер. Пустой allowedOrigins или "*" разрешает любой Origin.
func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// Handle обслуживает GET /ws/model.
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader уже записал ответ.
		logger.Log.WithError(err).Warn("ws: не удалось установить соединение")
		return
	}

	ws.NewClient(conn, h.hub).Run()
}

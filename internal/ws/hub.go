package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/goroutine"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
)

// EventModelRetrained тип события об установке новой модели.
const EventModelRetrained = "model_retrained"

// ModelEvent полезная нагрузка события model_retrained.
type ModelEvent struct {
	Version   string    `json:"version"`
	Schema    string    `json:"schema"`
	TrainedAt time.Time `json:"trained_at"`
	Samples   int       `json:"samples"`
	Checksum  string    `json:"checksum"`
}

// Hub рассылает события модели всем подключённым клиентам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub создаёт новый хаб. Цикл запускается через Run.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		done:       make(chan struct{}),
	}
}

// Run главный цикл хаба, завершается вместе с ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.remove(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента. После остановки хаба ничего не делает.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount количество подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast отправляет событие всем клиентам в формате {"type", "data"}.
func (h *Hub) Broadcast(event string, data any) error {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- raw:
	case <-h.done:
	}
	return nil
}

// ModelRetrained уведомляет клиентов о новой активной модели.
func (h *Hub) ModelRetrained(snap *modelstore.Snapshot) {
	meta := snap.Pipeline.Metadata
	err := h.Broadcast(EventModelRetrained, ModelEvent{
		Version:   snap.Version,
		Schema:    snap.Pipeline.Schema.Name,
		TrainedAt: meta.TrainedAt,
		Samples:   meta.Samples,
		Checksum:  snap.Checksum,
	})
	if err != nil {
		logger.Log.WithError(err).Warn("ws: событие модели не отправлено")
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.send)
	}
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	var slow []*Client
	for _, client := range h.clients {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Медленные клиенты отключаются, чтобы не тормозить рассылку.
	for _, client := range slow {
		logger.Log.WithFields(logrus.Fields{"client": client.id}).Warn("ws: клиент не успевает, отключаем")
		h.remove(client)
		c := client
		goroutine.SafeGo("ws close", func() { c.conn.Close() })
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.send)
	}
}

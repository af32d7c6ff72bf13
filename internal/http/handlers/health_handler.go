package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/screening-backend/internal/modelstore"
)

// Pinger проверяет доступность базы.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db    Pinger
	model *modelstore.Handle
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(db Pinger, model *modelstore.Handle) *HealthHandler {
	return &HealthHandler{db: db, model: model}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	if snap := h.model.Current(); snap != nil {
		checks["model"] = "loaded: " + snap.Version
	} else {
		checks["model"] = "unhealthy: not loaded"
		status = "unhealthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}

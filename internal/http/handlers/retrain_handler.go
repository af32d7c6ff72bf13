package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/http/middleware"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/service"
)

// Retrainer переобучает модель.
type Retrainer interface {
	Retrain(ctx context.Context) (*service.RetrainResult, error)
}

// RetrainHandler обслуживает POST /retrain.
type RetrainHandler struct {
	retrainer Retrainer
}

func NewRetrainHandler(retrainer Retrainer) *RetrainHandler {
	return &RetrainHandler{retrainer: retrainer}
}

// Retrain обрабатывает POST /retrain. Тело запроса не читается.
func (h *RetrainHandler) Retrain(c *gin.Context) {
	fields := logrus.Fields{"ip": c.ClientIP()}
	if subject, ok := c.Get(middleware.ContextSubjectKey); ok {
		fields["subject"] = subject
	}
	logger.Log.WithFields(fields).Info("запрошено переобучение")

	result, err := h.retrainer.Retrain(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(modelVersionHeader, result.Version)
	c.JSON(http.StatusOK, result)
}

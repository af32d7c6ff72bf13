package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/screening-backend/internal/service"
)

// Predictor выполняет предсказание по id кандидатуры.
type Predictor interface {
	Predict(ctx context.Context, applicationID int64) (*service.PredictionResult, error)
}

// PredictionHandler обслуживает GET /predict.
type PredictionHandler struct {
	predictor Predictor
}

func NewPredictionHandler(predictor Predictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

// Predict обрабатывает GET /predict?id_candidatura=<int>.
func (h *PredictionHandler) Predict(c *gin.Context) {
	id, err := applicationIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(modelVersionHeader, result.ModelVersion)
	c.JSON(http.StatusOK, result)
}

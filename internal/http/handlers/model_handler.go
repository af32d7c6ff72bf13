package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/service"
)

// ModelHandler отдаёт описание активной модели.
type ModelHandler struct {
	model *modelstore.Handle
}

func NewModelHandler(model *modelstore.Handle) *ModelHandler {
	return &ModelHandler{model: model}
}

// Get обрабатывает GET /model. Без модели отвечает 200 с loaded=false.
func (h *ModelHandler) Get(c *gin.Context) {
	info := service.DescribeModel(h.model.Current())
	if info.Loaded {
		c.Header(modelVersionHeader, info.Version)
	}
	c.JSON(http.StatusOK, info)
}

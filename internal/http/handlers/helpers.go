package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
)

const modelVersionHeader = "X-Model-Version"

// respondError передаёт ошибку в ErrorHandler.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// applicationIDParam читает обязательный целочисленный id_candidatura из query.
func applicationIDParam(c *gin.Context) (int64, error) {
	raw, ok := c.GetQuery("id_candidatura")
	if !ok || raw == "" {
		return 0, apperror.ErrInvalidID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ErrInvalidID.WithCause(err)
	}
	return id, nil
}

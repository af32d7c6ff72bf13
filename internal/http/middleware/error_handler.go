package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
)

// ErrorBody тело ответа с ошибкой.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Внутренние причины логируются и не попадают в ответ.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := Render(err)

		fields := logrus.Fields{
			"error":  err.Error(),
			"code":   body.Code,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}
		if id, ok := c.Get(ContextRequestIDKey); ok {
			fields["request_id"] = id
		}
		if status >= http.StatusInternalServerError {
			logger.Log.WithFields(fields).Error("Request error")
		} else {
			logger.Log.WithFields(fields).Warn("Request error")
		}

		c.JSON(status, body)
	}
}

// Render переводит ошибку в статус и тело ответа.
// Ошибки вне apperror считаются внутренними.
func Render(err error) (int, ErrorBody) {
	appErr, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorBody{
			Detail: "Error interno del servidor.",
			Code:   string(apperror.ErrCodeInternal),
		}
	}
	return appErr.HTTPStatus, ErrorBody{Detail: appErr.Message, Code: string(appErr.Code)}
}

// Abort прерывает цепочку с ошибкой в общем формате.
func Abort(c *gin.Context, err error) {
	status, body := Render(err)
	c.AbortWithStatusJSON(status, body)
}

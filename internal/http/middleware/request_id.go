package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader     = "X-Request-ID"
	ContextRequestIDKey = "requestID"
)

// RequestIDMiddleware берёт X-Request-ID из запроса или выдаёт новый.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

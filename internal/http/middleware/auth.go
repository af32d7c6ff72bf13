package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
	"github.com/ignatzorin/screening-backend/internal/service"
)

// ContextSubjectKey ключ gin.Context с subject токена.
const ContextSubjectKey = "subject"

// AdminAuthMiddleware пропускает только запросы с Bearer токеном роли admin.
func AdminAuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			Abort(c, apperror.ErrUnauthorized)
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			Abort(c, apperror.ErrUnauthorized.WithCause(err))
			return
		}
		if claims.Role != service.RoleAdmin {
			Abort(c, apperror.ErrForbidden)
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Next()
	}
}

package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
)

// RateLimitMiddleware ограничивает количество запросов с одного IP.
// По умолчанию: 5 запросов в минуту.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 5
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		lctx, err := instance.Get(c, c.ClientIP())
		if err != nil {
			logger.Log.WithError(err).Error("rate limiter недоступен")
			Abort(c, apperror.Wrap(err, apperror.ErrCodeInternal, "Error interno del servidor."))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", lctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", lctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", lctx.Reset))

		if lctx.Reached {
			Abort(c, apperror.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

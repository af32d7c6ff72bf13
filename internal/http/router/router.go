package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/http/handlers"
	"github.com/ignatzorin/screening-backend/internal/http/middleware"
	"github.com/ignatzorin/screening-backend/internal/service"
)

// Handlers набор хэндлеров сервиса. WS необязателен.
type Handlers struct {
	Prediction *handlers.PredictionHandler
	Retrain    *handlers.RetrainHandler
	Model      *handlers.ModelHandler
	Health     *handlers.HealthHandler
	WS         *handlers.WSHandler
}

// SetupRouter собирает gin.Engine. При nil tokens /retrain открыт.
func SetupRouter(cfg *config.Config, h Handlers, tokens *service.TokenManager) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/predict", h.Prediction.Predict)
	r.GET("/model", h.Model.Get)

	retrain := r.Group("/retrain")
	retrain.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	if tokens != nil {
		retrain.Use(middleware.AdminAuthMiddleware(tokens))
	}
	retrain.POST("", h.Retrain.Retrain)

	if h.WS != nil {
		r.GET("/ws/model", h.WS.Handle)
	}

	return r
}

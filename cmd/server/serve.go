package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/goroutine"
	"github.com/ignatzorin/screening-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/screening-backend/internal/http/router"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/service"
	"github.com/ignatzorin/screening-backend/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), state.cfg)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config) error {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.loadModel(ctx); err != nil {
		return err
	}

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws hub", hub.Run)

	retrainService, err := a.retrainService(hub, nil)
	if err != nil {
		return err
	}
	predictionService := service.NewPredictionService(a.repo, a.model, cfg.StrictCompetencies)

	var tokens *service.TokenManager
	if cfg.RetrainJWTSecret != "" {
		tokens = service.NewTokenManager(cfg.RetrainJWTSecret)
	} else {
		logger.Log.Warn("RETRAIN_JWT_SECRET не задан, /retrain доступен без авторизации")
	}

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Prediction: handlers.NewPredictionHandler(predictionService),
		Retrain:    handlers.NewRetrainHandler(retrainService),
		Model:      handlers.NewModelHandler(a.model),
		Health:     handlers.NewHealthHandler(a.repo, a.model),
		WS:         handlers.NewWSHandler(hub, cfg.AllowedOrigins),
	}, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Log.Info("HTTP сервер остановлен")
	return nil
}

package main

import (
	"context"
	"os"

	"github.com/ignatzorin/screening-backend/internal/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Log.WithError(err).Error("main: команда завершилась с ошибкой")
		os.Exit(1)
	}
}

package service

import (
	"context"

	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/repository"
)

// ScreeningStore выдаёт сессию на одном соединении с базой.
type ScreeningStore interface {
	Acquire(ctx context.Context) (repository.Session, error)
}

// Publisher отправляет новый артефакт во внешнее хранилище версий.
type Publisher interface {
	Publish(ctx context.Context, artifact []byte, meta ml.Metadata) error
}

// Notifier получает событие об установке новой модели.
type Notifier interface {
	ModelRetrained(snapshot *modelstore.Snapshot)
}

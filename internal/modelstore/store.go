package modelstore

import (
	"context"
	"errors"
)

// ErrArtifactNotFound хранилище не содержит артефакта модели.
var ErrArtifactNotFound = errors.New("modelstore: артефакт модели не найден")

// ArtifactStore хранит сериализованную модель как непрозрачный набор байт.
// Save должен заменять предыдущий артефакт целиком.
type ArtifactStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Name() string
}

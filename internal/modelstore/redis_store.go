package modelstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит артефакт под одним ключом Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore создаёт хранилище поверх готового клиента.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Name описание хранилища для логов.
func (s *RedisStore) Name() string {
	return "redis:" + s.key
}

// Load читает артефакт.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("modelstore: redis get %s: %w", s.key, err)
	}
	return data, nil
}

// Save перезаписывает ключ. SET атомарен, читатели видят старое или новое значение.
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("modelstore: redis set %s: %w", s.key, err)
	}
	return nil
}

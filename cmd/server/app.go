package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/db"
	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/metrics"
	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/publish"
	"github.com/ignatzorin/screening-backend/internal/repository"
	"github.com/ignatzorin/screening-backend/internal/service"
	"github.com/ignatzorin/screening-backend/migrations"
)

// app общие зависимости команд serve, retrain и seed.
type app struct {
	cfg       *config.Config
	db        *sqlx.DB
	redis     *redis.Client
	repo      *repository.ScreeningRepository
	artifacts modelstore.ArtifactStore
	model     *modelstore.Handle
	schema    features.Schema
	params    ml.ForestParams
}

// newApp подключается к базе, применяет миграции и готовит хранилище артефакта.
// Модель не загружается, см. loadModel.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	schema, err := features.SchemaByName(cfg.FeatureSchema)
	if err != nil {
		return nil, fmt.Errorf("main: %w", err)
	}
	params, err := forestParams(cfg)
	if err != nil {
		return nil, fmt.Errorf("main: параметры обучения: %w", err)
	}

	a := &app{
		cfg:    cfg,
		schema: schema,
		params: params,
		model:  modelstore.NewHandle(nil),
	}

	a.db, err = db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolConfig())
	if err != nil {
		return nil, fmt.Errorf("main: ошибка подключения к базе: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(ctx, a.db, migrationsFS(cfg)); err != nil {
			a.Close()
			return nil, fmt.Errorf("main: ошибка миграций: %w", err)
		}
	}
	a.repo = repository.NewScreeningRepository(a.db)

	a.artifacts, err = a.artifactStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) artifactStore(ctx context.Context) (modelstore.ArtifactStore, error) {
	switch a.cfg.ModelStore {
	case config.ModelStoreRedis:
		client, err := db.NewRedis(ctx, db.RedisConfig{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("main: ошибка подключения к redis: %w", err)
		}
		a.redis = client
		return modelstore.NewRedisStore(client, a.cfg.Redis.ModelKey), nil
	default:
		store, err := modelstore.NewFileStore(a.cfg.ModelPath, a.cfg.ModelCompress)
		if err != nil {
			return nil, fmt.Errorf("main: хранилище модели: %w", err)
		}
		return store, nil
	}
}

// loadModel загружает артефакт и делает его активным. Отсутствие артефакта
// не ошибка: сервис стартует без модели до первого переобучения.
// Нечитаемый артефакт возвращается как ошибка.
func (a *app) loadModel(ctx context.Context) error {
	snap, err := modelstore.LoadSnapshot(ctx, a.artifacts)
	if errors.Is(err, modelstore.ErrArtifactNotFound) {
		logger.Log.WithField("store", a.artifacts.Name()).
			Warn("артефакт модели не найден, /predict недоступен до переобучения")
		return nil
	}
	if err != nil {
		return fmt.Errorf("main: не удалось загрузить модель: %w", err)
	}

	a.model.Install(snap)
	metrics.SetActiveModel(snap.Version, snap.Pipeline.Schema.Name, snap.Pipeline.Metadata.Samples)

	fields := logrus.Fields{
		"version": snap.Version,
		"schema":  snap.Pipeline.Schema.Name,
		"store":   a.artifacts.Name(),
	}
	if !snap.Pipeline.Schema.Equal(a.schema) {
		fields["configured_schema"] = a.schema.Name
		logger.Log.WithFields(fields).
			Warn("схема артефакта отличается от FEATURE_SCHEMA; предсказания используют схему артефакта")
		return nil
	}
	logger.Log.WithFields(fields).Info("модель загружена")
	return nil
}

// retrainService собирает сервис переобучения. notifier и runAsync могут быть nil.
func (a *app) retrainService(notifier service.Notifier, runAsync func(string, func())) (*service.RetrainService, error) {
	deps := service.RetrainDeps{
		Store:     a.repo,
		Artifacts: a.artifacts,
		Model:     a.model,
		Schema:    a.schema,
		Params:    a.params,
		Notifier:  notifier,
		RunAsync:  runAsync,
	}
	if a.cfg.Publish.Enabled() {
		publisher, err := publish.NewGitPublisher(a.cfg.Publish)
		if err != nil {
			return nil, fmt.Errorf("main: публикация модели: %w", err)
		}
		deps.Publisher = publisher
	}
	return service.NewRetrainService(deps), nil
}

// Close закрывает соединения.
func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия redis")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия базы")
		}
	}
}

// migrationsFS встроенные миграции либо каталог MIGRATIONS_PATH.
func migrationsFS(cfg *config.Config) fs.FS {
	if cfg.MigrationsPath != "" {
		return os.DirFS(cfg.MigrationsPath)
	}
	return migrations.FS
}

// forestParams YAML из TRAINING_CONFIG_PATH, иначе значения по умолчанию с FOREST_*.
func forestParams(cfg *config.Config) (ml.ForestParams, error) {
	if cfg.TrainingConfigPath != "" {
		return ml.LoadForestParams(cfg.TrainingConfigPath)
	}
	params := ml.DefaultForestParams()
	params.Trees = cfg.ForestTrees
	params.Seed = cfg.ForestSeed
	params.MaxDepth = cfg.ForestMaxDepth
	return params, params.Validate()
}

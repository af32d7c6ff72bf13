package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/goroutine"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/metrics"
	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
)

const (
	retrainMessage = "Modelo reentrenado exitosamente."
	publishTimeout = 2 * time.Minute
	retrainTimeout = 15 * time.Minute
)

// RetrainResult ответ на успешное переобучение.
type RetrainResult struct {
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Schema    string    `json:"schema"`
	Samples   int       `json:"samples"`
	Positives int       `json:"positives"`
	Skipped   int       `json:"skipped"`
	TrainedAt time.Time `json:"trained_at"`
	Checksum  string    `json:"checksum"`
}

// RetrainDeps зависимости RetrainService. Publisher и Notifier необязательны.
type RetrainDeps struct {
	Store     ScreeningStore
	Artifacts modelstore.ArtifactStore
	Model     *modelstore.Handle
	Schema    features.Schema
	Params    ml.ForestParams
	Publisher Publisher
	Notifier  Notifier
	// RunAsync запускает публикацию. По умолчанию goroutine.SafeGo;
	// CLI передаёт goroutine.Run, чтобы дождаться push.
	RunAsync func(name string, fn func())
}

// RetrainService полностью переобучает модель по текущим данным базы.
// Одновременно выполняется не больше одного переобучения.
type RetrainService struct {
	deps RetrainDeps
	mu   sync.Mutex
}

// NewRetrainService создаёт сервис.
func NewRetrainService(deps RetrainDeps) *RetrainService {
	if deps.RunAsync == nil {
		deps.RunAsync = goroutine.SafeGo
	}
	return &RetrainService{deps: deps}
}

// Retrain собирает выборку, обучает модель, сохраняет артефакт и делает его активным.
// Если переобучение уже идёт, возвращает ErrRetrainInProgress.
// Отмена ctx вызывающим не прерывает переобучение, действует только retrainTimeout.
func (s *RetrainService) Retrain(ctx context.Context) (*RetrainResult, error) {
	if !s.mu.TryLock() {
		metrics.Retrains.WithLabelValues("conflict").Inc()
		return nil, apperror.ErrRetrainInProgress
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), retrainTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.retrain(ctx)
	metrics.RetrainDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if apperror.IsInsufficientData(err) {
			outcome = "insufficient_data"
		}
		metrics.Retrains.WithLabelValues(outcome).Inc()
		return nil, err
	}
	metrics.Retrains.WithLabelValues("success").Inc()
	return result, nil
}

func (s *RetrainService) retrain(ctx context.Context) (*RetrainResult, error) {
	ds, err := s.loadDataset(ctx)
	if err != nil {
		return nil, err
	}

	pipeline, err := ml.Fit(ctx, s.deps.Schema, ds.Rows, ds.Labels, s.deps.Params)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "No se pudo entrenar el modelo.")
	}

	data, err := ml.Encode(pipeline)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "No se pudo serializar el modelo.")
	}

	// Сначала сохраняем: при ошибке записи остаётся старая модель.
	if err := s.deps.Artifacts.Save(ctx, data); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "No se pudo guardar el modelo.")
	}

	snap := modelstore.NewSnapshot(pipeline, data)
	prev := s.deps.Model.Install(snap)
	metrics.SetActiveModel(snap.Version, pipeline.Schema.Name, len(ds.Rows))

	fields := logrus.Fields{
		"version":   snap.Version,
		"samples":   len(ds.Rows),
		"positives": ds.Positives,
		"skipped":   ds.Skipped,
		"store":     s.deps.Artifacts.Name(),
	}
	if prev != nil {
		fields["previous_version"] = prev.Version
	}
	logger.Log.WithFields(fields).Info("модель переобучена")

	if s.deps.Notifier != nil {
		s.deps.Notifier.ModelRetrained(snap)
	}
	s.publish(data, pipeline.Metadata)

	return &RetrainResult{
		Message:   retrainMessage,
		Version:   snap.Version,
		Schema:    pipeline.Schema.Name,
		Samples:   len(ds.Rows),
		Positives: ds.Positives,
		Skipped:   ds.Skipped,
		TrainedAt: pipeline.Metadata.TrainedAt,
		Checksum:  snap.Checksum,
	}, nil
}

// loadDataset читает все нужные строки на одной сессии и закрывает её до обучения.
func (s *RetrainService) loadDataset(ctx context.Context) (*Dataset, error) {
	session, err := s.deps.Store.Acquire(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "No se pudo conectar a la base de datos.")
	}
	defer session.Close()

	competencies, err := session.ListAllCompetencies(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "Error al consultar la base de datos.")
	}
	apps, err := session.ListApplicationsByStatus(ctx, models.TrainingStatuses)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "Error al consultar la base de datos.")
	}
	if len(competencies) == 0 || len(apps) == 0 {
		return nil, apperror.ErrNoTrainingData
	}

	scores := features.GroupByApplication(competencies)

	var profiles map[int64]*models.CandidateProfile
	if s.deps.Schema.UsesProfile() {
		list, err := session.ListCandidateProfiles(ctx, completeApplications(apps, scores))
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "Error al consultar la base de datos.")
		}
		profiles = make(map[int64]*models.CandidateProfile, len(list))
		for i := range list {
			profiles[list[i].ApplicationID] = &list[i]
		}
	}

	ds := BuildDataset(s.deps.Schema, apps, profiles, scores)
	if len(ds.Rows) == 0 {
		return nil, apperror.ErrNoValidTrainingData
	}
	return ds, nil
}

func (s *RetrainService) publish(data []byte, meta ml.Metadata) {
	if s.deps.Publisher == nil {
		return
	}
	publisher := s.deps.Publisher
	s.deps.RunAsync("publish model", func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := publisher.Publish(ctx, data, meta); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"version": meta.Version.String(),
				"error":   err.Error(),
			}).Error("не удалось опубликовать модель")
			return
		}
		logger.Log.WithField("version", meta.Version.String()).Info("модель опубликована")
	})
}

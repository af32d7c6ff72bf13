package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/metrics"
	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/pkg/apperror"
	"github.com/ignatzorin/screening-backend/internal/repository"
)

// PredictionResult ответ на запрос предсказания.
type PredictionResult struct {
	ApplicationID int64   `json:"id_candidatura"`
	Prediction    string  `json:"prediction"`
	Probability   float64 `json:"-"`
	ModelVersion  string  `json:"-"`
}

// PredictionService предсказывает вердикт для одной кандидатуры.
type PredictionService struct {
	store     ScreeningStore
	model     *modelstore.Handle
	assembler features.Assembler
}

// NewPredictionService создаёт сервис. strict включает ошибку на отсутствующую компетенцию.
func NewPredictionService(store ScreeningStore, model *modelstore.Handle, strict bool) *PredictionService {
	return &PredictionService{
		store:     store,
		model:     model,
		assembler: features.Assembler{Strict: strict},
	}
}

// Predict собирает вектор по схеме активной модели и возвращает вердикт.
func (s *PredictionService) Predict(ctx context.Context, applicationID int64) (result *PredictionResult, err error) {
	defer func() {
		if err != nil {
			code := apperror.ErrCodeInternal
			if appErr, ok := apperror.As(err); ok {
				code = appErr.Code
			}
			metrics.PredictionErrors.WithLabelValues(string(code)).Inc()
		}
	}()

	// Снимок берётся один раз: переобучение во время запроса его не меняет.
	snap := s.model.Current()
	if snap == nil {
		return nil, apperror.ErrModelUnavailable
	}

	session, err := s.store.Acquire(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "No se pudo conectar a la base de datos.")
	}
	defer session.Close()

	profile, err := session.GetCandidateProfile(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, apperror.ErrApplicationNotFound.WithCause(err)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "Error al consultar la base de datos.")
	}

	rows, err := session.ListCompetencies(ctx, applicationID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, "Error al consultar la base de datos.")
	}

	vec, err := s.assembler.Assemble(snap.Pipeline.Schema, profile, features.ScoresByName(rows))
	if err != nil {
		var missing *features.MissingFieldError
		if errors.As(err, &missing) {
			return nil, apperror.MissingField(missing.Field).WithCause(err)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "No se pudo construir el vector de características.")
	}

	label, proba, err := snap.Pipeline.Classify(vec)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Error al ejecutar el modelo.")
	}

	verdict := models.VerdictRejected
	if label == 1 {
		verdict = models.VerdictAdmitted
	}
	metrics.Predictions.WithLabelValues(verdict).Inc()

	logger.Log.WithFields(logrus.Fields{
		"id_candidatura": applicationID,
		"prediction":     verdict,
		"probability":    proba,
		"model_version":  snap.Version,
	}).Debug("предсказание выполнено")

	return &PredictionResult{
		ApplicationID: applicationID,
		Prediction:    verdict,
		Probability:   proba,
		ModelVersion:  snap.Version,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/repository"
)

// Importer записывает подготовленные записи в базу.
type Importer interface {
	Import(ctx context.Context, records []repository.ImportRecord) (int, error)
}

// SeedService генерирует демонстрационные кандидатуры для пустой базы.
type SeedService struct {
	importer Importer
}

// NewSeedService создаёт сервис генерации данных.
func NewSeedService(importer Importer) *SeedService {
	return &SeedService{importer: importer}
}

// Seed генерирует count кандидатур с зерном seed и записывает их.
func (s *SeedService) Seed(ctx context.Context, count int, seed int64) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("seed service: count должно быть > 0")
	}
	n, err := s.importer.Import(ctx, GenerateRecords(count, seed))
	if err != nil {
		return 0, fmt.Errorf("seed service: failed to import records: %w", err)
	}
	return n, nil
}

var englishLevels = []string{"A2", "B1", "B2", "C1", "C2"}

// GenerateRecords детерминированно генерирует записи. Итог по компетенциям,
// среднему баллу и английскому определяет статус, часть записей получает
// неполный набор компетенций или статус вне обучающей выборки.
func GenerateRecords(count int, seed int64) []repository.ImportRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]repository.ImportRecord, 0, count)

	for i := 0; i < count; i++ {
		level := rng.Intn(len(englishLevels))
		candidate := models.Candidate{
			Age:          21 + rng.Intn(25),
			AverageGrade: math.Round((5+rng.Float64()*5)*10) / 10,
			EnglishLevel: englishLevels[level],
		}

		total := 0.0
		scores := make([]models.CompetencyScore, 0, len(models.Competencies))
		for _, name := range models.Competencies {
			score := float64(1 + rng.Intn(10))
			total += score
			scores = append(scores, models.CompetencyScore{Name: name, Score: score})
		}
		// Примерно каждая десятая кандидатура без одной компетенции.
		if rng.Intn(10) == 0 {
			drop := rng.Intn(len(scores))
			scores = append(scores[:drop], scores[drop+1:]...)
		}

		rating := total/float64(len(models.Competencies)) + candidate.AverageGrade/2 + float64(level)/2 + rng.NormFloat64()
		records = append(records, repository.ImportRecord{
			Candidate: candidate,
			Status:    statusForRating(rating, rng),
			Scores:    scores,
		})
	}
	return records
}

func statusForRating(rating float64, rng *rand.Rand) string {
	if rng.Intn(20) == 0 {
		return "Pendiente"
	}
	switch {
	case rating >= 11.5:
		return models.StatusOfertado
	case rating >= 10.5:
		return models.StatusCentroEvaluacion
	case rating >= 10:
		return models.StatusEntrevista2
	case rating >= 9.5:
		return models.StatusEntrevista1
	default:
		return models.StatusDescartado
	}
}

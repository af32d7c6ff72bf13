package features

import (
	"errors"
	"fmt"

	"github.com/ignatzorin/screening-backend/internal/models"
)

// ErrMissingProfile возвращается, если схеме нужны атрибуты кандидата, а их нет.
var ErrMissingProfile = errors.New("features: нет атрибутов кандидата")

// MissingFieldError отсутствует обязательная компетенция (строгий режим).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("features: отсутствует обязательная компетенция %s", e.Field)
}

// Assembler собирает вектор признаков по схеме.
type Assembler struct {
	// Strict: отсутствующая компетенция является ошибкой, а не нулём.
	Strict bool
}

// Assemble строит вектор из атрибутов кандидата и оценок компетенций.
func (a Assembler) Assemble(schema Schema, profile *models.CandidateProfile, scores map[string]float64) (Vector, error) {
	if schema.UsesProfile() && profile == nil {
		return nil, ErrMissingProfile
	}

	vec := make(Vector, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		switch f.Name {
		case FieldAge:
			vec = append(vec, Num(float64(profile.Age)))
		case FieldAverageGrade:
			vec = append(vec, Num(profile.AverageGrade))
		case FieldEnglishLevel:
			vec = append(vec, Cat(profile.EnglishLevel))
		default:
			score, ok := scores[f.Name]
			if !ok && a.Strict {
				return nil, &MissingFieldError{Field: f.Name}
			}
			vec = append(vec, Num(score))
		}
	}
	return vec, nil
}

// ScoresByName превращает строки компетенций одной кандидатуры в map имя -> оценка.
func ScoresByName(rows []models.CompetencyScore) map[string]float64 {
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		out[r.Name] = r.Score
	}
	return out
}

// GroupByApplication группирует оценки по кандидатурам.
func GroupByApplication(rows []models.CompetencyScore) map[int64]map[string]float64 {
	out := make(map[int64]map[string]float64)
	for _, r := range rows {
		scores, ok := out[r.ApplicationID]
		if !ok {
			scores = make(map[string]float64, len(models.Competencies))
			out[r.ApplicationID] = scores
		}
		scores[r.Name] = r.Score
	}
	return out
}

// HasAllCompetencies проверяет наличие всех восьми компетенций.
func HasAllCompetencies(scores map[string]float64) bool {
	for _, name := range models.Competencies {
		if _, ok := scores[name]; !ok {
			return false
		}
	}
	return true
}

// Label метка обучения: 1 для статусов "в процессе/успех", 0 для остальных.
func Label(status string) int {
	if _, ok := models.PositiveStatuses[status]; ok {
		return 1
	}
	return 0
}

// IsTrainingStatus сообщает, попадает ли кандидатура с этим статусом в обучение.
func IsTrainingStatus(status string) bool {
	for _, s := range models.TrainingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

package service

import (
	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/models"
)

// Dataset обучающая выборка в порядке колонок схемы.
type Dataset struct {
	Rows           []features.Vector
	Labels         []int
	ApplicationIDs []int64
	Positives      int
	// Skipped кандидатуры нужных статусов, отброшенные из-за неполных данных.
	Skipped int
}

// BuildDataset собирает выборку из уже загруженных строк.
// В выборку попадают кандидатуры обучающих статусов, у которых есть все восемь
// компетенций и, если схема их использует, атрибуты кандидата.
func BuildDataset(schema features.Schema, apps []models.Application, profiles map[int64]*models.CandidateProfile, scores map[int64]map[string]float64) *Dataset {
	ds := &Dataset{}
	assembler := features.Assembler{Strict: true}

	for _, app := range apps {
		if !features.IsTrainingStatus(app.Status) {
			continue
		}
		appScores, ok := scores[app.ID]
		if !ok || !features.HasAllCompetencies(appScores) {
			ds.Skipped++
			continue
		}
		var profile *models.CandidateProfile
		if schema.UsesProfile() {
			if profile = profiles[app.ID]; profile == nil {
				ds.Skipped++
				continue
			}
		}

		vec, err := assembler.Assemble(schema, profile, appScores)
		if err != nil {
			ds.Skipped++
			continue
		}

		label := features.Label(app.Status)
		ds.Rows = append(ds.Rows, vec)
		ds.Labels = append(ds.Labels, label)
		ds.ApplicationIDs = append(ds.ApplicationIDs, app.ID)
		ds.Positives += label
	}
	return ds
}

// completeApplications идентификаторы кандидатур, у которых есть все компетенции.
func completeApplications(apps []models.Application, scores map[int64]map[string]float64) []int64 {
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		if s, ok := scores[app.ID]; ok && features.HasAllCompetencies(s) {
			ids = append(ids, app.ID)
		}
	}
	return ids
}

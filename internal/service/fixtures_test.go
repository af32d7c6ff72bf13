package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
)

func testParams() ml.ForestParams {
	p := ml.DefaultForestParams()
	p.Trees = 15
	return p
}

// competencyRows восемь оценок: все по 5, кроме Dominio.
func competencyRows(appID int64, dominio float64) []models.CompetencyScore {
	rows := make([]models.CompetencyScore, 0, len(models.Competencies))
	for _, name := range models.Competencies {
		score := 5.0
		if name == models.CompetencyDominio {
			score = dominio
		}
		rows = append(rows, models.CompetencyScore{ApplicationID: appID, Name: name, Score: score})
	}
	return rows
}

// trainingData 20 кандидатур; при admitHigh положительны те, у кого Dominio >= 6,
// иначе наоборот.
func trainingData(admitHigh bool) ([]models.Application, []models.CompetencyScore) {
	var apps []models.Application
	var scores []models.CompetencyScore
	for i := int64(1); i <= 20; i++ {
		dominio := float64(1 + (i-1)%10)
		positive := dominio >= 6
		if !admitHigh {
			positive = !positive
		}
		status := models.StatusDescartado
		if positive {
			status = models.StatusOfertado
		}
		apps = append(apps, models.Application{ID: i, CandidateID: i, Status: status})
		scores = append(scores, competencyRows(i, dominio)...)
	}
	return apps, scores
}

// snapshotFor обучает модель на trainingData и возвращает снимок.
func snapshotFor(t *testing.T, schema features.Schema, admitHigh bool) *modelstore.Snapshot {
	t.Helper()
	apps, scores := trainingData(admitHigh)
	profiles := make(map[int64]*models.CandidateProfile)
	for _, a := range apps {
		profiles[a.ID] = &models.CandidateProfile{ApplicationID: a.ID, Age: 30, AverageGrade: 7, EnglishLevel: "B2"}
	}
	ds := BuildDataset(schema, apps, profiles, features.GroupByApplication(scores))

	p, err := ml.Fit(context.Background(), schema, ds.Rows, ds.Labels, testParams())
	require.NoError(t, err)
	data, err := ml.Encode(p)
	require.NoError(t, err)
	return modelstore.NewSnapshot(p, data)
}

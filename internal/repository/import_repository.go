package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/repository/common"
)

// ImportRecord кандидат с одной кандидатурой и её оценками.
type ImportRecord struct {
	Candidate models.Candidate
	Status    string
	Scores    []models.CompetencyScore
}

// Import записывает записи в одной транзакции. Оценки вставляются батчами.
// Возвращает число вставленных кандидатур.
func (r *ScreeningRepository) Import(ctx context.Context, records []ImportRecord) (int, error) {
	imported := 0
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		scores := common.NewBatchInserter(tx,
			"INSERT INTO competencias (id_candidatura, nombre_competencia, nota)", 3, 200)

		for _, rec := range records {
			var candidateID int64
			if err := tx.QueryRowxContext(ctx, `
				INSERT INTO candidatos (edad, nota_media, nivel_ingles)
				VALUES ($1, $2, $3)
				RETURNING id_candidato
			`, rec.Candidate.Age, rec.Candidate.AverageGrade, rec.Candidate.EnglishLevel).Scan(&candidateID); err != nil {
				return fmt.Errorf("screening repository: insert candidate: %w", err)
			}

			var applicationID int64
			if err := tx.QueryRowxContext(ctx, `
				INSERT INTO candidaturas (id_candidato, status)
				VALUES ($1, $2)
				RETURNING id_candidatura
			`, candidateID, rec.Status).Scan(&applicationID); err != nil {
				return fmt.Errorf("screening repository: insert application: %w", err)
			}

			for _, s := range rec.Scores {
				if err := scores.Add(ctx, applicationID, s.Name, s.Score); err != nil {
					return err
				}
			}
			imported++
		}
		return scores.Flush(ctx)
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/screening-backend/internal/models"
)

// ErrApplicationNotFound кандидатура или её кандидат отсутствуют в базе.
var ErrApplicationNotFound = errors.New("application not found")

// Session набор запросов, выполняемых на одном соединении из пула.
// Вызывающий обязан закрыть сессию на любом пути выхода.
type Session interface {
	GetCandidateProfile(ctx context.Context, applicationID int64) (*models.CandidateProfile, error)
	ListCompetencies(ctx context.Context, applicationID int64) ([]models.CompetencyScore, error)
	ListAllCompetencies(ctx context.Context) ([]models.CompetencyScore, error)
	ListApplicationsByStatus(ctx context.Context, statuses []string) ([]models.Application, error)
	ListCandidateProfiles(ctx context.Context, applicationIDs []int64) ([]models.CandidateProfile, error)
	Close() error
}

// ScreeningRepository отвечает за таблицы candidatos, candidaturas и competencias.
type ScreeningRepository struct {
	db *sqlx.DB
}

// NewScreeningRepository создаёт экземпляр репозитория.
func NewScreeningRepository(db *sqlx.DB) *ScreeningRepository {
	return &ScreeningRepository{db: db}
}

// Acquire берёт соединение из пула и возвращает сессию поверх него.
func (r *ScreeningRepository) Acquire(ctx context.Context) (Session, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("screening repository: acquire %w", err)
	}
	return &connSession{conn: conn}, nil
}

// Ping проверяет доступность базы.
func (r *ScreeningRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type connSession struct {
	conn *sqlx.Conn
}

func (s *connSession) Close() error {
	return s.conn.Close()
}

const profileColumns = `
	cand.id_candidatura, cand.id_candidato, cand.status,
	COALESCE(c.edad, 0) AS edad,
	COALESCE(c.nota_media, 0) AS nota_media,
	COALESCE(c.nivel_ingles, '') AS nivel_ingles
`

// GetCandidateProfile возвращает кандидатуру вместе с атрибутами кандидата.
func (s *connSession) GetCandidateProfile(ctx context.Context, applicationID int64) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	query := `
		SELECT ` + profileColumns + `
		FROM candidatos c
		INNER JOIN candidaturas cand ON c.id_candidato = cand.id_candidato
		WHERE cand.id_candidatura = $1
	`
	if err := s.conn.GetContext(ctx, &profile, query, applicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("screening repository: get profile %w", err)
	}
	return &profile, nil
}

// ListCompetencies оценки одной кандидатуры.
func (s *connSession) ListCompetencies(ctx context.Context, applicationID int64) ([]models.CompetencyScore, error) {
	scores := make([]models.CompetencyScore, 0)
	query := `
		SELECT id_candidatura, nombre_competencia, nota
		FROM competencias
		WHERE id_candidatura = $1
	`
	if err := s.conn.SelectContext(ctx, &scores, query, applicationID); err != nil {
		return nil, fmt.Errorf("screening repository: list competencies %w", err)
	}
	return scores, nil
}

// ListAllCompetencies все оценки всех кандидатур.
func (s *connSession) ListAllCompetencies(ctx context.Context) ([]models.CompetencyScore, error) {
	scores := make([]models.CompetencyScore, 0)
	query := `
		SELECT id_candidatura, nombre_competencia, nota
		FROM competencias
		ORDER BY id_candidatura
	`
	if err := s.conn.SelectContext(ctx, &scores, query); err != nil {
		return nil, fmt.Errorf("screening repository: list all competencies %w", err)
	}
	return scores, nil
}

// ListApplicationsByStatus кандидатуры с одним из указанных статусов.
func (s *connSession) ListApplicationsByStatus(ctx context.Context, statuses []string) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	query := `
		SELECT id_candidatura, id_candidato, status
		FROM candidaturas
		WHERE status = ANY($1)
		ORDER BY id_candidatura
	`
	if err := s.conn.SelectContext(ctx, &apps, query, pq.Array(statuses)); err != nil {
		return nil, fmt.Errorf("screening repository: list applications %w", err)
	}
	return apps, nil
}

// ListCandidateProfiles профили для набора кандидатур одним запросом.
func (s *connSession) ListCandidateProfiles(ctx context.Context, applicationIDs []int64) ([]models.CandidateProfile, error) {
	profiles := make([]models.CandidateProfile, 0, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return profiles, nil
	}
	query := `
		SELECT ` + profileColumns + `
		FROM candidatos c
		INNER JOIN candidaturas cand ON c.id_candidato = cand.id_candidato
		WHERE cand.id_candidatura = ANY($1)
		ORDER BY cand.id_candidatura
	`
	if err := s.conn.SelectContext(ctx, &profiles, query, pq.Array(applicationIDs)); err != nil {
		return nil, fmt.Errorf("screening repository: list profiles %w", err)
	}
	return profiles, nil
}

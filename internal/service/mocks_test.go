package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/models"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
	"github.com/ignatzorin/screening-backend/internal/repository"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) GetCandidateProfile(ctx context.Context, applicationID int64) (*models.CandidateProfile, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CandidateProfile), args.Error(1)
}

func (m *mockSession) ListCompetencies(ctx context.Context, applicationID int64) ([]models.CompetencyScore, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]models.CompetencyScore), args.Error(1)
}

func (m *mockSession) ListAllCompetencies(ctx context.Context) ([]models.CompetencyScore, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CompetencyScore), args.Error(1)
}

func (m *mockSession) ListApplicationsByStatus(ctx context.Context, statuses []string) ([]models.Application, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *mockSession) ListCandidateProfiles(ctx context.Context, applicationIDs []int64) ([]models.CandidateProfile, error) {
	args := m.Called(ctx, applicationIDs)
	return args.Get(0).([]models.CandidateProfile), args.Error(1)
}

func (m *mockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Acquire(ctx context.Context) (repository.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Session), args.Error(1)
}

// memoryArtifacts хранилище артефакта в памяти.
type memoryArtifacts struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	saves   int
}

func (m *memoryArtifacts) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, modelstore.ErrArtifactNotFound
	}
	return m.data, nil
}

func (m *memoryArtifacts) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *memoryArtifacts) Name() string { return "memory" }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, artifact []byte, meta ml.Metadata) error {
	args := m.Called(ctx, artifact, meta)
	return args.Error(0)
}

type recordingNotifier struct {
	snapshots []*modelstore.Snapshot
}

func (r *recordingNotifier) ModelRetrained(s *modelstore.Snapshot) {
	r.snapshots = append(r.snapshots, s)
}

package publish

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/ml"
)

func testConfig() config.PublishConfig {
	return config.PublishConfig{
		RepoURL:     "https://git.example/models.git",
		Path:        "models/final_model.json",
		AuthorName:  "bot",
		AuthorEmail: "bot@example.com",
	}
}

func TestNewGitPublisher_Validates(t *testing.T) {
	_, err := NewGitPublisher(config.PublishConfig{Path: "m.json"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testConfig()
	cfg.Path = "../outside.json"
	_, err = NewGitPublisher(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.Path = "/abs/model.json"
	_, err = NewGitPublisher(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := NewGitPublisher(testConfig())
	require.NoError(t, err)
	assert.Equal(t, "main", p.cfg.Branch)
	assert.Nil(t, p.auth())
}

func TestGitPublisher_AuthWithToken(t *testing.T) {
	cfg := testConfig()
	cfg.Username = "git"
	cfg.Token = "secret"
	p, err := NewGitPublisher(cfg)
	require.NoError(t, err)

	assert.NotNil(t, p.auth())
}

func TestGitPublisher_CommitArtifact(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	p, err := NewGitPublisher(testConfig())
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	meta := ml.Metadata{Version: uuid.New(), Samples: 20}

	committed, err := p.commitArtifact(repo, dir, []byte(`{"v":1}`), meta)
	require.NoError(t, err)
	assert.True(t, committed)

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Contains(t, commit.Message, meta.Version.String())
	assert.Equal(t, "bot", commit.Author.Name)

	content, err := os.ReadFile(filepath.Join(dir, "models", "final_model.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(content))

	// тот же артефакт второй раз не коммитится
	committed, err = p.commitArtifact(repo, dir, []byte(`{"v":1}`), meta)
	require.NoError(t, err)
	assert.False(t, committed)
}

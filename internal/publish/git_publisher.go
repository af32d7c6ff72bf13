package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/ignatzorin/screening-backend/internal/config"
	"github.com/ignatzorin/screening-backend/internal/logger"
	"github.com/ignatzorin/screening-backend/internal/ml"
)

var ErrInvalidConfig = errors.New("publish: некорректная конфигурация публикации")

// GitPublisher клонирует репозиторий, заменяет файл модели, коммитит и пушит.
type GitPublisher struct {
	cfg config.PublishConfig
	now func() time.Time
}

// NewGitPublisher проверяет конфигурацию и создаёт publisher.
func NewGitPublisher(cfg config.PublishConfig) (*GitPublisher, error) {
	if cfg.RepoURL == "" {
		return nil, fmt.Errorf("%w: пустой MODEL_PUBLISH_REPO_URL", ErrInvalidConfig)
	}
	clean := filepath.Clean(cfg.Path)
	if cfg.Path == "" || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("%w: путь %q должен быть относительным путём внутри репозитория", ErrInvalidConfig, cfg.Path)
	}
	cfg.Path = filepath.ToSlash(clean)
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	return &GitPublisher{cfg: cfg, now: time.Now}, nil
}

// Publish публикует артефакт. Если файл не изменился, push не выполняется.
func (p *GitPublisher) Publish(ctx context.Context, artifact []byte, meta ml.Metadata) error {
	dir, err := os.MkdirTemp("", "model-publish-*")
	if err != nil {
		return fmt.Errorf("publish: не удалось создать временный каталог: %w", err)
	}
	defer os.RemoveAll(dir)

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           p.cfg.RepoURL,
		Auth:          p.auth(),
		ReferenceName: plumbing.NewBranchReferenceName(p.cfg.Branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return fmt.Errorf("publish: clone %s: %w", p.cfg.RepoURL, err)
	}

	committed, err := p.commitArtifact(repo, dir, artifact, meta)
	if err != nil {
		return err
	}
	if !committed {
		logger.Log.WithField("version", meta.Version.String()).Info("артефакт в репозитории не изменился")
		return nil
	}

	err = repo.PushContext(ctx, &git.PushOptions{Auth: p.auth()})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("publish: push: %w", err)
	}
	return nil
}

// commitArtifact записывает файл в рабочую копию и коммитит его.
// Возвращает false, если содержимое не изменилось.
func (p *GitPublisher) commitArtifact(repo *git.Repository, dir string, artifact []byte, meta ml.Metadata) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("publish: worktree: %w", err)
	}

	target := filepath.Join(dir, filepath.FromSlash(p.cfg.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("publish: не удалось создать каталог: %w", err)
	}
	if err := os.WriteFile(target, artifact, 0o644); err != nil {
		return false, fmt.Errorf("publish: не удалось записать артефакт: %w", err)
	}

	if _, err := wt.Add(p.cfg.Path); err != nil {
		return false, fmt.Errorf("publish: git add: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("publish: git status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	msg := fmt.Sprintf("Actualizar modelo %s (%d muestras)", meta.Version, meta.Samples)
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  p.cfg.AuthorName,
			Email: p.cfg.AuthorEmail,
			When:  p.now(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("publish: git commit: %w", err)
	}
	return true, nil
}

func (p *GitPublisher) auth() transport.AuthMethod {
	if p.cfg.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: p.cfg.Username, Password: p.cfg.Token}
}

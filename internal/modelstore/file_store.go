package modelstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// FileStore хранит артефакт в файле на диске.
type FileStore struct {
	path     string
	compress bool
}

// NewFileStore создаёт файловое хранилище артефакта.
// При compress артефакт сжимается gzip при записи.
func NewFileStore(path string, compress bool) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("modelstore: не удалось создать каталог %s: %w", filepath.Dir(path), err)
	}
	return &FileStore{path: path, compress: compress}, nil
}

// Name описание хранилища для логов.
func (s *FileStore) Name() string {
	return "file:" + s.path
}

// Load читает артефакт. Сжатый gzip файл распознаётся по содержимому.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("modelstore: не удалось прочитать %s: %w", s.path, err)
	}

	kind, _ := filetype.Match(data)
	if kind != matchers.TypeGz {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("modelstore: повреждённый gzip %s: %w", s.path, err)
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("modelstore: не удалось распаковать %s: %w", s.path, err)
	}
	return plain, nil
}

// Save атомарно заменяет артефакт: запись во временный файл, fsync, rename.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("modelstore: не удалось создать временный файл: %w", err)
	}
	tempPath := f.Name()
	defer os.Remove(tempPath)
	defer f.Close()

	if err := s.write(f, data); err != nil {
		return fmt.Errorf("modelstore: ошибка записи артефакта: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("modelstore: ошибка fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("modelstore: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("modelstore: не удалось переименовать файл: %w", err)
	}
	return nil
}

func (s *FileStore) write(w io.Writer, data []byte) error {
	if !s.compress {
		_, err := w.Write(data)
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}

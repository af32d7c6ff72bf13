package modelstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/ignatzorin/screening-backend/internal/ml"
)

// Snapshot неизменяемый снимок активной модели.
type Snapshot struct {
	Pipeline *ml.Pipeline
	Version  string
	Checksum string
	Size     int
	LoadedAt time.Time
}

// NewSnapshot оборачивает обученный pipeline и байты его артефакта.
func NewSnapshot(p *ml.Pipeline, data []byte) *Snapshot {
	sum := blake2b.Sum256(data)
	return &Snapshot{
		Pipeline: p,
		Version:  p.Metadata.Version.String(),
		Checksum: hex.EncodeToString(sum[:]),
		Size:     len(data),
		LoadedAt: time.Now().UTC(),
	}
}

// LoadSnapshot читает и декодирует артефакт из хранилища.
func LoadSnapshot(ctx context.Context, store ArtifactStore) (*Snapshot, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ml.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("modelstore: %s: %w", store.Name(), err)
	}
	return NewSnapshot(p, data), nil
}

// Handle владеет активной моделью процесса. Читатели получают снимок целиком,
// замена происходит под блокировкой одной операцией.
type Handle struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewHandle создаёт handle; initial может быть nil, если модели ещё нет.
func NewHandle(initial *Snapshot) *Handle {
	return &Handle{current: initial}
}

// Current возвращает активный снимок или nil.
func (h *Handle) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Install делает снимок активным и возвращает предыдущий.
func (h *Handle) Install(s *Snapshot) *Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = s
	return prev
}

package goroutine

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/screening-backend/internal/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger.SetOutput(&lockedWriter{w: &buf, mu: &mu})

	done := make(chan struct{})
	SafeGo("publish", func() {
		defer close(done)
		panic("boom")
	})
	<-done

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return bytes.Contains(buf.Bytes(), []byte("publish"))
	}, time.Second, 10*time.Millisecond)
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := make(chan any, 1)

	SafeGoWithContext(ctx, "ctx", func(ctx context.Context) {
		got <- ctx.Value(key{})
	})

	assert.Equal(t, "v", <-got)
}

func TestRun_DoesNotPropagatePanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Run("sync", func() { panic("boom") })
	})
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

package modelstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/ml"
)

func fitPipeline(t *testing.T) (*ml.Pipeline, []byte) {
	t.Helper()
	schema := features.Schema{Name: "test", Fields: []features.Field{{Name: "nota_media", Kind: features.KindNumeric}}}
	var rows []features.Vector
	var labels []int
	for i := 0; i < 10; i++ {
		rows = append(rows, features.Vector{features.Num(float64(i))})
		labels = append(labels, i/5)
	}
	params := ml.DefaultForestParams()
	params.Trees = 5
	p, err := ml.Fit(context.Background(), schema, rows, labels, params)
	require.NoError(t, err)
	data, err := ml.Encode(p)
	require.NoError(t, err)
	return p, data
}

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models", "final_model.json")
	store, err := NewFileStore(path, false)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	require.NoError(t, store.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"v":2}`)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "временные файлы должны удаляться")
}

func TestFileStore_Compressed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "model.json.gz")
	store, err := NewFileStore(path, true)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte(`{"trees":[]}`), 100)
	require.NoError(t, store.Save(ctx, payload))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
	assert.Less(t, len(raw), len(payload))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStore_ReadsGzipWithoutFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"a":1}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	store, err := NewFileStore(path, false)
	require.NoError(t, err)
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "m.json"), false)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, []byte("x")), context.Canceled)
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	client, mr := setupRedis(t)
	store := NewRedisStore(client, "screening:model")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	require.NoError(t, store.Save(ctx, []byte("artifact")))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "artifact", string(got))
	assert.Equal(t, "redis:screening:model", store.Name())

	stored, err := mr.Get("screening:model")
	require.NoError(t, err)
	assert.Equal(t, "artifact", stored)
}

func TestRedisStore_Unavailable(t *testing.T) {
	client, mr := setupRedis(t)
	mr.Close()

	_, err := NewRedisStore(client, "k").Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrArtifactNotFound)
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	p, data := fitPipeline(t)
	client, _ := setupRedis(t)
	store := NewRedisStore(client, "model")
	require.NoError(t, store.Save(ctx, data))

	snap, err := LoadSnapshot(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, p.Metadata.Version.String(), snap.Version)
	assert.Equal(t, NewSnapshot(p, data).Checksum, snap.Checksum)
	assert.Len(t, snap.Checksum, 64)
	assert.Equal(t, len(data), snap.Size)
}

func TestLoadSnapshot_InvalidArtifact(t *testing.T) {
	ctx := context.Background()
	client, _ := setupRedis(t)
	store := NewRedisStore(client, "model")
	require.NoError(t, store.Save(ctx, []byte(`{"format_version":1}`)))

	_, err := LoadSnapshot(ctx, store)
	assert.ErrorIs(t, err, ml.ErrInvalidArtifact)
}

func TestHandle_InstallSwapsSnapshot(t *testing.T) {
	p, data := fitPipeline(t)
	first := NewSnapshot(p, data)
	h := NewHandle(nil)
	assert.Nil(t, h.Current())

	assert.Nil(t, h.Install(first))
	assert.Same(t, first, h.Current())

	second := NewSnapshot(p, append(data, ' '))
	assert.Same(t, first, h.Install(second))
	assert.Same(t, second, h.Current())
	assert.NotEqual(t, first.Checksum, second.Checksum)
}

func TestHandle_ConcurrentReaders(t *testing.T) {
	p, data := fitPipeline(t)
	a := NewSnapshot(p, data)
	b := NewSnapshot(p, append(data, ' '))
	h := NewHandle(a)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := h.Current()
				assert.True(t, s == a || s == b)
			}
		}()
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				h.Install(a)
			} else {
				h.Install(b)
			}
		}(i)
	}
	wg.Wait()
}

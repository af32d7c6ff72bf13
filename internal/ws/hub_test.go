package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/screening-backend/internal/features"
	"github.com/ignatzorin/screening-backend/internal/ml"
	"github.com/ignatzorin/screening-backend/internal/modelstore"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(conn, hub).Run()
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testSnapshot(t *testing.T) *modelstore.Snapshot {
	t.Helper()
	schema := features.Schema{Name: "test", Fields: []features.Field{{Name: "Dominio", Kind: features.KindNumeric}}}
	rows := []features.Vector{{features.Num(1)}, {features.Num(2)}, {features.Num(3)}, {features.Num(4)}}
	params := ml.DefaultForestParams()
	params.Trees = 3
	p, err := ml.Fit(context.Background(), schema, rows, []int{0, 0, 1, 1}, params)
	require.NoError(t, err)
	data, err := ml.Encode(p)
	require.NoError(t, err)
	return modelstore.NewSnapshot(p, data)
}

func TestHub_BroadcastsModelRetrained(t *testing.T) {
	hub, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	snap := testSnapshot(t)
	hub.ModelRetrained(snap)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string     `json:"type"`
		Data ModelEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventModelRetrained, msg.Type)
	assert.Equal(t, snap.Version, msg.Data.Version)
	assert.Equal(t, 4, msg.Data.Samples)
	assert.Equal(t, "test", msg.Data.Schema)
}

func TestHub_UnregistersClosedClient(t *testing.T) {
	hub, url := startHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	cancel()
	<-hub.done

	assert.NoError(t, hub.Broadcast("ping", nil))
}

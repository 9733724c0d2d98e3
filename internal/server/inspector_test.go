package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zephyr-engine/zephyr/internal/core/ecs"
	"github.com/zephyr-engine/zephyr/internal/core/engine"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

func (i *Inspector) clientCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.clients)
}

func TestOfferNeverBlocks(t *testing.T) {
	i := NewInspector("127.0.0.1:0", log.Nop())
	// overfill the frame channel; extra snapshots must be dropped silently
	for n := 0; n < 200; n++ {
		i.Offer(engine.FrameStats{Frame: uint64(n)})
	}
}

func TestHealthz(t *testing.T) {
	i := NewInspector("127.0.0.1:0", log.Nop())
	srv := httptest.NewServer(i.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSnapshotBroadcast(t *testing.T) {
	i := NewInspector("127.0.0.1:0", log.Nop())
	srv := httptest.NewServer(i.routes())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go i.broadcastLoop(ctx)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// wait for the server side to register the client
	deadline := time.Now().Add(5 * time.Second)
	for i.clientCount() == 0 {
		require.True(t, time.Now().Before(deadline), "client never registered")
		time.Sleep(5 * time.Millisecond)
	}

	want := engine.FrameStats{
		Frame:  7,
		Step:   0.016,
		Living: 3,
		Systems: []ecs.SystemCount{
			{Name: "movement", Members: 2},
		},
	}
	i.Offer(want)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got engine.FrameStats
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Equal(t, want.Frame, got.Frame)
	require.Equal(t, want.Living, got.Living)
	require.Equal(t, want.Systems, got.Systems)
}

func TestClientDroppedOnDisconnect(t *testing.T) {
	i := NewInspector("127.0.0.1:0", log.Nop())
	srv := httptest.NewServer(i.routes())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}

	deadline := time.Now().Add(5 * time.Second)
	for i.clientCount() == 0 {
		require.True(t, time.Now().Before(deadline), "client never registered")
		time.Sleep(5 * time.Millisecond)
	}

	require.NoError(t, conn.Close())
	for i.clientCount() != 0 {
		require.True(t, time.Now().Before(deadline), "client never dropped")
		time.Sleep(5 * time.Millisecond)
	}
}

// Package server hosts the debug inspector: a websocket endpoint that
// streams per-frame world snapshots to connected clients.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zephyr-engine/zephyr/internal/core/engine"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

const clientBuffer = 16

// Inspector serves live world statistics over websocket. The simulation
// thread hands snapshots to Offer; everything network-facing runs on its own
// goroutines and never touches the world.
type Inspector struct {
	addr     string
	log      *log.Logger
	upgrader websocket.Upgrader
	frames   chan engine.FrameStats

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewInspector creates an inspector listening on addr once Run is called.
func NewInspector(addr string, logger *log.Logger) *Inspector {
	return &Inspector{
		addr: addr,
		log:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		frames:  make(chan engine.FrameStats, 64),
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Offer is the engine stats sink. It never blocks; when the channel is full
// the snapshot is dropped, the next frame will bring a fresh one.
func (i *Inspector) Offer(fs engine.FrameStats) {
	select {
	case i.frames <- fs:
	default:
	}
}

// Run serves the websocket endpoint and broadcasts snapshots until ctx is
// cancelled.
func (i *Inspector) Run(ctx context.Context) error {
	srv := &http.Server{Addr: i.addr, Handler: i.routes()}

	errCh := make(chan error, 1)
	go func() {
		i.log.Info("inspector listening", log.String("addr", i.addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go i.broadcastLoop(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		i.closeClients()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (i *Inspector) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", i.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (i *Inspector) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := i.upgrader.Upgrade(w, r, nil)
	if err != nil {
		i.log.Warn("inspector upgrade failed", log.Err(err))
		return
	}
	out := make(chan []byte, clientBuffer)

	i.mu.Lock()
	i.clients[conn] = out
	i.mu.Unlock()
	i.log.Debug("inspector client connected", log.String("remote", conn.RemoteAddr().String()))

	go func() {
		for msg := range out {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		_ = conn.Close()
	}()

	// Reads are discarded; the read loop only notices the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	i.dropClient(conn)
}

func (i *Inspector) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fs := <-i.frames:
			msg, err := json.Marshal(fs)
			if err != nil {
				i.log.Warn("inspector snapshot encode failed", log.Err(err))
				continue
			}
			i.broadcast(msg)
		}
	}
}

// broadcast fans a snapshot out to every client. A client whose buffer is
// full is considered too slow and is dropped.
func (i *Inspector) broadcast(msg []byte) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for conn, out := range i.clients {
		select {
		case out <- msg:
		default:
			delete(i.clients, conn)
			close(out)
			i.log.Debug("inspector client dropped", log.String("remote", conn.RemoteAddr().String()))
		}
	}
}

func (i *Inspector) dropClient(conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if out, ok := i.clients[conn]; ok {
		delete(i.clients, conn)
		close(out)
	}
}

func (i *Inspector) closeClients() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for conn, out := range i.clients {
		delete(i.clients, conn)
		close(out)
		_ = conn.Close()
	}
}

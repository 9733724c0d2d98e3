package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zephyr-engine/zephyr/internal/core/ecs"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

func TestEngineStepsWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedTimestep = Duration(time.Millisecond)
	cfg.MaxFrameDelta = Duration(50 * time.Millisecond)

	world := ecs.NewWorld(ecs.Options{MaxEntities: cfg.MaxEntities})
	eng := New(cfg, log.Nop(), world)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	var lastStep float64
	enough := make(chan struct{})
	eng.SetStatsSink(func(fs FrameStats) {
		lastStep = fs.Step
		if fs.Frame >= 3 {
			once.Do(func() { close(enough) })
		}
	})

	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	select {
	case <-enough:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not reach 3 frames")
	}
	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after cancel")
	}
	require.GreaterOrEqual(t, world.FrameCount(), uint64(3))
	require.Equal(t, cfg.FixedTimestep.Seconds(), lastStep)
}

type stubAttachment struct {
	started chan struct{}
}

func (s *stubAttachment) Run(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestEngineSupervisesAttachments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedTimestep = Duration(time.Millisecond)
	world := ecs.NewWorld(ecs.Options{MaxEntities: cfg.MaxEntities})
	eng := New(cfg, log.Nop(), world)

	att := &stubAttachment{started: make(chan struct{})}
	eng.Attach(att)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	select {
	case <-att.started:
	case <-time.After(5 * time.Second):
		t.Fatal("attachment was not started")
	}
	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after cancel")
	}
}

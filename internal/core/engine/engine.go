// Package engine drives a world with a fixed-timestep simulation loop and
// supervises its attachments (the debug inspector, for one).
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zephyr-engine/zephyr/internal/core/ecs"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

// FrameStats is the per-frame snapshot handed to the stats sink after each
// simulated frame.
type FrameStats struct {
	Frame   uint64            `json:"frame"`
	Step    float64           `json:"step"`
	Living  int               `json:"living"`
	Systems []ecs.SystemCount `json:"systems"`
	Elapsed time.Duration     `json:"elapsed_ns"`
}

// Attachment is a long-running collaborator supervised alongside the loop.
// Run must return when ctx is done.
type Attachment interface {
	Run(ctx context.Context) error
}

// Engine owns a world and steps it at a fixed timestep. Elapsed wall time is
// accumulated each tick and consumed in FixedTimestep increments, clamped by
// MaxFrameDelta, so simulation stays deterministic regardless of scheduling
// jitter.
type Engine struct {
	cfg         Config
	log         *log.Logger
	world       *ecs.World
	attachments []Attachment
	sink        func(FrameStats)
}

// New creates an engine around an already-populated world.
func New(cfg Config, logger *log.Logger, world *ecs.World) *Engine {
	return &Engine{cfg: cfg, log: logger, world: world}
}

// World returns the engine's world.
func (e *Engine) World() *ecs.World { return e.world }

// Attach registers a collaborator to run for the lifetime of Run.
func (e *Engine) Attach(a Attachment) { e.attachments = append(e.attachments, a) }

// SetStatsSink installs a callback invoked after every simulated frame. The
// callback runs on the simulation goroutine and must not block.
func (e *Engine) SetStatsSink(sink func(FrameStats)) { e.sink = sink }

// Run drives the loop and all attachments until ctx is cancelled or one of
// them fails.
func (e *Engine) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.loop(ctx) })
	for _, a := range e.attachments {
		a := a
		g.Go(func() error { return a.Run(ctx) })
	}
	return g.Wait()
}

func (e *Engine) loop(ctx context.Context) error {
	step := e.cfg.FixedTimestep.Std()
	dt := step.Seconds()
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	e.log.Info("simulation loop started",
		log.Duration("step", step),
		log.Int("max_entities", e.cfg.MaxEntities))

	last := time.Now()
	var acc time.Duration
	for {
		select {
		case <-ctx.Done():
			e.log.Info("simulation loop stopped",
				log.Uint64("frames", e.world.FrameCount()))
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if elapsed > e.cfg.MaxFrameDelta.Std() {
				elapsed = e.cfg.MaxFrameDelta.Std()
			}
			acc += elapsed
			for acc >= step {
				start := time.Now()
				e.world.Update(dt)
				acc -= step
				if e.sink != nil {
					e.sink(FrameStats{
						Frame:   e.world.FrameCount(),
						Step:    dt,
						Living:  e.world.LivingCount(),
						Systems: e.world.SystemCounts(),
						Elapsed: time.Since(start),
					})
				}
			}
		}
	}
}

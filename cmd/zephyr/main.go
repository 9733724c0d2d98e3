package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zephyr-engine/zephyr/internal/core/ecs"
	"github.com/zephyr-engine/zephyr/internal/core/engine"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
	"github.com/zephyr-engine/zephyr/internal/core/systems"
	"github.com/zephyr-engine/zephyr/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "zephyr:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := engine.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(configPath); err != nil {
			return err
		}
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(level)
	defer func() { _ = logger.Sync() }()

	world := ecs.NewWorld(ecs.Options{
		MaxEntities: cfg.MaxEntities,
		Logger:      logger,
	})

	transforms, err := ecs.Register[systems.Transform](world, "transform")
	if err != nil {
		return err
	}
	velocities, err := ecs.Register[systems.Velocity](world, "velocity")
	if err != nil {
		return err
	}
	lifetimes, err := ecs.Register[systems.Lifetime](world, "lifetime")
	if err != nil {
		return err
	}

	spawner := systems.NewSpawner(transforms, velocities, lifetimes, cfg.MaxEntities/2, 1)
	movement := systems.NewMovement(transforms, velocities)
	expiry := systems.NewExpiry(lifetimes)

	// registration order is execution order: integrate, expire, then top the
	// population back up
	if err = world.RegisterSystem(systems.MovementName, movement.Mask(), movement); err != nil {
		return err
	}
	if err = world.RegisterSystem(systems.ExpiryName, expiry.Mask(), expiry); err != nil {
		return err
	}
	if err = world.RegisterSystem(systems.SpawnerName, 0, spawner); err != nil {
		return err
	}

	eng := engine.New(cfg, logger, world)
	if cfg.Inspector.Enabled {
		inspector := server.NewInspector(cfg.Inspector.Addr, logger)
		eng.Attach(inspector)
		eng.SetStatsSink(inspector.Offer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return eng.Run(ctx)
}

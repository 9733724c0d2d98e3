package systems

import (
	"math/rand"

	"github.com/zephyr-engine/zephyr/internal/core/ecs"
)

// SpawnerName is the registration name of the spawner system.
const SpawnerName = "spawner"

// Spawner keeps the world populated up to a target count, creating short-
// lived moving entities. Creation from inside an update pass is safe; only
// destruction needs deferral.
type Spawner struct {
	transforms *ecs.Component[Transform]
	velocities *ecs.Component[Velocity]
	lifetimes  *ecs.Component[Lifetime]
	target     int
	rng        *rand.Rand
}

// NewSpawner creates a spawner topping the world up to target entities.
func NewSpawner(
	transforms *ecs.Component[Transform],
	velocities *ecs.Component[Velocity],
	lifetimes *ecs.Component[Lifetime],
	target int,
	seed int64,
) *Spawner {
	return &Spawner{
		transforms: transforms,
		velocities: velocities,
		lifetimes:  lifetimes,
		target:     target,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (s *Spawner) Update(w *ecs.World, _ []ecs.EntityID, _ float64) {
	for w.LivingCount() < s.target {
		e, err := w.CreateEntity()
		if err != nil {
			return
		}
		_ = s.transforms.Add(w, e, Transform{
			X: s.rng.Float64() * 100,
			Y: s.rng.Float64() * 100,
		})
		_ = s.velocities.Add(w, e, Velocity{
			X: s.rng.Float64()*10 - 5,
			Y: s.rng.Float64()*10 - 5,
		})
		_ = s.lifetimes.Add(w, e, Lifetime{
			Remaining: 1 + s.rng.Float64()*4,
		})
	}
}

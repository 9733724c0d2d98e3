package systems

import "github.com/zephyr-engine/zephyr/internal/core/ecs"

// ExpiryName is the registration name of the expiry system.
const ExpiryName = "expiry"

// Expiry counts down Lifetime components and destroys entities whose time
// ran out. The destroys happen from inside its own update pass; the world
// defers them until the pass ends, so systems running later in the same
// frame still see a consistent member list.
type Expiry struct {
	lifetimes *ecs.Component[Lifetime]
}

// NewExpiry creates the system over its component handle.
func NewExpiry(lifetimes *ecs.Component[Lifetime]) *Expiry {
	return &Expiry{lifetimes: lifetimes}
}

// Mask returns the required signature: Lifetime.
func (s *Expiry) Mask() ecs.Mask {
	return ecs.MaskOf(s.lifetimes.ID())
}

func (s *Expiry) Update(w *ecs.World, entities []ecs.EntityID, dt float64) {
	for _, e := range entities {
		lt, ok := s.lifetimes.Get(e)
		if !ok {
			continue
		}
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			_ = w.DestroyEntity(e)
		}
	}
}

package systems

import "github.com/zephyr-engine/zephyr/internal/core/ecs"

// MovementName is the registration name of the movement system.
const MovementName = "movement"

// Movement integrates Transform by Velocity for every member entity.
type Movement struct {
	transforms *ecs.Component[Transform]
	velocities *ecs.Component[Velocity]
}

// NewMovement creates the system over its two component handles.
func NewMovement(transforms *ecs.Component[Transform], velocities *ecs.Component[Velocity]) *Movement {
	return &Movement{transforms: transforms, velocities: velocities}
}

// Mask returns the required signature: Transform and Velocity.
func (s *Movement) Mask() ecs.Mask {
	return ecs.MaskOf(s.transforms.ID(), s.velocities.ID())
}

func (s *Movement) Update(_ *ecs.World, entities []ecs.EntityID, dt float64) {
	for _, e := range entities {
		t, ok := s.transforms.Get(e)
		if !ok {
			continue
		}
		v, ok := s.velocities.Get(e)
		if !ok {
			continue
		}
		t.X += v.X * dt
		t.Y += v.Y * dt
		t.Z += v.Z * dt
	}
}

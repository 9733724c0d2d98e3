// Package systems carries the reference components and systems built on the
// ECS core. Component values are plain data; the core only stores and
// indexes them.
package systems

// Transform is an entity's position in world space.
type Transform struct {
	X, Y, Z float64
}

// Velocity is an entity's linear velocity in units per second.
type Velocity struct {
	X, Y, Z float64
}

// Lifetime expires an entity after Remaining seconds of simulated time.
type Lifetime struct {
	Remaining float64
}

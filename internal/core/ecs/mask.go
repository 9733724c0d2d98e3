package ecs

// MaxComponentTypes is the hard cap on registered component types. The
// signature is a single machine word, one bit per type.
const MaxComponentTypes = 64

// Mask is a fixed-width component signature. Bit i is set iff the entity owns
// the component type assigned to bit i at registration time.
type Mask uint64

// Set turns on the bit for the given component type.
func (m *Mask) Set(id ComponentID) { *m |= 1 << id }

// Clear turns off the bit for the given component type.
func (m *Mask) Clear(id ComponentID) { *m &^= 1 << id }

// Has reports whether the bit for the given component type is set.
func (m Mask) Has(id ComponentID) bool { return m&(1<<id) != 0 }

// ContainsAll reports whether every bit set in sub is also set in m. This is
// the membership test: an entity belongs to a system iff its signature
// contains the system's required mask.
func (m Mask) ContainsAll(sub Mask) bool { return m&sub == sub }

// IsZero reports whether no bits are set.
func (m Mask) IsZero() bool { return m == 0 }

// MaskOf builds a mask with the bits of the given component types set.
func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

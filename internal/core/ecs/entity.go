package ecs

import "fmt"

// EntityID identifies a living entity. It carries no payload of its own; all
// state lives in component stores keyed by the id.
//
// Ids are recycled without a generation counter: after DestroyEntity, a later
// CreateEntity may hand out the same numeric id for an unrelated entity. A
// caller holding a stale id cannot tell the two apart. See
// TestRecycledIDAliasing for the pinned behavior.
type EntityID uint32

// InvalidEntity is returned by failed creates. It never names a living entity.
const InvalidEntity = EntityID(1<<32 - 1)

// DefaultMaxEntities is the world capacity used when Options leaves it unset.
const DefaultMaxEntities = 5000

// allocator issues and recycles entity ids. Recycled ids are preferred over
// fresh ones, so issued ids stay below the high-water mark. Double destroy is
// the facade's problem to guard, not the allocator's.
type allocator struct {
	next   EntityID
	free   []EntityID
	living int
	limit  int
}

func newAllocator(limit int) *allocator {
	return &allocator{
		free:  make([]EntityID, 0, 64),
		limit: limit,
	}
}

func (a *allocator) create() (EntityID, error) {
	if a.living >= a.limit {
		return InvalidEntity, fmt.Errorf("%w: capacity %d", ErrEntityLimit, a.limit)
	}
	var id EntityID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = a.next
		a.next++
	}
	a.living++
	return id, nil
}

func (a *allocator) destroy(id EntityID) {
	a.free = append(a.free, id)
	a.living--
}

func (a *allocator) livingCount() int { return a.living }

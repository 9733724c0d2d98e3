package ecs

import (
	"fmt"

	"github.com/zephyr-engine/zephyr/internal/core/events/bus"
	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

// Lifecycle event types published by the world when a bus is attached.
const (
	EventEntityCreated    = "entity.created"
	EventEntityDestroyed  = "entity.destroyed"
	EventComponentAdded   = "component.added"
	EventComponentRemoved = "component.removed"
)

// EntityEvent is the payload of world lifecycle events. Component, TypeKey
// and Name are zero for pure entity events.
type EntityEvent struct {
	Entity    EntityID
	Component ComponentID
	TypeKey   uint64
	Name      string
}

// Options configures a World. Collaborators are injected explicitly; the
// world never reaches for process-wide state.
type Options struct {
	// MaxEntities caps the number of simultaneously living entities.
	// Defaults to DefaultMaxEntities.
	MaxEntities int
	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger *log.Logger
	// Bus, when non-nil, receives lifecycle events (EventEntityCreated and
	// friends) synchronously on the simulation thread.
	Bus *bus.Bus
}

// World is the facade every consumer touches. It composes the entity
// allocator, the component registry with its stores, and the system registry,
// and fans every mutation out to signature and membership bookkeeping.
//
// The world is single-threaded by contract: all mutation and every Update
// happen on one simulation thread between caller-driven frames.
type World struct {
	log        *log.Logger
	bus        *bus.Bus
	capacity   int
	alloc      *allocator
	components componentRegistry
	systems    systemRegistry

	// signatures and alive are indexed by entity id; the allocator never
	// issues an id >= capacity.
	signatures []Mask
	alive      []bool

	frame      uint64
	inUpdate   bool
	pending    []EntityID
	pendingSet map[EntityID]struct{}
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	capacity := opts.MaxEntities
	if capacity <= 0 {
		capacity = DefaultMaxEntities
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}
	return &World{
		log:        logger,
		bus:        opts.Bus,
		capacity:   capacity,
		alloc:      newAllocator(capacity),
		components: newComponentRegistry(),
		systems:    newSystemRegistry(),
		signatures: make([]Mask, capacity),
		alive:      make([]bool, capacity),
		pendingSet: make(map[EntityID]struct{}),
	}
}

// CreateEntity issues a new entity id, recycling destroyed ids first. Fails
// with ErrEntityLimit once MaxEntities entities are alive.
func (w *World) CreateEntity() (EntityID, error) {
	id, err := w.alloc.create()
	if err != nil {
		return InvalidEntity, err
	}
	w.alive[id] = true
	w.signatures[id] = 0
	w.publish(EventEntityCreated, EntityEvent{Entity: id})
	return id, nil
}

// DestroyEntity removes the entity from the allocator, every component store
// and every system's member set, in that order, so no system ever observes a
// half-destroyed entity. Destroying an entity that is not alive fails with
// ErrEntityNotAlive; the facade, not the allocator, guards double destroys.
//
// When called from inside a system's Update, the destroy is deferred to the
// end of that system's pass (collect-then-apply), so in-progress iteration
// over member lists and dense stores is never corrupted by a swap-remove.
func (w *World) DestroyEntity(id EntityID) error {
	if !w.Alive(id) {
		return fmt.Errorf("%w: entity %d", ErrEntityNotAlive, id)
	}
	if w.inUpdate {
		if _, queued := w.pendingSet[id]; !queued {
			w.pendingSet[id] = struct{}{}
			w.pending = append(w.pending, id)
		}
		return nil
	}
	w.destroyNow(id)
	return nil
}

func (w *World) destroyNow(id EntityID) {
	w.alive[id] = false
	w.alloc.destroy(id)
	for _, info := range w.components.infos {
		info.store.entityDestroyed(id)
	}
	w.systems.entityDestroyed(id)
	w.signatures[id] = 0
	w.publish(EventEntityDestroyed, EntityEvent{Entity: id})
}

func (w *World) flushDestroys() {
	if len(w.pending) == 0 {
		return
	}
	for _, id := range w.pending {
		if w.Alive(id) {
			w.destroyNow(id)
		}
	}
	w.pending = w.pending[:0]
	clear(w.pendingSet)
}

// Alive reports whether the id names a living entity. A recycled id counts as
// alive for its new owner; there is no generation guard.
func (w *World) Alive(id EntityID) bool {
	return int(id) < len(w.alive) && w.alive[id]
}

// LivingCount returns the number of living entities.
func (w *World) LivingCount() int { return w.alloc.livingCount() }

// Signature returns the entity's current component signature.
func (w *World) Signature(id EntityID) Mask {
	if int(id) >= len(w.signatures) {
		return 0
	}
	return w.signatures[id]
}

// RegisterSystem adds a system with its required mask and an empty member
// set. Registration order is execution order: the world expresses no
// inter-system dependencies, so callers order registrations the way they want
// updates to run (movement before expiry, and so on).
func (w *World) RegisterSystem(name string, mask Mask, sys System) error {
	if _, err := w.systems.register(name, mask, sys); err != nil {
		return err
	}
	w.log.Debug("system registered",
		log.String("name", name),
		log.Uint64("mask", uint64(mask)))
	return nil
}

// System returns a registered system by name.
func (w *World) System(name string) (System, bool) {
	entry, ok := w.systems.byName[name]
	if !ok {
		return nil, false
	}
	return entry.sys, true
}

// Members returns the entities currently matching the named system. The slice
// is owned by the world and only valid until the next mutation.
func (w *World) Members(name string) []EntityID {
	entry, ok := w.systems.byName[name]
	if !ok {
		return nil
	}
	return entry.members.list
}

// Update runs one frame: every system's Update in registration order, with
// destroys requested during a pass applied when that pass ends.
func (w *World) Update(dt float64) {
	w.frame++
	for _, entry := range w.systems.entries {
		w.inUpdate = true
		entry.sys.Update(w, entry.members.list, dt)
		w.inUpdate = false
		w.flushDestroys()
	}
}

// FrameCount returns the number of completed Update calls.
func (w *World) FrameCount() uint64 { return w.frame }

// SystemCount holds the membership size of one system, for diagnostics.
type SystemCount struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// SystemCounts returns per-system membership sizes in registration order.
func (w *World) SystemCounts() []SystemCount {
	counts := make([]SystemCount, len(w.systems.entries))
	for i, entry := range w.systems.entries {
		counts[i] = SystemCount{Name: entry.name, Members: len(entry.members.list)}
	}
	return counts
}

func (w *World) publish(eventType string, payload EntityEvent) {
	if w.bus == nil {
		return
	}
	if err := w.bus.Publish(bus.NewEvent(eventType, "world", payload)); err != nil {
		w.log.Warn("lifecycle event handler failed",
			log.String("event", eventType),
			log.Err(err))
	}
}

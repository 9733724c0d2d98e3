package ecs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/zephyr-engine/zephyr/internal/core/observability/log"
)

// ComponentID is the opaque handle assigned to a component type when it is
// registered. It doubles as the type's bit position in entity signatures.
// There is no reflection anywhere in type identity: callers register a type
// once, keep the handle, and use it for all subsequent lookups.
type ComponentID uint8

// componentInfo is what the world keeps per registered type: enough to fan
// out destroys and to name the type in logs and events.
type componentInfo struct {
	name    string
	typeKey uint64
	store   storage
}

type componentRegistry struct {
	byName map[string]ComponentID
	infos  []componentInfo // indexed by ComponentID
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{byName: make(map[string]ComponentID)}
}

// Component is the typed handle returned by Register. It owns the dense store
// for T and carries the signature bit assigned to the type.
type Component[T any] struct {
	id      ComponentID
	name    string
	typeKey uint64
	store   *Store[T]
}

// Register assigns the next unused signature bit to a new component type and
// creates its store. The name must be unique; the number of registered types
// is hard-capped at MaxComponentTypes. The returned handle is the only way to
// access values of T.
func Register[T any](w *World, name string) (*Component[T], error) {
	if _, dup := w.components.byName[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrComponentRegistered, name)
	}
	if len(w.components.infos) >= MaxComponentTypes {
		return nil, fmt.Errorf("%w: max %d", ErrComponentLimit, MaxComponentTypes)
	}
	id := ComponentID(len(w.components.infos))
	c := &Component[T]{
		id:      id,
		name:    name,
		typeKey: xxhash.Sum64String(name),
		store:   NewStore[T](w.capacity),
	}
	w.components.byName[name] = id
	w.components.infos = append(w.components.infos, componentInfo{
		name:    name,
		typeKey: c.typeKey,
		store:   c.store,
	})
	w.log.Debug("component registered",
		log.String("name", name),
		log.Uint8("id", uint8(id)),
		log.Uint64("type_key", c.typeKey))
	return c, nil
}

// ID returns the signature bit assigned to the type.
func (c *Component[T]) ID() ComponentID { return c.id }

// Name returns the registration name of the type.
func (c *Component[T]) Name() string { return c.name }

// TypeKey returns the stable 64-bit key derived from the registration name.
// It identifies the type across runs in logs and lifecycle events.
func (c *Component[T]) TypeKey() uint64 { return c.typeKey }

// Add attaches a value of T to a living entity, flips the entity's signature
// bit and recomputes system membership immediately.
func (c *Component[T]) Add(w *World, e EntityID, value T) error {
	if !w.Alive(e) {
		return fmt.Errorf("%w: entity %d", ErrEntityNotAlive, e)
	}
	if err := c.store.Insert(e, value); err != nil {
		return err
	}
	w.signatures[e].Set(c.id)
	w.systems.signatureChanged(e, w.signatures[e])
	w.publish(EventComponentAdded, EntityEvent{
		Entity:    e,
		Component: c.id,
		TypeKey:   c.typeKey,
		Name:      c.name,
	})
	return nil
}

// Remove detaches the entity's value of T, clears the signature bit and
// recomputes system membership immediately.
func (c *Component[T]) Remove(w *World, e EntityID) error {
	if !w.Alive(e) {
		return fmt.Errorf("%w: entity %d", ErrEntityNotAlive, e)
	}
	if err := c.store.Remove(e); err != nil {
		return err
	}
	w.signatures[e].Clear(c.id)
	w.systems.signatureChanged(e, w.signatures[e])
	w.publish(EventComponentRemoved, EntityEvent{
		Entity:    e,
		Component: c.id,
		TypeKey:   c.typeKey,
		Name:      c.name,
	})
	return nil
}

// Get returns a pointer to the entity's value of T, or false when the entity
// has none. The pointer is valid only until the store next mutates.
func (c *Component[T]) Get(e EntityID) (*T, bool) { return c.store.Get(e) }

// Has reports whether the entity has a value of T.
func (c *Component[T]) Has(e EntityID) bool { return c.store.Has(e) }

// Store exposes the underlying dense store, for consumers that iterate all
// values of one type regardless of system membership.
func (c *Component[T]) Store() *Store[T] { return c.store }

package ecs

import "fmt"

// storage is the type-erased view of a Store used by the world for destroy
// fan-out across all registered component types.
type storage interface {
	entityDestroyed(EntityID)
	Len() int
}

// Store holds all live values of one component type, packed contiguously.
// Two index maps relate entities to dense slots and must stay exact inverses
// of each other over the set of stored entities. Removal swap-moves the last
// value into the vacated slot, so the dense slice never has holes; iteration
// order is unspecified.
//
// The contiguous packing is the point of the whole pattern: per-frame
// iteration over a system's members touches one tight slice instead of a
// sparse id-indexed array.
type Store[T any] struct {
	dense         []T
	entityToIndex map[EntityID]int
	indexToEntity map[int]EntityID
	limit         int
}

// NewStore creates an empty store capped at limit values.
func NewStore[T any](limit int) *Store[T] {
	return &Store[T]{
		entityToIndex: make(map[EntityID]int),
		indexToEntity: make(map[int]EntityID),
		limit:         limit,
	}
}

// Insert appends a value for the entity. Inserting onto an entity that
// already has a value is rejected rather than overwriting, so the index maps
// can never be silently corrupted.
func (s *Store[T]) Insert(e EntityID, value T) error {
	if _, exists := s.entityToIndex[e]; exists {
		return fmt.Errorf("%w: entity %d", ErrComponentExists, e)
	}
	if len(s.dense) >= s.limit {
		return fmt.Errorf("%w: capacity %d", ErrStoreFull, s.limit)
	}
	idx := len(s.dense)
	s.dense = append(s.dense, value)
	s.entityToIndex[e] = idx
	s.indexToEntity[idx] = e
	return nil
}

// Remove drops the entity's value in O(1): the last dense element is copied
// into the vacated slot and both maps are rewritten for the entity that moved.
func (s *Store[T]) Remove(e EntityID) error {
	idx, ok := s.entityToIndex[e]
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrComponentMissing, e)
	}
	last := len(s.dense) - 1
	if idx != last {
		moved := s.indexToEntity[last]
		s.dense[idx] = s.dense[last]
		s.entityToIndex[moved] = idx
		s.indexToEntity[idx] = moved
	}
	s.dense = s.dense[:last]
	delete(s.entityToIndex, e)
	delete(s.indexToEntity, last)
	return nil
}

// Get returns a pointer to the entity's value, or false when absent. The
// pointer is valid only until the next Insert or Remove on this store.
func (s *Store[T]) Get(e EntityID) (*T, bool) {
	idx, ok := s.entityToIndex[e]
	if !ok {
		return nil, false
	}
	return &s.dense[idx], true
}

// Has reports whether the entity has a value in this store.
func (s *Store[T]) Has(e EntityID) bool {
	_, ok := s.entityToIndex[e]
	return ok
}

// Len returns the number of stored values.
func (s *Store[T]) Len() int { return len(s.dense) }

// EntityAt returns the entity owning the dense slot at index i.
func (s *Store[T]) EntityAt(i int) EntityID { return s.indexToEntity[i] }

func (s *Store[T]) entityDestroyed(e EntityID) {
	if s.Has(e) {
		_ = s.Remove(e)
	}
}

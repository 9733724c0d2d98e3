package ecs

import "fmt"

// System is the per-frame logic contract. Update receives the world, the
// system's current member entities and the frame delta in seconds. The member
// slice is owned by the world; systems must not retain it across frames.
//
// A system may create entities or call DestroyEntity during its own Update;
// destroys are collected and applied when the system's pass ends, so another
// system's iteration state is never invalidated mid-pass.
type System interface {
	Update(w *World, entities []EntityID, dt float64)
}

// memberSet tracks the entities currently matching one system: a dense slice
// for iteration plus an index map for O(1) leave via swap-remove. Order
// carries no meaning, only membership does.
type memberSet struct {
	list  []EntityID
	index map[EntityID]int
}

func newMemberSet() memberSet {
	return memberSet{index: make(map[EntityID]int)}
}

func (m *memberSet) has(e EntityID) bool {
	_, ok := m.index[e]
	return ok
}

func (m *memberSet) add(e EntityID) {
	m.index[e] = len(m.list)
	m.list = append(m.list, e)
}

func (m *memberSet) remove(e EntityID) {
	idx, ok := m.index[e]
	if !ok {
		return
	}
	last := len(m.list) - 1
	if idx != last {
		moved := m.list[last]
		m.list[idx] = moved
		m.index[moved] = idx
	}
	m.list = m.list[:last]
	delete(m.index, e)
}

type systemEntry struct {
	name    string
	mask    Mask
	sys     System
	members memberSet
}

// systemRegistry holds registered systems in registration order, which is
// also execution order.
type systemRegistry struct {
	entries []*systemEntry
	byName  map[string]*systemEntry
}

func newSystemRegistry() systemRegistry {
	return systemRegistry{byName: make(map[string]*systemEntry)}
}

func (r *systemRegistry) register(name string, mask Mask, sys System) (*systemEntry, error) {
	if _, dup := r.byName[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrSystemRegistered, name)
	}
	entry := &systemEntry{name: name, mask: mask, sys: sys, members: newMemberSet()}
	r.entries = append(r.entries, entry)
	r.byName[name] = entry
	return entry, nil
}

// signatureChanged re-evaluates the entity against every system. Linear in
// the number of systems per mutation; fine at this engine's scale.
func (r *systemRegistry) signatureChanged(e EntityID, sig Mask) {
	for _, entry := range r.entries {
		matches := sig.ContainsAll(entry.mask)
		switch {
		case matches && !entry.members.has(e):
			entry.members.add(e)
		case !matches && entry.members.has(e):
			entry.members.remove(e)
		}
	}
}

// entityDestroyed drops the entity from every member set, equivalent to its
// signature going to zero.
func (r *systemRegistry) entityDestroyed(e EntityID) {
	for _, entry := range r.entries {
		entry.members.remove(e)
	}
}

package ecs

import "errors"

var (
	// ErrEntityLimit is returned when the configured entity capacity is exhausted.
	ErrEntityLimit = errors.New("ecs: entity limit reached")
	// ErrEntityNotAlive is returned for operations on a destroyed or never-created entity.
	ErrEntityNotAlive = errors.New("ecs: entity is not alive")
	// ErrComponentLimit is returned when all signature bits are taken.
	ErrComponentLimit = errors.New("ecs: component type limit reached")
	// ErrComponentRegistered is returned when a component name is registered twice.
	ErrComponentRegistered = errors.New("ecs: component type already registered")
	// ErrComponentExists is returned when inserting a component the entity already has.
	ErrComponentExists = errors.New("ecs: entity already has component")
	// ErrComponentMissing is returned when removing a component the entity does not have.
	ErrComponentMissing = errors.New("ecs: entity has no such component")
	// ErrStoreFull is returned when a component store hits its capacity.
	ErrStoreFull = errors.New("ecs: component store is full")
	// ErrSystemRegistered is returned when a system name is registered twice.
	ErrSystemRegistered = errors.New("ecs: system already registered")
)

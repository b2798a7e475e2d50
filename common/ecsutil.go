// Package common provides the ECS plumbing shared by every subsystem: the
// EntityManager wrapper around github.com/bytearena/ecs, component/tag
// registration, and generic typed component accessors. It generalizes the
// original common/ecsutil.go from a single-player roguelike entity store to
// the multi-team, multi-kind entity pool this engine's §4.2 requires.
package common

import (
	"github.com/bytearena/ecs"
)

// AllEntitiesTag queries all entities regardless of component set. Used by
// full-scan utilities (iterate-by-kind fallback, invariant checks).
var AllEntitiesTag = ecs.BuildTag()

// EntityManager wraps the ECS library's manager and centralizes component
// and tag registration so subsystem packages never touch *ecs.Manager
// directly.
type EntityManager struct {
	World *ecs.Manager
	Tags  map[string]ecs.Tag
}

// NewEntityManager constructs an empty entity manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		World: ecs.NewManager(),
		Tags:  make(map[string]ecs.Tag),
	}
}

// RegisterTag records a named tag so subsystems can look it up without
// passing *ecs.Tag values around explicitly.
func (em *EntityManager) RegisterTag(name string, tag ecs.Tag) {
	em.Tags[name] = tag
}

// FindEntityByID searches every entity for the given id and returns its
// pointer, or nil if no entity carries that id. Per §4.2's contract this is
// the only way to get a mutable *ecs.Entity back from a stored EntityID.
func (em *EntityManager) FindEntityByID(id ecs.EntityID) *ecs.Entity {
	for _, result := range em.World.Query(AllEntitiesTag) {
		if result.Entity.GetID() == id {
			return result.Entity
		}
	}
	return nil
}

// HasComponent reports whether the entity with the given id carries component.
func (em *EntityManager) HasComponent(id ecs.EntityID, component *ecs.Component) bool {
	entity := em.FindEntityByID(id)
	if entity == nil {
		return false
	}
	_, ok := entity.GetComponentData(component)
	return ok
}

// GetComponentType retrieves a typed component value from an already-resolved
// entity pointer. Returns the zero value of T if the component is absent.
func GetComponentType[T any](entity *ecs.Entity, component *ecs.Component) T {
	var zero T
	if entity == nil {
		return zero
	}
	if c, ok := entity.GetComponentData(component); ok {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponentTypeByID retrieves a typed component value by entity id,
// searching the manager for the backing entity first.
func GetComponentTypeByID[T any](manager *EntityManager, id ecs.EntityID, component *ecs.Component) T {
	return GetComponentType[T](manager.FindEntityByID(id), component)
}

// GetComponentTypeByIDWithTag is the tag-scoped variant, used on hot paths
// that already iterate a narrower query (e.g. AgentTag) and want to avoid a
// full-manager scan.
func GetComponentTypeByIDWithTag[T any](manager *EntityManager, id ecs.EntityID, tag ecs.Tag, component *ecs.Component) T {
	var zero T
	for _, result := range manager.World.Query(tag) {
		if result.Entity.GetID() == id {
			return GetComponentType[T](result.Entity, component)
		}
	}
	return zero
}

// AllEntityIDs returns every entity id currently tracked by the manager.
func (em *EntityManager) AllEntityIDs() []ecs.EntityID {
	var ids []ecs.EntityID
	for _, result := range em.World.Query(AllEntitiesTag) {
		ids = append(ids, result.Entity.GetID())
	}
	return ids
}

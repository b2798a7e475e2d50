package ffi

import (
	"rtscore/building"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// resolveBuilding looks up a live building entity's Handle, failing with
// NotFound on a missing or non-building id.
func (e *Engine) resolveBuilding(id ecs.EntityID) (world.Handle, bool) {
	h := e.World.Resolve(id)
	if !h.Valid() || h.Kind() != thing.KindBuilding {
		e.fail("NOT_FOUND", "building not found")
		return world.Handle{}, false
	}
	return h, true
}

// GarrisonIn moves agentID into structureID's garrison.
func (e *Engine) GarrisonIn(agentID, structureID ecs.EntityID) bool {
	agent := e.World.Resolve(agentID)
	if !agent.Valid() || agent.Kind() != thing.KindAgent {
		return e.fail("NOT_FOUND", "agent not found")
	}
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	if err := building.GarrisonIn(e.World, agent, structure); err != nil {
		return e.fail("CAPACITY_EXCEEDED", err.Error())
	}
	return true
}

// UngarrisonAll empties structureID's garrison back onto the map.
func (e *Engine) UngarrisonAll(structureID ecs.EntityID) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	building.UngarrisonAll(e.World, structure)
	return true
}

// QueueTrain enqueues one unit of class in structureID's production queue.
func (e *Engine) QueueTrain(structureID ecs.EntityID, class thing.UnitClass, totalTicks int) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	if err := building.QueueTrain(structure, class, totalTicks); err != nil {
		return e.fail("CAPACITY_EXCEEDED", err.Error())
	}
	return true
}

// CancelLastQueued removes the most recently queued unit from
// structureID's production queue.
func (e *Engine) CancelLastQueued(structureID ecs.EntityID) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	if !building.CancelLast(structure) {
		return e.fail("PRECONDITION_FAIL", "queue is empty")
	}
	return true
}

// QueueSize reports how many units are pending in structureID's queue.
func (e *Engine) QueueSize(structureID ecs.EntityID) (int, bool) {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return 0, false
	}
	return building.QueueSize(structure), true
}

// QueueProgress reports the head queue entry's (progress, total) ticks.
func (e *Engine) QueueProgress(structureID ecs.EntityID) (int, int, bool) {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return 0, 0, false
	}
	progress, total := building.QueueProgress(structure)
	return progress, total, true
}

// SetRallyPoint points structureID's production output at targetID's tile.
func (e *Engine) SetRallyPoint(structureID, targetID ecs.EntityID) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	target := e.World.Resolve(targetID)
	if !target.Valid() {
		return e.fail("NOT_FOUND", "rally target not found")
	}
	if !building.SetRallyPoint(structure, target) {
		return e.fail("PRECONDITION_FAIL", "could not set rally point")
	}
	return true
}

// ClearRallyPoint removes structureID's rally point, if any.
func (e *Engine) ClearRallyPoint(structureID ecs.EntityID) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	building.ClearRallyPoint(structure)
	return true
}

// StartResearch begins the named tech at structureID, if eligible.
func (e *Engine) StartResearch(structureID ecs.EntityID, techKey string) bool {
	structure, ok := e.resolveBuilding(structureID)
	if !ok {
		return false
	}
	if err := building.StartResearch(e.World, structure, techKey); err != nil {
		return e.fail("PRECONDITION_FAIL", err.Error())
	}
	return true
}

// HasResearch reports whether team has completed techKey.
func (e *Engine) HasResearch(team int, techKey string) bool {
	t := e.World.Team(team)
	if t == nil {
		return false
	}
	return t.HasResearch(techKey)
}

// Package building implements the production queue, research registry,
// rally points, garrison, and market described in §4.7-4.8. It generalizes
// the original overworld/garrison/system.go (a squad-to-node garrison
// assignment service returning wrapped errors) into a building-to-agent
// garrison service, generalized to a tiered upgrade chain driven by
// config.TechEntry instead of a fixed tech-less unit roster.
package building

import (
	"fmt"

	"rtscore/config"
	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"
)

// QueueTrain appends a unit class to a production building's queue
// (§4.7), deducting nothing up front — cost is charged by the caller
// (the build/train control-API entry point) the way the original garrison
// assignment validates before mutating. Returns CapacityExceeded if the
// queue is already at config.MaxProductionQueue.
func QueueTrain(h world.Handle, class thing.UnitClass, totalTicks int) error {
	b := h.Building()
	if b == nil {
		return fmt.Errorf("queue train on %d: %w", h.ID, errNotBuilding)
	}
	if len(b.Queue) >= config.MaxProductionQueue {
		return fmt.Errorf("queue train on %d: %w", h.ID, errQueueFull)
	}
	b.Queue = append(b.Queue, world.QueueEntry{Class: class, Total: totalTicks})
	return nil
}

// CancelLast removes the most recently queued entry, returning
// CapacityExceeded's sibling "nothing to cancel" case as a plain bool per
// §6's control-API convention (false on no-op, no error).
func CancelLast(h world.Handle) bool {
	b := h.Building()
	if b == nil || len(b.Queue) == 0 {
		return false
	}
	b.Queue = b.Queue[:len(b.Queue)-1]
	return true
}

// QueueSize reports the number of pending entries.
func QueueSize(h world.Handle) int {
	b := h.Building()
	if b == nil {
		return 0
	}
	return len(b.Queue)
}

// QueueProgress reports the head entry's (progress, total), or (0,0) if
// the queue is empty.
func QueueProgress(h world.Handle) (int, int) {
	b := h.Building()
	if b == nil || len(b.Queue) == 0 {
		return 0, 0
	}
	return b.Queue[0].Progress, b.Queue[0].Total
}

// TickProductionQueues advances every trainable building's head entry by
// one (§4.1 step 5), spawning the unit at the rally point (or an adjacent
// empty tile) on completion and popping the head.
func TickProductionQueues(w *world.World, log *telemetry.Log, step int, maxHPFor func(thing.UnitClass) int) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || len(b.Queue) == 0 {
			continue
		}
		head := &b.Queue[0]
		head.Progress++
		if head.Progress < head.Total {
			continue
		}
		spawnProducedUnit(w, log, step, h, head.Class, maxHPFor)
		b.Queue = b.Queue[1:]
	}
}

func spawnProducedUnit(w *world.World, log *telemetry.Log, step int, h world.Handle, class thing.UnitClass, maxHPFor func(thing.UnitClass) int) {
	b := h.Building()
	team := h.Team()
	spot := h.Position()
	if b.HasRally {
		spot = b.RallyPoint
	}
	if !w.Grid.IsEmptyBlocking(spot) {
		var ok bool
		spot, ok = w.FindNearestEmptyTile(h.Position(), config.RespawnSearchRadius)
		if !ok {
			return
		}
	}
	ent, err := w.CreateEntity(spot, thing.KindAgent, team)
	if err != nil {
		return
	}
	newHandle := w.Resolve(ent.GetID())
	w.AttachAgent(newHandle, class, maxHPFor(class))
	if log != nil {
		log.Record(telemetry.EventBuildingPlaced, step, ent.GetID(), "produced %s from building %d", class, h.ID)
	}
}

// SetRallyPoint and ClearRallyPoint implement §4.7's external-only rally
// operations; internal AI (the scripted policy, out of scope) never calls
// these directly.
func SetRallyPoint(h world.Handle, target world.Handle) bool {
	b := h.Building()
	if b == nil {
		return false
	}
	b.RallyPoint = target.Position()
	b.HasRally = true
	return true
}

func ClearRallyPoint(h world.Handle) bool {
	b := h.Building()
	if b == nil {
		return false
	}
	b.HasRally = false
	return true
}

// RallyPoint reports the current rally target, if any.
func RallyPoint(h world.Handle) (coords.Position, bool) {
	b := h.Building()
	if b == nil || !b.HasRally {
		return coords.Position{}, false
	}
	return b.RallyPoint, true
}

var (
	errNotBuilding = fmt.Errorf("not a building")
	errQueueFull   = fmt.Errorf("production queue full")
)

// ResourceFromKey maps a catalog/tech JSON cost key to the typed stockpile
// resource, shared by build, train, and research cost deduction.
func ResourceFromKey(k string) world.Resource {
	switch k {
	case "wood":
		return world.Wood
	case "stone":
		return world.Stone
	case "gold":
		return world.Gold
	case "water":
		return world.Water
	default:
		return world.Food
	}
}

// Package ffi is the external interface described by §6: fixed-size
// slot-addressed buffers plus a control API, the way the original gui
// package is the single seam between engine state and an outside caller
// (there a renderer, here an embedding host process). It owns slot
// assignment, the step/observation buffers, and every control-API
// operation; every other package stays unaware that slots exist.
package ffi

import (
	"rtscore/config"

	"github.com/bytearena/ecs"
)

// SlotRegistry assigns every live agent a stable external slot in
// [0, config.MapAgents), reused once an agent's slot is freed. It
// implements scheduler.SlotMap.
type SlotRegistry struct {
	idToSlot map[ecs.EntityID]int
	slotToID []ecs.EntityID
	free     []int
}

// NewSlotRegistry allocates an empty registry with every slot free.
func NewSlotRegistry() *SlotRegistry {
	r := &SlotRegistry{
		idToSlot: make(map[ecs.EntityID]int),
		slotToID: make([]ecs.EntityID, config.MapAgents),
		free:     make([]int, config.MapAgents),
	}
	for i := 0; i < config.MapAgents; i++ {
		r.free[i] = config.MapAgents - 1 - i
	}
	return r
}

// SlotOf returns id's current slot, satisfying scheduler.SlotMap.
func (r *SlotRegistry) SlotOf(id ecs.EntityID) (int, bool) {
	slot, ok := r.idToSlot[id]
	return slot, ok
}

// IDAt returns the agent id bound to slot, or (0, false) if the slot is
// currently unassigned.
func (r *SlotRegistry) IDAt(slot int) (ecs.EntityID, bool) {
	if slot < 0 || slot >= len(r.slotToID) {
		return 0, false
	}
	id := r.slotToID[slot]
	if id == 0 {
		return 0, false
	}
	return id, true
}

// Bind assigns id a free slot if it doesn't already have one. Returns the
// slot and whether a new assignment was made; returns (-1, false) if every
// slot is taken.
func (r *SlotRegistry) Bind(id ecs.EntityID) (int, bool) {
	if slot, ok := r.idToSlot[id]; ok {
		return slot, false
	}
	if len(r.free) == 0 {
		return -1, false
	}
	slot := r.free[len(r.free)-1]
	r.free = r.free[:len(r.free)-1]
	r.idToSlot[id] = slot
	r.slotToID[slot] = id
	return slot, true
}

// Release frees id's slot, if any, making it available for reassignment.
func (r *SlotRegistry) Release(id ecs.EntityID) {
	slot, ok := r.idToSlot[id]
	if !ok {
		return
	}
	delete(r.idToSlot, id)
	r.slotToID[slot] = 0
	r.free = append(r.free, slot)
}

// Sync binds every id in live that isn't already bound and releases every
// bound id that no longer appears in live, the per-step reconciliation the
// engine runs before Step so newly spawned agents get a slot and dead
// agents' slots become reusable (§6 action/observation buffers are
// slot-addressed, not id-addressed, so this indirection must stay current).
func (r *SlotRegistry) Sync(live []ecs.EntityID) (bound, released []ecs.EntityID) {
	liveSet := make(map[ecs.EntityID]bool, len(live))
	for _, id := range live {
		liveSet[id] = true
		if _, new := r.Bind(id); new {
			bound = append(bound, id)
		}
	}
	for id := range r.idToSlot {
		if !liveSet[id] {
			released = append(released, id)
		}
	}
	for _, id := range released {
		r.Release(id)
	}
	return bound, released
}

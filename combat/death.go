package combat

import (
	"rtscore/common"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// ConvertToCorpse removes a dead agent from the live collections and
// re-tags it as a corpse with a decay timeline (§3 Lifecycle, §4.13),
// rather than deleting the entity outright.
func ConvertToCorpse(w *world.World, h world.Handle) {
	pos := h.Position()
	team := h.Team()
	w.DestroyEntity(h.ID, thing.KindAgent, team, pos)

	h.Entity.AddComponent(world.KindComponent, thing.KindCorpse)
	h.Entity.AddComponent(world.LifecycleComponent, &world.LifecycleData{State: world.LifecycleCorpse})

	w.Grid.SetBackground(pos, h.ID)
	w.Index.Insert(h.ID, thing.KindCorpse, team, pos)
	w.ReassignKind(h.ID, thing.KindAgent, thing.KindCorpse)
}

func lifecycleOf(h world.Handle) *world.LifecycleData {
	return common.GetComponentType[*world.LifecycleData](h.Entity, world.LifecycleComponent)
}

// TickLifecycle advances corpse->skeleton->removed timelines by one step
// each, called from the scheduler's decay phase (§4.1 step 1).
func TickLifecycle(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindCorpse) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		lc := lifecycleOf(h)
		if lc == nil {
			continue
		}
		lc.Steps++
		if lc.Steps >= config.CorpseSteps {
			promoteToSkeleton(w, h, lc)
		}
	}
	for _, id := range w.IterateByKind(thing.KindSkeleton) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		lc := lifecycleOf(h)
		if lc == nil {
			continue
		}
		lc.Steps++
		if lc.Steps >= config.SkeletonSteps {
			removeRemains(w, h)
		}
	}
}

func promoteToSkeleton(w *world.World, h world.Handle, lc *world.LifecycleData) {
	pos := h.Position()
	team := h.Team()
	w.Index.Remove(h.ID)
	w.ReassignKind(h.ID, thing.KindCorpse, thing.KindSkeleton)
	h.Entity.AddComponent(world.KindComponent, thing.KindSkeleton)
	lc.State = world.LifecycleSkeleton
	lc.Steps = 0
	w.Index.Insert(h.ID, thing.KindSkeleton, team, pos)
}

func removeRemains(w *world.World, h world.Handle) {
	pos := h.Position()
	team := h.Team()
	w.DestroyEntity(h.ID, thing.KindSkeleton, team, pos)
}

// DestroyBuilding destroys a building inline, ungarrisoning first and
// dropping any garrisoned relics onto nearby empty tiles (§3 Lifecycle,
// §4.7).
func DestroyBuilding(w *world.World, h world.Handle) {
	b := h.Building()
	pos := h.Position()
	team := h.Team()
	if b != nil {
		for _, agentID := range b.Garrison {
			if dest, ok := w.FindNearestEmptyTile(pos, config.RespawnSearchRadius); ok {
				w.PlaceAgentOnGrid(w.Resolve(agentID), dest)
			}
		}
		for _, relicID := range b.GarrisonRelics {
			dropRelicNear(w, relicID, pos)
		}
		b.Garrison = nil
		b.GarrisonRelics = nil
	}
	w.DestroyEntity(h.ID, thing.KindBuilding, team, pos)
}

// dropRelicNear places a dislodged relic on the nearest empty tile and
// flips it back to on-map, preserving the §8 relic-conservation invariant.
func dropRelicNear(w *world.World, relicID ecs.EntityID, center coords.Position) {
	relic := w.Resolve(relicID)
	if !relic.Valid() {
		return
	}
	rd := common.GetComponentType[*world.RelicData](relic.Entity, world.RelicComponent)
	if rd != nil {
		rd.Garrisoned = false
		rd.MonasteryID = 0
	}
	dest, ok := w.FindNearestEmptyTile(center, config.RespawnSearchRadius)
	if !ok {
		dest = center
	}
	relic.SetPosition(dest)
	w.Grid.SetBackground(dest, relicID)
	w.Index.Insert(relicID, thing.KindRelic, -1, dest)
}

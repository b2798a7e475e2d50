package npc

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// TickWildlife runs the per-species movement routine for every living
// animal once per step (§4.1 step 5, §4.9): cows move as a herd, wolves
// hunt in packs toward a shared alpha-chosen target, bears wander.
func TickWildlife(w *world.World) {
	herdCentroid := herdCentroidByPack(w)
	for _, id := range w.IterateByKind(thing.KindAnimal) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		ad := h.Animal()
		if ad == nil {
			continue
		}
		hp := h.Health()
		if hp != nil && hp.HP <= 0 {
			continue
		}
		switch ad.Species {
		case thing.Cow:
			tickCow(w, h, ad, herdCentroid)
		case thing.Wolf:
			tickWolf(w, h, ad)
		case thing.Bear:
			tickBear(w, h, ad)
		}
	}
}

// herdCentroidByPack computes the mean position of every cow sharing a
// pack id, so each cow can step toward its herd's center of mass.
func herdCentroidByPack(w *world.World) map[int]coords.Position {
	sums := make(map[int][2]int)
	counts := make(map[int]int)
	for _, id := range w.IterateByKind(thing.KindAnimal) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		ad := h.Animal()
		if ad == nil || ad.Species != thing.Cow {
			continue
		}
		p := h.Position()
		s := sums[ad.PackID]
		sums[ad.PackID] = [2]int{s[0] + p.X, s[1] + p.Y}
		counts[ad.PackID]++
	}
	out := make(map[int]coords.Position, len(sums))
	for pack, s := range sums {
		n := counts[pack]
		if n == 0 {
			continue
		}
		out[pack] = coords.Position{X: s[0] / n, Y: s[1] / n}
	}
	return out
}

func tickCow(w *world.World, h world.Handle, ad *world.AnimalData, centroid map[int]coords.Position) {
	target, ok := centroid[ad.PackID]
	if !ok {
		return
	}
	pos := h.Position()
	if pos.ChebyshevDistance(target) <= 1 {
		return
	}
	stepToward(w, h, target)
}

// tickWolf has the pack alpha pick the nearest enemy-agent target and share
// it with the rest of the pack; every pack member then steps toward it.
func tickWolf(w *world.World, h world.Handle, ad *world.AnimalData) {
	if ad.PackAlpha || !ad.HasTarget {
		if target, ok := w.Index.Nearest(h.Position(), thing.KindAgent, config.WolfPackAggroRadius); ok {
			shareWolfTarget(w, ad.PackID, target)
		}
	}
	if !ad.HasTarget {
		return
	}
	th := w.Resolve(ad.TargetID)
	if !th.Valid() || (th.Health() != nil && th.Health().HP <= 0) {
		ad.HasTarget = false
		return
	}
	stepToward(w, h, th.Position())
}

func shareWolfTarget(w *world.World, packID int, targetID ecs.EntityID) {
	for _, id := range w.IterateByKind(thing.KindAnimal) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		ad := h.Animal()
		if ad == nil || ad.Species != thing.Wolf || ad.PackID != packID {
			continue
		}
		ad.TargetID = targetID
		ad.HasTarget = true
	}
}

// tickBear wanders within a small radius of no fixed anchor: each step it
// takes a single random cardinal/diagonal step, biased to stay near where
// it has recently been by occasionally standing still.
func tickBear(w *world.World, h world.Handle, ad *world.AnimalData) {
	if w.RNG.Chance(40) {
		return
	}
	dir := coords.Direction(w.RNG.Intn(coords.NumDirections))
	to := dir.Step(h.Position())
	tryStepNPC(w, h, thing.KindAnimal, to)
}

func stepToward(w *world.World, h world.Handle, target coords.Position) {
	pos := h.Position()
	dx, dy := sign(target.X-pos.X), sign(target.Y-pos.Y)
	if dx == 0 && dy == 0 {
		return
	}
	tryStepNPC(w, h, thing.KindAnimal, coords.Position{X: pos.X + dx, Y: pos.Y + dy})
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// tryStepNPC moves a non-team entity (animal or goblin) one tile if the
// destination is in bounds, not a border, elevation-reachable, and not
// blocked by another entity — the NPC analogue of the action dispatcher's
// canStepInto, simplified since wildlife and goblins never ride boats or
// take cavalry double-steps.
func tryStepNPC(w *world.World, h world.Handle, kind thing.Kind, to coords.Position) bool {
	from := h.Position()
	if !w.Grid.InBounds(to) || w.Grid.IsBorder(to) {
		return false
	}
	fromTile, toTile := w.Grid.At(from), w.Grid.At(to)
	roadEitherEnd := fromTile.Terrain == thing.Road || toTile.Terrain == thing.Road
	if !coords.CanStep(fromTile.Elevation, toTile.Elevation, from.X != to.X && from.Y != to.Y, roadEitherEnd) {
		return false
	}
	if toTile.Terrain == thing.Water {
		return false
	}
	if occ := toTile.Blocking; occ != 0 && occ != h.ID {
		return false
	}
	return w.MoveEntity(h.ID, kind, -1, from, to) == nil
}

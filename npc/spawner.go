// Package npc drives every non-team-controlled entity tick (§4.9): tumor
// spawners, tumor aging/branching/adjacency damage, wildlife AI (cow herds,
// wolf packs, bear wander), and goblin hives. It generalizes the original
// overworld monster-tick routines (plain per-species functions walked over
// a tag query each turn) into the fixed per-step phases §4.1 calls out.
package npc

import (
	"rtscore/combat"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/tint"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// TickSpawners advances every spawner's since-last-spawn counter and, once
// the configured rate is met, creates a new tumor nearby provided the local
// unclaimed-tumor count is below the cap (§4.9).
func TickSpawners(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindSpawner) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		sp := h.Spawner()
		if sp == nil {
			continue
		}
		sp.SinceLastSpawn++
		if sp.SinceLastSpawn < sp.SpawnRate {
			continue
		}
		if countUnclaimedTumors(w, h.Position()) >= config.TumorUnclaimedCap {
			continue
		}
		if spot, ok := w.FindNearestEmptyTile(h.Position(), 2); ok {
			spawnTumor(w, spot)
			sp.SinceLastSpawn = 0
		}
	}
}

func countUnclaimedTumors(w *world.World, center coords.Position) int {
	n := 0
	for _, id := range w.IterateByKind(thing.KindTumor) {
		th := w.Resolve(id)
		if !th.Valid() {
			continue
		}
		td := th.Tumor()
		if td == nil || td.Claimed {
			continue
		}
		if center.ManhattanDistance(th.Position()) <= config.TumorUnclaimedRadius {
			n++
		}
	}
	return n
}

func spawnTumor(w *world.World, pos coords.Position) {
	ent, err := w.CreateEntity(pos, thing.KindTumor, -1)
	if err != nil {
		return
	}
	w.AttachTumor(w.Resolve(ent.GetID()))
}

// TickTumorBranching ages every tumor and lets age-gated ones branch into an
// inert (but still standing) state (§4.1 step 6).
func TickTumorBranching(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindTumor) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		td := h.Tumor()
		if td == nil || td.Branched {
			continue
		}
		td.Age++
		if td.Age < config.TumorBranchMinAge {
			continue
		}
		if w.RNG.Chance(config.TumorBranchChance) {
			td.Branched = true
			td.Claimed = true
		}
	}
}

// TickTumorAdjacencyDamage inflicts probabilistic damage on agents and
// animals adjacent to a live (unbranched) tumor, skipping victims shielded
// by a shield action-tint within the shield band (§4.1 step 7).
func TickTumorAdjacencyDamage(w *world.World, resolver *combat.Resolver) {
	for _, id := range w.IterateByKind(thing.KindTumor) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		td := h.Tumor()
		if td == nil || td.Branched {
			continue
		}
		if !w.RNG.Chance(config.TumorAdjacencyDamagePct) {
			continue
		}
		center := h.Position()
		damageAdjacentKind(w, resolver, center, thing.KindAgent)
		damageAdjacentKind(w, resolver, center, thing.KindAnimal)
	}
}

func damageAdjacentKind(w *world.World, resolver *combat.Resolver, center coords.Position, kind thing.Kind) {
	w.Index.ForEachInRadius(center, kind, 1, func(id ecs.EntityID) bool {
		th := w.Resolve(id)
		if !th.Valid() {
			return true
		}
		if isShielded(w, th.Position()) {
			return true
		}
		hp := th.Health()
		if hp == nil || hp.HP <= 0 {
			return true
		}
		if resolver.Dead[id] {
			return true
		}
		resolver.ApplyAgentDamage(0, th, config.TumorAdjacencyDamage)
		if after := th.Health(); after != nil && after.HP == 0 {
			w.ActionTint.Set(th.Position(), tint.ActionTintDeath, config.ActionTintDecaySteps)
		}
		return true
	})
}

// isShielded reports whether any agent within the shield band of pos
// currently carries an active shield action-tint, blocking tumor damage.
func isShielded(w *world.World, pos coords.Position) bool {
	shielded := false
	w.Index.ForEachInRadius(pos, thing.KindAgent, config.TumorShieldBand, func(id ecs.EntityID) bool {
		th := w.Resolve(id)
		if th.Valid() && w.ActionTint.CodeAt(th.Position()) == tint.ActionTintShield {
			shielded = true
			return false
		}
		return true
	})
	return shielded
}

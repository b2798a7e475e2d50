package npc

import (
	"rtscore/combat"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"
)

// TickGoblinHives advances every hive's spawn cooldown and produces a new
// goblin raider on an adjacent empty tile once it elapses, capped so a hive
// cannot flood the map while its raiders are already out (§4.9).
func TickGoblinHives(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || b.RecipeKey != "goblin_hive" {
			continue
		}
		b.StationCooldown--
		if b.StationCooldown > 0 {
			continue
		}
		if countPendingGoblins(w, h.Position()) >= config.GoblinHiveMaxPending {
			b.StationCooldown = config.GoblinHiveSpawnInterval
			continue
		}
		if spot, ok := w.FindNearestEmptyTile(h.Position(), 2); ok {
			spawnGoblin(w, spot)
		}
		b.StationCooldown = config.GoblinHiveSpawnInterval
	}
}

func countPendingGoblins(w *world.World, center coords.Position) int {
	n := 0
	for _, id := range w.IterateByKind(thing.KindGoblin) {
		h := w.Resolve(id)
		if h.Valid() && center.ManhattanDistance(h.Position()) <= config.WolfPackAggroRadius {
			n++
		}
	}
	return n
}

func spawnGoblin(w *world.World, pos coords.Position) {
	ent, err := w.CreateEntity(pos, thing.KindGoblin, -1)
	if err != nil {
		return
	}
	h := w.Resolve(ent.GetID())
	w.AttachAgent(h, thing.GoblinRaider, config.MaxHPFor(thing.GoblinRaider))
}

// TickGoblins runs the goblins' reduced behavior set: step toward the
// nearest enemy agent, and attack directly if already adjacent (§4.9).
// Goblins are not routed through the action dispatcher since they carry no
// team and are never addressed by the external action buffer.
func TickGoblins(w *world.World, resolver *combat.Resolver) {
	for _, id := range w.IterateByKind(thing.KindGoblin) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		agent := h.Agent()
		hp := h.Health()
		if agent == nil || agent.Dead || hp == nil || hp.HP <= 0 {
			continue
		}
		targetID, ok := w.Index.NearestEnemyAgent(h.Position(), -1, config.WolfPackAggroRadius)
		if !ok {
			continue
		}
		th := w.Resolve(targetID)
		if !th.Valid() {
			continue
		}
		pos, tpos := h.Position(), th.Position()
		if pos.ChebyshevDistance(tpos) <= 1 {
			dmg := resolver.ComputeDamage(thing.GoblinRaider, -1, classOf(th), th.Kind() == thing.KindBuilding, false)
			if th.Kind() == thing.KindBuilding {
				resolver.ApplyStructureDamage(h.ID, th, dmg)
			} else {
				resolver.ApplyAgentDamage(h.ID, th, dmg)
			}
			continue
		}
		tryStepNPC(w, h, thing.KindGoblin, stepTowardGoblin(pos, tpos))
	}
}

func classOf(h world.Handle) thing.UnitClass {
	if ad := h.Agent(); ad != nil {
		return ad.Class
	}
	return thing.Villager
}

func stepTowardGoblin(pos, target coords.Position) coords.Position {
	dx, dy := sign(target.X-pos.X), sign(target.Y-pos.Y)
	return coords.Position{X: pos.X + dx, Y: pos.Y + dy}
}

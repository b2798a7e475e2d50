package combat

import (
	"rtscore/config"
	"rtscore/thing"
	"rtscore/world"
)

// towerRecipes names the garrisonable buildings that fire an auto-attack
// volley each step: town center, castle, guard tower (§4.4 "TC, castle,
// tower").
var towerRecipes = map[string]bool{
	"town_center": true,
	"castle":      true,
	"guard_tower": true,
}

// TickTowerVolleys runs one auto-attack volley per defensive building
// against its nearest living enemy agent, in-place filtering a target
// killed by an earlier arrow in the same volley (§4.1 step 5, §4.4).
// Garrisoned interior units add up to TowerGarrisonBonusCap bonus arrows.
func TickTowerVolleys(w *world.World, resolver *Resolver) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || !b.Built || !towerRecipes[b.RecipeKey] {
			continue
		}
		fireVolley(w, resolver, h, b)
	}
}

func fireVolley(w *world.World, resolver *Resolver, h world.Handle, b *world.BuildingData) {
	targetID, ok := w.Index.NearestEnemyAgent(h.Position(), h.Team(), config.TowerVolleyRange)
	if !ok {
		return
	}
	bonus := len(b.Garrison)
	if bonus > config.TowerGarrisonBonusCap {
		bonus = config.TowerGarrisonBonusCap
	}
	arrows := 1 + bonus
	for i := 0; i < arrows; i++ {
		target := w.Resolve(targetID)
		if !target.Valid() || resolver.Dead[targetID] {
			return
		}
		hp := target.Health()
		if hp == nil || hp.HP <= 0 {
			return
		}
		resolver.ApplyAgentDamage(h.ID, target, config.TowerArrowDamage)
	}
}

package respawn

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"
)

// TickTempleHybrid implements §4.1 step 11: for each Temple with two
// friendly adjacent agents standing next to it, if the nearest altar the
// team owns within 4*RespawnSearchRadius still holds a heart, consume it and
// spawn a villager at the temple (§4.10
// "temple hybrid" rule, a second respawn path parallel to altar respawn).
func TickTempleHybrid(w *world.World, step int) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || b.RecipeKey != "temple" {
			continue
		}
		team := h.Team()
		if !twoFriendlyAdjacent(w, h.Position(), team) {
			continue
		}
		altarID, hasAltar := w.Index.NearestFriendly(h.Position(), team, thing.KindAltar, config.RespawnSearchRadius*4)
		if !hasAltar {
			continue
		}
		altar := w.Resolve(altarID)
		ad := altar.Altar()
		if ad == nil || ad.Hearts < 1 {
			continue
		}
		spot, found := w.FindNearestEmptyTile(h.Position(), 1)
		if !found {
			continue
		}
		ad.Hearts--
		spawnVillager(w, spot, team, altarID, step)
		if w.Log != nil {
			w.Log.Record(telemetry.EventRespawn, step, h.ID, "temple hybrid spawn for team %d", team)
		}
	}
}

func twoFriendlyAdjacent(w *world.World, center coords.Position, team int) bool {
	count := 0
	for d := coords.Direction(0); d < coords.NumDirections; d++ {
		p := d.Step(center)
		if !w.Grid.InBounds(p) {
			continue
		}
		id := w.Grid.BlockingEntity(p)
		if id == 0 {
			continue
		}
		th := w.Resolve(id)
		if th.Valid() && th.Kind() == thing.KindAgent && th.Team() == team {
			count++
		}
	}
	return count >= 2
}

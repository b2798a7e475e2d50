// Package respawn implements §4.10's altar-driven respawn and temple hybrid
// spawn rules. It follows the original overworld/garrison/system.go
// validate-then-mutate shape (look up state, check every precondition,
// mutate only once every check passes), generalized from squad garrison
// assignment to agent respawn.
package respawn

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// DormantAgent identifies a dead-but-still-registered agent awaiting
// respawn: its home altar and team, tracked by the scheduler since a dead
// agent is converted to a corpse and no longer lives in TeamAgents.
type DormantAgent struct {
	AltarID ecs.EntityID
	Team    int
}

// TickRespawn iterates the supplied dormant agents and, for each, attempts
// a respawn at its home altar if the team has room under pop-cap and the
// altar still holds a heart (§4.1 step 10). Successful respawns are
// reported back by index. The scheduler discards that result and builds
// the dormant list only from agents that died in the same step, so an
// agent whose respawn fails at its death step is not tried again.
func TickRespawn(w *world.World, dormant []DormantAgent, step int) []bool {
	ok := make([]bool, len(dormant))
	for i, d := range dormant {
		ok[i] = tryRespawn(w, d, step)
	}
	return ok
}

func tryRespawn(w *world.World, d DormantAgent, step int) bool {
	team := w.Team(d.Team)
	if team == nil || team.PopCount >= team.PopCap {
		return false
	}
	altar := w.Resolve(d.AltarID)
	if !altar.Valid() {
		return false
	}
	ad := altar.Altar()
	if ad == nil || ad.Hearts < 1 {
		return false
	}
	spot, found := w.FindNearestEmptyTile(altar.Position(), config.RespawnSearchRadius)
	if !found {
		return false
	}
	ad.Hearts--
	spawnVillager(w, spot, d.Team, d.AltarID, step)
	return true
}

func spawnVillager(w *world.World, pos coords.Position, team int, altarID ecs.EntityID, step int) {
	ent, err := w.CreateEntity(pos, thing.KindAgent, team)
	if err != nil {
		return
	}
	h := w.Resolve(ent.GetID())
	w.AttachAgent(h, thing.Villager, config.MaxHPFor(thing.Villager))
	agent := h.Agent()
	agent.HomeAltarID = altarID
	agent.HasAltar = true
	if w.Log != nil {
		w.Log.Record(telemetry.EventRespawn, step, h.ID, "respawned at altar %d", altarID)
	}
}

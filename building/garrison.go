package building

import (
	"fmt"

	"rtscore/config"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// GarrisonIn moves an agent into a garrisonable building's interior (§4.7):
// it removes the agent from the grid and spatial index but keeps its entity
// and components intact, so UngarrisonAll can fully restore it later.
// Fails with CapacityExceeded if the building has no free slot.
func GarrisonIn(w *world.World, agent, structure world.Handle) error {
	b := structure.Building()
	if b == nil {
		return fmt.Errorf("garrison %d into %d: %w", agent.ID, structure.ID, errNotBuilding)
	}
	if len(b.Garrison) >= b.GarrisonCapacity {
		return fmt.Errorf("garrison %d into %d: %w", agent.ID, structure.ID, errGarrisonFull)
	}
	ad := agent.Agent()
	if ad == nil || ad.Dead {
		return fmt.Errorf("garrison %d into %d: %w", agent.ID, structure.ID, errNotAgent)
	}
	pos := agent.Position()
	w.Grid.SetBlocking(pos, 0)
	w.Index.Remove(agent.ID)
	w.TeamAgents[agent.Team()] = removeFromSlice(w.TeamAgents[agent.Team()], agent.ID)
	b.Garrison = append(b.Garrison, agent.ID)
	return nil
}

// UngarrisonAll empties a building's interior, placing every occupant on
// the nearest empty tile around it (§4.7).
func UngarrisonAll(w *world.World, structure world.Handle) {
	b := structure.Building()
	if b == nil {
		return
	}
	pos := structure.Position()
	for _, agentID := range b.Garrison {
		h := w.Resolve(agentID)
		if !h.Valid() {
			continue
		}
		dest, ok := w.FindNearestEmptyTile(pos, config.RespawnSearchRadius)
		if !ok {
			continue
		}
		w.PlaceAgentOnGrid(h, dest)
	}
	b.Garrison = nil
}

func removeFromSlice(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// GarrisonRelic places a relic into a monastery's interior, clearing its
// on-map grid presence (§4.7, §8 relic conservation). Fails with
// CapacityExceeded if the monastery is full.
func GarrisonRelic(w *world.World, relic, monastery world.Handle) error {
	b := monastery.Building()
	if b == nil {
		return fmt.Errorf("garrison relic %d into %d: %w", relic.ID, monastery.ID, errNotBuilding)
	}
	if len(b.GarrisonRelics) >= b.GarrisonCapacity {
		return fmt.Errorf("garrison relic %d into %d: %w", relic.ID, monastery.ID, errGarrisonFull)
	}
	pos := relic.Position()
	w.Grid.SetBackground(pos, 0)
	w.Index.Remove(relic.ID)
	b.GarrisonRelics = append(b.GarrisonRelics, relic.ID)
	return nil
}

// PickupRelic reverses GarrisonRelic, dropping the relic back on the map
// adjacent to the monastery.
func PickupRelic(w *world.World, relic, monastery world.Handle) bool {
	b := monastery.Building()
	if b == nil {
		return false
	}
	idx := -1
	for i, id := range b.GarrisonRelics {
		if id == relic.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	b.GarrisonRelics = append(b.GarrisonRelics[:idx], b.GarrisonRelics[idx+1:]...)
	dest, ok := w.FindNearestEmptyTile(monastery.Position(), config.RespawnSearchRadius)
	if !ok {
		dest = monastery.Position()
	}
	relic.SetPosition(dest)
	w.Grid.SetBackground(dest, relic.ID)
	w.Index.Insert(relic.ID, thing.KindRelic, -1, dest)
	return true
}

// TickMonasteryGold generates gold for a team every
// MonasteryRelicGoldInterval steps per garrisoned relic (§4.7).
func TickMonasteryGold(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		b := h.Building()
		if b == nil || len(b.GarrisonRelics) == 0 {
			continue
		}
		if w.Step%config.MonasteryRelicGoldInterval != 0 {
			continue
		}
		team := w.Team(h.Team())
		if team == nil {
			continue
		}
		team.Deposit(world.Gold, len(b.GarrisonRelics))
	}
}

var (
	errGarrisonFull = fmt.Errorf("garrison is full")
	errNotAgent     = fmt.Errorf("target is not a live agent")
)

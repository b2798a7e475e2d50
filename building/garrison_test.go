package building

import (
	"testing"

	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"

	"go.uber.org/zap"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	log := telemetry.NewLog(zap.NewNop(), 16)
	return world.New(1, log)
}

func newBuilding(t *testing.T, w *world.World, pos coords.Position, garrisonCap int) world.Handle {
	t.Helper()
	ent, err := w.CreateEntity(pos, thing.KindBuilding, 0)
	if err != nil {
		t.Fatalf("create building: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachBuilding(h, 600, garrisonCap)
	h.Building().Built = true
	return h
}

func newAgent(t *testing.T, w *world.World, pos coords.Position) world.Handle {
	t.Helper()
	ent, err := w.CreateEntity(pos, thing.KindAgent, 0)
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachAgent(h, thing.Villager, 25)
	return h
}

func TestGarrisonInRemovesAgentFromGridAndRoster(t *testing.T) {
	w := newTestWorld(t)
	structure := newBuilding(t, w, coords.Position{X: 5, Y: 5}, 2)
	agent := newAgent(t, w, coords.Position{X: 6, Y: 5})

	if err := GarrisonIn(w, agent, structure); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocking := w.Grid.BlockingEntity(coords.Position{X: 6, Y: 5}); blocking != 0 {
		t.Fatalf("expected tile to be cleared after garrisoning, got %d", blocking)
	}
	for _, id := range w.TeamAgents[0] {
		if id == agent.ID {
			t.Fatalf("garrisoned agent should be removed from the team roster")
		}
	}
	if len(structure.Building().Garrison) != 1 {
		t.Fatalf("expected structure to record 1 garrisoned agent, got %d", len(structure.Building().Garrison))
	}
}

func TestGarrisonInFailsWhenFull(t *testing.T) {
	w := newTestWorld(t)
	structure := newBuilding(t, w, coords.Position{X: 5, Y: 5}, 1)
	first := newAgent(t, w, coords.Position{X: 6, Y: 5})
	second := newAgent(t, w, coords.Position{X: 7, Y: 5})

	if err := GarrisonIn(w, first, structure); err != nil {
		t.Fatalf("unexpected error on first garrison: %v", err)
	}
	if err := GarrisonIn(w, second, structure); err == nil {
		t.Fatalf("expected error garrisoning into a full building")
	}
}

func TestUngarrisonAllPlacesOccupantsBackOnGrid(t *testing.T) {
	w := newTestWorld(t)
	structure := newBuilding(t, w, coords.Position{X: 5, Y: 5}, 2)
	agent := newAgent(t, w, coords.Position{X: 6, Y: 5})

	if err := GarrisonIn(w, agent, structure); err != nil {
		t.Fatalf("garrison: %v", err)
	}
	UngarrisonAll(w, structure)

	if len(structure.Building().Garrison) != 0 {
		t.Fatalf("expected garrison to be emptied")
	}
	found := false
	for _, id := range w.TeamAgents[0] {
		if id == agent.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ungarrisoned agent back on the team roster")
	}
}

func TestTickMonasteryGoldDepositsOnInterval(t *testing.T) {
	w := newTestWorld(t)
	structure := newBuilding(t, w, coords.Position{X: 5, Y: 5}, 4)
	structure.Building().GarrisonRelics = append(structure.Building().GarrisonRelics, 1, 2)

	w.Step = 0
	before := w.Team(0).Stockpile[world.Gold]
	TickMonasteryGold(w)
	after := w.Team(0).Stockpile[world.Gold]
	if after-before != 2 {
		t.Fatalf("expected 2 gold deposited (one per garrisoned relic), got delta %d", after-before)
	}
}

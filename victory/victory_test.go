package victory

import (
	"testing"

	"rtscore/config"
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

func TestEvaluateConquestDeclaresSoleSurvivor(t *testing.T) {
	w := newTestWorld(t)
	if _, err := w.CreateEntity(coords.Position{X: 1, Y: 1}, thing.KindAgent, 0); err != nil {
		t.Fatalf("create agent: %v", err)
	}
	// Team 1 and every other team start with no agents and no buildings, so
	// they're marked eliminated the first time Evaluate scans them.

	winner, fired := Evaluate(w, Conquest, 0)
	if fired != Conquest || winner != 0 {
		t.Fatalf("expected team 0 to win by conquest, got winner=%d fired=%v", winner, fired)
	}
}

func TestEvaluateConquestNoWinnerWhileMultipleTeamsAlive(t *testing.T) {
	w := newTestWorld(t)
	w.CreateEntity(coords.Position{X: 1, Y: 1}, thing.KindAgent, 0)
	w.CreateEntity(coords.Position{X: 2, Y: 1}, thing.KindAgent, 1)

	_, fired := Evaluate(w, Conquest, 0)
	if fired != None {
		t.Fatalf("expected no victory while two teams are alive, got %v", fired)
	}
}

func TestEvaluateRegicideRequiresMultipleContenders(t *testing.T) {
	w := newTestWorld(t)
	w.Team(0).Victory.HasKing = true
	w.Team(0).Victory.KingAlive = true

	_, fired := Evaluate(w, Regicide, 0)
	if fired != None {
		t.Fatalf("expected no regicide winner with a single contender, got %v", fired)
	}

	w.Team(1).Victory.HasKing = true
	w.Team(1).Victory.KingAlive = false

	winner, fired := Evaluate(w, Regicide, 0)
	if fired != Regicide || winner != 0 {
		t.Fatalf("expected team 0 to win regicide once team 1's king is dead, got winner=%d fired=%v", winner, fired)
	}
}

func TestCheckWonderCountdownFiresAtZero(t *testing.T) {
	w := newTestWorld(t)
	ent, err := w.CreateEntity(coords.Position{X: 3, Y: 3}, thing.KindWonder, 0)
	if err != nil {
		t.Fatalf("create wonder: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachWonder(h, 0, 100)
	h.Health().HP = h.Health().MaxHP

	for i := 0; i < config.WonderVictoryCountdown; i++ {
		if _, ok := checkWonder(w); ok {
			t.Fatalf("wonder fired early at tick %d", i)
		}
	}
	winner, ok := checkWonder(w)
	if !ok || winner != 0 {
		t.Fatalf("expected wonder victory for team 0 after the countdown elapses, got winner=%d ok=%v", winner, ok)
	}
}

func TestCheckRelicCountdownFiresAtEstablishStepPlusCountdown(t *testing.T) {
	w := newTestWorld(t)
	w.TotalRelicsOnMap = 1
	ent, err := w.CreateEntity(coords.Position{X: 4, Y: 4}, thing.KindBuilding, 0)
	if err != nil {
		t.Fatalf("create building: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachBuilding(h, 600, 4)
	h.Building().RecipeKey = "monastery"
	h.Building().GarrisonRelics = append(h.Building().GarrisonRelics, 1)

	for i := 0; i < config.RelicVictoryCountdown; i++ {
		if _, ok := checkRelic(w); ok {
			t.Fatalf("relic victory fired early at tick %d", i)
		}
	}
	winner, ok := checkRelic(w)
	if !ok || winner != 0 {
		t.Fatalf("expected relic victory for team 0 after the countdown elapses, got winner=%d ok=%v", winner, ok)
	}
}

func TestCheckRelicResetsCountdownIfGarrisonDrops(t *testing.T) {
	w := newTestWorld(t)
	w.TotalRelicsOnMap = 1
	ent, _ := w.CreateEntity(coords.Position{X: 4, Y: 4}, thing.KindBuilding, 0)
	h := w.Resolve(ent.GetID())
	w.AttachBuilding(h, 600, 4)
	h.Building().RecipeKey = "monastery"
	h.Building().GarrisonRelics = append(h.Building().GarrisonRelics, 1)

	checkRelic(w)
	if w.Team(0).Victory.RelicHoldSteps == 0 {
		t.Fatalf("expected countdown to be armed once the relic is fully garrisoned")
	}

	h.Building().GarrisonRelics = nil
	checkRelic(w)
	if w.Team(0).Victory.RelicHoldSteps != 0 {
		t.Fatalf("expected countdown reset once the relic is ungarrisoned")
	}
}

func TestCheckKingOfTheHillCountdownFiresAtGainStepPlusCountdown(t *testing.T) {
	w := newTestWorld(t)
	ent, err := w.CreateEntity(coords.Position{X: 10, Y: 10}, thing.KindControlPoint, -1)
	if err != nil {
		t.Fatalf("create control point: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachControlPoint(h)

	w.CreateEntity(coords.Position{X: 12, Y: 10}, thing.KindAgent, 0)

	for i := 0; i < config.HillVictoryCountdown; i++ {
		if _, ok := checkKingOfTheHill(w); ok {
			t.Fatalf("king-of-the-hill victory fired early at tick %d", i)
		}
	}
	winner, ok := checkKingOfTheHill(w)
	if !ok || winner != 0 {
		t.Fatalf("expected king-of-the-hill victory for team 0 after the countdown elapses, got winner=%d ok=%v", winner, ok)
	}
}

func TestCheckKingOfTheHillResetsOnNewHolder(t *testing.T) {
	w := newTestWorld(t)
	ent, _ := w.CreateEntity(coords.Position{X: 10, Y: 10}, thing.KindControlPoint, -1)
	h := w.Resolve(ent.GetID())
	w.AttachControlPoint(h)

	firstPos := coords.Position{X: 12, Y: 10}
	first, _ := w.CreateEntity(firstPos, thing.KindAgent, 0)
	checkKingOfTheHill(w)
	checkKingOfTheHill(w)
	if h.ControlPoint().ConsecutiveSteps == 0 {
		t.Fatalf("expected consecutive steps to accumulate while team 0 holds the point")
	}

	w.DestroyEntity(first.GetID(), thing.KindAgent, 0, firstPos)
	w.CreateEntity(coords.Position{X: 13, Y: 10}, thing.KindAgent, 1)
	checkKingOfTheHill(w)
	if h.ControlPoint().ConsecutiveSteps != 0 || h.ControlPoint().HoldingTeam != 1 {
		t.Fatalf("expected the new holder's gain step to reset the counter, got holder=%d steps=%d",
			h.ControlPoint().HoldingTeam, h.ControlPoint().ConsecutiveSteps)
	}
}

func TestCheckWonderResetsCountdownIfDamaged(t *testing.T) {
	w := newTestWorld(t)
	ent, _ := w.CreateEntity(coords.Position{X: 3, Y: 3}, thing.KindWonder, 0)
	h := w.Resolve(ent.GetID())
	w.AttachWonder(h, 0, 100)
	h.Health().HP = h.Health().MaxHP

	checkWonder(w)
	if !w.Team(0).Victory.HasWonder {
		t.Fatalf("expected HasWonder to be set once complete")
	}

	h.Health().HP = 50
	checkWonder(w)
	if w.Team(0).Victory.HasWonder || w.Team(0).Victory.WonderCountdown != -1 {
		t.Fatalf("expected countdown reset once the wonder takes damage")
	}
}

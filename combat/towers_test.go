package combat

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

func TestTickTowerVolleysDamagesNearestEnemy(t *testing.T) {
	w := newTestWorld(t)

	towerEnt, err := w.CreateEntity(coords.Position{X: 5, Y: 5}, thing.KindBuilding, 0)
	if err != nil {
		t.Fatalf("create tower: %v", err)
	}
	tower := w.Resolve(towerEnt.GetID())
	w.AttachBuilding(tower, 1000, 0)
	tower.Building().RecipeKey = "guard_tower"
	tower.Building().Built = true

	enemyEnt, err := w.CreateEntity(coords.Position{X: 6, Y: 5}, thing.KindAgent, 1)
	if err != nil {
		t.Fatalf("create enemy: %v", err)
	}
	enemy := w.Resolve(enemyEnt.GetID())
	w.AttachAgent(enemy, thing.Villager, 100)

	resolver := NewResolver(w, 0)
	TickTowerVolleys(w, resolver)

	hp := enemy.Health()
	if hp.HP >= 100 {
		t.Fatalf("expected tower volley to damage nearest enemy, hp still %d", hp.HP)
	}
}

func TestTickTowerVolleysIgnoresUnbuiltTower(t *testing.T) {
	w := newTestWorld(t)

	towerEnt, _ := w.CreateEntity(coords.Position{X: 5, Y: 5}, thing.KindBuilding, 0)
	tower := w.Resolve(towerEnt.GetID())
	w.AttachBuilding(tower, 1000, 0)
	tower.Building().RecipeKey = "guard_tower"
	tower.Building().Built = false

	enemyEnt, _ := w.CreateEntity(coords.Position{X: 6, Y: 5}, thing.KindAgent, 1)
	enemy := w.Resolve(enemyEnt.GetID())
	w.AttachAgent(enemy, thing.Villager, 100)

	resolver := NewResolver(w, 0)
	TickTowerVolleys(w, resolver)

	if hp := enemy.Health(); hp.HP != 100 {
		t.Fatalf("expected unbuilt tower not to fire, hp=%d", hp.HP)
	}
}

func TestTickTowerVolleysIgnoresNonTowerBuildings(t *testing.T) {
	w := newTestWorld(t)

	houseEnt, _ := w.CreateEntity(coords.Position{X: 5, Y: 5}, thing.KindBuilding, 0)
	house := w.Resolve(houseEnt.GetID())
	w.AttachBuilding(house, 1000, 0)
	house.Building().RecipeKey = "house"
	house.Building().Built = true

	enemyEnt, _ := w.CreateEntity(coords.Position{X: 6, Y: 5}, thing.KindAgent, 1)
	enemy := w.Resolve(enemyEnt.GetID())
	w.AttachAgent(enemy, thing.Villager, 100)

	resolver := NewResolver(w, 0)
	TickTowerVolleys(w, resolver)

	if hp := enemy.Health(); hp.HP != 100 {
		t.Fatalf("expected non-tower building not to fire, hp=%d", hp.HP)
	}
}

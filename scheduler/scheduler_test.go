package scheduler

import (
	"testing"

	"rtscore/config"
	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
	"go.uber.org/zap"
)

// fakeSlots is a minimal SlotMap test double: every live agent id maps to
// its own slot in spawn order, the simplest possible stand-in for the real
// registry the ffi package owns.
type fakeSlots struct {
	slot map[ecs.EntityID]int
}

func newFakeSlots(w *world.World) *fakeSlots {
	s := &fakeSlots{slot: make(map[ecs.EntityID]int)}
	for _, id := range w.LiveAgentIDs() {
		s.slot[id] = len(s.slot)
	}
	return s
}

func (s *fakeSlots) SlotOf(id ecs.EntityID) (int, bool) {
	slot, ok := s.slot[id]
	return slot, ok
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	log := telemetry.NewLog(zap.NewNop(), 16)
	return world.New(1, log)
}

func spawnVillager(t *testing.T, w *world.World, team int, pos coords.Position) ecs.EntityID {
	t.Helper()
	ent, err := w.CreateEntity(pos, thing.KindAgent, team)
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	h := w.Resolve(ent.GetID())
	w.AttachAgent(h, thing.Villager, 25)
	return ent.GetID()
}

func TestStepNoopLeavesTerminalsZero(t *testing.T) {
	w := newTestWorld(t)
	spawnVillager(t, w, 0, coords.Position{X: 5, Y: 5})
	spawnVillager(t, w, 1, coords.Position{X: 6, Y: 5})

	slots := newFakeSlots(w)
	cfg := config.DefaultEngineConfig()
	actions := make([]uint8, config.MapAgents)
	rewards := make([]float32, config.MapAgents)
	terminated := make([]uint8, config.MapAgents)
	truncated := make([]uint8, config.MapAgents)

	result := Step(w, cfg, slots, actions, rewards, terminated, truncated)
	if result.Terminated || result.Truncated {
		t.Fatalf("expected a single noop step not to end the episode, got %+v", result)
	}
	for i, v := range terminated {
		if v != 0 {
			t.Fatalf("terminated[%d] = %d, want 0", i, v)
		}
	}
	for i, v := range truncated {
		if v != 0 {
			t.Fatalf("truncated[%d] = %d, want 0", i, v)
		}
	}
}

func TestStepAppliesSurvivalPenalty(t *testing.T) {
	w := newTestWorld(t)
	id := spawnVillager(t, w, 0, coords.Position{X: 5, Y: 5})

	slots := newFakeSlots(w)
	cfg := config.DefaultEngineConfig()
	actions := make([]uint8, config.MapAgents)
	rewards := make([]float32, config.MapAgents)
	terminated := make([]uint8, config.MapAgents)
	truncated := make([]uint8, config.MapAgents)

	Step(w, cfg, slots, actions, rewards, terminated, truncated)

	slot, ok := slots.SlotOf(id)
	if !ok {
		t.Fatalf("expected surviving agent to have a slot")
	}
	if rewards[slot] != cfg.Rewards.SurvivalPenalty {
		t.Fatalf("expected survival penalty %v, got %v", cfg.Rewards.SurvivalPenalty, rewards[slot])
	}
}

func TestStepTruncatesAtMaxSteps(t *testing.T) {
	w := newTestWorld(t)
	spawnVillager(t, w, 0, coords.Position{X: 5, Y: 5})

	slots := newFakeSlots(w)
	cfg := config.DefaultEngineConfig()
	cfg.MaxSteps = 1
	actions := make([]uint8, config.MapAgents)
	rewards := make([]float32, config.MapAgents)
	terminated := make([]uint8, config.MapAgents)
	truncated := make([]uint8, config.MapAgents)

	result := Step(w, cfg, slots, actions, rewards, terminated, truncated)
	if !result.Truncated {
		t.Fatalf("expected episode to truncate once step+1 reaches MaxSteps")
	}
	for _, id := range w.LiveAgentIDs() {
		slot, _ := slots.SlotOf(id)
		if truncated[slot] != 1 {
			t.Fatalf("expected slot %d truncated on MaxSteps cutoff", slot)
		}
	}
}

// Package scheduler drives the fixed fifteen-phase per-step pipeline
// (§4.1) that ties every other package together: action dispatch, entity
// ticks, combat sweeps, respawn, tint recompute, and victory evaluation.
// It generalizes the original world/overworld update loop — a single
// ordered function calling each subsystem's Tick once per turn — from a
// roguelike's player-then-monsters turn structure to this engine's fixed
// fifteen-step RTS tick.
package scheduler

import (
	"rtscore/action"
	"rtscore/building"
	"rtscore/combat"
	"rtscore/common"
	"rtscore/config"
	"rtscore/npc"
	"rtscore/respawn"
	"rtscore/thing"
	"rtscore/victory"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// SlotMap resolves between an agent's entity id and its fixed external
// buffer slot; the action, observation, and reward buffers are all
// slot-addressed per §6. The FFI layer owns slot assignment and implements
// this interface.
type SlotMap interface {
	SlotOf(id ecs.EntityID) (int, bool)
}

// Result reports the externally observable outcome of one Step call.
type Result struct {
	Winner     int
	Condition  victory.Condition
	Terminated bool
	Truncated  bool
}

// Step advances the world by exactly one tick (§4.1). actions is the
// slot-addressed uint8 action buffer; rewards, terminated, and truncated
// are the slot-addressed output buffers of §6, each overwritten (not
// accumulated) every step. The observation tensor is rebuilt lazily by the
// caller after Step returns, using w.AgentMoved and w.ObservationsDirty.
func Step(w *world.World, cfg config.EngineConfig, slots SlotMap, actions []uint8, rewards []float32, terminated, truncated []uint8) Result {
	step := w.Step
	resolver := combat.NewResolver(w, step)
	resolver.UpgradeBonus = func(team int, _ thing.UnitClass) int {
		return building.AttackBonusFromResearch(w.Team(team))
	}

	// 1. Decay short-lived effects.
	w.ActionTint.Decay()
	combat.TickLifecycle(w)

	// 2. Pre-action death sweep: agents already at 0 hp cannot act.
	markZeroHPDead(w, resolver)
	resolver.SweepDeaths()

	// 3. Recompute population.
	w.RecomputePopulation(popCapOf(w))

	// 4. Action execution.
	for id := range w.AgentMoved {
		delete(w.AgentMoved, id)
	}
	runActions(w, resolver, slots, actions, step)

	// 5. Per-step entity tick.
	building.TickProductionQueues(w, w.Log, step, config.MaxHPFor)
	building.TickResearch(w, w.Log, step)
	building.TickMonasteryGold(w)
	building.TickMarketDecay(w, step)
	combat.TickTowerVolleys(w, resolver)
	npc.TickSpawners(w)
	npc.TickWildlife(w)
	npc.TickGoblinHives(w)
	npc.TickGoblins(w, resolver)

	// 6. Tumor branching.
	npc.TickTumorBranching(w)

	// 7. Tumor adjacency damage.
	npc.TickTumorAdjacencyDamage(w, resolver)

	// 8. Auras.
	combat.ApplyAuras(w)

	// 9. Post-combat death sweep.
	dormant := collectDormant(w, resolver)
	resolver.SweepDeaths()

	// 10. Respawn.
	respawn.TickRespawn(w, dormant, step)

	// 11. Temple hybrid spawns.
	respawn.TickTempleHybrid(w, step)

	// 12. Survival reward/penalty.
	applyStepRewards(w, cfg, slots, rewards, resolver)

	// 13. Tint field recompute.
	recomputeTint(w)

	// 14. Victory monitors.
	winner, fired := victory.Evaluate(w, victory.Condition(cfg.VictoryCondition()), step)

	// 15. Termination.
	for i := range terminated {
		terminated[i] = 0
	}
	for i := range truncated {
		truncated[i] = 0
	}
	episodeTerminated := fired != victory.None
	episodeTruncated := !episodeTerminated && step+1 >= cfg.MaxSteps
	switch {
	case episodeTerminated:
		applyVictoryRewards(w, cfg, slots, rewards, terminated, truncated, winner, fired)
	case episodeTruncated:
		markAllTruncated(w, slots, truncated)
	}
	w.ObservationsDirty = true
	w.Step++
	return Result{Winner: winner, Condition: fired, Terminated: episodeTerminated, Truncated: episodeTruncated}
}

func markAllTruncated(w *world.World, slots SlotMap, truncated []uint8) {
	for _, id := range w.LiveAgentIDs() {
		if slot, ok := slots.SlotOf(id); ok && slot >= 0 && slot < len(truncated) {
			truncated[slot] = 1
		}
	}
}

// markZeroHPDead seeds the pre-action resolver's dead set with any agent
// left at 0 hp from a prior step's damage that was never swept (§4.1
// step 2): e.g. a structure collapse or tumor tick landing after the last
// sweep point.
func markZeroHPDead(w *world.World, resolver *combat.Resolver) {
	for _, id := range w.IterateByKind(thing.KindAgent) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		hp := h.Health()
		if hp != nil && hp.HP <= 0 {
			resolver.Dead[id] = true
			if agent := h.Agent(); agent != nil {
				agent.Dead = true
			}
		}
	}
}

func runActions(w *world.World, resolver *combat.Resolver, slots SlotMap, actions []uint8, step int) {
	ctx := &action.Context{World: w, Resolver: resolver, Step: step}
	ids := w.LiveAgentIDs()
	common.ShuffleIDs(w.RNG.Substream(step, "action-order"), ids)
	for _, id := range ids {
		slot, ok := slots.SlotOf(id)
		if !ok || slot < 0 || slot >= len(actions) {
			continue
		}
		action.Dispatch(ctx, id, actions[slot])
	}
}

// popCapOf sums the PopContribution of every built, team-owned town center
// or house (§4.10), clamped by World.RecomputePopulation itself.
func popCapOf(w *world.World) func(team int) int {
	return func(team int) int {
		total := 0
		for _, id := range w.IterateByKind(thing.KindBuilding) {
			h := w.Resolve(id)
			if !h.Valid() || h.Team() != team {
				continue
			}
			b := h.Building()
			if b == nil || !b.Built {
				continue
			}
			if recipe, ok := config.RecipeByKey(b.RecipeKey); ok {
				total += recipe.PopContribution
			}
		}
		return total
	}
}

// collectDormant scans agents about to be converted to corpses this sweep
// and, for any with a still-unused home altar, reports a DormantAgent so
// TickRespawn can attempt a respawn against that altar (§4.1 step 10,
// §4.13 Dead -> Active respawn path). The Respawned flag guards against a
// single corpse attempting a new respawn on every remaining step of its
// decay timeline.
func collectDormant(w *world.World, resolver *combat.Resolver) []respawn.DormantAgent {
	var dormant []respawn.DormantAgent
	for id := range resolver.Dead {
		h := w.Resolve(id)
		if !h.Valid() || h.Kind() != thing.KindAgent {
			continue
		}
		agent := h.Agent()
		if agent == nil || !agent.HasAltar || agent.Respawned {
			continue
		}
		agent.Respawned = true
		dormant = append(dormant, respawn.DormantAgent{AltarID: agent.HomeAltarID, Team: h.Team()})
	}
	return dormant
}

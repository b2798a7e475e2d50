// Command simrun is a headless example driver: it builds a small scenario
// directly against the ffi.Engine, drives it with a uniform-random policy,
// and prints one summary line: the step, winner and condition when the
// episode ends, or the step count if it never does. It exists the
// way a CLI harness exists for a library package meant to be embedded by a
// host process — proof the wiring holds end to end without a real policy.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"rtscore/config"
	"rtscore/coords"
	"rtscore/ffi"
	"rtscore/thing"

	"go.uber.org/zap"
)

func main() {
	steps := flag.Int("steps", 200, "number of ticks to simulate")
	seed := flag.Int64("seed", 1, "world RNG seed")
	agentsPerTeam := flag.Int("agents", 6, "agents to spawn per team")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.DefaultEngineConfig()
	cfg.Seed = *seed
	cfg.MaxSteps = *steps
	cfg.VictoryConditionName = "Any"

	engine := ffi.NewEngine(cfg, logger)
	spawnScenario(engine, *agentsPerTeam)

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *steps; i++ {
		for slot := range engine.Actions {
			engine.Actions[slot] = uint8(rng.Intn(config.NumActionCodes))
		}
		result := engine.Step()
		if result.Terminated || result.Truncated {
			fmt.Printf("step %d: episode ended, winner=%d condition=%v terminated=%v truncated=%v\n",
				i, result.Winner, result.Condition, result.Terminated, result.Truncated)
			return
		}
	}
	fmt.Printf("ran %d steps without an episode end\n", *steps)
}

// spawnScenario places one town center (doubling as the team's altar) and
// agentsPerTeam villagers per team, the minimal roster needed to exercise population accounting,
// production, and combat dispatch in the step loop above.
func spawnScenario(e *ffi.Engine, agentsPerTeam int) {
	w := e.World
	for team := 0; team < config.NumTeams; team++ {
		base := coords.Position{X: 10 + team*30, Y: 10 + team*20}
		tc, err := w.CreateEntity(base, thing.KindBuilding, team)
		if err != nil {
			continue
		}
		h := w.Resolve(tc.GetID())
		w.AttachBuilding(h, config.MaxHPFor(thing.Villager)*10, 10)
		if b := h.Building(); b != nil {
			b.RecipeKey = "town_center"
			b.Built = true
		}
		w.AttachAltar(h, team, 5)

		for i := 0; i < agentsPerTeam; i++ {
			pos := coords.Position{X: base.X + 1 + i, Y: base.Y + 1}
			ent, err := w.CreateEntity(pos, thing.KindAgent, team)
			if err != nil {
				continue
			}
			ah := w.Resolve(ent.GetID())
			w.AttachAgent(ah, thing.Villager, config.MaxHPFor(thing.Villager))
			if agent := ah.Agent(); agent != nil {
				agent.HomeAltarID = tc.GetID()
				agent.HasAltar = true
			}
		}
	}
}

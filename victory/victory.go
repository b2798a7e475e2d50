// Package victory implements §4.11's five victory monitors, evaluated in
// fixed priority order at each step tail. It mirrors the original
// world/overworld/victory_conditions.go shape — a small typed condition
// enum plus one evaluation entry point per rule, consulting state already
// tracked on Team/World rather than re-deriving it.
package victory

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// Condition enumerates the possible victory triggers (§6 victory_condition).
type Condition int

const (
	None Condition = iota
	Conquest
	Wonder
	Relic
	Regicide
	KingOfTheHill
	Any
)

// Evaluate runs every monitor in priority order and returns the winning
// team id and which condition fired, or (-1, None) if nothing fired yet.
// `enabled` restricts evaluation to the scenario's configured
// victory_condition (or all of them, under Any).
func Evaluate(w *world.World, enabled Condition, step int) (winner int, fired Condition) {
	if checkConquest(w, enabled) {
		if t, ok := soleSurvivingTeam(w); ok {
			recordVictory(w, step, t, Conquest)
			return t, Conquest
		}
	}
	if enabled == Wonder || enabled == Any {
		if t, ok := checkWonder(w); ok {
			recordVictory(w, step, t, Wonder)
			return t, Wonder
		}
	}
	if enabled == Relic || enabled == Any {
		if t, ok := checkRelic(w); ok {
			recordVictory(w, step, t, Relic)
			return t, Relic
		}
	}
	if enabled == Regicide || enabled == Any {
		if t, ok := checkRegicide(w); ok {
			recordVictory(w, step, t, Regicide)
			return t, Regicide
		}
	}
	if enabled == KingOfTheHill || enabled == Any {
		if t, ok := checkKingOfTheHill(w); ok {
			recordVictory(w, step, t, KingOfTheHill)
			return t, KingOfTheHill
		}
	}
	return -1, None
}

func checkConquest(w *world.World, enabled Condition) bool {
	return enabled == Conquest || enabled == Any
}

// soleSurvivingTeam reports whether at most one non-eliminated team still
// has a live agent or owned building, and which one it is.
func soleSurvivingTeam(w *world.World) (int, bool) {
	alive := -1
	count := 0
	for i := 0; i < config.NumTeams; i++ {
		t := w.Team(i)
		if t == nil || t.Eliminated {
			continue
		}
		if len(w.TeamAgents[i]) == 0 && !hasOwnedBuilding(w, i) {
			t.Eliminated = true
			continue
		}
		alive = i
		count++
	}
	if count == 1 {
		return alive, true
	}
	return -1, false
}

func hasOwnedBuilding(w *world.World, team int) bool {
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if h.Valid() && h.Team() == team {
			return true
		}
	}
	return false
}

// checkWonder advances every team's wonder countdown and reports the first
// team whose countdown reaches zero (§4.11, §8 wonder-countdown property).
func checkWonder(w *world.World) (int, bool) {
	for _, id := range w.IterateByKind(thing.KindWonder) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		wd := h.Wonder()
		hp := h.Health()
		if wd == nil || hp == nil {
			continue
		}
		team := w.Team(wd.TeamID)
		if team == nil {
			continue
		}
		v := &team.Victory
		complete := hp.HP == hp.MaxHP
		switch {
		case complete && !v.HasWonder:
			v.HasWonder = true
			v.WonderBuiltStep = w.Step
			v.WonderCountdown = config.WonderVictoryCountdown
		case !complete && v.HasWonder:
			v.HasWonder = false
			v.WonderCountdown = -1
		case complete && v.HasWonder:
			if v.WonderCountdown > 0 {
				v.WonderCountdown--
			}
			if v.WonderCountdown == 0 {
				return wd.TeamID, true
			}
		}
	}
	return -1, false
}

// checkRelic advances each team's consecutive-hold counter and reports the
// first to reach RelicVictoryCountdown while holding every relic on the map
// (§4.11, §8 relic-countdown property).
func checkRelic(w *world.World) (int, bool) {
	if w.TotalRelicsOnMap == 0 {
		return -1, false
	}
	for i := 0; i < config.NumTeams; i++ {
		team := w.Team(i)
		if team == nil {
			continue
		}
		held := garrisonedRelicsOf(w, i) == w.TotalRelicsOnMap
		switch {
		case held && team.Victory.RelicHoldSteps == 0:
			// Just reached full garrison this step: arm the countdown
			// without consuming a tick of it, mirroring checkWonder's
			// "just became complete" branch.
			team.Victory.RelicHoldSteps = config.RelicVictoryCountdown
		case !held:
			team.Victory.RelicHoldSteps = 0
		default:
			team.Victory.RelicHoldSteps--
			if team.Victory.RelicHoldSteps == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

func garrisonedRelicsOf(w *world.World, team int) int {
	n := 0
	for _, id := range w.IterateByKind(thing.KindBuilding) {
		h := w.Resolve(id)
		if !h.Valid() || h.Team() != team {
			continue
		}
		b := h.Building()
		if b == nil || b.RecipeKey != "monastery" {
			continue
		}
		n += len(b.GarrisonRelics)
	}
	return n
}

// checkRegicide reports a winner once exactly one team with a starting king
// still has it alive (§4.11).
func checkRegicide(w *world.World) (int, bool) {
	aliveTeam := -1
	aliveCount := 0
	contenders := 0
	for i := 0; i < config.NumTeams; i++ {
		team := w.Team(i)
		if team == nil || !team.Victory.HasKing {
			continue
		}
		contenders++
		if team.Victory.KingAlive {
			aliveTeam = i
			aliveCount++
		}
	}
	if contenders > 1 && aliveCount == 1 {
		return aliveTeam, true
	}
	return -1, false
}

// checkKingOfTheHill recomputes each ControlPoint's strict majority holder,
// resets contested/losing teams' counters to zero, and reports the first
// team to accumulate HillVictoryCountdown consecutive uncontested steps
// (§4.11, §8 king-of-the-hill-reset property).
func checkKingOfTheHill(w *world.World) (int, bool) {
	for _, id := range w.IterateByKind(thing.KindControlPoint) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		cp := h.ControlPoint()
		if cp == nil {
			continue
		}
		holder := majorityHolder(w, h.Position())
		if holder != cp.HoldingTeam {
			// Just gained (or lost) the majority this step: arm the
			// counter without consuming a tick of it, mirroring
			// checkWonder's "just became complete" branch.
			cp.HoldingTeam = holder
			cp.ConsecutiveSteps = 0
			continue
		}
		if holder < 0 {
			continue
		}
		cp.ConsecutiveSteps++
		if cp.ConsecutiveSteps >= config.HillVictoryCountdown {
			return holder, true
		}
	}
	return -1, false
}

// majorityHolder returns the team with strictly greatest count of live
// agents within HillControlRadius of pos, or -1 if tied or empty (§4.11
// "ties yield contested").
func majorityHolder(w *world.World, pos coords.Position) int {
	counts := make(map[int]int)
	w.Index.ForEachInRadius(pos, thing.KindAgent, config.HillControlRadius, func(id ecs.EntityID) bool {
		th := w.Resolve(id)
		if th.Valid() {
			counts[th.Team()]++
		}
		return true
	})
	best, bestCount := -1, 0
	tied := false
	for team, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = team, n, false
		case n == bestCount && n > 0:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return best
}

func recordVictory(w *world.World, step, team int, cond Condition) {
	w.Winner = team
	if w.Log != nil {
		w.Log.Record(telemetry.EventVictory, step, 0, "team %d wins by condition %d", team, cond)
	}
}

package combat

import (
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// tankAuraRadius returns a tank's aura half-width: Man-at-Arms projects a
// 3x3 band, Knight a 5x5 band (§4.1 step 8).
func tankAuraRadius(class thing.UnitClass) int {
	switch class {
	case thing.Knight:
		return 2
	case thing.ManAtArms:
		return 1
	default:
		return 0
	}
}

const monkAuraRadius = 2

// ApplyAuras runs monk healing auras for one step (§4.1 step 8); tank
// defensive auras are not applied here but at damage time through
// InTankAuraBand. Monk auras heal one wounded ally hp per step, non-stacking
// per ally even if multiple monks could reach it.
func ApplyAuras(w *world.World) {
	healedThisStep := make(map[ecs.EntityID]bool)
	for _, id := range w.IterateByKind(thing.KindAgent) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		agent := h.Agent()
		if agent == nil || agent.Dead || agent.Class != thing.Monk {
			continue
		}
		center := h.Position()
		team := h.Team()
		woundedPresent := false
		w.Index.ForEachInRadius(center, thing.KindAgent, monkAuraRadius, func(allyID ecs.EntityID) bool {
			ah := w.Resolve(allyID)
			if !ah.Valid() || ah.Team() != team {
				return true
			}
			hp := ah.Health()
			if hp == nil || hp.HP >= hp.MaxHP {
				return true
			}
			woundedPresent = true
			if !healedThisStep[allyID] {
				hp.HP++
				if hp.HP > hp.MaxHP {
					hp.HP = hp.MaxHP
				}
				healedThisStep[allyID] = true
			}
			return true
		})
		if woundedPresent {
			agent.FaithRatio = clampFaith(agent.FaithRatio - 2)
		} else {
			agent.FaithRatio = clampFaith(agent.FaithRatio + 1)
		}
	}
}

func clampFaith(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// InTankAuraBand reports whether pos falls within any living tank's aura
// band on team, used by the attack resolver's damage-halving rule (§4.4,
// non-stacking — a single hit halves once, never twice, regardless of how
// many overlapping tank auras cover the tile).
func InTankAuraBand(w *world.World, pos coords.Position, team int) bool {
	for id := range w.TankUnits {
		h := w.Resolve(id)
		if !h.Valid() || h.Team() != team {
			continue
		}
		agent := h.Agent()
		if agent == nil || agent.Dead {
			continue
		}
		if pos.ChebyshevDistance(h.Position()) <= tankAuraRadius(agent.Class) {
			return true
		}
	}
	return false
}

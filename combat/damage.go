// Package combat resolves damage application, class bonus tables, auras,
// and the death/corpse pipeline (§4.4). It generalizes the original
// combat/combat_service.go — a service object wrapping attack validation
// and execution over squads — into pure functions over (attacker, target,
// context) operating on individual agents and structures.
package combat

import (
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// baseDamage is the per-class base attack value.
var baseDamage = map[thing.UnitClass]int{
	thing.Villager:      3,
	thing.ManAtArms:      8,
	thing.Archer:         4,
	thing.Scout:          5,
	thing.Knight:        10,
	thing.Monk:           0,
	thing.Ram:           50,
	thing.Mangonel:      40,
	thing.Trebuchet:     80,
	thing.BoatUnit:       6,
	thing.King:           6,
	thing.UniqueCivUnit:  9,
	thing.GoblinRaider:   5,
}

// classBonus is an attacker-class -> target-class additive bonus table,
// keyed sparsely; absent pairs carry no bonus.
var classBonus = map[thing.UnitClass]map[thing.UnitClass]int{
	thing.Archer:    {thing.Villager: 2, thing.GoblinRaider: 2},
	thing.ManAtArms: {thing.Villager: 3},
	thing.Knight:    {thing.Archer: 3},
}

// armor is the per-class flat damage reduction applied before clamping.
var armor = map[thing.UnitClass]int{
	thing.ManAtArms: 2,
	thing.Knight:    4,
	thing.King:      5,
}

const siegeMultiplierPct = 300

// BonusFrom returns the attacker's bonus against a target class, 0 if none.
func BonusFrom(attacker, target thing.UnitClass) int {
	if m, ok := classBonus[attacker]; ok {
		return m[target]
	}
	return 0
}

// Resolver carries the per-step mutable state damage application needs:
// the already-dead set (double-kill guard) and the upgrade-bonus lookup.
type Resolver struct {
	World        *world.World
	Step         int
	Dead         map[ecs.EntityID]bool
	UpgradeBonus func(team int, class thing.UnitClass) int
	TankAuraBand func(pos ecs.EntityID) bool
}

// NewResolver builds a per-step damage resolver.
func NewResolver(w *world.World, step int) *Resolver {
	return &Resolver{World: w, Step: step, Dead: make(map[ecs.EntityID]bool)}
}

// ComputeDamage implements §4.4's formula:
// base + bonus(attacker->target) + siege-multiplier(if siege vs structure)
// + upgrade-bonus - armor(target) - tank-aura-reduction.
func (r *Resolver) ComputeDamage(attackerClass thing.UnitClass, attackerTeam int, targetClass thing.UnitClass, targetIsStructure bool, inTankAura bool) int {
	dmg := baseDamage[attackerClass] + BonusFrom(attackerClass, targetClass)
	if attackerClass.IsSiege() && targetIsStructure {
		dmg = dmg * siegeMultiplierPct / 100
	}
	if r.UpgradeBonus != nil {
		dmg += r.UpgradeBonus(attackerTeam, attackerClass)
	}
	if inTankAura {
		dmg /= 2
		if dmg < 1 {
			dmg = 1
		}
	}
	dmg -= armor[targetClass]
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// ApplyAgentDamage is one of the only two paths permitted to reduce an
// agent's hp (§4.4). It is a no-op (double-kill guard) if the victim is
// already marked dead this step.
func (r *Resolver) ApplyAgentDamage(attackerID ecs.EntityID, target world.Handle, amount int) {
	if r.Dead[target.ID] {
		return
	}
	hp := target.Health()
	if hp == nil {
		return
	}
	hp.HP -= amount
	if hp.HP < 0 {
		hp.HP = 0
	}
	if hp.HP == 0 {
		r.markDead(target)
	}
}

// ApplyStructureDamage is the structure counterpart of ApplyAgentDamage.
// Structures are destroyed inline rather than deferred to a sweep (§3
// Lifecycle).
func (r *Resolver) ApplyStructureDamage(attackerID ecs.EntityID, target world.Handle, amount int) {
	if r.Dead[target.ID] {
		return
	}
	hp := target.Health()
	if hp == nil {
		return
	}
	hp.HP -= amount
	if hp.HP < 0 {
		hp.HP = 0
	}
	if hp.HP == 0 {
		r.Dead[target.ID] = true
		DestroyBuilding(r.World, target)
	}
}

func (r *Resolver) markDead(target world.Handle) {
	r.Dead[target.ID] = true
	agent := target.Agent()
	if agent != nil {
		agent.Dead = true
	}
	if r.World.Log != nil {
		r.World.Log.Record(telemetry.EventAgentDeath, r.Step, target.ID, "died")
	}
}

// SweepDeaths converts every agent marked dead this step into a corpse
// (§3 Lifecycle, §4.13), called at the two named sweep points.
func (r *Resolver) SweepDeaths() {
	for id := range r.Dead {
		h := r.World.Resolve(id)
		if !h.Valid() || h.Kind() != thing.KindAgent {
			continue
		}
		ConvertToCorpse(r.World, h)
	}
}

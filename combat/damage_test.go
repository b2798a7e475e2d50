package combat

import (
	"testing"

	"rtscore/thing"
)

func TestComputeDamageAppliesBonusAndArmor(t *testing.T) {
	r := &Resolver{}
	dmg := r.ComputeDamage(thing.Archer, 0, thing.Villager, false, false)
	want := baseDamage[thing.Archer] + BonusFrom(thing.Archer, thing.Villager)
	if dmg != want {
		t.Fatalf("expected %d, got %d", want, dmg)
	}
}

func TestComputeDamageHalvesInTankAura(t *testing.T) {
	r := &Resolver{}
	normal := r.ComputeDamage(thing.Archer, 0, thing.Villager, false, false)
	halved := r.ComputeDamage(thing.Archer, 0, thing.Villager, false, true)
	if halved >= normal {
		t.Fatalf("expected tank aura to reduce damage: normal=%d halved=%d", normal, halved)
	}
	if halved < 1 {
		t.Fatalf("tank aura reduction must not drop pre-armor damage below 1, got %d", halved)
	}
}

func TestComputeDamageAppliesSiegeMultiplierAgainstStructures(t *testing.T) {
	r := &Resolver{}
	vsAgent := r.ComputeDamage(thing.Ram, 0, thing.Villager, false, false)
	vsStructure := r.ComputeDamage(thing.Ram, 0, thing.Villager, true, false)
	if vsStructure <= vsAgent {
		t.Fatalf("expected siege multiplier to increase damage vs structures: agent=%d structure=%d", vsAgent, vsStructure)
	}
}

func TestComputeDamageNeverNegative(t *testing.T) {
	r := &Resolver{}
	dmg := r.ComputeDamage(thing.Villager, 0, thing.King, false, true)
	if dmg < 0 {
		t.Fatalf("damage must clamp at 0, got %d", dmg)
	}
}

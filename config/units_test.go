package config

import (
	"testing"

	"rtscore/thing"
)

func TestMaxHPForKnownClass(t *testing.T) {
	if got := MaxHPFor(thing.Knight); got != UnitMaxHP[thing.Knight] {
		t.Fatalf("expected %d, got %d", UnitMaxHP[thing.Knight], got)
	}
}

func TestMaxHPForUnknownClassDefaultsToVillager(t *testing.T) {
	if got := MaxHPFor(thing.UnitClass(999)); got != UnitMaxHP[thing.Villager] {
		t.Fatalf("expected villager default %d, got %d", UnitMaxHP[thing.Villager], got)
	}
}

func TestUnitMaxHPCoversEveryCombatClass(t *testing.T) {
	classes := []thing.UnitClass{
		thing.Villager, thing.ManAtArms, thing.Archer, thing.Scout, thing.Knight,
		thing.Monk, thing.Ram, thing.Mangonel, thing.Trebuchet, thing.BoatUnit,
		thing.King, thing.UniqueCivUnit, thing.GoblinRaider,
	}
	for _, c := range classes {
		if hp, ok := UnitMaxHP[c]; !ok || hp <= 0 {
			t.Fatalf("class %v missing a positive max HP entry", c)
		}
	}
}

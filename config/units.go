package config

import "rtscore/thing"

// UnitMaxHP is the per-class spawn hit-point table consulted by production
// (§4.7) and respawn (§4.10) whenever a fresh agent is created, mirroring
// combat's baseDamage/armor lookup tables in shape.
var UnitMaxHP = map[thing.UnitClass]int{
	thing.Villager:     25,
	thing.ManAtArms:    45,
	thing.Archer:       30,
	thing.Scout:        40,
	thing.Knight:       70,
	thing.Monk:         25,
	thing.Ram:          180,
	thing.Mangonel:     55,
	thing.Trebuchet:    65,
	thing.BoatUnit:     80,
	thing.King:         75,
	thing.UniqueCivUnit: 60,
	thing.GoblinRaider: 15,
}

// MaxHPFor returns a unit class's spawn hit points, defaulting to the
// villager's if the class is unrecognized.
func MaxHPFor(class thing.UnitClass) int {
	if hp, ok := UnitMaxHP[class]; ok {
		return hp
	}
	return UnitMaxHP[thing.Villager]
}

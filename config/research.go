package config

// TechEffect is a flat attack/armor/unlock delta applied team-wide when a
// research entry completes (§4.7 Research).
type TechEffect struct {
	AttackDelta int
	ArmorDelta  int
	Unlocks     string
}

// TechEntry is one node in the two-tier research registry: blacksmith
// upgrades (tiered prereqs), university techs, castle civ techs, and
// unit-upgrade chains all share this shape.
type TechEntry struct {
	Key      string
	Tier     int
	Prereq   string // Key of the entry that must be researched first, "" if none
	Cost     map[string]int
	Effect   TechEffect
	Building string // which building this research is performed at
}

// BlacksmithUpgrades is the tiered weapon/armor upgrade chain.
var BlacksmithUpgrades = []TechEntry{
	{Key: "forging", Tier: 1, Cost: map[string]int{"food": 150, "gold": 30}, Effect: TechEffect{AttackDelta: 1}, Building: "blacksmith"},
	{Key: "iron_casting", Tier: 2, Prereq: "forging", Cost: map[string]int{"food": 220, "gold": 50}, Effect: TechEffect{AttackDelta: 1}, Building: "blacksmith"},
	{Key: "blast_furnace", Tier: 3, Prereq: "iron_casting", Cost: map[string]int{"food": 275, "gold": 225}, Effect: TechEffect{AttackDelta: 2}, Building: "blacksmith"},
	{Key: "scale_mail_armor", Tier: 1, Cost: map[string]int{"food": 100, "gold": 50}, Effect: TechEffect{ArmorDelta: 1}, Building: "blacksmith"},
	{Key: "chain_mail_armor", Tier: 2, Prereq: "scale_mail_armor", Cost: map[string]int{"food": 160, "gold": 65}, Effect: TechEffect{ArmorDelta: 1}, Building: "blacksmith"},
	{Key: "plate_mail_armor", Tier: 3, Prereq: "chain_mail_armor", Cost: map[string]int{"food": 220, "gold": 195}, Effect: TechEffect{ArmorDelta: 2}, Building: "blacksmith"},
}

// UniversityTechs unlock map-wide options (walls, ballistics-style bonuses).
var UniversityTechs = []TechEntry{
	{Key: "ballistics", Cost: map[string]int{"food": 300, "gold": 200}, Effect: TechEffect{Unlocks: "archer_leads_moving_targets"}, Building: "university"},
	{Key: "masonry", Cost: map[string]int{"wood": 150, "stone": 125}, Effect: TechEffect{Unlocks: "building_armor"}, Building: "university"},
	{Key: "siege_engineers", Cost: map[string]int{"wood": 200, "gold": 150}, Effect: TechEffect{Unlocks: "siege_range"}, Building: "university"},
}

// CastleTechs are the per-civilization unique technologies, one per team.
var CastleTechs = []TechEntry{
	{Key: "unique_tech", Cost: map[string]int{"food": 300, "wood": 300, "gold": 300}, Effect: TechEffect{Unlocks: "civ_bonus"}, Building: "castle"},
}

// UnitUpgradeChains are per-class promotion techs, trained the same way
// across production buildings (e.g. man-at-arms -> long swordsman).
var UnitUpgradeChains = []TechEntry{
	{Key: "man_at_arms_upgrade", Cost: map[string]int{"food": 100, "gold": 20}, Effect: TechEffect{AttackDelta: 2}, Building: "barracks"},
	{Key: "archer_upgrade", Cost: map[string]int{"wood": 100, "gold": 30}, Effect: TechEffect{AttackDelta: 1}, Building: "archery_range"},
	{Key: "knight_upgrade", Cost: map[string]int{"food": 180, "gold": 60}, Effect: TechEffect{AttackDelta: 2}, Building: "stable"},
}

// AllTech returns every registered entry across the two tiers, useful for
// lookups keyed only by name.
func AllTech() []TechEntry {
	all := make([]TechEntry, 0, len(BlacksmithUpgrades)+len(UniversityTechs)+len(CastleTechs)+len(UnitUpgradeChains))
	all = append(all, BlacksmithUpgrades...)
	all = append(all, UniversityTechs...)
	all = append(all, CastleTechs...)
	all = append(all, UnitUpgradeChains...)
	return all
}

// FindTech looks up a tech entry by key across every tier.
func FindTech(key string) (TechEntry, bool) {
	for _, t := range AllTech() {
		if t.Key == key {
			return t, true
		}
	}
	return TechEntry{}, false
}

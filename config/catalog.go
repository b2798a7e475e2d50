package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// BuildingRecipe describes one of the 25 build-verb catalog entries (§4.3
// verb 8). Index in BuildingCatalog is the action argument that selects it.
type BuildingRecipe struct {
	Key             string         `json:"key"`
	Cost            map[string]int `json:"cost"`
	PopContribution int            `json:"popContribution"`
	Garrisonable    bool           `json:"garrisonable"`
	GarrisonCap     int            `json:"garrisonCapacity"`
	Trainable       bool           `json:"trainable"`
	Producible      []string       `json:"producible"`
	MaxHP           int            `json:"maxHp"`
	SpacingRule     string         `json:"spacingRule"`
	CooldownSteps   int            `json:"cooldownSteps"`
}

// defaultCatalog is the fixed 25-entry catalog named in §4.3 verb 8,
// expressed as Go data the way the original templates package falls back to
// hardcoded defaults (config.go) when no JSON override is present.
var defaultCatalog = []BuildingRecipe{
	{Key: "house", Cost: map[string]int{"wood": 30}, PopContribution: 5, MaxHP: 150, Garrisonable: true, GarrisonCap: 5, CooldownSteps: 10},
	{Key: "town_center", Cost: map[string]int{"wood": 275, "stone": 100}, PopContribution: 10, MaxHP: 2400, Garrisonable: true, GarrisonCap: 10, Trainable: true, Producible: []string{"villager"}, SpacingRule: "unique_per_altar", CooldownSteps: 30},
	{Key: "mill", Cost: map[string]int{"wood": 100}, MaxHP: 600, CooldownSteps: 15},
	{Key: "lumber_camp", Cost: map[string]int{"wood": 100}, MaxHP: 600, SpacingRule: "camp_spacing", CooldownSteps: 15},
	{Key: "quarry", Cost: map[string]int{"wood": 100}, MaxHP: 600, SpacingRule: "camp_spacing", CooldownSteps: 15},
	{Key: "granary", Cost: map[string]int{"wood": 100}, MaxHP: 600, CooldownSteps: 15},
	{Key: "dock", Cost: map[string]int{"wood": 150}, MaxHP: 1800, Trainable: true, Producible: []string{"boat"}, CooldownSteps: 20},
	{Key: "market", Cost: map[string]int{"wood": 175}, MaxHP: 600, CooldownSteps: 20},
	{Key: "barracks", Cost: map[string]int{"wood": 175}, MaxHP: 600, Trainable: true, Producible: []string{"man_at_arms"}, CooldownSteps: 20},
	{Key: "archery_range", Cost: map[string]int{"wood": 175}, MaxHP: 600, Trainable: true, Producible: []string{"archer"}, CooldownSteps: 20},
	{Key: "stable", Cost: map[string]int{"wood": 175}, MaxHP: 600, Trainable: true, Producible: []string{"scout", "knight"}, CooldownSteps: 20},
	{Key: "siege_workshop", Cost: map[string]int{"wood": 200}, MaxHP: 600, Trainable: true, Producible: []string{"mangonel", "ram"}, CooldownSteps: 25},
	{Key: "castle", Cost: map[string]int{"wood": 300, "stone": 300}, MaxHP: 4800, Garrisonable: true, GarrisonCap: 20, Trainable: true, Producible: []string{"unique_civ_unit"}, SpacingRule: "unique_per_team", CooldownSteps: 40},
	{Key: "outpost", Cost: map[string]int{"wood": 25, "stone": 5}, MaxHP: 500, CooldownSteps: 10},
	{Key: "wall", Cost: map[string]int{"stone": 5}, MaxHP: 300, SpacingRule: "wall_cap", CooldownSteps: 2},
	{Key: "road", Cost: map[string]int{"stone": 2}, MaxHP: 1, CooldownSteps: 1},
	{Key: "blacksmith", Cost: map[string]int{"wood": 150}, MaxHP: 600, CooldownSteps: 20},
	{Key: "monastery", Cost: map[string]int{"wood": 175, "stone": 0}, MaxHP: 600, Garrisonable: true, GarrisonCap: 4, CooldownSteps: 25},
	{Key: "university", Cost: map[string]int{"wood": 200}, MaxHP: 600, CooldownSteps: 25},
	{Key: "door", Cost: map[string]int{"wood": 20}, MaxHP: 120, CooldownSteps: 5},
	{Key: "clay_oven", Cost: map[string]int{"wood": 80}, MaxHP: 300, CooldownSteps: 10},
	{Key: "weaving_loom", Cost: map[string]int{"wood": 80}, MaxHP: 300, CooldownSteps: 10},
	{Key: "barrel", Cost: map[string]int{"wood": 40}, MaxHP: 150, CooldownSteps: 8},
	{Key: "guard_tower", Cost: map[string]int{"wood": 100, "stone": 75}, MaxHP: 1020, Garrisonable: true, GarrisonCap: 5, CooldownSteps: 25},
	{Key: "mangonel_workshop", Cost: map[string]int{"wood": 200}, MaxHP: 600, Trainable: true, Producible: []string{"mangonel"}, CooldownSteps: 25},
}

// BuildingCatalog is the active 25-entry recipe table, indexed by the build
// verb's argument (§4.3 verb 8). It starts as defaultCatalog and may be
// overridden per-scenario by LoadBuildingCatalog.
var BuildingCatalog = append([]BuildingRecipe(nil), defaultCatalog...)

// RecipeAt returns the catalog entry for a build argument, or false if arg
// is out of the [0,24] range.
func RecipeAt(arg int) (BuildingRecipe, bool) {
	if arg < 0 || arg >= len(BuildingCatalog) {
		return BuildingRecipe{}, false
	}
	return BuildingCatalog[arg], true
}

// RecipeByKey looks up a catalog entry by its key, used by callers that
// only have a building's stored RecipeKey, not its original build argument.
func RecipeByKey(key string) (BuildingRecipe, bool) {
	for _, r := range BuildingCatalog {
		if r.Key == key {
			return r, true
		}
	}
	return BuildingRecipe{}, false
}

// catalogFile mirrors templates.ReadNodeDefinitions's shape: a root object
// wrapping the list so the JSON file can carry metadata alongside it later.
type catalogFile struct {
	Buildings []BuildingRecipe `json:"buildings"`
}

// LoadBuildingCatalog reads a scenario's building catalog override from a
// JSON file, following the original ReadNodeDefinitions /
// ReadMonsterData pattern (encoding/json over os.ReadFile, panics replaced
// with returned errors since this is a library, not a game binary).
func LoadBuildingCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read building catalog %q: %w", path, err)
	}
	var parsed catalogFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse building catalog %q: %w", path, err)
	}
	if len(parsed.Buildings) != len(defaultCatalog) {
		return fmt.Errorf("building catalog %q: expected %d entries, got %d", path, len(defaultCatalog), len(parsed.Buildings))
	}
	BuildingCatalog = parsed.Buildings
	return nil
}

// ResetCatalogToDefaults restores the hardcoded catalog, mainly useful for
// tests that load a scenario override in one case and need a clean slate in
// the next.
func ResetCatalogToDefaults() {
	BuildingCatalog = append([]BuildingRecipe(nil), defaultCatalog...)
}

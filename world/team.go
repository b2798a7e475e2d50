package world

import "rtscore/config"

// Resource is the stockpile item enum (§3 Team).
type Resource int

const (
	Food Resource = iota
	Wood
	Stone
	Gold
	Water
	NumResources
)

// Modifiers are per-team multipliers a scenario or research tree can tune
// (§3 Team).
type Modifiers struct {
	GatherRateMultiplier float64
	BuildCostMultiplier  float64
	UnitHPBonus          int
	UnitAttackBonus      int
}

// DefaultModifiers returns the neutral 1.0/0 modifier set.
func DefaultModifiers() Modifiers {
	return Modifiers{GatherRateMultiplier: 1, BuildCostMultiplier: 1}
}

// VictoryState tracks the per-team progress counters the victory monitors
// advance each step (§4.11).
type VictoryState struct {
	WonderBuiltStep    int
	WonderCountdown    int
	HasWonder          bool
	RelicHoldSteps     int
	HasKing            bool
	KingAlive          bool
	HillConsecutive    map[int]int // control point entity id -> steps held uncontested
}

// Team is one of the eight team slots (§3 Team).
type Team struct {
	ID            int
	Color         [3]uint8
	Stockpile     [NumResources]int
	Research      map[string]bool
	Fog           []bool // len = MapWidth*MapHeight
	MarketPrices  map[Resource]int
	Difficulty    int
	AdaptiveDiff  bool
	Modifiers     Modifiers
	Victory       VictoryState
	PopCap        int
	PopCount      int
	Eliminated    bool
}

// NewTeam constructs a team with empty stockpiles, full fog-of-war, and
// neutral modifiers.
func NewTeam(id int, color [3]uint8) *Team {
	return &Team{
		ID:           id,
		Color:        color,
		Research:     make(map[string]bool),
		Fog:          make([]bool, config.MapWidth*config.MapHeight),
		MarketPrices: map[Resource]int{Food: 100, Wood: 100, Stone: 100},
		Modifiers:    DefaultModifiers(),
		Victory:      VictoryState{WonderCountdown: -1, HillConsecutive: make(map[int]int)},
	}
}

// RevealFog marks the tile index as seen. Called once per visible tile by
// World.revealSight's shadow-cast (§4.2, §3 Team fog-of-war).
func (t *Team) RevealFog(tileIndex int) {
	if tileIndex >= 0 && tileIndex < len(t.Fog) {
		t.Fog[tileIndex] = true
	}
}

// IsRevealed reports whether the team has ever seen the tile.
func (t *Team) IsRevealed(tileIndex int) bool {
	return tileIndex >= 0 && tileIndex < len(t.Fog) && t.Fog[tileIndex]
}

// HasResearch reports whether a tech key has been completed.
func (t *Team) HasResearch(key string) bool {
	return t.Research[key]
}

// Afford reports whether the stockpile covers the given cost vector.
func (t *Team) Afford(cost map[Resource]int) bool {
	for r, amt := range cost {
		if t.Stockpile[r] < amt {
			return false
		}
	}
	return true
}

// Spend deducts a cost vector, assuming Afford was already checked.
func (t *Team) Spend(cost map[Resource]int) {
	for r, amt := range cost {
		t.Stockpile[r] -= amt
	}
}

// Deposit adds to a stockpile resource.
func (t *Team) Deposit(r Resource, amt int) {
	t.Stockpile[r] += amt
}

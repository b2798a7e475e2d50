package world

import (
	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

// Component declarations, generalized from the original
// common/commoncomponents.go pattern of package-level *ecs.Component vars
// registered once against a shared manager.
var (
	PositionComponent  *ecs.Component
	KindComponent      *ecs.Component
	TeamComponent      *ecs.Component
	HealthComponent    *ecs.Component
	CooldownComponent  *ecs.Component
	InventoryComponent *ecs.Component
	AgentComponent     *ecs.Component
	BuildingComponent  *ecs.Component
	ResourceComponent  *ecs.Component
	LanternComponent   *ecs.Component
	RelicComponent     *ecs.Component
	TumorComponent     *ecs.Component
	SpawnerComponent   *ecs.Component
	AnimalComponent    *ecs.Component
	WonderComponent    *ecs.Component
	ControlPtComponent *ecs.Component
	MarketComponent    *ecs.Component
	AltarComponent     *ecs.Component
	LifecycleComponent *ecs.Component
)

// Tags, one per kind-specific component, mirroring the
// original pattern of building a *ecs.Tag per queryable entity category.
var (
	AgentTag    ecs.Tag
	BuildingTag ecs.Tag
	ResourceTag ecs.Tag
	LanternTag  ecs.Tag
	RelicTag    ecs.Tag
	TumorTag    ecs.Tag
	SpawnerTag  ecs.Tag
	AnimalTag   ecs.Tag
	WonderTag   ecs.Tag
	ControlTag  ecs.Tag
	MarketTag   ecs.Tag
	AltarTag    ecs.Tag
)

// HealthData holds hit points, shared by agents, buildings and wonders.
type HealthData struct {
	HP, MaxHP int
}

// CooldownData is a single-counter cooldown payload. No entity is given
// this component: move debt, station cooldowns and market cooldowns are
// the AgentData.MoveDebt and BuildingData StationCooldown/MarketCooldown
// fields.
type CooldownData struct {
	Ticks int
}

// InventoryData is a capped item-key -> count map (§3 Entity).
type InventoryData struct {
	Items    map[string]int
	Capacity int
}

// Count returns the total number of items carried.
func (inv *InventoryData) Count() int {
	n := 0
	for _, v := range inv.Items {
		n += v
	}
	return n
}

// CommandSlots holds the fields only the external control API writes
// (§3 Agent).
type CommandSlots struct {
	AttackMoveTarget  coords.Position
	HasAttackMove     bool
	Patrol            []coords.Position
	HoldPosition      coords.Position
	HasHoldPosition   bool
	FollowTargetID    ecs.EntityID
	HasFollowTarget   bool
	RallyBuildingID   ecs.EntityID
	HasRallyBuilding  bool
	ScoutMode         bool
	ControlGroupIDs   []int
}

// AgentData is the agent-specific component payload (§3 Agent).
type AgentData struct {
	Orientation coords.Direction
	Class       thing.UnitClass
	Stance      thing.Stance
	HomeAltarID ecs.EntityID
	HasAltar    bool
	Dead        bool
	Frozen      int
	FaithRatio  int // 0..255, monk faith
	Commands    CommandSlots
	ActionInvalid int
	MoveDebt      int
	Packed        bool
	Respawned     bool
}

// BuildingData is the building-specific component payload (§4.7).
type BuildingData struct {
	RecipeKey        string
	Built            bool
	RallyPoint       coords.Position
	HasRally         bool
	Queue            []QueueEntry
	GarrisonCapacity int
	Garrison         []ecs.EntityID
	GarrisonRelics   []ecs.EntityID
	ResearchActive   bool
	ResearchKey      string
	ResearchProgress int
	ResearchTotal    int
	StationCooldown  int
	MarketCooldown   int
}

// QueueEntry is one pending unit in a production queue (§4.7).
type QueueEntry struct {
	Class    thing.UnitClass
	Progress int
	Total    int
}

// ResourceData is a harvestable resource node.
type ResourceData struct {
	ItemKey string
	Amount  int
}

// LanternData is a planted lantern overlay.
type LanternData struct {
	TeamColor int
	Healthy   bool
}

// RelicData marks a collectible relic, either on-map or garrisoned.
type RelicData struct {
	Garrisoned       bool
	MonasteryID      ecs.EntityID
}

// TumorData is the clippy tumor spreading state (§4.9).
type TumorData struct {
	Age     int
	Claimed bool
	Branched bool
}

// SpawnerData produces tumors at a gated rate.
type SpawnerData struct {
	SpawnRate      int
	SinceLastSpawn int
}

// AnimalData is wildlife AI state (§4.9).
type AnimalData struct {
	Species     thing.AnimalSpecies
	PackID      int
	PackAlpha   bool
	TargetID    ecs.EntityID
	HasTarget   bool
}

// WonderData tracks the wonder victory state machine (§4.13).
type WonderData struct {
	TeamID          int
	WonderBuiltStep int
	Countdown       int
	Won             bool
}

// ControlPointData is a King-of-the-Hill hill marker (§4.11).
type ControlPointData struct {
	HoldingTeam      int
	ConsecutiveSteps int
}

// MarketData is a per-building market cooldown payload. No entity is given
// this component; market prices are kept per team in Team.MarketPrices.
type MarketData struct {
	Cooldown int
}

// AltarData stores heart fuel for respawn and temple hybrid spawns.
type AltarData struct {
	TeamID int
	Hearts int
}

// LifecycleData drives the corpse/skeleton decay timeline (§4.13).
type LifecycleState int

const (
	LifecycleAlive LifecycleState = iota
	LifecycleCorpse
	LifecycleSkeleton
)

type LifecycleData struct {
	State LifecycleState
	Steps int
}

// RegisterComponents creates every component and tag against the given
// manager. Called once at world construction, mirroring the original
// common.InitializeECS bootstrap.
func RegisterComponents(manager *ecs.Manager) {
	PositionComponent = manager.NewComponent()
	KindComponent = manager.NewComponent()
	TeamComponent = manager.NewComponent()
	HealthComponent = manager.NewComponent()
	CooldownComponent = manager.NewComponent()
	InventoryComponent = manager.NewComponent()
	AgentComponent = manager.NewComponent()
	BuildingComponent = manager.NewComponent()
	ResourceComponent = manager.NewComponent()
	LanternComponent = manager.NewComponent()
	RelicComponent = manager.NewComponent()
	TumorComponent = manager.NewComponent()
	SpawnerComponent = manager.NewComponent()
	AnimalComponent = manager.NewComponent()
	WonderComponent = manager.NewComponent()
	ControlPtComponent = manager.NewComponent()
	MarketComponent = manager.NewComponent()
	AltarComponent = manager.NewComponent()
	LifecycleComponent = manager.NewComponent()

	AgentTag = ecs.BuildTag(AgentComponent)
	BuildingTag = ecs.BuildTag(BuildingComponent)
	ResourceTag = ecs.BuildTag(ResourceComponent)
	LanternTag = ecs.BuildTag(LanternComponent)
	RelicTag = ecs.BuildTag(RelicComponent)
	TumorTag = ecs.BuildTag(TumorComponent)
	SpawnerTag = ecs.BuildTag(SpawnerComponent)
	AnimalTag = ecs.BuildTag(AnimalComponent)
	WonderTag = ecs.BuildTag(WonderComponent)
	ControlTag = ecs.BuildTag(ControlPtComponent)
	MarketTag = ecs.BuildTag(MarketComponent)
	AltarTag = ecs.BuildTag(AltarComponent)
}

package world

import (
	"rtscore/common"
	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

// Handle bundles the resolved entity pointer with its id so callers don't
// re-resolve it for every component read, mirroring the original pattern
// of passing both *ecs.Entity and its cached id through a call chain.
type Handle struct {
	Entity *ecs.Entity
	ID     ecs.EntityID
}

// Resolve looks up an entity by id. The zero Handle (nil Entity) means not
// found.
func (w *World) Resolve(id ecs.EntityID) Handle {
	return Handle{Entity: w.Entities.FindEntityByID(id), ID: id}
}

func (h Handle) Valid() bool { return h.Entity != nil }

func (h Handle) Position() coords.Position {
	ptr := common.GetComponentType[*coords.Position](h.Entity, PositionComponent)
	if ptr == nil {
		return coords.Position{}
	}
	return *ptr
}

func (h Handle) SetPosition(p coords.Position) {
	ptr := common.GetComponentType[*coords.Position](h.Entity, PositionComponent)
	if ptr != nil {
		*ptr = p
	}
}

func (h Handle) Kind() thing.Kind {
	return common.GetComponentType[thing.Kind](h.Entity, KindComponent)
}

func (h Handle) Team() int {
	return common.GetComponentType[int](h.Entity, TeamComponent)
}

func (h Handle) Agent() *AgentData {
	return common.GetComponentType[*AgentData](h.Entity, AgentComponent)
}

func (h Handle) Building() *BuildingData {
	return common.GetComponentType[*BuildingData](h.Entity, BuildingComponent)
}

func (h Handle) Health() *HealthData {
	return common.GetComponentType[*HealthData](h.Entity, HealthComponent)
}

func (h Handle) Inventory() *InventoryData {
	return common.GetComponentType[*InventoryData](h.Entity, InventoryComponent)
}

func (h Handle) Resource() *ResourceData {
	return common.GetComponentType[*ResourceData](h.Entity, ResourceComponent)
}

func (h Handle) Lantern() *LanternData {
	return common.GetComponentType[*LanternData](h.Entity, LanternComponent)
}

func (h Handle) Altar() *AltarData {
	return common.GetComponentType[*AltarData](h.Entity, AltarComponent)
}

func (h Handle) Relic() *RelicData {
	return common.GetComponentType[*RelicData](h.Entity, RelicComponent)
}

func (h Handle) Tumor() *TumorData {
	return common.GetComponentType[*TumorData](h.Entity, TumorComponent)
}

func (h Handle) Spawner() *SpawnerData {
	return common.GetComponentType[*SpawnerData](h.Entity, SpawnerComponent)
}

func (h Handle) Animal() *AnimalData {
	return common.GetComponentType[*AnimalData](h.Entity, AnimalComponent)
}

func (h Handle) Wonder() *WonderData {
	return common.GetComponentType[*WonderData](h.Entity, WonderComponent)
}

func (h Handle) ControlPoint() *ControlPointData {
	return common.GetComponentType[*ControlPointData](h.Entity, ControlPtComponent)
}

func (h Handle) Market() *MarketData {
	return common.GetComponentType[*MarketData](h.Entity, MarketComponent)
}

func (h Handle) Cooldown() *CooldownData {
	return common.GetComponentType[*CooldownData](h.Entity, CooldownComponent)
}

// AttachAgent wires up the agent-specific components onto a freshly created
// entity: AgentData, HealthData, InventoryData, and registers it with the
// world's tank/monk hot-path sets if applicable.
func (w *World) AttachAgent(h Handle, class thing.UnitClass, maxHP int) {
	agent := &AgentData{Class: class, Stance: thing.Aggressive}
	h.Entity.AddComponent(AgentComponent, agent)
	h.Entity.AddComponent(HealthComponent, &HealthData{HP: maxHP, MaxHP: maxHP})
	h.Entity.AddComponent(InventoryComponent, &InventoryData{Items: make(map[string]int), Capacity: 20})
	if class.IsTank() {
		w.TankUnits[h.ID] = true
	}
	if class == thing.Monk {
		w.MonkUnits[h.ID] = true
	}
}

// AttachBuilding wires up BuildingData and HealthData onto a freshly created
// building entity.
func (w *World) AttachBuilding(h Handle, maxHP, garrisonCap int) {
	h.Entity.AddComponent(BuildingComponent, &BuildingData{GarrisonCapacity: garrisonCap})
	h.Entity.AddComponent(HealthComponent, &HealthData{HP: maxHP, MaxHP: maxHP})
}

// AttachTumor wires up TumorData on a freshly created tumor entity (§4.9).
func (w *World) AttachTumor(h Handle) {
	h.Entity.AddComponent(TumorComponent, &TumorData{})
}

// AttachSpawner wires up SpawnerData on a freshly created spawner entity
// (§4.9), gated by the scenario's configured tumor spawn rate.
func (w *World) AttachSpawner(h Handle, spawnRate int) {
	h.Entity.AddComponent(SpawnerComponent, &SpawnerData{SpawnRate: spawnRate})
}

// AttachAnimal wires up AnimalData and HealthData on a freshly created
// wildlife entity (§4.9).
func (w *World) AttachAnimal(h Handle, species thing.AnimalSpecies, maxHP int) {
	h.Entity.AddComponent(AnimalComponent, &AnimalData{Species: species})
	h.Entity.AddComponent(HealthComponent, &HealthData{HP: maxHP, MaxHP: maxHP})
}

// AttachRelic wires up RelicData on a freshly created on-map relic entity.
func (w *World) AttachRelic(h Handle) {
	h.Entity.AddComponent(RelicComponent, &RelicData{})
}

// AttachWonder wires up WonderData and HealthData on a freshly created
// wonder entity (§4.13).
func (w *World) AttachWonder(h Handle, team, maxHP int) {
	h.Entity.AddComponent(WonderComponent, &WonderData{TeamID: team, Countdown: -1})
	h.Entity.AddComponent(HealthComponent, &HealthData{HP: maxHP, MaxHP: maxHP})
}

// AttachControlPoint wires up ControlPointData on a freshly created hill
// marker entity (§4.11), initially uncontested and unheld.
func (w *World) AttachControlPoint(h Handle) {
	h.Entity.AddComponent(ControlPtComponent, &ControlPointData{HoldingTeam: -1})
}

// AttachAltar wires up AltarData on a freshly created altar building (§4.10).
func (w *World) AttachAltar(h Handle, team, hearts int) {
	h.Entity.AddComponent(AltarComponent, &AltarData{TeamID: team, Hearts: hearts})
}

package observation

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

// Tensor is the dense [MapAgents, NumLayers, Window, Window] uint8 buffer
// exposed to the external interface (§4.12, §6 observation buffer). Agents
// are addressed by slot index, the position an embedder assigns an agent id
// to in the external action/observation buffers.
type Tensor struct {
	data       []uint8
	dirty      []bool
	everBuilt  []bool
	slotToID   []ecs.EntityID
}

// NewTensor allocates a zeroed tensor for up to config.MapAgents slots.
func NewTensor() *Tensor {
	n := config.MapAgents
	return &Tensor{
		data:      make([]uint8, n*NumLayers*Window*Window),
		dirty:     make([]bool, n),
		everBuilt: make([]bool, n),
		slotToID:  make([]ecs.EntityID, n),
	}
}

// BindSlot associates an agent id with a fixed slot index, the external
// buffer position the embedder uses for that agent (§6 action buffer is
// slot-addressed, not id-addressed).
func (t *Tensor) BindSlot(slot int, id ecs.EntityID) {
	if slot < 0 || slot >= len(t.slotToID) {
		return
	}
	t.slotToID[slot] = id
	t.dirty[slot] = true
}

// MarkDirty flags a slot for rebuild on next Rebuild call, used by the
// scheduler when an agent moves or the environment-wide dirty flag is set.
func (t *Tensor) MarkDirty(slot int) {
	if slot >= 0 && slot < len(t.dirty) {
		t.dirty[slot] = true
	}
}

// Slice returns the raw bytes for one agent's [NumLayers, Window, Window]
// observation, a view into the shared backing array.
func (t *Tensor) Slice(slot int) []uint8 {
	sz := NumLayers * Window * Window
	return t.data[slot*sz : (slot+1)*sz]
}

func (t *Tensor) at(slot, layer, x, y int) int {
	sz := Window * Window
	return slot*NumLayers*sz + layer*sz + y*Window + x
}

// Rebuild walks every slot and reconstructs the ones that are dirty,
// first-run, or whose bound agent moved this step, leaving the rest as-is
// per §4.12's lazy rebuild contract. agentMoved reports per-id movement
// since the last rebuild; envDirty forces every bound slot to rebuild
// (e.g. after a tint recompute changes action-tint codes globally).
func (t *Tensor) Rebuild(w *world.World, agentMoved map[ecs.EntityID]bool, envDirty bool) {
	for slot, id := range t.slotToID {
		if id == 0 {
			continue
		}
		moved := agentMoved != nil && agentMoved[id]
		if !t.everBuilt[slot] || moved || envDirty || t.dirty[slot] {
			t.rebuildSlot(w, slot, id)
			t.everBuilt[slot] = true
			t.dirty[slot] = false
		}
	}
}

func (t *Tensor) rebuildSlot(w *world.World, slot int, id ecs.EntityID) {
	h := w.Resolve(id)
	sz := NumLayers * Window * Window
	view := t.data[slot*sz : (slot+1)*sz]
	for i := range view {
		view[i] = 0
	}
	if !h.Valid() {
		return
	}
	center := h.Position()
	observerElevation := coords.Flat
	if w.Grid.InBounds(center) {
		observerElevation = w.Grid.At(center).Elevation
	}
	half := Window / 2
	for wy := 0; wy < Window; wy++ {
		for wx := 0; wx < Window; wx++ {
			p := coords.Position{X: center.X + wx - half, Y: center.Y + wy - half}
			t.writeTile(w, slot, wx, wy, p, h, observerElevation)
		}
	}
}

func (t *Tensor) writeTile(w *world.World, slot, wx, wy int, p coords.Position, observer world.Handle, observerElevation coords.Elevation) {
	if !w.Grid.InBounds(p) {
		return
	}
	tile := w.Grid.At(p)
	obscured := tile.Elevation > observerElevation && !roadConnects(tile, observer, w, p)
	if obscured {
		t.set(slot, metaLayer(MetaObscured), wx, wy, 1)
		return
	}
	t.set(slot, terrainLayer(tile.Terrain), wx, wy, 1)
	t.set(slot, metaLayer(MetaBiomeID), wx, wy, uint8(biomeOf(tile.Terrain)))

	if tile.Blocking != 0 {
		t.writeThing(w, slot, wx, wy, tile.Blocking)
	}
	if tile.Background != 0 {
		t.writeThing(w, slot, wx, wy, tile.Background)
	}
	t.set(slot, metaLayer(MetaActionTint), wx, wy, w.ActionTint.CodeAt(p))
}

func roadConnects(tile world.Tile, observer world.Handle, w *world.World, p coords.Position) bool {
	if tile.Terrain == thing.Road || tile.Terrain.IsRamp() {
		return true
	}
	op := observer.Position()
	if w.Grid.InBounds(op) {
		ot := w.Grid.At(op)
		if ot.Terrain == thing.Road || ot.Terrain.IsRamp() {
			return true
		}
	}
	return false
}

// biomeOf groups fine-grained terrain into a small set of biome ids for the
// meta "biome id" layer, distinct from the precise terrain one-hot.
func biomeOf(t thing.TerrainType) int {
	switch t {
	case thing.Water, thing.Bridge:
		return 0
	case thing.Fertile, thing.Grass:
		return 1
	case thing.Dune, thing.Sand:
		return 2
	case thing.Snow:
		return 3
	case thing.Mud:
		return 4
	case thing.Road:
		return 5
	default:
		if t.IsRamp() {
			return 6
		}
		return 1
	}
}

func (t *Tensor) writeThing(w *world.World, slot, wx, wy int, id ecs.EntityID) {
	th := w.Resolve(id)
	if !th.Valid() {
		return
	}
	t.set(slot, kindLayer(th.Kind()), wx, wy, 1)
	t.set(slot, metaLayer(MetaTeamID), wx, wy, uint8(th.Team()+1))

	if ad := th.Agent(); ad != nil {
		t.set(slot, metaLayer(MetaOrientation), wx, wy, uint8(ad.Orientation)+1)
		t.set(slot, metaLayer(MetaUnitClass), wx, wy, uint8(ad.Class)+1)
		t.set(slot, metaLayer(MetaStance), wx, wy, uint8(ad.Stance)+1)
		if !w.AgentMoved[id] {
			t.set(slot, metaLayer(MetaIdleFlag), wx, wy, 1)
		}
		if ad.Class == thing.Trebuchet && ad.Packed {
			t.set(slot, metaLayer(MetaTrebuchetPacked), wx, wy, 1)
		}
		if ad.Class == thing.Monk {
			t.set(slot, metaLayer(MetaMonkFaithRatio), wx, wy, uint8(ad.FaithRatio))
		}
	}
	if bd := th.Building(); bd != nil {
		if bd.HasRally {
			t.set(slot, metaLayer(MetaRallyFlag), wx, wy, 1)
		}
		if bd.GarrisonCapacity > 0 {
			ratio := len(bd.Garrison) * 255 / bd.GarrisonCapacity
			t.set(slot, metaLayer(MetaGarrisonFillRatio), wx, wy, uint8(ratio))
		}
		t.set(slot, metaLayer(MetaRelicCount), wx, wy, uint8(len(bd.GarrisonRelics)))
		t.set(slot, metaLayer(MetaProductionQueueLen), wx, wy, uint8(len(bd.Queue)))
		if hp := th.Health(); hp != nil && hp.MaxHP > 0 {
			t.set(slot, metaLayer(MetaBuildingHPRatio), wx, wy, uint8(hp.HP*255/hp.MaxHP))
		}
	}
}

func (t *Tensor) set(slot, layer, wx, wy int, v uint8) {
	t.data[t.at(slot, layer, wx, wy)] = v
}

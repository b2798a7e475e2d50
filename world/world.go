// Package world owns the authoritative simulation state: the grid, the
// entity pool, per-team stockpiles, and the hot-path collections every
// other subsystem reads. It generalizes the original world/overworld
// package (a single overworld map plus faction roster) into the
// multi-team, multi-kind aggregate this engine's §4.2 requires.
package world

import (
	"errors"
	"fmt"

	"rtscore/common"
	"rtscore/config"
	"rtscore/coords"
	"rtscore/spatial"
	"rtscore/telemetry"
	"rtscore/thing"
	"rtscore/tint"

	"github.com/bytearena/ecs"
	"github.com/norendren/go-fov/fov"
)

// ErrPositionOccupied is returned by MoveEntity when the destination
// blocking cell is taken by a non-traversable entity (§4.2 contract).
var ErrPositionOccupied = errors.New("position occupied")

// World is the exclusively-owned aggregate the scheduler mutates each step
// (§5). Every other package operates on state reached through it.
type World struct {
	Entities *common.EntityManager
	Grid       *Grid
	Index      *spatial.Index
	Tint       *tint.Field
	ActionTint *tint.ActionTintField
	Teams    [config.NumTeams]*Team
	RNG      *common.RNG
	Log      *telemetry.Log
	Step     int

	// Maintained specialized collections for hot paths (§4.2).
	TankUnits    map[ecs.EntityID]bool
	MonkUnits    map[ecs.EntityID]bool
	TeamAgents   [config.NumTeams][]ecs.EntityID
	TeamLanterns [config.NumTeams][]ecs.EntityID
	byKind       map[thing.Kind][]ecs.EntityID

	ObservationsDirty bool
	AgentMoved        map[ecs.EntityID]bool

	TotalRelicsOnMap int
	Winner           int // -1 = none yet
}

// New constructs an empty world with the configured map dimensions and a
// fresh entity manager/component registry.
func New(seed int64, log *telemetry.Log) *World {
	em := common.NewEntityManager()
	RegisterComponents(em.World)

	w := &World{
		Entities:   em,
		Grid:       NewGrid(config.MapWidth, config.MapHeight),
		Index:      spatial.NewIndex(config.MapWidth, config.MapHeight, config.DefaultCellSize),
		Tint:       tint.NewField(config.MapWidth, config.MapHeight),
		ActionTint: tint.NewActionTintField(config.MapWidth, config.MapHeight),
		RNG:        common.NewRNG(seed),
		Log:        log,
		TankUnits:  make(map[ecs.EntityID]bool),
		MonkUnits:  make(map[ecs.EntityID]bool),
		byKind:     make(map[thing.Kind][]ecs.EntityID),
		AgentMoved: make(map[ecs.EntityID]bool),
		Winner:     -1,
	}
	for i := 0; i < config.NumTeams; i++ {
		w.Teams[i] = NewTeam(i, defaultTeamColor(i))
	}
	return w
}

func defaultTeamColor(i int) [3]uint8 {
	palette := [config.NumTeams][3]uint8{
		{255, 0, 0}, {0, 0, 255}, {0, 255, 0}, {255, 255, 0},
		{255, 128, 0}, {128, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	return palette[i%len(palette)]
}

// Team returns a team by id, or nil for neutral (-1) and out-of-range ids.
func (w *World) Team(id int) *Team {
	if id < 0 || id >= config.NumTeams {
		return nil
	}
	return w.Teams[id]
}

func (w *World) tileIndex(p coords.Position) int {
	return p.Y*config.MapWidth + p.X
}

// sightGrid adapts the grid to go-fov's GridMap interface. The engine has
// no vision-blocking terrain, so every in-bounds cell is transparent and
// Compute degrades to a bounds-checked circle; shadow-casting still earns
// its keep over a flat reveal once a future terrain type sets IsOpaque.
type sightGrid struct{ g *Grid }

func (s sightGrid) InBounds(x, y int) bool {
	return s.g.InBounds(coords.Position{X: x, Y: y})
}

func (s sightGrid) IsOpaque(x, y int) bool {
	return false
}

// revealSight shadow-casts from pos out to FOVSightRadius and marks every
// tile the view reaches as seen on the team's fog bitmap (§3 Team, §6
// fog-of-war queries), replacing a flat single-tile reveal with the
// original game_main/GameMap's per-viewer FOV.
func (w *World) revealSight(team int, pos coords.Position) {
	t := w.Team(team)
	if t == nil {
		return
	}
	view := fov.New()
	view.Compute(sightGrid{w.Grid}, pos.X, pos.Y, config.FOVSightRadius)
	r := config.FOVSightRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			p := coords.Position{X: pos.X + dx, Y: pos.Y + dy}
			if !w.Grid.InBounds(p) {
				continue
			}
			if view.IsVisible(p.X, p.Y) {
				t.RevealFog(w.tileIndex(p))
			}
		}
	}
}

// QueryAtPosition returns the blocking and background occupants of a tile
// (§4.2), O(1) via the grid.
func (w *World) QueryAtPosition(p coords.Position) (blocking, background ecs.EntityID) {
	if !w.Grid.InBounds(p) {
		return 0, 0
	}
	t := w.Grid.At(p)
	return t.Blocking, t.Background
}

// IterateByKind returns the pre-maintained vector of entity ids for a kind
// (§4.2), used by renderers and full scans.
func (w *World) IterateByKind(k thing.Kind) []ecs.EntityID {
	return w.byKind[k]
}

func (w *World) addToKindList(k thing.Kind, id ecs.EntityID) {
	w.byKind[k] = append(w.byKind[k], id)
}

// ReassignKind moves an entity's pre-maintained kind-list membership from
// oldKind to newKind, used when an agent becomes a corpse or a corpse
// becomes a skeleton (§4.13).
func (w *World) ReassignKind(id ecs.EntityID, oldKind, newKind thing.Kind) {
	w.removeFromKindList(oldKind, id)
	w.addToKindList(newKind, id)
}

func (w *World) removeFromKindList(k thing.Kind, id ecs.EntityID) {
	list := w.byKind[k]
	for i, v := range list {
		if v == id {
			last := len(list) - 1
			list[i] = list[last]
			w.byKind[k] = list[:last]
			return
		}
	}
}

// CreateEntity spawns a new entity at pos with the given kind/team, wires
// it into the grid, spatial index, and hot-path collections (§4.2).
// Returns ErrPositionOccupied if a blocking entity already owns the target
// tile and the new entity would also be blocking.
func (w *World) CreateEntity(pos coords.Position, kind thing.Kind, team int) (*ecs.Entity, error) {
	if kind.Blocking() && !w.Grid.IsEmptyBlocking(pos) {
		return nil, fmt.Errorf("create entity at %+v: %w", pos, ErrPositionOccupied)
	}
	entity := w.Entities.World.NewEntity()
	entity.AddComponent(PositionComponent, &pos)
	entity.AddComponent(KindComponent, kind)
	entity.AddComponent(TeamComponent, team)

	id := entity.GetID()
	if kind.Blocking() {
		w.Grid.SetBlocking(pos, id)
	} else {
		w.Grid.SetBackground(pos, id)
	}
	w.Index.Insert(id, kind, team, pos)
	w.addToKindList(kind, id)

	if t := w.Team(team); t != nil {
		w.revealSight(team, pos)
		if kind == thing.KindAgent {
			w.TeamAgents[team] = append(w.TeamAgents[team], id)
		}
		if kind == thing.KindLantern {
			w.TeamLanterns[team] = append(w.TeamLanterns[team], id)
		}
	}
	w.ObservationsDirty = true
	return entity, nil
}

// MoveEntity relocates an entity, updating the grid, spatial index, fog
// reveal, and lantern bookkeeping. Per §4.2's contract this is the only
// sanctioned way to change an entity's position.
func (w *World) MoveEntity(id ecs.EntityID, kind thing.Kind, team int, from, to coords.Position) error {
	if kind.Blocking() {
		if occ := w.Grid.BlockingEntity(to); occ != 0 && occ != id {
			return fmt.Errorf("move entity %d to %+v: %w", id, to, ErrPositionOccupied)
		}
		w.Grid.SetBlocking(from, 0)
		w.Grid.SetBlocking(to, id)
	} else {
		w.Grid.SetBackground(from, 0)
		w.Grid.SetBackground(to, id)
	}
	w.Index.Move(id, to)
	if w.Team(team) != nil {
		w.revealSight(team, to)
	}
	w.AgentMoved[id] = true
	w.ObservationsDirty = true
	return nil
}

// DestroyEntity unlinks an entity from the grid, spatial index, kind list
// and hot-path collections (§4.2). It neither drops garrisoned relics nor
// creates a corpse; combat.DestroyBuilding and combat.ConvertToCorpse do
// those around their calls to it.
func (w *World) DestroyEntity(id ecs.EntityID, kind thing.Kind, team int, pos coords.Position) {
	if kind.Blocking() {
		if w.Grid.BlockingEntity(pos) == id {
			w.Grid.SetBlocking(pos, 0)
		}
	} else {
		if w.Grid.BackgroundEntity(pos) == id {
			w.Grid.SetBackground(pos, 0)
		}
	}
	w.Index.Remove(id)
	w.removeFromKindList(kind, id)
	delete(w.TankUnits, id)
	delete(w.MonkUnits, id)

	if kind == thing.KindAgent {
		w.TeamAgents[team] = removeID(w.TeamAgents[team], id)
	}
	if kind == thing.KindLantern {
		w.TeamLanterns[team] = removeID(w.TeamLanterns[team], id)
	}
	w.ObservationsDirty = true
}

func removeID(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// PlaceAgentOnGrid (re)inserts an already-existing agent entity onto the
// blocking grid and spatial index at pos, and re-registers it in the
// team's live-agent list. Used by ungarrison and by combat's relic/garrison
// eviction on building destruction.
func (w *World) PlaceAgentOnGrid(h Handle, pos coords.Position) {
	h.SetPosition(pos)
	w.Grid.SetBlocking(pos, h.ID)
	w.Index.Insert(h.ID, thing.KindAgent, h.Team(), pos)
	w.TeamAgents[h.Team()] = append(w.TeamAgents[h.Team()], h.ID)
}

// FindNearestEmptyTile performs a small expanding-ring scan around center
// for an empty, in-bounds, non-border blocking tile, bounded by maxRadius.
func (w *World) FindNearestEmptyTile(center coords.Position, maxRadius int) (coords.Position, bool) {
	if w.Grid.IsEmptyBlocking(center) {
		return center, true
	}
	for r := 1; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				p := coords.Position{X: center.X + dx, Y: center.Y + dy}
				if w.Grid.IsEmptyBlocking(p) {
					return p, true
				}
			}
		}
	}
	return coords.Position{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LiveAgentIDs returns every currently tracked agent id across all teams,
// used by the scheduler's pre-action shuffle (§4.1 step 4).
func (w *World) LiveAgentIDs() []ecs.EntityID {
	var all []ecs.EntityID
	for _, list := range w.TeamAgents {
		all = append(all, list...)
	}
	return all
}

// RecomputePopulation refreshes popCap/popCount for every team, cached once
// per step per §4.1 step 3.
func (w *World) RecomputePopulation(popCapOf func(team int) int) {
	for i := 0; i < config.NumTeams; i++ {
		t := w.Teams[i]
		t.PopCap = popCapOf(i)
		if t.PopCap > config.MapAgentsPerTeam {
			t.PopCap = config.MapAgentsPerTeam
		}
		t.PopCount = len(w.TeamAgents[i])
	}
}

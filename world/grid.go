package world

import (
	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

// Tile is one cell of the world grid: immutable terrain/elevation plus the
// two logical occupancy layers from §3 (blocking and background).
type Tile struct {
	Terrain    thing.TerrainType
	Elevation  coords.Elevation
	Blocking   ecs.EntityID // 0 = empty
	Background ecs.EntityID // 0 = empty
}

// Grid is the authoritative blocking/background occupancy layer (§3 Grid).
// Border tiles are impassable sentinels per §3 Position.
type Grid struct {
	Width, Height int
	tiles         []Tile
}

// NewGrid allocates a width x height grid of Empty, flat tiles.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, tiles: make([]Tile, width*height)}
}

func (g *Grid) index(p coords.Position) int {
	return p.Y*g.Width + p.X
}

// InBounds reports whether p addresses a tile on the grid.
func (g *Grid) InBounds(p coords.Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// IsBorder reports whether p is one of the impassable border sentinels.
func (g *Grid) IsBorder(p coords.Position) bool {
	return p.X == 0 || p.Y == 0 || p.X == g.Width-1 || p.Y == g.Height-1
}

// At returns the tile at p. Callers must check InBounds first.
func (g *Grid) At(p coords.Position) Tile {
	return g.tiles[g.index(p)]
}

// SetTerrain configures the static terrain/elevation of a tile, used during
// map initialization.
func (g *Grid) SetTerrain(p coords.Position, terrain thing.TerrainType, elevation coords.Elevation) {
	t := &g.tiles[g.index(p)]
	t.Terrain = terrain
	t.Elevation = elevation
}

// BlockingEntity returns the blocking-layer occupant of p, or 0 if empty.
func (g *Grid) BlockingEntity(p coords.Position) ecs.EntityID {
	return g.tiles[g.index(p)].Blocking
}

// BackgroundEntity returns the background-layer occupant of p, or 0 if empty.
func (g *Grid) BackgroundEntity(p coords.Position) ecs.EntityID {
	return g.tiles[g.index(p)].Background
}

// SetBlocking occupies or clears (id==0) the blocking layer at p.
func (g *Grid) SetBlocking(p coords.Position, id ecs.EntityID) {
	g.tiles[g.index(p)].Blocking = id
}

// SetBackground occupies or clears (id==0) the background layer at p.
func (g *Grid) SetBackground(p coords.Position, id ecs.EntityID) {
	g.tiles[g.index(p)].Background = id
}

// IsEmptyBlocking reports whether p has no blocking occupant and is in
// bounds and not a border tile.
func (g *Grid) IsEmptyBlocking(p coords.Position) bool {
	return g.InBounds(p) && !g.IsBorder(p) && g.BlockingEntity(p) == 0
}

package spatial

import (
	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

// ringOffsets returns the tile offsets at exactly Chebyshev distance r from
// the origin, used to expand a nearest-neighbor search ring by ring instead
// of rescanning the whole disc each time.
func ringOffsets(r int) [][2]int {
	if r == 0 {
		return [][2]int{{0, 0}}
	}
	var offsets [][2]int
	for x := -r; x <= r; x++ {
		offsets = append(offsets, [2]int{x, -r}, [2]int{x, r})
	}
	for y := -r + 1; y <= r-1; y++ {
		offsets = append(offsets, [2]int{-r, y}, [2]int{r, y})
	}
	return offsets
}

// cellsTouchingRing returns the set of cells that could contain a tile at
// the given ring, deduplicated, so a single cell is only scanned once per
// ring even though several ring tiles may fall in it.
func (idx *Index) cellsTouchingRing(center coords.Position, r int) []cellCoord {
	seen := make(map[cellCoord]bool)
	var cells []cellCoord
	for _, off := range ringOffsets(r) {
		cc := idx.cellOf(coords.Position{X: center.X + off[0], Y: center.Y + off[1]})
		if !seen[cc] {
			seen[cc] = true
			cells = append(cells, cc)
		}
	}
	return cells
}

// Nearest returns the closest entity of kind to pos within maxDist
// (Chebyshev), or (0, false) if none exists. Implemented by ring expansion:
// once the best candidate is at distance d, the search stops after ring d,
// since every tile within distance d lies in a cell already scanned.
func (idx *Index) Nearest(pos coords.Position, kind thing.Kind, maxDist int) (ecs.EntityID, bool) {
	return idx.nearestFiltered(pos, maxDist, func(id ecs.EntityID) bool {
		return idx.entityKind[id] == kind
	})
}

// NearestOfKinds is the multi-kind variant of Nearest.
func (idx *Index) NearestOfKinds(pos coords.Position, kinds []thing.Kind, maxDist int) (ecs.EntityID, bool) {
	set := make(map[thing.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return idx.nearestFiltered(pos, maxDist, func(id ecs.EntityID) bool {
		return set[idx.entityKind[id]]
	})
}

// NearestFriendly returns the nearest entity of kind owned by team.
func (idx *Index) NearestFriendly(pos coords.Position, team int, kind thing.Kind, maxDist int) (ecs.EntityID, bool) {
	return idx.nearestFiltered(pos, maxDist, func(id ecs.EntityID) bool {
		return idx.entityKind[id] == kind && idx.entityTeam[id] == team
	})
}

// NearestEnemyAgent returns the nearest living agent not on team and not neutral-equal.
func (idx *Index) NearestEnemyAgent(pos coords.Position, team int, maxDist int) (ecs.EntityID, bool) {
	return idx.nearestFiltered(pos, maxDist, func(id ecs.EntityID) bool {
		return idx.entityKind[id] == thing.KindAgent && idx.entityTeam[id] != team
	})
}

// NearestEnemyBuilding returns the nearest building not on team.
func (idx *Index) NearestEnemyBuilding(pos coords.Position, team int, maxDist int) (ecs.EntityID, bool) {
	return idx.nearestFiltered(pos, maxDist, func(id ecs.EntityID) bool {
		return idx.entityKind[id] == thing.KindBuilding && idx.entityTeam[id] != team
	})
}

func (idx *Index) nearestFiltered(pos coords.Position, maxDist int, match func(ecs.EntityID) bool) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := -1
	found := false

	for r := 0; r <= maxDist; r++ {
		// Once a hit at distance bestDist is found, every ring up to
		// bestDist has been scanned, so nothing closer remains.
		if found && r > bestDist {
			break
		}
		for _, cc := range idx.cellsTouchingRing(pos, r) {
			c, ok := idx.cells[cc]
			if !ok {
				continue
			}
			for _, id := range c.all {
				if !match(id) {
					continue
				}
				d := pos.ChebyshevDistance(c.posByID[id])
				if d > maxDist {
					continue
				}
				if !found || d < bestDist || (d == bestDist && id < best) {
					best = id
					bestDist = d
					found = true
				}
			}
		}
	}
	return best, found
}

// CollectInRange fills out with every entity of kind within radius
// (Chebyshev) of pos, using the caller-supplied buffer per §4.5's
// no-allocation contract. The caller must clear out before use.
func (idx *Index) CollectInRange(pos coords.Position, kind thing.Kind, radius int, out []ecs.EntityID) []ecs.EntityID {
	idx.ForEachInRadius(pos, kind, radius, func(id ecs.EntityID) bool {
		out = append(out, id)
		return true
	})
	return out
}

// ForEachInRadius visits every entity of kind within radius of pos without
// allocating an intermediate slice. The visitor returns false to stop early.
func (idx *Index) ForEachInRadius(pos coords.Position, kind thing.Kind, radius int, visit func(ecs.EntityID) bool) {
	minCX, maxCX := floorDiv(pos.X-radius, idx.cellSize), floorDiv(pos.X+radius, idx.cellSize)
	minCY, maxCY := floorDiv(pos.Y-radius, idx.cellSize), floorDiv(pos.Y+radius, idx.cellSize)

	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			c, ok := idx.cells[cellCoord{cx: cx, cy: cy}]
			if !ok {
				continue
			}
			for _, id := range c.byKind[kind] {
				if pos.ChebyshevDistance(c.posByID[id]) > radius {
					continue
				}
				if !visit(id) {
					return
				}
			}
		}
	}
}

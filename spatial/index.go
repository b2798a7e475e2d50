// Package spatial implements the cell-partitioned nearest-neighbor index
// from §4.5. It generalizes the original systems/positionsystem.go — a flat
// map[position][]id giving O(1) point lookup — into a grid of fixed-size
// cells, each holding both an all-kinds list and a per-kind list, so range
// and nearest-of-kind queries only ever scan the cells that can possibly
// contain a result.
package spatial

import (
	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

type cellCoord struct{ cx, cy int }

type cell struct {
	all     []ecs.EntityID
	byKind  map[thing.Kind][]ecs.EntityID
	posByID map[ecs.EntityID]coords.Position
}

func newCell() *cell {
	return &cell{byKind: make(map[thing.Kind][]ecs.EntityID), posByID: make(map[ecs.EntityID]coords.Position)}
}

// Index is the cell-partitioned spatial index. It is a pure view over
// positions the caller supplies; it does not own entity storage.
type Index struct {
	cellSize   int
	width      int
	height     int
	cells      map[cellCoord]*cell
	entityPos  map[ecs.EntityID]coords.Position
	entityKind map[ecs.EntityID]thing.Kind
	entityTeam map[ecs.EntityID]int
	sinceTune  int
}

// NewIndex builds an index over a width x height world with the given cell
// size (clamped to [4, 64] per §4.5).
func NewIndex(width, height, cellSize int) *Index {
	if cellSize < 4 {
		cellSize = 4
	}
	if cellSize > 64 {
		cellSize = 64
	}
	return &Index{
		cellSize:   cellSize,
		width:      width,
		height:     height,
		cells:      make(map[cellCoord]*cell),
		entityPos:  make(map[ecs.EntityID]coords.Position),
		entityKind: make(map[ecs.EntityID]thing.Kind),
		entityTeam: make(map[ecs.EntityID]int),
	}
}

func (idx *Index) cellOf(p coords.Position) cellCoord {
	return cellCoord{cx: floorDiv(p.X, idx.cellSize), cy: floorDiv(p.Y, idx.cellSize)}
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -((-a + b - 1) / b)
}

func (idx *Index) cellAt(cc cellCoord) *cell {
	c, ok := idx.cells[cc]
	if !ok {
		c = newCell()
		idx.cells[cc] = c
	}
	return c
}

// Insert adds an entity of the given kind and team (-1 for neutral/hostile
// NPCs) at pos. O(1) amortized.
func (idx *Index) Insert(id ecs.EntityID, kind thing.Kind, team int, pos coords.Position) {
	cc := idx.cellOf(pos)
	c := idx.cellAt(cc)
	c.all = append(c.all, id)
	c.byKind[kind] = append(c.byKind[kind], id)
	c.posByID[id] = pos
	idx.entityPos[id] = pos
	idx.entityKind[id] = kind
	idx.entityTeam[id] = team
}

// Remove deletes an entity from the index. O(1) amortized via swap-and-pop.
func (idx *Index) Remove(id ecs.EntityID) {
	pos, ok := idx.entityPos[id]
	if !ok {
		return
	}
	kind := idx.entityKind[id]
	cc := idx.cellOf(pos)
	if c, ok := idx.cells[cc]; ok {
		c.all = swapRemove(c.all, id)
		c.byKind[kind] = swapRemove(c.byKind[kind], id)
		delete(c.posByID, id)
		if len(c.all) == 0 {
			delete(idx.cells, cc)
		}
	}
	delete(idx.entityPos, id)
	delete(idx.entityKind, id)
	delete(idx.entityTeam, id)
}

func swapRemove(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range list {
		if v == id {
			last := len(list) - 1
			list[i] = list[last]
			return list[:last]
		}
	}
	return list
}

// Move repositions an entity. If the destination cell is unchanged from the
// source cell, this is a no-op on the cell structure (position still
// tracked), matching §4.5's "if the cell unchanged, no work" contract.
func (idx *Index) Move(id ecs.EntityID, newPos coords.Position) {
	oldPos, ok := idx.entityPos[id]
	if !ok {
		return
	}
	if idx.cellOf(oldPos) == idx.cellOf(newPos) {
		idx.entityPos[id] = newPos
		if c, ok := idx.cells[idx.cellOf(oldPos)]; ok {
			c.posByID[id] = newPos
		}
		return
	}
	kind := idx.entityKind[id]
	team := idx.entityTeam[id]
	idx.Remove(id)
	idx.Insert(id, kind, team, newPos)
}

// CellOf returns which cell an entity currently occupies, and whether it is
// indexed at all. Exposed for the §8 consistency test.
func (idx *Index) CellOf(id ecs.EntityID) (cellCoord, bool) {
	pos, ok := idx.entityPos[id]
	if !ok {
		return cellCoord{}, false
	}
	return idx.cellOf(pos), true
}

// KindListContains reports whether id is present in the per-kind list of the
// cell it currently occupies, for the spatial-index consistency property.
func (idx *Index) KindListContains(id ecs.EntityID) bool {
	cc, ok := idx.CellOf(id)
	if !ok {
		return false
	}
	c, ok := idx.cells[cc]
	if !ok {
		return false
	}
	kind := idx.entityKind[id]
	for _, v := range c.byKind[kind] {
		if v == id {
			return true
		}
	}
	return false
}

// Clear empties the index, e.g. between episodes.
func (idx *Index) Clear() {
	idx.cells = make(map[cellCoord]*cell)
	idx.entityPos = make(map[ecs.EntityID]coords.Position)
	idx.entityKind = make(map[ecs.EntityID]thing.Kind)
	idx.entityTeam = make(map[ecs.EntityID]int)
}

// PositionOf returns an entity's last-known position in the index.
func (idx *Index) PositionOf(id ecs.EntityID) (coords.Position, bool) {
	p, ok := idx.entityPos[id]
	return p, ok
}

// Len returns the number of indexed entities, used by the adaptive
// cell-size density check.
func (idx *Index) Len() int {
	return len(idx.entityPos)
}

// Retune rebuilds the index at a new cell size, clamped to [4, 64],
// preserving every entity's kind, team and position (§4.5 adaptive tuning).
func (idx *Index) Retune(newCellSize int) {
	if newCellSize < 4 {
		newCellSize = 4
	}
	if newCellSize > 64 {
		newCellSize = 64
	}
	if newCellSize == idx.cellSize {
		return
	}
	type snapshot struct {
		id   ecs.EntityID
		kind thing.Kind
		team int
		pos  coords.Position
	}
	snaps := make([]snapshot, 0, len(idx.entityPos))
	for id, pos := range idx.entityPos {
		snaps = append(snaps, snapshot{id: id, kind: idx.entityKind[id], team: idx.entityTeam[id], pos: pos})
	}
	idx.cellSize = newCellSize
	idx.Clear()
	for _, s := range snaps {
		idx.Insert(s.id, s.kind, s.team, s.pos)
	}
}

// MaybeRebalance retunes the cell size when the average entities-per-cell
// density crosses a threshold, checked every N steps per §4.5.
func (idx *Index) MaybeRebalance(everyNSteps int) {
	idx.sinceTune++
	if idx.sinceTune < everyNSteps {
		return
	}
	idx.sinceTune = 0
	if len(idx.cells) == 0 {
		return
	}
	density := float64(len(idx.entityPos)) / float64(len(idx.cells))
	switch {
	case density > 48 && idx.cellSize < 64:
		idx.Retune(idx.cellSize * 2)
	case density < 4 && idx.cellSize > 4:
		idx.Retune(idx.cellSize / 2)
	}
}

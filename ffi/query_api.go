package ffi

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/tint"
	"rtscore/world"

	"github.com/bytearena/ecs"
)

func tileIndex(p coords.Position) int {
	return p.Y*config.MapWidth + p.X
}

// IsRevealed reports whether team has ever seen the tile at p.
func (e *Engine) IsRevealed(team int, p coords.Position) bool {
	t := e.World.Team(team)
	if t == nil {
		return false
	}
	return t.IsRevealed(tileIndex(p))
}

// NearestThreat finds the nearest living enemy agent of team within
// maxDist of pos, the simplest reading of a "threat map query" this
// engine's spatial index already supports directly via ring expansion
// (§4.5) rather than maintaining a separate decaying threat grid.
func (e *Engine) NearestThreat(pos coords.Position, team, maxDist int) (ecs.EntityID, bool) {
	return e.World.Index.NearestEnemyAgent(pos, team, maxDist)
}

// ThreatsInRange collects every living enemy agent of team within radius
// of pos.
func (e *Engine) ThreatsInRange(pos coords.Position, team, radius int) []ecs.EntityID {
	var out []ecs.EntityID
	e.World.Index.ForEachInRadius(pos, thing.KindAgent, radius, func(id ecs.EntityID) bool {
		h := e.World.Resolve(id)
		if h.Valid() && h.Team() != team {
			out = append(out, id)
		}
		return true
	})
	return out
}

// TeamModifiers returns a copy of team's current tuning multipliers.
func (e *Engine) TeamModifiers(team int) (world.Modifiers, bool) {
	t := e.World.Team(team)
	if t == nil {
		return world.Modifiers{}, false
	}
	return t.Modifiers, true
}

// SetTeamModifiers overwrites team's tuning multipliers, the hook a
// scenario or adaptive-difficulty controller uses to retune a team
// mid-episode without touching unit components directly.
func (e *Engine) SetTeamModifiers(team int, m world.Modifiers) bool {
	t := e.World.Team(team)
	if t == nil {
		return e.fail("NOT_FOUND", "team not found")
	}
	t.Modifiers = m
	return true
}

// Difficulty returns team's difficulty level and whether it adapts.
func (e *Engine) Difficulty(team int) (level int, adaptive bool, ok bool) {
	t := e.World.Team(team)
	if t == nil {
		return 0, false, false
	}
	return t.Difficulty, t.AdaptiveDiff, true
}

// SetDifficulty sets team's difficulty level and adaptive-difficulty flag.
func (e *Engine) SetDifficulty(team, level int, adaptive bool) bool {
	t := e.World.Team(team)
	if t == nil {
		return e.fail("NOT_FOUND", "team not found")
	}
	t.Difficulty = level
	t.AdaptiveDiff = adaptive
	return true
}

// TerritoryScore runs the end-of-episode tile-ownership scan (§4.6),
// attributing each above-threshold tile to the nearest team color.
func (e *Engine) TerritoryScore() tint.TerritoryScore {
	colors := make(map[int]tint.RGB, len(e.World.Teams))
	for i, t := range e.World.Teams {
		colors[i] = tint.RGB{R: int(t.Color[0]), G: int(t.Color[1]), B: int(t.Color[2])}
	}
	return e.World.Tint.ScoreTerritory(colors)
}

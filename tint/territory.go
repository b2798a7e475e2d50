package tint

import "rtscore/config"

// TerritoryScore is the per-team (or clippy pseudo-team) tile count from the
// end-of-episode territory scan (§4.6).
type TerritoryScore struct {
	TeamTiles   map[int]int
	ClippyTiles int
}

// ScoreTerritory attributes every tile at or above NeutralThreshold
// intensity to the nearest team color (squared RGB distance), scoring
// clippy as a pseudo-team using ClippyTint.
func (f *Field) ScoreTerritory(teamColors map[int]RGB) TerritoryScore {
	score := TerritoryScore{TeamTiles: make(map[int]int)}
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			i := y*f.width + x
			if f.trailStrength[i]+f.tumorStrength[i] < config.NeutralThreshold {
				continue
			}
			c := f.computed[i]
			bestTeam, bestIsClippy, bestDist := -1, false, -1
			for team, color := range teamColors {
				d := colorDistSquared(c, color)
				if bestDist < 0 || d < bestDist {
					bestDist, bestTeam, bestIsClippy = d, team, false
				}
			}
			if d := colorDistSquared(c, ClippyTint); bestDist < 0 || d < bestDist {
				bestDist, bestIsClippy = d, true
			}
			if bestIsClippy {
				score.ClippyTiles++
			} else if bestTeam >= 0 {
				score.TeamTiles[bestTeam]++
			}
		}
	}
	return score
}

package scheduler

import (
	"rtscore/config"
	"rtscore/coords"
	"rtscore/thing"
	"rtscore/tint"
	"rtscore/world"
)

// terrainBaseTint gives every terrain type a resting color the trail and
// tumor channels blend against (§4.6); water is handled separately by the
// isWater predicate passed to Field.Blend and never reaches this table.
func terrainBaseTint(t thing.TerrainType) tint.RGB {
	switch t {
	case thing.Grass, thing.Fertile:
		return tint.RGB{R: 60, G: 110, B: 50}
	case thing.Dune, thing.Sand:
		return tint.RGB{R: 190, G: 170, B: 110}
	case thing.Snow:
		return tint.RGB{R: 220, G: 220, B: 230}
	case thing.Mud:
		return tint.RGB{R: 90, G: 70, B: 50}
	case thing.Road, thing.Bridge:
		return tint.RGB{R: 140, G: 130, B: 120}
	default:
		if t.IsRamp() {
			return tint.RGB{R: 120, G: 110, B: 100}
		}
		return tint.RGB{R: 70, G: 90, B: 60}
	}
}

// recomputeTint runs §4.1 step 13: decay, accumulate lantern and tumor
// contributions (agent trail contributions are already applied inline by
// the move verb during step 4), blend, and refresh the frozen-tile bitmap.
func recomputeTint(w *world.World) {
	w.Tint.Decay()
	accumulateLanterns(w)
	accumulateTumors(w)
	w.Tint.Blend(
		func(p coords.Position) tint.RGB {
			if !w.Grid.InBounds(p) {
				return tint.RGB{}
			}
			return terrainBaseTint(w.Grid.At(p).Terrain)
		},
		func(p coords.Position) bool {
			return w.Grid.InBounds(p) && w.Grid.At(p).Terrain == thing.Water
		},
	)
}

func accumulateLanterns(w *world.World) {
	for team, ids := range w.TeamLanterns {
		t := w.Team(team)
		if t == nil {
			continue
		}
		color := tint.RGB{R: int(t.Color[0]), G: int(t.Color[1]), B: int(t.Color[2])}
		for _, id := range ids {
			h := w.Resolve(id)
			if !h.Valid() {
				continue
			}
			if ld := h.Lantern(); ld == nil || !ld.Healthy {
				continue
			}
			w.Tint.AccumulateTrail(h.Position(), config.TintLanternRadius, config.TintLanternStrength, color)
		}
	}
}

func accumulateTumors(w *world.World) {
	for _, id := range w.IterateByKind(thing.KindTumor) {
		h := w.Resolve(id)
		if !h.Valid() {
			continue
		}
		w.Tint.AccumulateTumor(h.Position(), config.TumorTintRadius, config.TumorIncrementBase)
	}
}

// Package tint implements the trail/tumor influence field and the frozen-tile
// predicate (§4.6). It generalizes the original overworld/influence package
// — which accumulates per-node interaction modifiers and decays them each
// tick — from a sparse node-overlap graph into a dense per-tile grid
// accumulator with decay, blend, and a clippy-proximity freeze predicate.
package tint

import (
	"rtscore/config"
	"rtscore/coords"
)

// RGB is a simple 3-channel color, used for team trail colors, the computed
// blend, and the clippy reference color.
type RGB struct {
	R, G, B int
}

// ClippyTint is the reference color the freeze predicate compares against.
var ClippyTint = RGB{R: 180, G: 0, B: 200}

// Field holds the two per-tile influence channels plus the blended result
// (§3 Tint field).
type Field struct {
	width, height int

	trailStrength []int
	trailColor    []RGB
	tumorStrength []int

	computed []RGB
	frozen   []bool
}

// NewField allocates a field sized to the map.
func NewField(width, height int) *Field {
	n := width * height
	return &Field{
		width: width, height: height,
		trailStrength: make([]int, n),
		trailColor:    make([]RGB, n),
		tumorStrength: make([]int, n),
		computed:      make([]RGB, n),
		frozen:        make([]bool, n),
	}
}

func (f *Field) index(p coords.Position) int { return p.Y*f.width + p.X }

func (f *Field) inBounds(p coords.Position) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// Decay reduces every channel by TrailDecay, clamped at zero (§4.6 step
// opening). Called once per step before accumulation.
func (f *Field) Decay() {
	for i := range f.trailStrength {
		f.trailStrength[i] = decayTo(f.trailStrength[i], config.TrailDecay)
		f.tumorStrength[i] = decayTo(f.tumorStrength[i], config.TrailDecay)
	}
}

func decayTo(v, amount int) int {
	v -= amount
	if v < 0 {
		return 0
	}
	return v
}

// AccumulateTrail adds a team-colored contribution centered at pos, radius
// (Manhattan) and strength, clamped at StrengthCap (§4.6).
func (f *Field) AccumulateTrail(pos coords.Position, radius, strength int, color RGB) {
	f.forEachInManhattan(pos, radius, func(i int) {
		f.trailStrength[i] = clampCap(f.trailStrength[i] + strength)
		f.trailColor[i] = color
	})
}

// AccumulateTumor adds a clippy contribution centered at pos.
func (f *Field) AccumulateTumor(pos coords.Position, radius, strength int) {
	f.forEachInManhattan(pos, radius, func(i int) {
		f.tumorStrength[i] = clampCap(f.tumorStrength[i] + strength)
	})
}

func clampCap(v int) int {
	if v > config.StrengthCap {
		return config.StrengthCap
	}
	return v
}

func (f *Field) forEachInManhattan(pos coords.Position, radius int, apply func(i int)) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if abs(dx)+abs(dy) > radius {
				continue
			}
			p := coords.Position{X: pos.X + dx, Y: pos.Y + dy}
			if !f.inBounds(p) {
				continue
			}
			apply(f.index(p))
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WaterPredicate reports whether a tile should always compute to zero tint; the
// caller (scheduler) supplies the terrain predicate since tint has no grid
// dependency of its own.
type WaterPredicate func(p coords.Position) bool

// Blend recomputes the per-tile computed tint from base biome tint plus
// normalized trail and tumor channels, zeroing water tiles, and refreshes
// the frozen-tile bitmap (§4.6).
func (f *Field) Blend(baseTint func(p coords.Position) RGB, isWater WaterPredicate) {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			p := coords.Position{X: x, Y: y}
			i := f.index(p)
			if isWater != nil && isWater(p) {
				f.computed[i] = RGB{}
				f.frozen[i] = false
				continue
			}
			base := RGB{}
			if baseTint != nil {
				base = baseTint(p)
			}
			trailW := normalize(f.trailStrength[i])
			tumorW := normalize(f.tumorStrength[i])
			c := blendWeighted(base, f.trailColor[i], trailW, ClippyTint, tumorW)
			f.computed[i] = c
			f.frozen[i] = colorDistSquared(c, ClippyTint) <= config.FreezeTolerance*config.FreezeTolerance
		}
	}
}

func normalize(strength int) float64 {
	if strength <= 0 {
		return 0
	}
	return float64(strength) / float64(config.StrengthCap)
}

func blendWeighted(base, trail RGB, trailW float64, tumor RGB, tumorW float64) RGB {
	baseW := 1 - clamp01(trailW+tumorW)
	r := float64(base.R)*baseW + float64(trail.R)*trailW + float64(tumor.R)*tumorW
	g := float64(base.G)*baseW + float64(trail.G)*trailW + float64(tumor.G)*tumorW
	b := float64(base.B)*baseW + float64(trail.B)*trailW + float64(tumor.B)*tumorW
	return RGB{R: int(r), G: int(g), B: int(b)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func colorDistSquared(a, b RGB) int {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

// Computed returns the blended tint at p.
func (f *Field) Computed(p coords.Position) RGB {
	if !f.inBounds(p) {
		return RGB{}
	}
	return f.computed[f.index(p)]
}

// IsFrozen reports whether the tile itself is frozen by the tint predicate
// (ignoring any per-entity frozen counter, which callers check separately).
func (f *Field) IsFrozen(p coords.Position) bool {
	if !f.inBounds(p) {
		return false
	}
	return f.frozen[f.index(p)]
}

// TrailStrength and TumorStrength expose raw channel values for the §8
// clamp-range test.
func (f *Field) TrailStrength(p coords.Position) int { return f.trailStrength[f.index(p)] }
func (f *Field) TumorStrength(p coords.Position) int { return f.tumorStrength[f.index(p)] }

// TotalStrength is trail+tumor, used by the neutral-threshold territory
// scoring gate.
func (f *Field) TotalStrength(p coords.Position) int {
	i := f.index(p)
	return f.trailStrength[i] + f.tumorStrength[i]
}

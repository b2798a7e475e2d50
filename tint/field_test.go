package tint

import (
	"testing"

	"rtscore/config"
	"rtscore/coords"
)

func TestDecayClampsAtZero(t *testing.T) {
	f := NewField(8, 8)
	f.AccumulateTrail(coords.Position{X: 4, Y: 4}, 0, 2, RGB{R: 200})
	for i := 0; i < 10; i++ {
		f.Decay()
	}
	if got := f.TrailStrength(coords.Position{X: 4, Y: 4}); got != 0 {
		t.Fatalf("expected trail strength to clamp at 0, got %d", got)
	}
}

func TestAccumulateClampsAtStrengthCap(t *testing.T) {
	f := NewField(8, 8)
	pos := coords.Position{X: 2, Y: 2}
	for i := 0; i < 10; i++ {
		f.AccumulateTrail(pos, 0, config.TintAgentStrength, RGB{R: 1})
	}
	if got := f.TrailStrength(pos); got > config.StrengthCap {
		t.Fatalf("trail strength %d exceeds cap %d", got, config.StrengthCap)
	}
}

func TestWaterTilesAlwaysZeroComputed(t *testing.T) {
	f := NewField(8, 8)
	pos := coords.Position{X: 3, Y: 3}
	f.AccumulateTrail(pos, 0, config.StrengthCap, RGB{R: 255, G: 255, B: 255})
	f.Blend(nil, func(p coords.Position) bool { return true })
	if c := f.Computed(pos); c != (RGB{}) {
		t.Fatalf("expected water tile to compute to zero tint, got %+v", c)
	}
}

func TestFrozenWithinToleranceOfClippyTint(t *testing.T) {
	f := NewField(8, 8)
	pos := coords.Position{X: 1, Y: 1}
	for i := 0; i <= config.StrengthCap/config.TumorIncrementBase; i++ {
		f.AccumulateTumor(pos, 0, config.TumorIncrementBase)
	}
	f.Blend(nil, nil)
	if !f.IsFrozen(pos) {
		t.Fatalf("expected tile saturated with tumor tint to be frozen")
	}
}

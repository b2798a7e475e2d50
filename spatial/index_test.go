package spatial

import (
	"testing"

	"rtscore/coords"
	"rtscore/thing"

	"github.com/bytearena/ecs"
)

func TestInsertRemoveConsistency(t *testing.T) {
	idx := NewIndex(64, 64, 16)
	idx.Insert(1, thing.KindAgent, 0, coords.Position{X: 5, Y: 5})
	idx.Insert(2, thing.KindAgent, 1, coords.Position{X: 20, Y: 20})

	if !idx.KindListContains(1) {
		t.Fatalf("entity 1 should be present in its cell's kind list")
	}
	idx.Remove(1)
	if idx.KindListContains(1) {
		t.Fatalf("entity 1 should be gone after Remove")
	}
	if _, ok := idx.PositionOf(1); ok {
		t.Fatalf("removed entity should have no tracked position")
	}
	if !idx.KindListContains(2) {
		t.Fatalf("entity 2 should be untouched by removing entity 1")
	}
}

func TestMoveAcrossCells(t *testing.T) {
	idx := NewIndex(64, 64, 16)
	idx.Insert(1, thing.KindAgent, 0, coords.Position{X: 1, Y: 1})
	oldCell, _ := idx.CellOf(1)

	idx.Move(1, coords.Position{X: 50, Y: 50})
	newCell, _ := idx.CellOf(1)
	if oldCell == newCell {
		t.Fatalf("expected cell change after moving far enough")
	}
	if !idx.KindListContains(1) {
		t.Fatalf("entity should remain indexed after moving cells")
	}
	pos, _ := idx.PositionOf(1)
	if pos.X != 50 || pos.Y != 50 {
		t.Fatalf("position not updated: got %+v", pos)
	}
}

func TestNearestFindsClosest(t *testing.T) {
	idx := NewIndex(64, 64, 16)
	idx.Insert(1, thing.KindResourceNode, -1, coords.Position{X: 10, Y: 10})
	idx.Insert(2, thing.KindResourceNode, -1, coords.Position{X: 12, Y: 10})
	idx.Insert(3, thing.KindAgent, 0, coords.Position{X: 10, Y: 11})

	got, ok := idx.Nearest(coords.Position{X: 10, Y: 10}, thing.KindResourceNode, 20)
	if !ok || got != 1 {
		t.Fatalf("expected nearest resource node to be entity 1, got %v ok=%v", got, ok)
	}
}

func TestNearestRespectsMaxDist(t *testing.T) {
	idx := NewIndex(64, 64, 16)
	idx.Insert(1, thing.KindAgent, 0, coords.Position{X: 0, Y: 0})
	if _, ok := idx.Nearest(coords.Position{X: 0, Y: 0}, thing.KindAgent, -1); ok {
		t.Fatalf("negative max distance should find nothing")
	}
	_, ok := idx.Nearest(coords.Position{X: 40, Y: 40}, thing.KindAgent, 5)
	if ok {
		t.Fatalf("entity far beyond maxDist should not be found")
	}
}

func TestForEachInRadiusVisitsAllMatches(t *testing.T) {
	idx := NewIndex(64, 64, 16)
	for i := 0; i < 5; i++ {
		idx.Insert(ecs.EntityID(i+1), thing.KindTumor, -1, coords.Position{X: i, Y: 0})
	}
	var out []ecs.EntityID
	idx.ForEachInRadius(coords.Position{X: 0, Y: 0}, thing.KindTumor, 3, func(id ecs.EntityID) bool {
		out = append(out, id)
		return true
	})
	if len(out) != 4 { // x=0..3 inclusive are within radius 3
		t.Fatalf("expected 4 tumors within radius, got %d (%v)", len(out), out)
	}
}

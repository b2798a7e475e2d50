package ffi

import (
	"testing"

	"github.com/bytearena/ecs"
)

func TestBindAssignsAndReusesSlots(t *testing.T) {
	r := NewSlotRegistry()
	slot, isNew := r.Bind(ecs.EntityID(1))
	if !isNew || slot < 0 {
		t.Fatalf("expected a fresh slot, got slot=%d isNew=%v", slot, isNew)
	}
	same, isNew2 := r.Bind(ecs.EntityID(1))
	if isNew2 || same != slot {
		t.Fatalf("rebinding a bound id should return its existing slot, got slot=%d isNew=%v", same, isNew2)
	}
}

func TestReleaseFreesSlotForReuse(t *testing.T) {
	r := NewSlotRegistry()
	slot, _ := r.Bind(ecs.EntityID(1))
	r.Release(ecs.EntityID(1))

	if _, ok := r.SlotOf(ecs.EntityID(1)); ok {
		t.Fatalf("expected released id to have no slot")
	}
	newSlot, isNew := r.Bind(ecs.EntityID(2))
	if !isNew {
		t.Fatalf("expected id 2 to get a fresh binding")
	}
	if newSlot != slot {
		t.Fatalf("expected released slot %d to be reused, got %d", slot, newSlot)
	}
}

func TestSyncBindsNewAndReleasesGone(t *testing.T) {
	r := NewSlotRegistry()
	r.Bind(ecs.EntityID(1))

	bound, released := r.Sync([]ecs.EntityID{2, 3})
	if len(bound) != 2 {
		t.Fatalf("expected 2 newly bound ids, got %d", len(bound))
	}
	if len(released) != 1 || released[0] != ecs.EntityID(1) {
		t.Fatalf("expected id 1 to be released, got %v", released)
	}
	if _, ok := r.SlotOf(ecs.EntityID(1)); ok {
		t.Fatalf("id 1 should no longer have a slot after sync")
	}
	if _, ok := r.SlotOf(ecs.EntityID(2)); !ok {
		t.Fatalf("id 2 should have a slot after sync")
	}
}

func TestIDAtRoundTripsWithBind(t *testing.T) {
	r := NewSlotRegistry()
	slot, _ := r.Bind(ecs.EntityID(42))
	id, ok := r.IDAt(slot)
	if !ok || id != ecs.EntityID(42) {
		t.Fatalf("expected IDAt(%d) = 42, got id=%d ok=%v", slot, id, ok)
	}
}

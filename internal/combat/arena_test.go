package combat

import "testing"

func TestArenaInsertGetRemove(t *testing.T) {
	var a Arena[string]

	h1 := a.Insert("one")
	h2 := a.Insert("two")
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", a.Len())
	}
	if v, ok := a.Get(h1); !ok || v != "one" {
		t.Errorf("Get(h1) = %q, %v", v, ok)
	}

	if !a.Remove(h1) {
		t.Fatal("Remove(h1) should succeed")
	}
	if a.Remove(h1) {
		t.Error("second Remove should fail")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("removed handle should miss")
	}

	// The freed slot is reused with a new generation.
	h3 := a.Insert("three")
	if h3.index != h1.index {
		t.Fatalf("expected slot reuse, got index %d", h3.index)
	}
	if _, ok := a.Get(h1); ok {
		t.Error("stale handle resolved to a reused slot")
	}
	if v, ok := a.Get(h3); !ok || v != "three" {
		t.Errorf("Get(h3) = %q, %v", v, ok)
	}
	if v, ok := a.Get(h2); !ok || v != "two" {
		t.Errorf("Get(h2) = %q, %v", v, ok)
	}
}

func TestArenaZeroHandle(t *testing.T) {
	var a Arena[int]
	a.Insert(7)

	var zero Handle
	if !zero.IsZero() {
		t.Error("zero handle should report IsZero")
	}
	if _, ok := a.Get(zero); ok {
		t.Error("zero handle should never resolve")
	}
	if _, ok := a.Get(Handle{index: 40, gen: 1}); ok {
		t.Error("out of range handle should miss")
	}
}

package ecs

import "testing"

type position struct{ X, Y float32 }
type marker struct{}

func TestStoreSetGetRemove(t *testing.T) {
	p := NewEntityPool()
	s := NewStore[position]()
	a, b, c := p.Create(), p.Create(), p.Create()

	if !s.Set(a, position{1, 1}) || !s.Set(b, position{2, 2}) || !s.Set(c, position{3, 3}) {
		t.Fatal("first Set should report an addition")
	}
	if s.Set(b, position{20, 20}) {
		t.Error("overwrite should not report an addition")
	}
	if got, _ := s.Get(b); got.X != 20 {
		t.Errorf("expected overwritten value 20, got %v", got.X)
	}

	// Removing the first slot swaps the last one into it.
	if !s.Remove(a) {
		t.Fatal("remove should succeed")
	}
	if s.Has(a) {
		t.Error("removed component still present")
	}
	if got, ok := s.Get(c); !ok || got.X != 3 {
		t.Errorf("swapped component lost: %v %v", got, ok)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 components, got %d", s.Len())
	}
	if s.Remove(a) {
		t.Error("second remove should report false")
	}
}

func TestStoreIgnoresStaleGeneration(t *testing.T) {
	p := NewEntityPool()
	s := NewStore[marker]()
	a := p.Create()
	s.Set(a, marker{})
	p.Destroy(a)
	b := p.Create()
	if s.Has(b) {
		t.Error("recycled slot inherited the old entity's marker")
	}
}

func TestEach2JoinsOnBothStores(t *testing.T) {
	p := NewEntityPool()
	pos := NewStore[position]()
	tag := NewStore[marker]()
	ids := []EntityID{p.Create(), p.Create(), p.Create(), p.Create()}
	for _, id := range ids {
		pos.Set(id, position{})
	}
	tag.Set(ids[1], marker{})
	tag.Set(ids[3], marker{})

	seen := map[EntityID]bool{}
	Each2(pos, tag, func(id EntityID, _ *position, _ *marker) { seen[id] = true })
	if len(seen) != 2 || !seen[ids[1]] || !seen[ids[3]] {
		t.Errorf("unexpected join result: %v", seen)
	}
}

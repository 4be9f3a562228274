package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/world"
)

func TestStepIntegratesVelocity(t *testing.T) {
	ws := world.NewState()
	id := ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5, Velocity: mgl32.Vec3{0, 3, 0}})
	sim := NewSim(ws)

	sim.Step(0.5)
	tr, _ := ws.Transforms.Get(id)
	if !tr.Position.ApproxEqual(mgl32.Vec3{0, 1.5, 0}) {
		t.Errorf("expected y 1.5, got %v", tr.Position)
	}
}

func TestOverlapsReportsEachPairOnce(t *testing.T) {
	ws := world.NewState()
	m := ws.SpawnMover(world.MoverSpec{Radius: 0.5})
	near := ws.SpawnCollectible(world.CollectibleSpec{Position: mgl32.Vec3{0.8, 0, 0}, Radius: 0.5})
	ws.SpawnCollectible(world.CollectibleSpec{Position: mgl32.Vec3{10, 0, 0}, Radius: 0.5})
	// crosses a cell boundary relative to the mover
	across := ws.SpawnCollectible(world.CollectibleSpec{Position: mgl32.Vec3{-0.9, 0, 0}, Radius: 0.5})

	pairs := NewSim(ws).Overlaps()
	got := map[[2]uint64]bool{}
	for _, p := range pairs {
		a, b := uint64(p.A), uint64(p.B)
		if a > b {
			a, b = b, a
		}
		if got[[2]uint64{a, b}] {
			t.Fatalf("pair %v reported twice", p)
		}
		got[[2]uint64{a, b}] = true
	}
	want := func(x, y uint64) bool {
		if x > y {
			x, y = y, x
		}
		return got[[2]uint64{x, y}]
	}
	if !want(uint64(m), uint64(near)) || !want(uint64(m), uint64(across)) {
		t.Errorf("missing expected pairs: %v", pairs)
	}
	if len(pairs) != 2 {
		t.Errorf("expected 2 pairs, got %d: %v", len(pairs), pairs)
	}
}

func TestOverlapsIgnoresEntitiesWithoutCollider(t *testing.T) {
	ws := world.NewState()
	ws.SpawnMover(world.MoverSpec{Radius: 0.5})
	c := ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5})
	ws.Colliders.Remove(c)

	if pairs := NewSim(ws).Overlaps(); len(pairs) != 0 {
		t.Errorf("expected no pairs, got %v", pairs)
	}
}

package event

import "testing"

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []EntityCollected
	Subscribe(b, func(ev EntityCollected) { got = append(got, ev) })

	Emit(b, EntityCollected{Score: 1})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatal("event delivered in the tick it was emitted")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].Score != 1 {
		t.Fatalf("expected one event with score 1, got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Errorf("event delivered twice: %v", got)
	}
}

func TestBusKeepsTypesApart(t *testing.T) {
	b := NewBus()
	collected, spawned := 0, 0
	Subscribe(b, func(EntityCollected) { collected++ })
	Subscribe(b, func(EntitySpawned) { spawned++ })

	Emit(b, EntitySpawned{Kind: SpawnCube})
	Emit(b, EntitySpawned{Kind: SpawnCube})
	if Pending[EntitySpawned](b) != 2 {
		t.Errorf("expected 2 pending spawns, got %d", Pending[EntitySpawned](b))
	}
	b.SwapBuffers()
	b.DispatchAll()
	if collected != 0 || spawned != 2 {
		t.Errorf("expected 0/2, got %d/%d", collected, spawned)
	}
}

package ecs

import (
	"sync"
	"testing"
	"time"
)

func TestApplyRunsInRecordedOrder(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	id := w.CreateEntity()

	w.Commands().Record(Add(pos, id, position{1, 0}))
	w.Commands().Record(Add(pos, id, position{2, 0}))
	if pos.Has(id) {
		t.Fatal("recorded mutation visible before apply")
	}
	if n := w.Apply(); n != 1 {
		t.Errorf("expected 1 change (second add overwrites), got %d", n)
	}
	if got, _ := pos.Get(id); got.X != 2 {
		t.Errorf("expected last recorded value to win, got %v", got.X)
	}
	if w.Commands().Len() != 0 {
		t.Error("buffer not cleared after apply")
	}
}

func TestDestroyRemovesComponentsAndSkipsLaterCommands(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	tag := Register[marker](w)
	id := w.CreateEntity()
	pos.Set(id, position{})

	w.Commands().Record(Destroy(id), Add(tag, id, marker{}))
	w.Apply()
	if w.Alive(id) {
		t.Fatal("entity survived destroy")
	}
	if pos.Len() != 0 || tag.Len() != 0 {
		t.Errorf("components left behind: pos=%d tag=%d", pos.Len(), tag.Len())
	}
}

func TestSpawnCreatesEntityAtApply(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	var spawned EntityID
	w.Commands().Record(Spawn(func(_ *World, id EntityID) {
		spawned = id
		pos.Set(id, position{5, 5})
	}))
	if w.Len() != 0 {
		t.Fatal("spawn visible before apply")
	}
	w.Apply()
	if !w.Alive(spawned) || !pos.Has(spawned) {
		t.Error("spawned entity missing after apply")
	}
}

func TestRecordConcurrentProducersKeepRunsContiguous(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	tag := Register[marker](w)

	const producers = 8
	const perProducer = 200
	ids := make([]EntityID, producers)
	for i := range ids {
		ids[i] = w.CreateEntity()
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id EntityID) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				w.Commands().Record(Add(tag, id, marker{}), Add(pos, id, position{X: float32(i)}))
			}
		}(ids[p])
	}
	wg.Wait()

	pending := w.Commands().Pending()
	if len(pending) != producers*perProducer*2 {
		t.Fatalf("expected %d commands, got %d", producers*perProducer*2, len(pending))
	}
	last := map[EntityID]float32{}
	for i := 0; i < len(pending); i += 2 {
		first, second := pending[i], pending[i+1]
		if first.Target() != second.Target() {
			t.Fatalf("run split at %d: %d vs %d", i, first.Target(), second.Target())
		}
		x := second.(addCommand[position]).value.X
		if prev, ok := last[second.Target()]; ok && x <= prev {
			t.Fatalf("producer order violated for %d: %v after %v", second.Target(), x, prev)
		}
		last[second.Target()] = x
	}

	w.Apply()
	for _, id := range ids {
		got, ok := pos.Get(id)
		if !ok || got.X != perProducer-1 {
			t.Errorf("entity %d: expected final X %d, got %v", id, perProducer-1, got)
		}
	}
}

func TestSpawnInitRecordingDefersToNextApply(t *testing.T) {
	w := NewWorld()
	pos := Register[position](w)
	tag := Register[marker](w)

	var spawned EntityID
	w.Commands().Record(Spawn(func(_ *World, id EntityID) {
		spawned = id
		pos.Set(id, position{1, 1})
		w.Commands().Record(Add(tag, id, marker{}))
	}))

	done := make(chan int)
	go func() { done <- w.Apply() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("apply blocked on a Record from spawn init")
	}

	if tag.Has(spawned) {
		t.Fatal("command recorded during apply executed in the same batch")
	}
	if n := w.Commands().Len(); n != 1 {
		t.Fatalf("expected 1 pending command, got %d", n)
	}
	w.Apply()
	if !tag.Has(spawned) {
		t.Error("deferred command lost")
	}
}

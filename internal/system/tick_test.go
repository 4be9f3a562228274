package system

import (
	"testing"
	"time"

	"github.com/l1jgo/cubecollect/internal/core/ecs"
	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
	"go.uber.org/zap"
)

// scriptedPhysics returns a fixed set of pairs on chosen ticks.
type scriptedPhysics struct {
	tick  int
	pairs map[int][]event.TriggerEvent
}

func (p *scriptedPhysics) Step(float32) []event.TriggerEvent {
	out := p.pairs[p.tick]
	p.tick++
	return out
}

type neutralInput struct{}

func (neutralInput) Axis(uint64, float32) (float32, float32) { return 0, 0 }

type scheduleFixture struct {
	ws     *world.State
	bus    *event.Bus
	runner *coresys.Runner
	score  *world.Scoreboard
}

func newScheduleFixture(physics PhysicsStepper) *scheduleFixture {
	log := zap.NewNop()
	ws := world.NewState()
	bus := event.NewBus()
	score := world.NewScoreboard()
	input := &InputState{}
	phys := NewPhysicsSystem(physics)

	r := coresys.NewRunner()
	r.Register(NewEventDispatchSystem(bus))
	r.Register(NewInputSystem(neutralInput{}, input, log))
	r.Register(NewMovementSystem(ws, input))
	r.Register(NewRotationSystem(ws))
	r.Register(phys)
	r.Register(NewCollectionSystem(ws, phys, 0, log))
	r.Register(NewSyncSystem(ws.ECS, coresys.PhaseCollectSync, log))
	r.Register(NewDeletionSystem(ws, score, bus, log))
	r.Register(NewSyncSystem(ws.ECS, coresys.PhaseCleanup, log))
	return &scheduleFixture{ws: ws, bus: bus, runner: r, score: score}
}

func TestScheduleCollectsAndDestroys(t *testing.T) {
	var m, c ecs.EntityID
	phys := &scriptedPhysics{pairs: map[int][]event.TriggerEvent{}}
	f := newScheduleFixture(phys)
	m = f.ws.SpawnMover(world.MoverSpec{Speed: 10, Radius: 0.5})
	c = f.ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5})
	phys.pairs[0] = []event.TriggerEvent{{A: m, B: c}}

	// Run tick 0 up to and including the collect-sync apply.
	for _, p := range []coresys.Phase{coresys.PhaseInput, coresys.PhaseUpdate, coresys.PhasePhysics, coresys.PhaseCollect, coresys.PhaseCollectSync} {
		f.runner.TickPhase(p, 20*time.Millisecond)
	}
	if !f.ws.DeleteTags.Has(c) || f.ws.Colliders.Has(c) {
		t.Fatal("after collect-sync: expected DeleteTag and no Collider")
	}
	if f.score.Score() != 0 {
		t.Fatal("score incremented by collection")
	}

	f.runner.TickPhase(coresys.PhaseScore, 20*time.Millisecond)
	if f.score.Score() != 1 {
		t.Fatalf("expected score 1, got %d", f.score.Score())
	}
	if !f.ws.ECS.Alive(c) {
		t.Fatal("collectible destroyed before cleanup apply")
	}
	f.runner.TickPhase(coresys.PhaseCleanup, 20*time.Millisecond)
	if f.ws.ECS.Alive(c) {
		t.Error("collectible still alive after cleanup apply")
	}
	if !f.ws.ECS.Alive(m) {
		t.Error("mover destroyed")
	}
}

func TestScheduleDuplicateTriggersScoreOnce(t *testing.T) {
	phys := &scriptedPhysics{pairs: map[int][]event.TriggerEvent{}}
	f := newScheduleFixture(phys)
	m := f.ws.SpawnMover(world.MoverSpec{Speed: 10, Radius: 0.5})
	c := f.ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5})
	phys.pairs[0] = []event.TriggerEvent{{A: m, B: c}, {A: m, B: c}}
	// stale reports of the same overlap on later ticks
	phys.pairs[1] = []event.TriggerEvent{{A: m, B: c}}
	phys.pairs[2] = []event.TriggerEvent{{A: c, B: m}}

	for i := 0; i < 4; i++ {
		f.runner.Tick(20 * time.Millisecond)
	}
	if f.score.Score() != 1 {
		t.Errorf("expected exactly one point, got %d", f.score.Score())
	}
	if f.ws.ECS.Alive(c) {
		t.Error("collectible survived")
	}
	if f.ws.ECS.Len() != 1 {
		t.Errorf("expected only the mover left, got %d entities", f.ws.ECS.Len())
	}
}

func TestScheduleTagAndColliderNeverSplit(t *testing.T) {
	phys := &scriptedPhysics{pairs: map[int][]event.TriggerEvent{}}
	f := newScheduleFixture(phys)
	m := f.ws.SpawnMover(world.MoverSpec{Speed: 10, Radius: 0.5})
	for tick := 0; tick < 20; tick++ {
		var pairs []event.TriggerEvent
		for j := 0; j < 5; j++ {
			c := f.ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5})
			pairs = append(pairs, event.TriggerEvent{A: c, B: m}, event.TriggerEvent{A: m, B: c})
		}
		phys.pairs[tick] = pairs
	}
	for tick := 0; tick < 20; tick++ {
		for _, p := range []coresys.Phase{coresys.PhaseInput, coresys.PhaseUpdate, coresys.PhasePhysics, coresys.PhaseCollect, coresys.PhaseCollectSync} {
			f.runner.TickPhase(p, 20*time.Millisecond)
		}
		for _, id := range f.ws.DeleteTags.Entities() {
			if f.ws.Colliders.Has(id) {
				t.Fatalf("tick %d: entity %d has DeleteTag and Collider", tick, id)
			}
		}
		f.runner.TickPhase(coresys.PhaseScore, 20*time.Millisecond)
		f.runner.TickPhase(coresys.PhaseCleanup, 20*time.Millisecond)
	}
	if f.score.Score() != 100 {
		t.Errorf("expected 100 points, got %d", f.score.Score())
	}
}

func TestScheduleSpawnSeesThresholdTick(t *testing.T) {
	cfg := testSpawnConfig()
	cfg.MaxScore = 1
	cfg.CubesPerTick = 3

	for run := 0; run < 200; run++ {
		phys := &scriptedPhysics{pairs: map[int][]event.TriggerEvent{}}
		f := newScheduleFixture(phys)
		spawner := NewSpawnSystem(f.ws, f.score, f.bus, cfg, 1, zap.NewNop())
		f.runner.Register(spawner)
		m := f.ws.SpawnMover(world.MoverSpec{Speed: 10, Radius: 0.5})
		c := f.ws.SpawnCollectible(world.CollectibleSpec{Radius: 0.5})
		phys.pairs[0] = []event.TriggerEvent{{A: m, B: c}}

		f.runner.Tick(20 * time.Millisecond)
		if !spawner.Insane() {
			t.Fatalf("run %d: insane mode off after threshold tick", run)
		}
		if n := f.ws.ECS.Len(); n != 1+cfg.CubesPerTick {
			t.Fatalf("run %d: expected mover and %d cubes, got %d entities", run, cfg.CubesPerTick, n)
		}
	}
}

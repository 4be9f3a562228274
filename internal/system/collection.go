package system

import (
	"sync"
	"time"

	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultCollectChunk = 64

// CollectionSystem turns trigger pairs into delete intents. For every pair
// both directions are tested: when the toucher is a mover and the touched
// entity carries no DeleteTag yet, DeleteTag is added and Collider removed in
// one recorded run. A mover touching another mover is tagged like any other
// entity.
//
// Component stores are only read here; the command buffer is the single
// shared write target, so chunks of pairs run in parallel. Nothing recorded
// becomes visible before the collect-sync apply. Phase 3 (Collect).
type CollectionSystem struct {
	world    *world.State
	triggers TriggerSource
	chunk    int
	log      *zap.Logger
}

func NewCollectionSystem(ws *world.State, triggers TriggerSource, chunk int, log *zap.Logger) *CollectionSystem {
	if triggers == nil {
		panic("collection system: nil trigger source")
	}
	if chunk <= 0 {
		chunk = defaultCollectChunk
	}
	return &CollectionSystem{world: ws, triggers: triggers, chunk: chunk, log: log}
}

func (s *CollectionSystem) Phase() coresys.Phase { return coresys.PhaseCollect }

func (s *CollectionSystem) Update(_ time.Duration) {
	if n := s.Resolve(s.triggers.Triggers()); n > 0 {
		s.log.Debug("collected", zap.Int("entities", n))
	}
}

// Resolve records delete intents for pairs and returns how many entities
// were tagged. An entity is tagged at most once per call even when several
// pairs name it.
func (s *CollectionSystem) Resolve(pairs []event.TriggerEvent) int {
	if len(pairs) == 0 {
		return 0
	}
	r := resolver{world: s.world}
	if len(pairs) <= s.chunk {
		r.run(pairs)
		return r.count()
	}

	var g errgroup.Group
	for start := 0; start < len(pairs); start += s.chunk {
		end := min(start+s.chunk, len(pairs))
		batch := pairs[start:end]
		g.Go(func() error {
			r.run(batch)
			return nil
		})
	}
	g.Wait()
	return r.count()
}

// resolver holds the per-phase claim set shared by all chunks.
type resolver struct {
	world   *world.State
	claimed sync.Map
	mu      sync.Mutex
	tagged  int
}

func (r *resolver) run(pairs []event.TriggerEvent) {
	for _, p := range pairs {
		r.test(p.A, p.B)
		r.test(p.B, p.A)
	}
}

func (r *resolver) test(toucher, touched ecs.EntityID) {
	if !r.world.Movers.Has(toucher) {
		return
	}
	if r.world.DeleteTags.Has(touched) || !r.world.ECS.Alive(touched) {
		return
	}
	if _, loaded := r.claimed.LoadOrStore(touched, struct{}{}); loaded {
		return
	}
	r.world.Commands().Record(
		ecs.Add(r.world.DeleteTags, touched, component.DeleteTag{}),
		ecs.Remove(r.world.Colliders, touched),
	)
	r.mu.Lock()
	r.tagged++
	r.mu.Unlock()
}

func (r *resolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tagged
}

package system

import (
	"time"

	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
	"go.uber.org/zap"
)

// ScoreSink receives one call per collected entity.
type ScoreSink interface {
	Increase() int64
}

// DeletionSystem scores every tagged entity once and queues its destruction
// for the cleanup apply. A tagged entity stays alive and readable until that
// apply, and DeleteTag is only added once per entity, so each destroyed
// entity is scored exactly once. Phase 5 (Score).
type DeletionSystem struct {
	world *world.State
	sink  ScoreSink
	bus   *event.Bus
	tick  uint64
	log   *zap.Logger
}

// NewDeletionSystem panics when sink is nil: scoring without a sink would
// silently drop points.
func NewDeletionSystem(ws *world.State, sink ScoreSink, bus *event.Bus, log *zap.Logger) *DeletionSystem {
	if sink == nil {
		panic("deletion system: nil score sink")
	}
	return &DeletionSystem{world: ws, sink: sink, bus: bus, log: log}
}

func (s *DeletionSystem) Phase() coresys.Phase { return coresys.PhaseScore }

func (s *DeletionSystem) Update(_ time.Duration) {
	s.tick++
	s.world.DeleteTags.Each(func(id ecs.EntityID, _ *component.DeleteTag) {
		score := s.sink.Increase()
		s.world.Commands().Record(ecs.Destroy(id))
		if s.bus != nil {
			event.Emit(s.bus, event.EntityCollected{Entity: id, Score: score, Tick: s.tick})
		}
		s.log.Debug("entity collected", zap.Uint64("entity", uint64(id)), zap.Int64("score", score))
	})
}

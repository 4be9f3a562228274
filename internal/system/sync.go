package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/cubecollect/internal/core/ecs"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"go.uber.org/zap"
)

// SyncSystem is the only place the command buffer is applied. One instance
// owns the collect-sync boundary and one the cleanup boundary; everything
// recorded before it becomes visible to the phases after it.
type SyncSystem struct {
	world *ecs.World
	phase coresys.Phase
	log   *zap.Logger
}

func NewSyncSystem(w *ecs.World, phase coresys.Phase, log *zap.Logger) *SyncSystem {
	if phase != coresys.PhaseCollectSync && phase != coresys.PhaseCleanup {
		panic(fmt.Sprintf("sync system: %s is not a sync phase", phase))
	}
	return &SyncSystem{world: w, phase: phase, log: log}
}

func (s *SyncSystem) Phase() coresys.Phase { return s.phase }

func (s *SyncSystem) Update(_ time.Duration) {
	if n := s.world.Apply(); n > 0 {
		s.log.Debug("applied commands", zap.Stringer("phase", s.phase), zap.Int("changes", n))
	}
}

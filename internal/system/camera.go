package system

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
)

// CameraSystem reads the followed entity's transform once per tick and
// publishes position+offset. The target is wired at construction. If the
// target is destroyed later the last position is kept. Phase 8 (Output).
type CameraSystem struct {
	world  *world.State
	target ecs.EntityID
	offset mgl32.Vec3

	mu  sync.RWMutex
	pos mgl32.Vec3
}

// NewCameraSystem panics when target has no Transform.
func NewCameraSystem(ws *world.State, target ecs.EntityID, offset mgl32.Vec3) *CameraSystem {
	tr, ok := ws.Transforms.Get(target)
	if !ok {
		panic("camera system: target has no transform")
	}
	return &CameraSystem{world: ws, target: target, offset: offset, pos: tr.Position.Add(offset)}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *CameraSystem) Update(_ time.Duration) {
	tr, ok := s.world.Transforms.Get(s.target)
	if !ok {
		return
	}
	s.mu.Lock()
	s.pos = tr.Position.Add(s.offset)
	s.mu.Unlock()
}

// Position is safe to call from a render goroutine.
func (s *CameraSystem) Position() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pos
}

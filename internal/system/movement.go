package system

import (
	"time"

	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
)

// MovementSystem accelerates every mover on the horizontal (XZ) plane from
// the sampled input. Velocity is not clamped, so sustained input keeps
// accelerating the mover. Phase 1 (Update).
type MovementSystem struct {
	world *world.State
	input *InputState
}

func NewMovementSystem(ws *world.State, input *InputState) *MovementSystem {
	return &MovementSystem{world: ws, input: input}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	s.Step(s.input.Horizontal, s.input.Vertical, seconds(dt))
}

// Step applies one tick of input with an explicit delta in seconds.
func (s *MovementSystem) Step(horizontal, vertical, dt float32) {
	ecs.Each2(s.world.Velocities, s.world.Movers, func(_ ecs.EntityID, vel *component.Velocity, mv *component.Move) {
		scale := mv.Speed * dt
		vel.Linear[0] += horizontal * scale
		vel.Linear[2] += vertical * scale
	})
}

package system

import (
	"time"

	"github.com/l1jgo/cubecollect/internal/core/event"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
)

// PhysicsStepper integrates motion and reports this tick's overlapping
// collider pairs. Geometry stays on the other side of this interface.
type PhysicsStepper interface {
	Step(dt float32) []event.TriggerEvent
}

// TriggerSource hands the current tick's trigger pairs to CollectionSystem.
type TriggerSource interface {
	Triggers() []event.TriggerEvent
}

// PhysicsSystem runs the physics step and keeps its trigger pairs for the
// collect phase. Pairs are valid for one tick only. Phase 2 (Physics).
type PhysicsSystem struct {
	stepper  PhysicsStepper
	triggers []event.TriggerEvent
}

func NewPhysicsSystem(stepper PhysicsStepper) *PhysicsSystem {
	if stepper == nil {
		panic("physics system: nil stepper")
	}
	return &PhysicsSystem{stepper: stepper}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.triggers = s.stepper.Step(seconds(dt))
}

func (s *PhysicsSystem) Triggers() []event.TriggerEvent { return s.triggers }

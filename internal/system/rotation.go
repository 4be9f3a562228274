package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"github.com/l1jgo/cubecollect/internal/world"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// RotationSystem spins every rotator around its local X, then Y, then Z axis.
// Each step is composed onto the orientation produced by the previous step,
// so the result is not the same as a single Euler rotation. Phase 1 (Update).
type RotationSystem struct {
	world *world.State
}

func NewRotationSystem(ws *world.State) *RotationSystem {
	return &RotationSystem{world: ws}
}

func (s *RotationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *RotationSystem) Update(dt time.Duration) {
	s.Step(seconds(dt))
}

// Step rotates all rotators by one tick of dt seconds.
func (s *RotationSystem) Step(dt float32) {
	ecs.Each2(s.world.Transforms, s.world.Rotators, func(_ ecs.EntityID, tr *component.Transform, rot *component.Rotation) {
		tr.Orientation = RotateXYZ(tr.Orientation, rot.Speed*dt)
	})
}

// RotateXYZ composes q with rotations of deg degrees about local X, Y and Z,
// in that order.
func RotateXYZ(q mgl32.Quat, deg float32) mgl32.Quat {
	angle := mgl32.DegToRad(deg)
	q = q.Mul(mgl32.QuatRotate(angle, axisX))
	q = q.Mul(mgl32.QuatRotate(angle, axisY))
	q = q.Mul(mgl32.QuatRotate(angle, axisZ))
	return q.Normalize()
}

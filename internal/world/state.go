package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
)

// State owns the ECS world and every component store the game uses.
// Systems receive it at construction; there is no package-level instance.
type State struct {
	ECS        *ecs.World
	Transforms *ecs.Store[component.Transform]
	Velocities *ecs.Store[component.Velocity]
	Movers     *ecs.Store[component.Move]
	Rotators   *ecs.Store[component.Rotation]
	DeleteTags *ecs.Store[component.DeleteTag]
	Colliders  *ecs.Store[component.Collider]
}

func NewState() *State {
	w := ecs.NewWorld()
	return &State{
		ECS:        w,
		Transforms: ecs.Register[component.Transform](w),
		Velocities: ecs.Register[component.Velocity](w),
		Movers:     ecs.Register[component.Move](w),
		Rotators:   ecs.Register[component.Rotation](w),
		DeleteTags: ecs.Register[component.DeleteTag](w),
		Colliders:  ecs.Register[component.Collider](w),
	}
}

// Commands is shorthand for the shared command buffer.
func (s *State) Commands() *ecs.CommandBuffer { return s.ECS.Commands() }

// MoverSpec is the initial component set of the player-controlled ball.
type MoverSpec struct {
	Position mgl32.Vec3
	Speed    float32
	Radius   float32
}

// CollectibleSpec is the initial component set of a pickup.
type CollectibleSpec struct {
	Position    mgl32.Vec3
	RotateSpeed float32
	Radius      float32
	Velocity    mgl32.Vec3
}

// SpawnMover creates the mover immediately. Setup only; never call it while
// a tick is running.
func (s *State) SpawnMover(spec MoverSpec) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.populateMover(id, spec)
	return id
}

// SpawnCollectible creates a collectible immediately. Setup only.
func (s *State) SpawnCollectible(spec CollectibleSpec) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.populateCollectible(id, spec)
	return id
}

// CollectibleCommand defers a collectible spawn to the next apply.
func (s *State) CollectibleCommand(spec CollectibleSpec) ecs.Command {
	return ecs.Spawn(func(_ *ecs.World, id ecs.EntityID) {
		s.populateCollectible(id, spec)
	})
}

func (s *State) populateMover(id ecs.EntityID, spec MoverSpec) {
	s.Transforms.Set(id, component.NewTransform(spec.Position))
	s.Velocities.Set(id, component.Velocity{})
	s.Movers.Set(id, component.Move{Speed: spec.Speed})
	s.Colliders.Set(id, component.Collider{Radius: spec.Radius})
}

func (s *State) populateCollectible(id ecs.EntityID, spec CollectibleSpec) {
	s.Transforms.Set(id, component.NewTransform(spec.Position))
	s.Colliders.Set(id, component.Collider{Radius: spec.Radius})
	if spec.RotateSpeed != 0 {
		s.Rotators.Set(id, component.Rotation{Speed: spec.RotateSpeed})
	}
	if spec.Velocity != (mgl32.Vec3{}) {
		s.Velocities.Set(id, component.Velocity{Linear: spec.Velocity})
	}
}

// SpawnResult reports what a layout spawn created.
type SpawnResult struct {
	Mover        ecs.EntityID
	Collectibles int
}

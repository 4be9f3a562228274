// Package physics is a minimal stand-in for a real physics engine: it
// integrates linear velocity and reports overlapping sphere triggers. It
// knows nothing about movers, tags or scoring.
package physics

import (
	"github.com/l1jgo/cubecollect/internal/component"
	"github.com/l1jgo/cubecollect/internal/core/ecs"
	"github.com/l1jgo/cubecollect/internal/core/event"
	"github.com/l1jgo/cubecollect/internal/world"
)

const minCellSize = 1

// Sim steps the world. Not safe for concurrent use; the runner calls Step
// once per tick from the physics phase.
type Sim struct {
	world  *world.State
	grid   *grid
	bodies []body
	pairs  []event.TriggerEvent
}

func NewSim(ws *world.State) *Sim {
	return &Sim{
		world:  ws,
		grid:   newGrid(minCellSize),
		bodies: make([]body, 0, 256),
		pairs:  make([]event.TriggerEvent, 0, 16),
	}
}

// Step integrates positions by dt seconds and returns every overlapping
// collider pair once, in no particular order. The returned slice is reused
// by the next Step.
func (s *Sim) Step(dt float32) []event.TriggerEvent {
	ecs.Each2(s.world.Transforms, s.world.Velocities, func(_ ecs.EntityID, tr *component.Transform, vel *component.Velocity) {
		tr.Position = tr.Position.Add(vel.Linear.Mul(dt))
	})
	return s.Overlaps()
}

// Overlaps reports overlapping collider pairs without integrating.
func (s *Sim) Overlaps() []event.TriggerEvent {
	s.bodies = s.bodies[:0]
	s.pairs = s.pairs[:0]

	var maxRadius float32
	ecs.Each2(s.world.Colliders, s.world.Transforms, func(id ecs.EntityID, c *component.Collider, tr *component.Transform) {
		p := tr.Position
		s.bodies = append(s.bodies, body{id: id, x: p.X(), y: p.Y(), z: p.Z(), radius: c.Radius})
		maxRadius = max(maxRadius, c.Radius)
	})
	if len(s.bodies) < 2 {
		return s.pairs
	}

	s.grid.reset(max(2*maxRadius, minCellSize))
	for i, b := range s.bodies {
		s.grid.add(i, b.x, b.y, b.z)
	}
	for i, a := range s.bodies {
		s.grid.nearby(a.x, a.y, a.z, func(j int) {
			if j <= i {
				return
			}
			b := s.bodies[j]
			dx, dy, dz := a.x-b.x, a.y-b.y, a.z-b.z
			r := a.radius + b.radius
			if dx*dx+dy*dy+dz*dz <= r*r {
				s.pairs = append(s.pairs, event.TriggerEvent{A: a.id, B: b.id})
			}
		})
	}
	return s.pairs
}

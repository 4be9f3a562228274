package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is the world placement of an entity.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewTransform returns a transform at pos with identity orientation.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Orientation: mgl32.QuatIdent()}
}

// Velocity is integrated by physics. Linear is world units per second,
// Angular is radians per second around each axis.
type Velocity struct {
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
}

// Collider is the trigger volume physics overlaps against. Removed from an
// entity in the same batch that adds DeleteTag.
type Collider struct {
	Radius float32
}

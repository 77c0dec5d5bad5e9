package component

import "github.com/jakecoffman/cp"

// CharacterCollider is a collision-resolving capsule seen from above: a
// circle on the X/Z plane. Body and Shape are owned by ecs.PhysicsWorld.
type CharacterCollider struct {
	Radius  float64
	Height  float64
	Enabled bool

	Body    *cp.Body
	Shape   *cp.Shape
	InSpace bool
}

var CharacterColliderComponent = NewComponent[CharacterCollider]()

// Wall is a static box obstacle on the X/Z plane.
type Wall struct {
	HalfX float64
	HalfZ float64
	Shape *cp.Shape
}

var WallComponent = NewComponent[Wall]()

package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrol/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const defaultCharacterRadius = 0.5

// PhysicsWorld owns the Chipmunk space. The world X/Z plane maps onto the
// Chipmunk X/Y plane; world Y is never simulated.
type PhysicsWorld struct {
	space *cp.Space
}

// NewPhysicsWorld creates an empty top-down space with no gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{space: space}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

// AddWall adds a static box centered at center with the given half extents.
func (pw *PhysicsWorld) AddWall(center mgl64.Vec3, halfX, halfZ float64) *cp.Shape {
	if pw == nil || pw.space == nil || halfX <= 0 || halfZ <= 0 {
		return nil
	}
	bb := cp.BB{
		L: center.X() - halfX,
		B: center.Z() - halfZ,
		R: center.X() + halfX,
		T: center.Z() + halfZ,
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeSolid)
	return pw.space.AddShape(shape)
}

// RemoveWall removes a static shape added by AddWall.
func (pw *PhysicsWorld) RemoveWall(shape *cp.Shape) {
	if pw == nil || pw.space == nil || shape == nil {
		return
	}
	pw.space.RemoveShape(shape)
}

// AttachCharacter creates the body and shape for c at pos. The character is
// added to the space only if c.Enabled is set.
func (pw *PhysicsWorld) AttachCharacter(c *component.CharacterCollider, pos mgl64.Vec3) {
	if pw == nil || pw.space == nil || c == nil || c.Body != nil {
		return
	}
	radius := characterRadius(c)
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(toPlane(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)

	c.Body = body
	c.Shape = shape
	c.InSpace = false
	if c.Enabled {
		pw.EnableCharacter(c)
	}
}

// EnableCharacter turns collision response on for c. The flag is set even
// without a physics world.
func (pw *PhysicsWorld) EnableCharacter(c *component.CharacterCollider) {
	if c == nil {
		return
	}
	c.Enabled = true
	if pw == nil || pw.space == nil || c.Body == nil || c.InSpace {
		return
	}
	c.Body.SetVelocityVector(cp.Vector{})
	pw.space.AddBody(c.Body)
	pw.space.AddShape(c.Shape)
	c.InSpace = true
}

// DisableCharacter turns collision response off for c.
func (pw *PhysicsWorld) DisableCharacter(c *component.CharacterCollider) {
	if c == nil {
		return
	}
	c.Enabled = false
	if pw == nil || pw.space == nil || c.Body == nil || !c.InSpace {
		return
	}
	pw.space.RemoveShape(c.Shape)
	pw.space.RemoveBody(c.Body)
	c.InSpace = false
}

// TeleportCharacter places c at pos without collision and clears its velocity.
func (pw *PhysicsWorld) TeleportCharacter(c *component.CharacterCollider, pos mgl64.Vec3) {
	if c == nil || c.Body == nil {
		return
	}
	c.Body.SetPosition(toPlane(pos))
	c.Body.SetVelocityVector(cp.Vector{})
}

// MoveCharacter attempts to move c from pos by delta and returns the position
// after collisions are resolved. The Y component of delta passes through
// untouched. A disabled character does not move.
//
// The planar move is split into substeps no longer than half the character
// radius so a long move cannot carry the circle past a wall's midline. Each
// substep is one unit-time step with the substep as velocity, followed by a
// zero-velocity step that applies the solver's penetration correction.
func (pw *PhysicsWorld) MoveCharacter(c *component.CharacterCollider, pos, delta mgl64.Vec3) mgl64.Vec3 {
	if pw == nil || pw.space == nil || c == nil || c.Body == nil || !c.Enabled || !c.InSpace {
		return pos
	}

	plane := toPlane(delta)
	steps := substeps(plane.Length(), characterRadius(c))
	step := plane.Mult(1 / float64(steps))

	c.Body.SetPosition(toPlane(pos))
	for i := 0; i < steps; i++ {
		c.Body.SetVelocityVector(step)
		pw.space.Step(1.0)

		c.Body.SetVelocityVector(cp.Vector{})
		pw.space.Step(1.0)
	}
	c.Body.SetVelocityVector(cp.Vector{})

	p := c.Body.Position()
	return mgl64.Vec3{p.X, pos.Y() + delta.Y(), p.Y}
}

func characterRadius(c *component.CharacterCollider) float64 {
	if c.Radius > 0 {
		return c.Radius
	}
	return defaultCharacterRadius
}

// substeps returns how many moves of at most radius/2 cover dist.
func substeps(dist, radius float64) int {
	maxStep := radius / 2
	if dist <= maxStep || maxStep <= 0 {
		return 1
	}
	return int(math.Ceil(dist / maxStep))
}

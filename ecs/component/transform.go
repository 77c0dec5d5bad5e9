package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the owning world-space pose of an entity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()

// Orientation returns Rotation, treating the zero quaternion as identity.
func (t *Transform) Orientation() mgl64.Quat {
	if t == nil || t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos mgl64.Vec3) *Transform {
	return &Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is the visual representation attached to an entity. Its rotation is
// independent from the owning Transform so the body can turn to face travel
// direction without rotating the entity itself.
type Model struct {
	Rotation mgl64.Quat
	Visible  bool
	Radius   float64
	Color    color.NRGBA
}

var ModelComponent = NewComponent[Model]()

var DefaultModelColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// Orientation returns Rotation, treating the zero quaternion as identity.
func (m *Model) Orientation() mgl64.Quat {
	if m == nil || m.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return m.Rotation
}

package component

// Camera follows the entity named TargetName on the X/Z plane. Zoom is pixels
// per world unit.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	X          float64
	Z          float64
	Snapped    bool
}

var CameraComponent = NewComponent[Camera]()

package component

import "github.com/go-gl/mathgl/mgl64"

// SpawnPoint is the pose captured on the first frame an entity is seen:
// the owning transform position and the model rotation.
type SpawnPoint struct {
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	Initialized bool
}

var SpawnPointComponent = NewComponent[SpawnPoint]()

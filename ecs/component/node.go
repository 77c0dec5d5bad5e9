package component

import "github.com/go-gl/mathgl/mgl64"

// Node places an entity in the scene graph. Parent is an ecs.Entity handle
// (zero for roots). Local is the offset from the parent in the parent's
// rotated frame; for roots it is unused.
type Node struct {
	Name            string
	Parent          uint64
	Local           mgl64.Vec3
	HideInHierarchy bool
}

var NodeComponent = NewComponent[Node]()

package system

import "github.com/milk9111/patrol/ecs"

// HierarchySystem moves parented nodes along with their parents.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem { return &HierarchySystem{} }

func (s *HierarchySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.UpdateWorldTransforms(w)
}

package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

const PatrollerPrefab = "patroller.yaml"

func NewPatrollerAt(w *ecs.World, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	patroller, err := BuildEntity(w, PatrollerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, patroller, pos, yaw); err != nil {
		return 0, fmt.Errorf("patroller: override transform: %w", err)
	}
	return patroller, nil
}

// NewChildNode creates a named node at local offset from parent, in the
// parent's rotated frame, and parents it.
func NewChildNode(w *ecs.World, parent ecs.Entity, name string, local mgl64.Vec3) (ecs.Entity, error) {
	pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("child %q: parent %v has no transform", name, parent)
	}

	child := ecs.CreateEntity(w)
	world := pt.Position.Add(pt.Orientation().Rotate(local))
	if err := ecs.Add(w, child, component.TransformComponent.Kind(), component.NewTransform(world)); err != nil {
		return 0, fmt.Errorf("child %q: add transform: %w", name, err)
	}
	if err := ecs.Add(w, child, component.NodeComponent.Kind(), &component.Node{Name: name}); err != nil {
		return 0, fmt.Errorf("child %q: add node: %w", name, err)
	}
	if !ecs.Has(w, parent, component.NodeComponent.Kind()) {
		if err := ecs.Add(w, parent, component.NodeComponent.Kind(), &component.Node{}); err != nil {
			return 0, fmt.Errorf("child %q: add parent node: %w", name, err)
		}
	}
	if err := ecs.SetParent(w, child, parent); err != nil {
		return 0, fmt.Errorf("child %q: %w", name, err)
	}
	return child, nil
}

package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml")
}

func NewCameraAt(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	cam.X = pos.X()
	cam.Z = pos.Z()
	return camera, nil
}

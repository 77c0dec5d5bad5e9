package system

import (
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward its target on the X/Z plane. The camera
// snaps on the first frame and after the target respawns.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventPlayerRespawn) {
		if e, ok := evt.Data.(ecs.Entity); ok && e == cs.targetEntity {
			cam.Snapped = false
		}
	}

	if !cam.Snapped || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.X = target.Position.X()
		cam.Z = target.Position.Z()
		cam.Snapped = true
		return
	}
	cam.X = common.Lerp(cam.X, target.Position.X(), cam.Smoothness)
	cam.Z = common.Lerp(cam.Z, target.Position.Z(), cam.Smoothness)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	if e, ok := ecs.FindByName(w, name); ok {
		return e
	}
	return 0
}

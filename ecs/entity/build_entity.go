package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"github.com/milk9111/patrol/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":         addPlayerTag,
	"patroller_tag":      addPatrollerTag,
	"camera_tag":         addCameraTag,
	"node":               addNode,
	"player":             addPlayer,
	"patrol":             addPatrol,
	"input":              addInput,
	"transform":          addTransform,
	"model":              addModel,
	"character_collider": addCharacterCollider,
	"hazard":             addHazard,
	"wall":               addWall,
	"render_layer":       addRenderLayer,
	"camera":             addCamera,
}

// transform must be built before anything that is placed in the physics
// world.
var componentBuildOrder = []string{
	"player_tag",
	"patroller_tag",
	"camera_tag",
	"node",
	"player",
	"patrol",
	"input",
	"transform",
	"model",
	"character_collider",
	"hazard",
	"wall",
	"render_layer",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			destroyBuilt(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		destroyBuilt(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// destroyBuilt removes a partially built entity along with any physics shapes
// it already registered.
func destroyBuilt(w *ecs.World, e ecs.Entity) {
	if pw := w.PhysicsWorld(); pw != nil {
		if c, ok := ecs.Get(w, e, component.CharacterColliderComponent.Kind()); ok {
			pw.DisableCharacter(c)
		}
		if wall, ok := ecs.Get(w, e, component.WallComponent.Kind()); ok {
			pw.RemoveWall(wall.Shape)
		}
	}
	ecs.DestroyEntity(w, e)
}

// yawRotation turns a heading in degrees into a rotation about +Y.
func yawRotation(deg float64) mgl64.Quat {
	if deg == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(deg*math.Pi/180, common.Up)
}

// SetEntityTransform places e at pos facing yaw degrees and moves any physics
// shapes it owns along with it.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = component.NewTransform(pos)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	t.Rotation = yawRotation(yaw)

	pw := w.PhysicsWorld()
	if c, ok := ecs.Get(w, e, component.CharacterColliderComponent.Kind()); ok {
		pw.TeleportCharacter(c, pos)
	}
	if wall, ok := ecs.Get(w, e, component.WallComponent.Kind()); ok && pw != nil {
		pw.RemoveWall(wall.Shape)
		wall.Shape = pw.AddWall(pos, wall.HalfX, wall.HalfZ)
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPatrollerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PatrollerTagComponent.Kind(), &component.PatrollerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type nodeSpec = prefabs.NodeComponentSpec

func addNode(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[nodeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode node spec: %w", err)
	}
	return ecs.Add(w, e, component.NodeComponent.Kind(), &component.Node{Name: spec.Name})
}

type playerSpec = prefabs.PlayerComponentSpec

func playerFromSpec(spec playerSpec) component.Player {
	return component.Player{
		MoveSpeed:                 spec.MoveSpeed,
		TimeToMaxSpeed:            spec.TimeToMaxSpeed,
		TimeToLoseMaxSpeed:        spec.TimeToLoseMaxSpeed,
		ReverseMomentumMultiplier: spec.ReverseMomentumMultiplier,
		RespawnWaitTime:           spec.RespawnWaitTime,
	}
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed < 0 || spec.TimeToMaxSpeed < 0 || spec.TimeToLoseMaxSpeed < 0 || spec.RespawnWaitTime < 0 {
		return fmt.Errorf("player tuning must not be negative")
	}
	player := playerFromSpec(spec)
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &player); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.LifeComponent.Kind(), &component.Life{ControllerEnabled: true}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.InvokerComponent.Kind(), &component.Invoker{})
}

type patrolSpec = prefabs.PatrolComponentSpec

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[patrolSpec](raw)
	if err != nil {
		return fmt.Errorf("decode patrol spec: %w", err)
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{MoveSpeed: spec.MoveSpeed})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: yawRotation(spec.Yaw),
	})
}

type modelSpec = prefabs.ModelComponentSpec

func addModel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[modelSpec](raw)
	if err != nil {
		return fmt.Errorf("decode model spec: %w", err)
	}
	model := &component.Model{
		Rotation: yawRotation(spec.Yaw),
		Visible:  true,
		Radius:   spec.Radius,
		Color:    component.DefaultModelColor,
	}
	if spec.Visible != nil {
		model.Visible = *spec.Visible
	}
	if spec.Color != "" {
		c, err := prefabs.ParseColor(spec.Color)
		if err != nil {
			return fmt.Errorf("model color: %w", err)
		}
		model.Color = c
	}
	return ecs.Add(w, e, component.ModelComponent.Kind(), model)
}

type characterColliderSpec = prefabs.CharacterColliderComponentSpec

func addCharacterCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterColliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character_collider spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("character_collider radius must be positive")
	}
	c := &component.CharacterCollider{Radius: spec.Radius, Height: spec.Height, Enabled: true}
	if pw := w.PhysicsWorld(); pw != nil {
		pos := mgl64.Vec3{}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos = t.Position
		}
		pw.AttachCharacter(c, pos)
	}
	return ecs.Add(w, e, component.CharacterColliderComponent.Kind(), c)
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.HalfX <= 0 || spec.HalfZ <= 0) {
		return fmt.Errorf("hazard needs a radius or positive half extents")
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Radius: spec.Radius,
		HalfX:  spec.HalfX,
		HalfZ:  spec.HalfZ,
		Script: spec.Script,
	})
}

type wallSpec = prefabs.WallComponentSpec

func addWall(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[wallSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wall spec: %w", err)
	}
	if spec.HalfX <= 0 || spec.HalfZ <= 0 {
		return fmt.Errorf("wall half extents must be positive")
	}
	wall := &component.Wall{HalfX: spec.HalfX, HalfZ: spec.HalfZ}
	if pw := w.PhysicsWorld(); pw != nil {
		pos := mgl64.Vec3{}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos = t.Position
		}
		wall.Shape = pw.AddWall(pos, wall.HalfX, wall.HalfZ)
	}
	return ecs.Add(w, e, component.WallComponent.Kind(), wall)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: smooth,
	})
}

package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"go.uber.org/zap"
)

// MethodRespawn is the deferred call scheduled by Die.
const MethodRespawn = "respawn"

// PlayerLifeSystem captures spawn poses and turns die requests (debug key and
// hazard contacts) into deaths. Respawns are driven by the InvokeSystem.
type PlayerLifeSystem struct{}

func NewPlayerLifeSystem() *PlayerLifeSystem { return &PlayerLifeSystem{} }

func (s *PlayerLifeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind()) {
		captureSpawn(w, e)
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && input.DiePressed {
			Die(w, e)
		}
	}

	for _, evt := range w.Events().DrainType(ecs.EventHazardContact) {
		contact, ok := evt.Data.(ecs.HazardContact)
		if !ok {
			continue
		}
		if Die(w, contact.Player) {
			zap.L().Debug("player killed by hazard", zap.Stringer("entity", contact.Player), zap.Stringer("hazard", contact.Hazard))
		}
	}
}

// captureSpawn records the spawn pose the first time a player is seen.
func captureSpawn(w *ecs.World, e ecs.Entity) {
	spawn, ok := ecs.Get(w, e, component.SpawnPointComponent.Kind())
	if !ok {
		spawn = &component.SpawnPoint{}
		if err := ecs.Add(w, e, component.SpawnPointComponent.Kind(), spawn); err != nil {
			return
		}
	}
	if spawn.Initialized {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	spawn.Position = t.Position
	spawn.Rotation = mgl64.QuatIdent()
	if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		spawn.Rotation = model.Orientation()
	}
	spawn.Initialized = true
}

// Die kills a living player: velocity is cleared, the controller and collider
// are disabled, the model is hidden and a respawn is scheduled. It returns
// false if e is already dead or not a player.
func Die(w *ecs.World, e ecs.Entity) bool {
	life, ok := ecs.Get(w, e, component.LifeComponent.Kind())
	if !ok || life.Dead {
		return false
	}

	life.Dead = true
	life.ControllerEnabled = false
	life.Deaths++

	if motion, ok := ecs.Get(w, e, component.PlayerMotionComponent.Kind()); ok {
		motion.Velocity = mgl64.Vec3{}
	}
	if collider, ok := ecs.Get(w, e, component.CharacterColliderComponent.Kind()); ok {
		w.PhysicsWorld().DisableCharacter(collider)
	}
	if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		model.Visible = false
	}

	wait := 0.0
	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		wait = player.RespawnWaitTime
	}
	if err := Invoke(w, e, MethodRespawn, wait); err != nil {
		zap.L().Error("schedule respawn", zap.Stringer("entity", e), zap.Error(err))
	}

	zap.L().Info("player died", zap.Stringer("entity", e), zap.Float64("wait", wait), zap.Int("deaths", life.Deaths))
	return true
}

// Respawn restores a player to its spawn pose and brings it back to life.
// Any respawn still pending for e is cancelled.
func Respawn(w *ecs.World, e ecs.Entity) bool {
	life, ok := ecs.Get(w, e, component.LifeComponent.Kind())
	if !ok {
		return false
	}
	CancelInvoke(w, e, MethodRespawn)

	spawn, hasSpawn := ecs.Get(w, e, component.SpawnPointComponent.Kind())
	if hasSpawn && spawn.Initialized {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = spawn.Position
		}
		if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
			model.Rotation = spawn.Rotation
		}
	}

	if collider, ok := ecs.Get(w, e, component.CharacterColliderComponent.Kind()); ok {
		pw := w.PhysicsWorld()
		if hasSpawn && spawn.Initialized {
			pw.TeleportCharacter(collider, spawn.Position)
		}
		pw.EnableCharacter(collider)
	}
	if motion, ok := ecs.Get(w, e, component.PlayerMotionComponent.Kind()); ok {
		motion.Velocity = mgl64.Vec3{}
	}

	life.ControllerEnabled = true
	if model, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		model.Visible = true
	}
	life.Dead = false

	w.Events().Push(ecs.Event{Type: ecs.EventPlayerRespawn, Data: e})
	zap.L().Info("player respawned", zap.Stringer("entity", e))
	return true
}

package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

func newLifeScheduler() *ecs.Scheduler {
	inv := NewInvokeSystem()
	inv.Register(MethodRespawn, func(w *ecs.World, e ecs.Entity) { Respawn(w, e) })
	return ecs.NewScheduler(
		inv,
		NewPlayerControllerSystem(),
		NewHazardSystem(),
		NewPlayerLifeSystem(),
	)
}

func TestDie(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, mgl64.Vec3{})
	collider := addCollider(t, w, p.entity)
	motion, _ := ecs.Get(w, p.entity, component.PlayerMotionComponent.Kind())
	motion.Velocity = mgl64.Vec3{3, 0, -1}

	if !Die(w, p.entity) {
		t.Fatalf("expected first Die to succeed")
	}

	life, _ := ecs.Get(w, p.entity, component.LifeComponent.Kind())
	if !life.Dead || life.ControllerEnabled {
		t.Fatalf("expected dead with controller disabled, got %+v", life)
	}
	if motion.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("expected velocity cleared, got %v", motion.Velocity)
	}
	if collider.Enabled || collider.InSpace {
		t.Fatalf("expected collider disabled")
	}
	model, _ := ecs.Get(w, p.entity, component.ModelComponent.Kind())
	if model.Visible {
		t.Fatalf("expected model hidden")
	}
	if !IsInvoking(w, p.entity, MethodRespawn) {
		t.Fatalf("expected respawn scheduled")
	}

	if Die(w, p.entity) {
		t.Fatalf("expected second Die to be ignored")
	}
	inv, _ := ecs.Get(w, p.entity, component.InvokerComponent.Kind())
	if len(inv.Pending) != 1 {
		t.Fatalf("expected one pending respawn, got %d", len(inv.Pending))
	}
	if life.Deaths != 1 {
		t.Fatalf("expected 1 death counted, got %d", life.Deaths)
	}
}

func TestDeathRespawnCycle(t *testing.T) {
	w := ecs.NewWorld()
	spawnPos := mgl64.Vec3{2, 0, 3}
	p := addPlayer(t, w, spawnPos)
	addCollider(t, w, p.entity)
	spawnRot := common.LookRotation(mgl64.Vec3{-1, 0, 0}, common.Up)
	model, _ := ecs.Get(w, p.entity, component.ModelComponent.Kind())
	model.Rotation = spawnRot

	s := newLifeScheduler()
	input, _ := ecs.Get(w, p.entity, component.InputComponent.Kind())

	// walk away from the spawn point
	input.MoveX = 1
	step(w, s, 4)
	tr, _ := ecs.Get(w, p.entity, component.TransformComponent.Kind())
	if tr.Position == spawnPos {
		t.Fatalf("expected player to leave spawn")
	}

	input.MoveX = 0
	input.DiePressed = true
	step(w, s, 1)
	input.DiePressed = false

	life, _ := ecs.Get(w, p.entity, component.LifeComponent.Kind())
	if !life.Dead {
		t.Fatalf("expected player dead after die key")
	}

	// RespawnWaitTime is 1s: three more frames are not enough
	step(w, s, 3)
	if !life.Dead {
		t.Fatalf("respawned before wait time elapsed")
	}

	step(w, s, 1)
	if life.Dead || !life.ControllerEnabled {
		t.Fatalf("expected player alive after wait, got %+v", life)
	}
	if tr.Position != spawnPos {
		t.Fatalf("expected position restored to %v, got %v", spawnPos, tr.Position)
	}
	if model.Rotation != spawnRot {
		t.Fatalf("expected spawn rotation restored")
	}
	if !model.Visible {
		t.Fatalf("expected model visible")
	}
	collider, _ := ecs.Get(w, p.entity, component.CharacterColliderComponent.Kind())
	if !collider.Enabled || !collider.InSpace {
		t.Fatalf("expected collider enabled")
	}
	if b := collider.Body.Position(); b.X != spawnPos.X() || b.Y != spawnPos.Z() {
		t.Fatalf("expected body at spawn, got %v", b)
	}
}

func TestManualRespawnCancelsPending(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, mgl64.Vec3{})
	s := newLifeScheduler()
	step(w, s, 1)

	Die(w, p.entity)
	if !Respawn(w, p.entity) {
		t.Fatalf("expected respawn to succeed")
	}
	if IsInvoking(w, p.entity, MethodRespawn) {
		t.Fatalf("expected pending respawn cancelled")
	}

	life, _ := ecs.Get(w, p.entity, component.LifeComponent.Kind())
	step(w, s, 8)
	if life.Dead {
		t.Fatalf("expected player to stay alive")
	}
}

func TestHazardContactKillsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, mgl64.Vec3{})
	spikes := addNode(t, w, "Spikes", mgl64.Vec3{0.75, 0, 0}, 0)
	mustAdd(t, w, spikes, component.HazardComponent.Kind(), &component.Hazard{HalfX: 0.5, HalfZ: 0.5})

	step(w, newLifeScheduler(), 1)

	life, _ := ecs.Get(w, p.entity, component.LifeComponent.Kind())
	if !life.Dead {
		t.Fatalf("expected player killed by hazard")
	}
}

func TestSpawnCapturedOnce(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, mgl64.Vec3{1, 0, 1})
	s := ecs.NewScheduler(NewPlayerLifeSystem())
	step(w, s, 1)

	tr, _ := ecs.Get(w, p.entity, component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{9, 0, 9}
	step(w, s, 1)

	spawn, ok := ecs.Get(w, p.entity, component.SpawnPointComponent.Kind())
	if !ok || !spawn.Initialized {
		t.Fatalf("expected spawn captured")
	}
	if spawn.Position != (mgl64.Vec3{1, 0, 1}) {
		t.Fatalf("expected spawn at first position, got %v", spawn.Position)
	}
}

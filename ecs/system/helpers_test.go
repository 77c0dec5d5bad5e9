package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

const testDelta = 0.25

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func addNode(t *testing.T, w *ecs.World, name string, pos mgl64.Vec3, parent ecs.Entity) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), component.NewTransform(pos))
	mustAdd(t, w, e, component.NodeComponent.Kind(), &component.Node{Name: name})
	if parent != 0 {
		if err := ecs.SetParent(w, e, parent); err != nil {
			t.Fatalf("set parent: %v", err)
		}
	}
	return e
}

type testPlayer struct {
	entity ecs.Entity
	player *component.Player
}

// addPlayer creates a living player at pos with the usual component set.
func addPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec3) testPlayer {
	t.Helper()
	e := addNode(t, w, "Player", pos, 0)
	p := &component.Player{
		MoveSpeed:                 4,
		TimeToMaxSpeed:            0.5,
		TimeToLoseMaxSpeed:        1,
		ReverseMomentumMultiplier: 2,
		RespawnWaitTime:           1,
	}
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), p)
	mustAdd(t, w, e, component.PlayerMotionComponent.Kind(), &component.PlayerMotion{})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.LifeComponent.Kind(), &component.Life{ControllerEnabled: true})
	mustAdd(t, w, e, component.ModelComponent.Kind(), &component.Model{Rotation: mgl64.QuatIdent(), Visible: true, Radius: 0.5})
	return testPlayer{entity: e, player: p}
}

func addCollider(t *testing.T, w *ecs.World, e ecs.Entity) *component.CharacterCollider {
	t.Helper()
	if w.PhysicsWorld() == nil {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	c := &component.CharacterCollider{Radius: 0.5, Height: 2, Enabled: true}
	w.PhysicsWorld().AttachCharacter(c, tr.Position)
	mustAdd(t, w, e, component.CharacterColliderComponent.Kind(), c)
	return c
}

func step(w *ecs.World, s *ecs.Scheduler, frames int) {
	for i := 0; i < frames; i++ {
		w.Advance(testDelta)
		s.Update(w)
	}
}

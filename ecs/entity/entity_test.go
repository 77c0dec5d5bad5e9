package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"github.com/milk9111/patrol/ecs/system"
	"github.com/milk9111/patrol/levels"
)

func newPhysicsWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w
}

func TestBuildEntityPrefabs(t *testing.T) {
	tests := []struct {
		prefab string
		check  func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{
			prefab: PlayerPrefab,
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
					t.Fatal("expected player tag")
				}
				life, ok := ecs.Get(w, e, component.LifeComponent.Kind())
				if !ok || life.Dead || !life.ControllerEnabled {
					t.Fatalf("expected live player with controller enabled, got %+v", life)
				}
				if !ecs.Has(w, e, component.InvokerComponent.Kind()) {
					t.Fatal("expected invoker")
				}
				c, ok := ecs.Get(w, e, component.CharacterColliderComponent.Kind())
				if !ok || c.Body == nil || !c.InSpace {
					t.Fatalf("expected collider attached to physics world, got %+v", c)
				}
			},
		},
		{
			prefab: PatrollerPrefab,
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				p, ok := ecs.Get(w, e, component.PatrolComponent.Kind())
				if !ok || p.MoveSpeed <= 0 {
					t.Fatalf("expected patrol with speed, got %+v", p)
				}
				if !ecs.Has(w, e, component.HazardComponent.Kind()) {
					t.Fatal("expected patroller hazard")
				}
			},
		},
		{
			prefab: "camera.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
				if !ok || cam.Zoom <= 0 {
					t.Fatalf("expected camera with zoom, got %+v", cam)
				}
			},
		},
		{
			prefab: "spikes.yaml",
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				h, ok := ecs.Get(w, e, component.HazardComponent.Kind())
				if !ok || h.Script == "" {
					t.Fatalf("expected scripted hazard, got %+v", h)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.prefab, func(t *testing.T) {
			w := newPhysicsWorld()
			e, err := BuildEntity(w, tt.prefab)
			if err != nil {
				t.Fatalf("BuildEntity(%q): %v", tt.prefab, err)
			}
			tt.check(t, w, e)
		})
	}
}

func TestBuildEntityErrors(t *testing.T) {
	if _, err := BuildEntity(nil, PlayerPrefab); err == nil {
		t.Fatal("expected error for nil world")
	}
	if _, err := BuildEntity(ecs.NewWorld(), "missing.yaml"); err == nil {
		t.Fatal("expected error for missing prefab")
	}
	if _, err := NewWallAt(ecs.NewWorld(), mgl64.Vec3{}, 0, 1); err == nil {
		t.Fatal("expected error for zero-width wall")
	}
}

func TestNewPlayerAt(t *testing.T) {
	w := newPhysicsWorld()
	e, err := NewPlayerAt(w, mgl64.Vec3{3, 0, -2}, 90)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !tr.Position.ApproxEqual(mgl64.Vec3{3, 0, -2}) {
		t.Fatalf("unexpected position %v", tr.Position)
	}
	c, _ := ecs.Get(w, e, component.CharacterColliderComponent.Kind())
	if got := c.Body.Position(); math.Abs(got.X-3) > 1e-9 || math.Abs(got.Y+2) > 1e-9 {
		t.Fatalf("collider not moved to spawn, got %v", got)
	}
	model, _ := ecs.Get(w, e, component.ModelComponent.Kind())
	forward := model.Orientation().Rotate(mgl64.Vec3{0, 0, 1})
	if !forward.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("expected model facing +X, got %v", forward)
	}
}

func TestNewChildNode(t *testing.T) {
	w := ecs.NewWorld()
	parent, err := NewPatrollerAt(w, mgl64.Vec3{1, 0, 1}, 90)
	if err != nil {
		t.Fatalf("NewPatrollerAt: %v", err)
	}
	child, err := NewChildNode(w, parent, "Patrol Point (0)", mgl64.Vec3{0, 0, 2})
	if err != nil {
		t.Fatalf("NewChildNode: %v", err)
	}
	ct, _ := ecs.Get(w, child, component.TransformComponent.Kind())
	if !ct.Position.ApproxEqualThreshold(mgl64.Vec3{3, 0, 1}, 1e-9) {
		t.Fatalf("expected child in parent's rotated frame, got %v", ct.Position)
	}
	if p, ok := ecs.Parent(w, child); !ok || p != parent {
		t.Fatalf("expected parent %v, got %v", parent, p)
	}

	if _, err := NewChildNode(w, ecs.CreateEntity(w), "orphan", mgl64.Vec3{}); err == nil {
		t.Fatal("expected error for parent without transform")
	}
}

func TestReloadPlayerTuning(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	want := *p
	p.MoveSpeed = 99
	motion, _ := ecs.Get(w, e, component.PlayerMotionComponent.Kind())
	motion.Velocity = mgl64.Vec3{1, 0, 2}

	n, err := ReloadPlayerTuning(w)
	if err != nil {
		t.Fatalf("ReloadPlayerTuning: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 player updated, got %d", n)
	}
	if *p != want {
		t.Fatalf("expected tuning %+v, got %+v", want, *p)
	}
	if motion.Velocity != (mgl64.Vec3{1, 0, 2}) {
		t.Fatalf("velocity should survive reload, got %v", motion.Velocity)
	}
}

func TestReloadPlayerTuningKeepsLevelOverrides(t *testing.T) {
	w := newPhysicsWorld()
	lvl := &levels.Level{Name: "tuned", Entities: []levels.Entity{{
		Type:  "player",
		Props: map[string]interface{}{"move_speed": 9.0, "respawn_wait_time": 3},
	}}}
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		t.Fatal("expected a player")
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	p.TimeToMaxSpeed = 42

	if _, err := ReloadPlayerTuning(w); err != nil {
		t.Fatalf("ReloadPlayerTuning: %v", err)
	}
	want := component.Player{
		MoveSpeed:                 9,
		TimeToMaxSpeed:            0.25,
		TimeToLoseMaxSpeed:        0.15,
		ReverseMomentumMultiplier: 2,
		RespawnWaitTime:           3,
	}
	if *p != want {
		t.Fatalf("expected %+v after reload, got %+v", want, *p)
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("arena.json")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}

	w := newPhysicsWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	count := func(kind component.Kind) int { return len(w.Query(kind)) }
	if got := count(component.PlayerTagComponent.Kind()); got != 1 {
		t.Fatalf("expected 1 player, got %d", got)
	}
	if got := count(component.PatrolComponent.Kind()); got != 3 {
		t.Fatalf("expected 3 patrollers, got %d", got)
	}
	if got := count(component.WallComponent.Kind()); got != 6 {
		t.Fatalf("expected 6 walls (4 border), got %d", got)
	}
	if got := count(component.CameraComponent.Kind()); got != 1 {
		t.Fatalf("expected 1 camera, got %d", got)
	}

	guard, ok := ecs.FindByName(w, "Guard East")
	if !ok {
		t.Fatal("expected named patroller")
	}
	patrol, _ := ecs.Get(w, guard, component.PatrolComponent.Kind())
	if patrol.MoveSpeed != 4.5 {
		t.Fatalf("expected move_speed prop applied, got %v", patrol.MoveSpeed)
	}

	patrols := system.NewPatrolSystem()
	w.Advance(1.0 / 60.0)
	patrols.Update(w)
	if err := patrols.Err(); err != nil {
		t.Fatalf("patrol init: %v", err)
	}
	want := []mgl64.Vec3{{9, 0, -6}, {9, 0, 3}}
	if len(patrol.Points) != len(want) {
		t.Fatalf("expected %d points, got %v", len(want), patrol.Points)
	}
	for i := range want {
		if !patrol.Points[i].ApproxEqual(want[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], patrol.Points[i])
		}
	}

	sentry, _ := ecs.FindByName(w, "Sentry")
	if sp, _ := ecs.Get(w, sentry, component.PatrolComponent.Kind()); !sp.Idle() {
		t.Fatalf("expected childless patroller to idle, got %v", sp.Points)
	}
}

func TestLoadLevelUnknownType(t *testing.T) {
	w := ecs.NewWorld()
	lvl := &levels.Level{Name: "odd", Entities: []levels.Entity{{Type: "teapot"}}}
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("unknown types should be skipped, got %v", err)
	}
	if len(ecs.Entities(w)) != 0 {
		t.Fatalf("expected no entities, got %d", len(ecs.Entities(w)))
	}
}

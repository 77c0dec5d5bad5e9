package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs/component"
)

func newNode(t *testing.T, w *World, name string, pos mgl64.Vec3, parent Entity) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e, component.NodeComponent.Kind(), &component.Node{Name: name}); err != nil {
		t.Fatal(err)
	}
	if parent != 0 {
		if err := SetParent(w, e, parent); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func TestDescendantsDepthFirst(t *testing.T) {
	w := NewWorld()
	root := newNode(t, w, "root", mgl64.Vec3{}, 0)
	a := newNode(t, w, "a", mgl64.Vec3{1, 0, 0}, root)
	a1 := newNode(t, w, "a1", mgl64.Vec3{2, 0, 0}, a)
	b := newNode(t, w, "b", mgl64.Vec3{0, 0, 1}, root)
	newNode(t, w, "other", mgl64.Vec3{}, 0)

	got := Descendants(w, root)
	want := []Entity{root, a, a1, b}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSetParent(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, w *World)
	}{
		{
			name: "children_follow_parent",
			run: func(t *testing.T, w *World) {
				root := newNode(t, w, "root", mgl64.Vec3{1, 0, 1}, 0)
				child := newNode(t, w, "child", mgl64.Vec3{3, 0, 1}, root)

				rt, _ := Get(w, root, component.TransformComponent.Kind())
				rt.Position = mgl64.Vec3{5, 0, 5}
				UpdateWorldTransforms(w)

				ct, _ := Get(w, child, component.TransformComponent.Kind())
				if !ct.Position.ApproxEqual(mgl64.Vec3{7, 0, 5}) {
					t.Fatalf("expected child at (7,0,5), got %v", ct.Position)
				}
			},
		},
		{
			name: "detach_keeps_world_position",
			run: func(t *testing.T, w *World) {
				root := newNode(t, w, "root", mgl64.Vec3{1, 0, 1}, 0)
				child := newNode(t, w, "child", mgl64.Vec3{3, 0, 4}, root)

				if err := SetParent(w, child, 0); err != nil {
					t.Fatal(err)
				}
				rt, _ := Get(w, root, component.TransformComponent.Kind())
				rt.Position = mgl64.Vec3{-10, 0, -10}
				UpdateWorldTransforms(w)

				ct, _ := Get(w, child, component.TransformComponent.Kind())
				if ct.Position != (mgl64.Vec3{3, 0, 4}) {
					t.Fatalf("detached child moved to %v", ct.Position)
				}
				if _, ok := Parent(w, child); ok {
					t.Fatalf("expected no parent after detach")
				}
			},
		},
		{
			name: "rejects_cycle",
			run: func(t *testing.T, w *World) {
				root := newNode(t, w, "root", mgl64.Vec3{}, 0)
				child := newNode(t, w, "child", mgl64.Vec3{}, root)
				if err := SetParent(w, root, child); err == nil {
					t.Fatalf("expected cycle error")
				}
			},
		},
		{
			name: "find_by_name",
			run: func(t *testing.T, w *World) {
				newNode(t, w, "root", mgl64.Vec3{}, 0)
				want := newNode(t, w, "Player", mgl64.Vec3{}, 0)
				if got, ok := FindByName(w, "Player"); !ok || got != want {
					t.Fatalf("expected %v, got %v ok=%v", want, got, ok)
				}
				if _, ok := FindByName(w, "missing"); ok {
					t.Fatalf("expected missing name not found")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.run(t, NewWorld())
		})
	}
}

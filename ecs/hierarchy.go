package ecs

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs/component"
)

// Parent returns the scene-graph parent of e, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	node, ok := Get(w, e, component.NodeComponent.Kind())
	if !ok || node.Parent == 0 {
		return 0, false
	}
	parent := Entity(node.Parent)
	if !w.IsAlive(parent) {
		return 0, false
	}
	return parent, true
}

// Children returns the direct children of parent in creation order.
func Children(w *World, parent Entity) []Entity {
	var out []Entity
	ForEach(w, component.NodeComponent.Kind(), func(e Entity, node *component.Node) {
		if node.Parent != 0 && Entity(node.Parent) == parent {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// Descendants returns root followed by every entity below it, depth first.
func Descendants(w *World, root Entity) []Entity {
	if !w.IsAlive(root) {
		return nil
	}
	out := []Entity{root}
	for _, child := range Children(w, root) {
		out = append(out, Descendants(w, child)...)
	}
	return out
}

// SetParent reparents child under parent while keeping its world position.
// A zero parent detaches child into a root.
func SetParent(w *World, child, parent Entity) error {
	node, ok := Get(w, child, component.NodeComponent.Kind())
	if !ok {
		return fmt.Errorf("set parent: entity %v has no node", child)
	}
	t, ok := Get(w, child, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("set parent: entity %v has no transform", child)
	}

	if parent == 0 {
		node.Parent = 0
		node.Local = t.Position
		return nil
	}

	for p := parent; p != 0; {
		if p == child {
			return fmt.Errorf("set parent: %v is an ancestor of %v", child, parent)
		}
		next, ok := Parent(w, p)
		if !ok {
			break
		}
		p = next
	}

	pt, ok := Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("set parent: parent %v has no transform", parent)
	}
	node.Parent = uint64(parent)
	node.Local = pt.Orientation().Inverse().Rotate(t.Position.Sub(pt.Position))
	return nil
}

// UpdateWorldTransforms recomputes the world position of every parented node
// from its ancestors, so children follow their parent.
func UpdateWorldTransforms(w *World) {
	visited := make(map[Entity]bool)
	var resolve func(e Entity) (mgl64.Vec3, mgl64.Quat, bool)
	resolve = func(e Entity) (mgl64.Vec3, mgl64.Quat, bool) {
		t, ok := Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return mgl64.Vec3{}, mgl64.QuatIdent(), false
		}
		if visited[e] {
			return t.Position, t.Orientation(), true
		}
		visited[e] = true

		parent, ok := Parent(w, e)
		if !ok {
			return t.Position, t.Orientation(), true
		}
		pPos, pRot, ok := resolve(parent)
		if !ok {
			return t.Position, t.Orientation(), true
		}
		node, _ := Get(w, e, component.NodeComponent.Kind())
		t.Position = pPos.Add(pRot.Rotate(node.Local))
		return t.Position, t.Orientation(), true
	}

	ForEach(w, component.NodeComponent.Kind(), func(e Entity, _ *component.Node) {
		resolve(e)
	})
}

// FindByName returns the first alive entity whose node has the given name.
func FindByName(w *World, name string) (Entity, bool) {
	var found Entity
	ForEach(w, component.NodeComponent.Kind(), func(e Entity, node *component.Node) {
		if found == 0 && node.Name == name {
			found = e
		}
	})
	return found, found != 0
}

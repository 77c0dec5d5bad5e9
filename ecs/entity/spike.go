package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
)

// NewSpikesAt builds a box hazard. Zero half extents keep the prefab size.
func NewSpikesAt(w *ecs.World, pos mgl64.Vec3, halfX, halfZ float64) (ecs.Entity, error) {
	spikes, err := BuildEntity(w, "spikes.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, spikes, pos, 0); err != nil {
		return 0, fmt.Errorf("spikes: override transform: %w", err)
	}
	if h, ok := ecs.Get(w, spikes, component.HazardComponent.Kind()); ok && halfX > 0 && halfZ > 0 {
		h.HalfX = halfX
		h.HalfZ = halfZ
		h.Radius = 0
	}
	return spikes, nil
}

// NewWallAt builds a static wall box centered at pos.
func NewWallAt(w *ecs.World, pos mgl64.Vec3, halfX, halfZ float64) (ecs.Entity, error) {
	if halfX <= 0 || halfZ <= 0 {
		return 0, fmt.Errorf("wall: half extents must be positive")
	}
	wall, err := BuildEntity(w, "wall.yaml")
	if err != nil {
		return 0, err
	}
	wc, ok := ecs.Get(w, wall, component.WallComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("wall: prefab has no wall component")
	}
	wc.HalfX = halfX
	wc.HalfZ = halfZ
	if err := SetEntityTransform(w, wall, pos, 0); err != nil {
		return 0, fmt.Errorf("wall: override transform: %w", err)
	}
	return wall, nil
}

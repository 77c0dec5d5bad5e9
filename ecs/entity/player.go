package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"github.com/milk9111/patrol/prefabs"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, pos, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if model, ok := ecs.Get(w, entity, component.ModelComponent.Kind()); ok && yaw != 0 {
		model.Rotation = yawRotation(yaw)
	}
	return entity, nil
}

// ReloadPlayerTuning re-reads the player prefab and applies its movement and
// respawn tuning to every live player. Velocity and life state are kept, and
// per-level overrides are applied on top of the new prefab values.
func ReloadPlayerTuning(w *ecs.World) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(PlayerPrefab)
	if err != nil {
		return 0, fmt.Errorf("player: reload: %w", err)
	}
	raw, ok := spec.Components["player"]
	if !ok {
		return 0, fmt.Errorf("player: reload: %s has no player component", PlayerPrefab)
	}
	tuning, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("player: reload: decode: %w", err)
	}

	updated := 0
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		*p = playerFromSpec(tuning)
		if overrides, ok := ecs.Get(w, e, component.PlayerOverridesComponent.Kind()); ok {
			applyPlayerOverrides(p, overrides)
		}
		updated++
	})
	return updated, nil
}

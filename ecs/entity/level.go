package entity

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/patrol/ecs"
	"github.com/milk9111/patrol/ecs/component"
	"github.com/milk9111/patrol/levels"
	"go.uber.org/zap"
)

const borderThickness = 1.0

// LoadLevelToWorld builds every entity of lvl, its named children and the
// arena border walls.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	if lvl.Border && lvl.Width > 0 && lvl.Depth > 0 {
		if err := addBorder(world, lvl.Width, lvl.Depth); err != nil {
			return fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
	}

	for i, ent := range lvl.Entities {
		e, err := buildLevelEntity(world, ent)
		if err != nil {
			return fmt.Errorf("load level %q: entity %d (%s): %w", lvl.Name, i, ent.Type, err)
		}
		if e == 0 {
			continue
		}
		if ent.Name != "" {
			setNodeName(world, e, ent.Name)
		}
		for _, child := range ent.Children {
			if _, err := NewChildNode(world, e, child.Name, mgl64.Vec3{child.X, child.Y, child.Z}); err != nil {
				return fmt.Errorf("load level %q: entity %d (%s): %w", lvl.Name, i, ent.Type, err)
			}
		}
	}

	zap.L().Info("level loaded", zap.String("level", lvl.Name), zap.Int("entities", len(lvl.Entities)))
	return nil
}

func buildLevelEntity(world *ecs.World, ent levels.Entity) (ecs.Entity, error) {
	pos := mgl64.Vec3{ent.X, ent.Y, ent.Z}
	switch strings.ToLower(ent.Type) {
	case "player":
		e, err := NewPlayerAt(world, pos, ent.Yaw)
		if err != nil {
			return 0, err
		}
		if err := applyPlayerProps(world, e, ent.Props); err != nil {
			return 0, err
		}
		return e, nil
	case "patroller":
		e, err := NewPatrollerAt(world, pos, ent.Yaw)
		if err != nil {
			return 0, err
		}
		if p, ok := ecs.Get(world, e, component.PatrolComponent.Kind()); ok {
			if v, ok := propFloat(ent.Props, "move_speed"); ok {
				p.MoveSpeed = v
			}
		}
		return e, nil
	case "wall":
		return NewWallAt(world, pos, ent.Width/2, ent.Depth/2)
	case "hazard":
		e, err := NewSpikesAt(world, pos, ent.Width/2, ent.Depth/2)
		if err != nil {
			return 0, err
		}
		if h, ok := ecs.Get(world, e, component.HazardComponent.Kind()); ok {
			if s, ok := propString(ent.Props, "script"); ok {
				h.Script = s
			}
		}
		return e, nil
	case "camera":
		return NewCameraAt(world, pos)
	default:
		zap.L().Warn("level: unknown entity type", zap.String("type", ent.Type))
		return 0, nil
	}
}

func addBorder(world *ecs.World, width, depth float64) error {
	hw := width / 2
	hd := depth / 2
	ht := borderThickness / 2
	walls := []struct {
		center       mgl64.Vec3
		halfX, halfZ float64
	}{
		{mgl64.Vec3{0, 0, hd + ht}, hw + borderThickness, ht},
		{mgl64.Vec3{0, 0, -hd - ht}, hw + borderThickness, ht},
		{mgl64.Vec3{hw + ht, 0, 0}, ht, hd},
		{mgl64.Vec3{-hw - ht, 0, 0}, ht, hd},
	}
	for _, wall := range walls {
		if _, err := NewWallAt(world, wall.center, wall.halfX, wall.halfZ); err != nil {
			return fmt.Errorf("border: %w", err)
		}
	}
	return nil
}

func setNodeName(world *ecs.World, e ecs.Entity, name string) {
	if node, ok := ecs.Get(world, e, component.NodeComponent.Kind()); ok {
		node.Name = name
		return
	}
	_ = ecs.Add(world, e, component.NodeComponent.Kind(), &component.Node{Name: name})
}

var playerPropKeys = []string{
	"move_speed",
	"time_to_max_speed",
	"time_to_lose_max_speed",
	"reverse_momentum_multiplier",
	"respawn_wait_time",
}

// applyPlayerProps records the numeric player props as overrides on e and
// applies them to its Player component.
func applyPlayerProps(world *ecs.World, e ecs.Entity, props map[string]interface{}) error {
	values := make(map[string]float64)
	for _, key := range playerPropKeys {
		if v, ok := propFloat(props, key); ok {
			values[key] = v
		}
	}
	if len(values) == 0 {
		return nil
	}
	overrides := &component.PlayerOverrides{Values: values}
	if err := ecs.Add(world, e, component.PlayerOverridesComponent.Kind(), overrides); err != nil {
		return fmt.Errorf("player overrides: %w", err)
	}
	if p, ok := ecs.Get(world, e, component.PlayerComponent.Kind()); ok {
		applyPlayerOverrides(p, overrides)
	}
	return nil
}

func applyPlayerOverrides(p *component.Player, overrides *component.PlayerOverrides) {
	for key, v := range overrides.Values {
		switch key {
		case "move_speed":
			p.MoveSpeed = v
		case "time_to_max_speed":
			p.TimeToMaxSpeed = v
		case "time_to_lose_max_speed":
			p.TimeToLoseMaxSpeed = v
		case "reverse_momentum_multiplier":
			p.ReverseMomentumMultiplier = v
		case "respawn_wait_time":
			p.RespawnWaitTime = v
		}
	}
}

func propFloat(props map[string]interface{}, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func propString(props map[string]interface{}, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

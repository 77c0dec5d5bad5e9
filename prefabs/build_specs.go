package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed                 float64 `yaml:"move_speed"`
	TimeToMaxSpeed            float64 `yaml:"time_to_max_speed"`
	TimeToLoseMaxSpeed        float64 `yaml:"time_to_lose_max_speed"`
	ReverseMomentumMultiplier float64 `yaml:"reverse_momentum_multiplier"`
	RespawnWaitTime           float64 `yaml:"respawn_wait_time"`
}

type PatrolComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	// Yaw is the heading in degrees, measured from +Z toward +X.
	Yaw float64 `yaml:"yaw"`
}

type ModelComponentSpec struct {
	Radius  float64 `yaml:"radius"`
	Color   string  `yaml:"color"`
	Visible *bool   `yaml:"visible"`
	Yaw     float64 `yaml:"yaw"`
}

type CharacterColliderComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type HazardComponentSpec struct {
	Radius float64 `yaml:"radius"`
	HalfX  float64 `yaml:"half_x"`
	HalfZ  float64 `yaml:"half_z"`
	Script string  `yaml:"script"`
}

type WallComponentSpec struct {
	HalfX float64 `yaml:"half_x"`
	HalfZ float64 `yaml:"half_z"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type NodeComponentSpec struct {
	Name string `yaml:"name"`
}

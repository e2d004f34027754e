package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and unmarshals one prefab document.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type HitboxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MovementSpec struct {
	BaseSpeed        float64 `yaml:"base_speed"`
	SpeedBoostFactor float64 `yaml:"speed_boost_factor"`
	Accel            float64 `yaml:"accel"`
	GroundFriction   float64 `yaml:"ground_friction"`
	GroundDecel      float64 `yaml:"ground_decel"`
	AirResistance    float64 `yaml:"air_resistance"`
	Gravity          float64 `yaml:"gravity"`
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	JumpPower        float64 `yaml:"jump_power"`
	DeadZone         float64 `yaml:"dead_zone"`
}

type HealthSpec struct {
	Max               int     `yaml:"max"`
	InvulnerabilityMS float64 `yaml:"invulnerability_ms"`
	SpawnGraceFrames  int     `yaml:"spawn_grace_frames"`
}

// PlayerSpec is the player prefab: spawn transform, hitbox, movement tuning,
// and health configuration.
type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Hitbox   HitboxSpec   `yaml:"hitbox"`
	Movement MovementSpec `yaml:"movement"`
	Health   HealthSpec   `yaml:"health"`
}

// LoadPlayerSpec loads and validates player.yaml. Zero or missing tuning
// values are an error rather than a silently dead character.
func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Movement.BaseSpeed <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: base_speed must be positive, got %v", spec.Movement.BaseSpeed)
	}
	if spec.Movement.Gravity <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: gravity must be positive, got %v", spec.Movement.Gravity)
	}
	if spec.Movement.JumpPower >= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: jump_power must be negative (screen-down y), got %v", spec.Movement.JumpPower)
	}
	if spec.Health.Max <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: health max must be positive, got %d", spec.Health.Max)
	}
	return &spec, nil
}

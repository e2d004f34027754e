package entity

import (
	"fmt"

	"golang.org/x/image/colornames"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/prefabs"
)

// NewPlayer builds the player entity from its prefab at the given spawn
// point. The spawn is validated by the character component; a corrupt level
// spawn falls back to a safe default rather than failing the build.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, spawnX, spawnY float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil prefab spec")
	}

	e := ecs.CreateEntity(w)

	ch := component.NewCharacter(spawnX, spawnY, spec.Hitbox.Width, spec.Hitbox.Height)
	if err := ecs.Add(w, e, component.CharacterComponent, ch); err != nil {
		return 0, fmt.Errorf("player: add character: %w", err)
	}

	tr := &component.Transform{X: ch.SpawnX, Y: ch.SpawnY, ScaleX: 1, ScaleY: 1}
	if err := ecs.Add(w, e, component.TransformComponent, tr); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	m := spec.Movement
	tune := &component.Player{
		BaseSpeed:        m.BaseSpeed,
		SpeedBoostFactor: m.SpeedBoostFactor,
		Accel:            m.Accel,
		GroundFriction:   m.GroundFriction,
		GroundDecel:      m.GroundDecel,
		AirResistance:    m.AirResistance,
		Gravity:          m.Gravity,
		MaxFallSpeed:     m.MaxFallSpeed,
		JumpPower:        m.JumpPower,
		DeadZone:         m.DeadZone,

		InvulnerabilityMS: spec.Health.InvulnerabilityMS,
		SpawnGraceFrames:  spec.Health.SpawnGraceFrames,
		MaxHealth:         spec.Health.Max,

		Width:  ch.Width,
		Height: ch.Height,
	}
	if err := ecs.Add(w, e, component.PlayerComponent, tune); err != nil {
		return 0, fmt.Errorf("player: add tuning: %w", err)
	}

	for _, err := range []error{
		ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}),
		ecs.Add(w, e, component.InputComponent, &component.Input{}),
		ecs.Add(w, e, component.JumpComponent, component.NewJump()),
		ecs.Add(w, e, component.DashComponent, &component.Dash{}),
		ecs.Add(w, e, component.HealthComponent, component.NewHealth(tune.MaxHealth, tune.InvulnerabilityMS, tune.SpawnGraceFrames)),
		ecs.Add(w, e, component.UpgradesComponent, &component.Upgrades{}),
		ecs.Add(w, e, component.ScoreComponent, &component.Score{}),
		ecs.Add(w, e, component.SpriteComponent, &component.Sprite{Image: placeholderSprite(int(ch.Width), int(ch.Height), colornames.Mediumspringgreen)}),
		ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: 10}),
	} {
		if err != nil {
			return 0, fmt.Errorf("player: add components: %w", err)
		}
	}

	return e, nil
}

// NewCamera builds the camera entity starting centered on the spawn.
func NewCamera(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent, &component.Camera{X: x, Y: y, Zoom: 1, Smoothness: 0.15}); err != nil {
		return 0, fmt.Errorf("camera: add component: %w", err)
	}
	return e, nil
}

package system

import (
	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

// RespawnSystem restarts the run for a dead player: back to the validated
// spawn point with zero velocity, full health, fresh spawn grace, and clean
// jump and dash state. It runs after the character controller so the death
// event for the frame has already been emitted.
type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerTagComponent, func(e ecs.Entity, _ *component.PlayerTag) {
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok || hp.Current > 0 {
			return
		}

		ch, ok := ecs.Get(w, e, component.CharacterComponent)
		if !ok {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		t.X = ch.SpawnX
		t.Y = ch.SpawnY
		ch.VX, ch.VY = 0, 0
		ch.Grounded = false
		ch.Facing = component.FacingRight

		if jp, ok := ecs.Get(w, e, component.JumpComponent); ok {
			*jp = *component.NewJump()
		}
		if ds, ok := ecs.Get(w, e, component.DashComponent); ok {
			*ds = component.Dash{}
		}
		hp.Reset()
	})
}

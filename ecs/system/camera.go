package system

import (
	"github.com/milk9111/coderunner/common"
	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

// CameraSystem eases the camera toward the player each frame. The camera
// centers on the player's hitbox and never leaves the level bounds.
type CameraSystem struct {
	viewW, viewH   float64
	levelW, levelH float64
}

func NewCameraSystem(viewW, viewH, levelW, levelH float64) *CameraSystem {
	return &CameraSystem{viewW: viewW, viewH: viewH, levelW: levelW, levelH: levelH}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEntity, ok := ecs.First(w, component.CameraComponent)
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent)
	if !ok {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}
	ch, _ := ecs.Get(w, player, component.CharacterComponent)

	targetX := t.X - cs.viewW/2
	targetY := t.Y - cs.viewH/2
	if ch != nil {
		targetX += ch.Width / 2
		targetY += ch.Height / 2
	}
	targetX = common.Clamp(targetX, 0, cs.levelW-cs.viewW)
	targetY = common.Clamp(targetY, 0, cs.levelH-cs.viewH)

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 0.15
	}
	cam.X = common.Lerp(cam.X, targetX, smooth)
	cam.Y = common.Lerp(cam.Y, targetY, smooth)
}

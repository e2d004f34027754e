package system

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY := 0.0, 0.0
	if camEntity, ok := ecs.First(w, component.CameraComponent); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent); ok {
			camX = cam.X
			camY = cam.Y
		}
	}

	entities := w.Query(component.TransformComponent.ID(), component.SpriteComponent.ID())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent)
		if !ok || s.Image == nil {
			continue
		}

		x := t.X + s.OffsetX
		y := t.Y + s.OffsetY

		if hz, ok := ecs.Get(w, e, component.HazardComponent); ok {
			if !hz.Active {
				continue
			}
			x += hz.OffsetX
			y += hz.OffsetY
		}

		if hp, ok := ecs.Get(w, e, component.HealthComponent); ok && hp.Invulnerability.Active() {
			// blink during i-frames, ~8 Hz
			if int(math.Floor(w.Time()*8))%2 == 0 {
				continue
			}
		}

		op := &ebiten.DrawImageOptions{}

		flip := s.FlipX
		if ch, ok := ecs.Get(w, e, component.CharacterComponent); ok {
			flip = ch.Facing == component.FacingLeft
		}
		if flip {
			bounds := s.Image.Bounds()
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(bounds.Dx()), 0)
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x-camX, y-camY)
		screen.DrawImage(s.Image, op)
	}
}

package entity

import (
	"fmt"

	"golang.org/x/image/colornames"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/levels"
	"github.com/milk9111/coderunner/physics"
)

// PhaseResolver turns a hazard script name into a physics-side evaluator.
// The hazard phase system provides the live implementation.
type PhaseResolver func(script string) physics.PhaseFunc

// BuildLevel populates the world and the physics space from a level
// document: solid geometry, hazard volumes, and collectibles, each mirrored
// as a renderable entity linked to its physics registration.
func BuildLevel(w *ecs.World, pw *physics.World, lvl *levels.Level, phase PhaseResolver) error {
	if w == nil || pw == nil || lvl == nil {
		return fmt.Errorf("build level: nil world or level")
	}

	for _, s := range lvl.Solids {
		pw.AddSolid(s.X, s.Y, s.Width, s.Height)

		e := ecs.CreateEntity(w)
		if err := addStatic(w, e, s.X, s.Y, 0); err != nil {
			return fmt.Errorf("build level: solid: %w", err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
			Image: placeholderSprite(int(s.Width), int(s.Height), colornames.Dimgray),
		}); err != nil {
			return fmt.Errorf("build level: solid sprite: %w", err)
		}
	}

	for _, h := range lvl.Hazards {
		var fn physics.PhaseFunc
		if h.Script != "" && phase != nil {
			fn = phase(h.Script)
		}
		id := pw.AddHazard(component.HazardKind(h.Kind), h.X, h.Y, h.Width, h.Height, fn)

		e := ecs.CreateEntity(w)
		if err := addStatic(w, e, h.X, h.Y, 5); err != nil {
			return fmt.Errorf("build level: hazard %s: %w", h.Kind, err)
		}
		hz := &component.Hazard{
			Kind:   component.HazardKind(h.Kind),
			Width:  h.Width,
			Height: h.Height,
			BaseX:  h.X,
			BaseY:  h.Y,
			Script: h.Script,
			Active: true,
			PhysID: id,
		}
		if err := ecs.Add(w, e, component.HazardComponent, hz); err != nil {
			return fmt.Errorf("build level: hazard %s: %w", h.Kind, err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
			Image: placeholderSprite(int(h.Width), int(h.Height), hazardColor(h.Kind)),
		}); err != nil {
			return fmt.Errorf("build level: hazard %s sprite: %w", h.Kind, err)
		}
	}

	for _, c := range lvl.Collectibles {
		id := pw.AddCollectible(c.Kind, c.X, c.Y, c.Width, c.Height, c.Points)

		e := ecs.CreateEntity(w)
		if err := addStatic(w, e, c.X, c.Y, 3); err != nil {
			return fmt.Errorf("build level: collectible %s: %w", c.Kind, err)
		}
		col := &component.Collectible{
			Kind:   c.Kind,
			Points: c.Points,
			Width:  c.Width,
			Height: c.Height,
			PhysID: id,
		}
		if err := ecs.Add(w, e, component.CollectibleComponent, col); err != nil {
			return fmt.Errorf("build level: collectible %s: %w", c.Kind, err)
		}
		if err := ecs.Add(w, e, component.HoverComponent, &component.Hover{BaseY: c.Y, Phase: float64(id%4) * 0.2}); err != nil {
			return fmt.Errorf("build level: collectible %s hover: %w", c.Kind, err)
		}
		if err := ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
			Image: placeholderSprite(int(c.Width), int(c.Height), collectibleColor(c.Points)),
		}); err != nil {
			return fmt.Errorf("build level: collectible %s sprite: %w", c.Kind, err)
		}
	}

	return nil
}

func addStatic(w *ecs.World, e ecs.Entity, x, y float64, layer int) error {
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: layer})
}

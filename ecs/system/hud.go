package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

const (
	heartSize    = 10
	heartPadding = 4
	hudMargin    = 10
)

// HUDSystem draws run state in screen space: health hearts, collected
// points, and the dash cooldown bar.
type HUDSystem struct {
	heartFull  *ebiten.Image
	heartEmpty *ebiten.Image
	barFill    *ebiten.Image
}

func NewHUDSystem() *HUDSystem {
	full := ebiten.NewImage(heartSize, heartSize)
	full.Fill(colornames.Crimson)
	empty := ebiten.NewImage(heartSize, heartSize)
	empty.Fill(color.RGBA{R: 60, G: 20, B: 26, A: 255})
	fill := ebiten.NewImage(1, 4)
	fill.Fill(colornames.Skyblue)
	return &HUDSystem{heartFull: full, heartEmpty: empty, barFill: fill}
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}

	hp, ok := ecs.Get(w, player, component.HealthComponent)
	if ok {
		for i := 0; i < hp.Max; i++ {
			img := h.heartEmpty
			if i < hp.Current {
				img = h.heartFull
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(hudMargin+i*(heartSize+heartPadding)), hudMargin)
			screen.DrawImage(img, op)
		}
	}

	if sc, ok := ecs.Get(w, player, component.ScoreComponent); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Items: %d", sc.Points, sc.Items), hudMargin, hudMargin+heartSize+6)
	}

	ds, ok := ecs.Get(w, player, component.DashComponent)
	if !ok || ds.RemainingCooldownMS <= 0 {
		return
	}
	total := component.BasicDashParams.CooldownMS
	if up, ok := ecs.Get(w, player, component.UpgradesComponent); ok {
		if p, ok := component.DashTierParams(up.DashModuleTier); ok {
			total = p.CooldownMS
		}
	}
	if total <= 0 {
		return
	}
	frac := 1.0 - ds.RemainingCooldownMS/total
	if frac < 0 {
		frac = 0
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(60*frac, 1)
	op.GeoM.Translate(hudMargin, float64(hudMargin+heartSize+24))
	screen.DrawImage(h.barFill, op)
}

package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Placeholder sprites are flat color rects until real art lands.
func placeholderSprite(w, h int, c color.Color) *ebiten.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

var hazardColors = map[string]color.Color{
	"spike":   colornames.Orangered,
	"saw":     colornames.Silver,
	"laser":   colornames.Red,
	"crusher": colornames.Darkslategray,
}

func hazardColor(kind string) color.Color {
	if c, ok := hazardColors[kind]; ok {
		return c
	}
	return colornames.Orangered
}

func collectibleColor(points int) color.Color {
	if points == 0 {
		// zero-point items are ability pickups
		return colornames.Violet
	}
	return colornames.Gold
}

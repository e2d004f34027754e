package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite stores render data. Images are generated placeholders or loaded
// assets; rendering centers the image on the entity's hitbox when the sizes
// differ.
type Sprite struct {
	Image   *ebiten.Image
	OffsetX float64
	OffsetY float64
	FlipX   bool
}

var SpriteComponent = NewComponent[Sprite]()

// RenderLayer orders sprite drawing; higher indexes draw later.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// Camera follows a target transform with smoothing.
type Camera struct {
	X          float64
	Y          float64
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()

// TTL destroys an entity after a number of update ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()

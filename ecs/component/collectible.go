package component

// Collectible is an item the character picks up on overlap.
type Collectible struct {
	Kind   string
	Points int
	Width  float64
	Height float64

	// PhysID links this entity to its item in the physics world.
	PhysID int
}

var CollectibleComponent = NewComponent[Collectible]()

// Hover makes an entity bob around its anchor. The hover system drives the
// motion with a tween and writes the offset back here.
type Hover struct {
	Amplitude float64
	Period    float64 // seconds for one up-or-down sweep
	BaseY     float64
	Phase     float64 // initial offset in seconds, desynchronizes neighbors
}

var HoverComponent = NewComponent[Hover]()

// Score accumulates collected points for the run.
type Score struct {
	Points int
	Items  int
}

var ScoreComponent = NewComponent[Score]()

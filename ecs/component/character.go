package component

import "math"

// Facing is the horizontal direction the character faces.
type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Character stores the player's physical state outside of position, which
// lives on Transform. The hitbox is intentionally smaller than the rendered
// sprite. SpawnX/SpawnY are the validated respawn coordinates used both on
// death and when NaN corruption is detected.
type Character struct {
	VX       float64
	VY       float64
	Facing   Facing
	Grounded bool

	Width  float64
	Height float64

	SpawnX float64
	SpawnY float64
}

var CharacterComponent = NewComponent[Character]()

const (
	defaultSpawnX = 64
	defaultSpawnY = 64
)

// NewCharacter creates a character anchored at a validated spawn point.
// NaN or infinite spawn coordinates fall back to a safe default so a corrupt
// level file can never poison every later frame.
func NewCharacter(spawnX, spawnY, width, height float64) *Character {
	if !validCoord(spawnX) || !validCoord(spawnY) {
		spawnX = defaultSpawnX
		spawnY = defaultSpawnY
	}
	if width <= 0 || !validCoord(width) {
		width = 24
	}
	if height <= 0 || !validCoord(height) {
		height = 40
	}
	return &Character{
		Facing: FacingRight,
		Width:  width,
		Height: height,
		SpawnX: spawnX,
		SpawnY: spawnY,
	}
}

// Validate repairs NaN or infinite position/velocity in place, resetting to
// the spawn point with zero velocity. It returns true when a repair happened.
// NaN must never propagate: it silently corrupts downstream collision math.
func (c *Character) Validate(t *Transform) bool {
	if c == nil || t == nil {
		return false
	}
	repaired := false
	if !validCoord(t.X) || !validCoord(t.Y) {
		t.X = c.SpawnX
		t.Y = c.SpawnY
		repaired = true
	}
	if !validCoord(c.VX) || !validCoord(c.VY) {
		c.VX = 0
		c.VY = 0
		repaired = true
	}
	return repaired
}

func validCoord(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

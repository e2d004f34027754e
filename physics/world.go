// Package physics answers collision, hazard, and collectible queries against
// level geometry. Solid geometry lives in a chipmunk space as static box
// shapes so overlap tests ride on the space's spatial index; movement is
// resolved axis-separated in sub-unit steps so a fast character can never
// tunnel through a one-unit wall.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/coderunner/ecs/component"
)

// TileType classifies what a collision query hit.
type TileType int

const (
	TileNone TileType = iota
	TileSolid
)

// CollisionResult is the answer to a single collision probe.
type CollisionResult struct {
	Collided bool
	Tile     TileType
}

// Body is the axis-aligned view of a character that movement resolution
// works on. X/Y is the hitbox top-left.
type Body struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Grounded bool
}

// PhaseFunc evaluates a scripted hazard at a game time, returning whether
// the volume is live and its offset from the anchor.
type PhaseFunc func(t float64) (active bool, dx, dy float64)

// HazardHit reports the first hazard volume overlapping the character.
type HazardHit struct {
	Kind component.HazardKind
	X, Y float64
}

// CollectibleHit is one collectible overlapping the character.
type CollectibleHit struct {
	ID     int
	Kind   string
	X, Y   float64
	Points int
}

type hazardVolume struct {
	kind  component.HazardKind
	x, y  float64
	w, h  float64
	phase PhaseFunc
}

type collectibleItem struct {
	kind      string
	x, y      float64
	w, h      float64
	points    int
	collected bool
}

// World holds the level's collision space and the hazard/collectible
// registries. It is not safe for concurrent use; the game loop is
// single-threaded by design.
type World struct {
	space  *cp.Space
	width  float64
	height float64

	// ids iterate in registration order so overlapping volumes always
	// resolve to the same hit
	hazards        map[int]*hazardVolume
	hazardIDs      []int
	collectibles   map[int]*collectibleItem
	collectibleIDs []int
	nextID         int
}

// NewWorld creates an empty collision world with the given level bounds.
func NewWorld(width, height float64) *World {
	return &World{
		space:        cp.NewSpace(),
		width:        width,
		height:       height,
		hazards:      map[int]*hazardVolume{},
		collectibles: map[int]*collectibleItem{},
	}
}

// Bounds returns the level extents.
func (w *World) Bounds() (width, height float64) {
	if w == nil {
		return 0, 0
	}
	return w.width, w.height
}

// AddSolid registers a static solid box.
func (w *World) AddSolid(x, y, wd, ht float64) {
	if w == nil || wd <= 0 || ht <= 0 {
		return
	}
	bb := cp.BB{L: x, B: y, R: x + wd, T: y + ht}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.UserData = TileSolid
	w.space.AddShape(shape)
}

// AddHazard registers a hazard volume and returns its id. A nil phase means
// the hazard is static and always live.
func (w *World) AddHazard(kind component.HazardKind, x, y, wd, ht float64, phase PhaseFunc) int {
	if w == nil {
		return 0
	}
	w.nextID++
	w.hazards[w.nextID] = &hazardVolume{kind: kind, x: x, y: y, w: wd, h: ht, phase: phase}
	w.hazardIDs = append(w.hazardIDs, w.nextID)
	return w.nextID
}

// SetHazardPhase swaps the phase function of a registered hazard, used when
// scripts hot-reload.
func (w *World) SetHazardPhase(id int, phase PhaseFunc) {
	if w == nil {
		return
	}
	if hz, ok := w.hazards[id]; ok {
		hz.phase = phase
	}
}

// AddCollectible registers a collectible volume and returns its id.
func (w *World) AddCollectible(kind string, x, y, wd, ht float64, points int) int {
	if w == nil {
		return 0
	}
	w.nextID++
	w.collectibles[w.nextID] = &collectibleItem{kind: kind, x: x, y: y, w: wd, h: ht, points: points}
	w.collectibleIDs = append(w.collectibleIDs, w.nextID)
	return w.nextID
}

// Collect marks a collectible as taken so later queries skip it.
func (w *World) Collect(id int) {
	if w == nil {
		return
	}
	if c, ok := w.collectibles[id]; ok {
		c.collected = true
	}
}

// shrink insets probe boxes so resting contact with a neighboring tile does
// not read as a collision.
const probeInset = 0.05

// CheckCollision probes the hitbox displaced by axisOffset along one axis.
func (w *World) CheckCollision(x, y, wd, ht, axisOffset float64, vertical bool) CollisionResult {
	if w == nil {
		return CollisionResult{}
	}
	if vertical {
		y += axisOffset
	} else {
		x += axisOffset
	}
	return w.probe(x, y, wd, ht)
}

func (w *World) probe(x, y, wd, ht float64) CollisionResult {
	if w == nil || w.space == nil {
		return CollisionResult{}
	}
	bb := cp.BB{
		L: x + probeInset,
		B: y + probeInset,
		R: x + wd - probeInset,
		T: y + ht - probeInset,
	}
	result := CollisionResult{}
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if result.Collided {
			return
		}
		tile, _ := shape.UserData.(TileType)
		if tile == TileNone {
			tile = TileSolid
		}
		result = CollisionResult{Collided: true, Tile: tile}
	}, nil)
	return result
}

// maxSweepStep bounds a single movement increment; anything larger could
// skip a thin wall between probes.
const maxSweepStep = 1.0

// MoveHorizontal advances the body horizontally by vx*dt, stopping at the
// first solid contact and zeroing vx there.
func (w *World) MoveHorizontal(b *Body, dtMS float64) {
	if w == nil || b == nil {
		return
	}
	dx := b.VX * dtMS / 1000.0
	if dx == 0 {
		return
	}
	sign := 1.0
	if dx < 0 {
		sign = -1
	}
	remaining := math.Abs(dx)
	for remaining > 0 {
		step := math.Min(maxSweepStep, remaining)
		if w.probe(b.X+sign*step, b.Y, b.W, b.H).Collided {
			b.VX = 0
			return
		}
		b.X += sign * step
		remaining -= step
	}
}

// groundProbe is how far below the hitbox the grounded check looks.
const groundProbe = 1.0

// MoveVertical advances the body vertically by vy*dt, stopping at the first
// solid contact. Downward contact zeroes vy; after resolution the grounded
// flag is refreshed with a short probe below the body so standing still
// stays grounded.
func (w *World) MoveVertical(b *Body, dtMS float64) {
	if w == nil || b == nil {
		return
	}
	dy := b.VY * dtMS / 1000.0
	if dy != 0 {
		sign := 1.0
		if dy < 0 {
			sign = -1
		}
		remaining := math.Abs(dy)
		for remaining > 0 {
			step := math.Min(maxSweepStep, remaining)
			if w.probe(b.X, b.Y+sign*step, b.W, b.H).Collided {
				b.VY = 0
				break
			}
			b.Y += sign * step
			remaining -= step
		}
	}
	b.Grounded = w.probe(b.X, b.Y+groundProbe, b.W, b.H).Collided
}

// outOfBoundsMargin is how far past the level edge still counts as inside.
const outOfBoundsMargin = 64.0

// CheckHazards returns the first hazard overlapping the body at the given
// game time. Falling below the level reports a fall; leaving the playfield
// sideways or far above reports out-of-bounds. Both are lethal kinds.
func (w *World) CheckHazards(b *Body, now float64) (HazardHit, bool) {
	if w == nil || b == nil {
		return HazardHit{}, false
	}

	if b.Y > w.height+outOfBoundsMargin {
		return HazardHit{Kind: component.HazardFall, X: b.X, Y: b.Y}, true
	}
	if b.X+b.W < -outOfBoundsMargin || b.X > w.width+outOfBoundsMargin || b.Y+b.H < -outOfBoundsMargin {
		return HazardHit{Kind: component.HazardOutOfBounds, X: b.X, Y: b.Y}, true
	}

	for _, id := range w.hazardIDs {
		hz := w.hazards[id]
		x, y := hz.x, hz.y
		if hz.phase != nil {
			active, dx, dy := hz.phase(now)
			if !active {
				continue
			}
			x += dx
			y += dy
		}
		if overlaps(b.X, b.Y, b.W, b.H, x, y, hz.w, hz.h) {
			return HazardHit{Kind: hz.kind, X: x + hz.w/2, Y: y + hz.h/2}, true
		}
	}
	return HazardHit{}, false
}

// CheckCollectibles returns all uncollected items overlapping the box.
func (w *World) CheckCollectibles(x, y, wd, ht float64) []CollectibleHit {
	if w == nil {
		return nil
	}
	var hits []CollectibleHit
	for _, id := range w.collectibleIDs {
		c := w.collectibles[id]
		if c.collected {
			continue
		}
		if overlaps(x, y, wd, ht, c.x, c.y, c.w, c.h) {
			hits = append(hits, CollectibleHit{ID: id, Kind: c.kind, X: c.x, Y: c.y, Points: c.points})
		}
	}
	return hits
}

func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

package physics

import (
	"testing"

	"github.com/milk9111/coderunner/ecs/component"
)

func TestCheckCollision(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddSolid(100, 100, 32, 32)

	tests := []struct {
		name       string
		x, y       float64
		offset     float64
		vertical   bool
		wantHit    bool
	}{
		{name: "overlapping solid", x: 110, y: 110, wantHit: true},
		{name: "clear of solid", x: 10, y: 10, wantHit: false},
		{name: "horizontal offset into solid", x: 60, y: 110, offset: 50, wantHit: true},
		{name: "vertical offset into solid", x: 110, y: 60, offset: 50, vertical: true, wantHit: true},
		{name: "touching edge does not collide", x: 68, y: 100, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := w.CheckCollision(tt.x, tt.y, 32, 32, tt.offset, tt.vertical)
			if res.Collided != tt.wantHit {
				t.Errorf("CheckCollision() collided = %v, want %v", res.Collided, tt.wantHit)
			}
			if tt.wantHit && res.Tile != TileSolid {
				t.Errorf("CheckCollision() tile = %v, want TileSolid", res.Tile)
			}
		})
	}
}

func TestMoveHorizontalStopsAtWall(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddSolid(200, 0, 32, 480)

	b := &Body{X: 100, Y: 100, W: 24, H: 40, VX: 600}
	w.MoveHorizontal(b, 1000)

	if b.VX != 0 {
		t.Errorf("vx = %v, want 0 after wall contact", b.VX)
	}
	if b.X+b.W > 200+probeInset {
		t.Errorf("body pushed into wall, x = %v", b.X)
	}
	if b.X < 170 {
		t.Errorf("body stopped short of wall, x = %v", b.X)
	}
}

func TestMoveHorizontalFreeMovement(t *testing.T) {
	w := NewWorld(640, 480)

	b := &Body{X: 100, Y: 100, W: 24, H: 40, VX: 120}
	w.MoveHorizontal(b, 500)

	if got, want := b.X, 160.0; got != want {
		t.Errorf("x = %v, want %v", got, want)
	}
	if b.VX != 120 {
		t.Errorf("vx = %v, want unchanged 120", b.VX)
	}
}

func TestMoveVerticalLandsOnFloor(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddSolid(0, 300, 640, 32)

	b := &Body{X: 100, Y: 100, W: 24, H: 40, VY: 400}
	w.MoveVertical(b, 1000)

	if b.VY != 0 {
		t.Errorf("vy = %v, want 0 after floor contact", b.VY)
	}
	if !b.Grounded {
		t.Error("body should be grounded after landing")
	}
	if b.Y+b.H > 300+probeInset {
		t.Errorf("body sank into floor, y = %v", b.Y)
	}
}

func TestMoveVerticalStandingStaysGrounded(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddSolid(0, 300, 640, 32)

	b := &Body{X: 100, Y: 260, W: 24, H: 40}
	w.MoveVertical(b, 16)

	if !b.Grounded {
		t.Error("stationary body resting on floor should stay grounded")
	}
}

func TestMoveVerticalBumpsHead(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddSolid(0, 50, 640, 32)

	b := &Body{X: 100, Y: 100, W: 24, H: 40, VY: -400}
	w.MoveVertical(b, 1000)

	if b.VY != 0 {
		t.Errorf("vy = %v, want 0 after ceiling contact", b.VY)
	}
	if b.Grounded {
		t.Error("body should not be grounded after hitting ceiling")
	}
}

func TestCheckHazards(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddHazard(component.HazardSpike, 100, 260, 32, 32, nil)
	w.AddHazard(component.HazardLaser, 300, 100, 8, 200, func(t float64) (bool, float64, float64) {
		return t >= 1.0, 0, 0
	})

	tests := []struct {
		name     string
		b        Body
		now      float64
		wantHit  bool
		wantKind component.HazardKind
	}{
		{name: "overlapping spike", b: Body{X: 110, Y: 250, W: 24, H: 40}, wantHit: true, wantKind: component.HazardSpike},
		{name: "clear of hazards", b: Body{X: 10, Y: 10, W: 24, H: 40}, wantHit: false},
		{name: "laser inactive before phase", b: Body{X: 295, Y: 150, W: 24, H: 40}, now: 0.5, wantHit: false},
		{name: "laser active after phase", b: Body{X: 295, Y: 150, W: 24, H: 40}, now: 1.5, wantHit: true, wantKind: component.HazardLaser},
		{name: "fell below level", b: Body{X: 100, Y: 600, W: 24, H: 40}, wantHit: true, wantKind: component.HazardFall},
		{name: "past left edge", b: Body{X: -200, Y: 100, W: 24, H: 40}, wantHit: true, wantKind: component.HazardOutOfBounds},
		{name: "past right edge", b: Body{X: 800, Y: 100, W: 24, H: 40}, wantHit: true, wantKind: component.HazardOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.b
			hit, ok := w.CheckHazards(&b, tt.now)
			if ok != tt.wantHit {
				t.Fatalf("CheckHazards() hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && hit.Kind != tt.wantKind {
				t.Errorf("CheckHazards() kind = %v, want %v", hit.Kind, tt.wantKind)
			}
		})
	}
}

func TestScriptedHazardOffset(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddHazard(component.HazardSaw, 100, 100, 32, 32, func(t float64) (bool, float64, float64) {
		return true, 100, 0
	})

	b := &Body{X: 110, Y: 90, W: 24, H: 40}
	if _, ok := w.CheckHazards(b, 0); ok {
		t.Error("body at anchor position should miss the offset saw")
	}

	b.X = 210
	if _, ok := w.CheckHazards(b, 0); !ok {
		t.Error("body at offset position should hit the saw")
	}
}

func TestOverlappingHazardsReportFirstRegistered(t *testing.T) {
	w := NewWorld(640, 480)
	w.AddHazard(component.HazardSpike, 100, 100, 32, 32, nil)
	w.AddHazard(component.HazardSaw, 100, 100, 32, 32, nil)

	b := &Body{X: 110, Y: 110, W: 24, H: 40}
	for i := 0; i < 20; i++ {
		hit, ok := w.CheckHazards(b, 0)
		if !ok {
			t.Fatal("body inside both volumes reported no hazard")
		}
		if hit.Kind != component.HazardSpike {
			t.Fatalf("hit kind = %q on query %d, want the first-registered spike", hit.Kind, i)
		}
	}
}

func TestCollectibles(t *testing.T) {
	w := NewWorld(640, 480)
	id := w.AddCollectible("dataCore", 100, 100, 16, 16, 50)
	w.AddCollectible("dataCore", 400, 100, 16, 16, 50)

	hits := w.CheckCollectibles(90, 90, 24, 40)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].ID != id || hits[0].Points != 50 {
		t.Errorf("hit = %+v, want id %d points 50", hits[0], id)
	}

	w.Collect(id)
	if hits := w.CheckCollectibles(90, 90, 24, 40); len(hits) != 0 {
		t.Errorf("collected item returned again: %+v", hits)
	}
}

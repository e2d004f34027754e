package system

import (
	"math"
	"testing"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/physics"
	"github.com/milk9111/coderunner/prefabs"
)

// stubPhysics is a flat floor at floorY plus scriptable hazard and
// collectible answers, enough to drive the controller without a real space.
type stubPhysics struct {
	floorY float64

	hazard    *physics.HazardHit
	items     []physics.CollectibleHit
	collected map[int]bool
}

func newStubPhysics(floorY float64) *stubPhysics {
	return &stubPhysics{floorY: floorY, collected: map[int]bool{}}
}

func (s *stubPhysics) CheckCollision(x, y, w, h, axisOffset float64, vertical bool) physics.CollisionResult {
	if vertical && y+axisOffset+h >= s.floorY {
		return physics.CollisionResult{Collided: true, Tile: physics.TileSolid}
	}
	return physics.CollisionResult{}
}

func (s *stubPhysics) MoveHorizontal(b *physics.Body, dtMS float64) {
	b.X += b.VX * dtMS / 1000.0
}

func (s *stubPhysics) MoveVertical(b *physics.Body, dtMS float64) {
	b.Y += b.VY * dtMS / 1000.0
	if b.Y+b.H >= s.floorY {
		b.Y = s.floorY - b.H
		if b.VY > 0 {
			b.VY = 0
		}
	}
	b.Grounded = b.Y+b.H >= s.floorY-1
}

func (s *stubPhysics) CheckHazards(b *physics.Body, now float64) (physics.HazardHit, bool) {
	if s.hazard == nil {
		return physics.HazardHit{}, false
	}
	return *s.hazard, true
}

func (s *stubPhysics) CheckCollectibles(x, y, w, h float64) []physics.CollectibleHit {
	var hits []physics.CollectibleHit
	for _, item := range s.items {
		if !s.collected[item.ID] {
			hits = append(hits, item)
		}
	}
	return hits
}

func (s *stubPhysics) Collect(id int) {
	s.collected[id] = true
}

func testTuning() *component.Player {
	return &component.Player{
		BaseSpeed:        180,
		SpeedBoostFactor: 1.2,
		Accel:            1400,
		GroundFriction:   0.8,
		GroundDecel:      600,
		AirResistance:    0.96,
		Gravity:          1200,
		MaxFallSpeed:     640,
		JumpPower:        -420,
		DeadZone:         2,

		InvulnerabilityMS: 1000,
		SpawnGraceFrames:  0,
		MaxHealth:         6,

		Width:  24,
		Height: 40,
	}
}

func newTestWorld(t *testing.T, phys PhysicsQuery, spawnGraceFrames int) (*ecs.World, *PlayerController, ecs.Entity) {
	t.Helper()

	catalog, err := prefabs.LoadUpgradeCatalog()
	if err != nil {
		t.Fatalf("load upgrade catalog: %v", err)
	}

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tune := testTuning()
	ch := component.NewCharacter(100, 100, tune.Width, tune.Height)

	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}),
		ecs.Add(w, e, component.TransformComponent, &component.Transform{X: 100, Y: 100}),
		ecs.Add(w, e, component.CharacterComponent, ch),
		ecs.Add(w, e, component.InputComponent, &component.Input{}),
		ecs.Add(w, e, component.JumpComponent, component.NewJump()),
		ecs.Add(w, e, component.DashComponent, &component.Dash{}),
		ecs.Add(w, e, component.HealthComponent, component.NewHealth(tune.MaxHealth, tune.InvulnerabilityMS, spawnGraceFrames)),
		ecs.Add(w, e, component.UpgradesComponent, &component.Upgrades{}),
		ecs.Add(w, e, component.ScoreComponent, &component.Score{}),
		ecs.Add(w, e, component.PlayerComponent, tune),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatalf("build player: %v", err)
		}
	}

	controller := NewPlayerController(phys, catalog)
	w.AddSystem(controller)
	return w, controller, e
}

func step(w *ecs.World, dtMS float64) {
	w.SetDelta(dtMS)
	w.Update()
}

func eventsOfType(w *ecs.World, kind string) []ecs.Event {
	var out []ecs.Event
	for _, evt := range w.Events().Drain() {
		if evt.Type == kind {
			out = append(out, evt)
		}
	}
	return out
}

func TestJumpEndToEnd(t *testing.T) {
	// floor at the character's feet: grounded from the first resolved frame
	w, _, e := newTestWorld(t, newStubPhysics(140), 0)

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Jump = true
	step(w, 16)

	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	if ch.VY != -420 {
		t.Fatalf("vy = %v, want -420 within the press frame", ch.VY)
	}
	if ch.Grounded {
		t.Error("still grounded after jump executed")
	}
	if got := eventsOfType(w, ecs.EventJump); len(got) != 1 {
		t.Errorf("jump events = %d, want exactly 1", len(got))
	}
}

func TestJumpEventFiresOncePerPress(t *testing.T) {
	w, _, e := newTestWorld(t, newStubPhysics(140), 0)

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Jump = true
	for i := 0; i < 5; i++ {
		step(w, 16)
	}
	if got := eventsOfType(w, ecs.EventJump); len(got) != 1 {
		t.Fatalf("jump events over held press = %d, want 1", len(got))
	}
}

func TestDoubleJumpEndToEnd(t *testing.T) {
	w, controller, e := newTestWorld(t, newStubPhysics(140), 0)
	if err := controller.ApplyUpgrade(w, "doubleJump"); err != nil {
		t.Fatalf("apply doubleJump: %v", err)
	}

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Jump = true
	step(w, 16) // ground jump
	in.Jump = false

	// climb past both the coyote window and the 50ms air confirmation
	for i := 0; i < 10; i++ {
		step(w, 16)
	}
	w.Events().Drain()

	in.Jump = true
	step(w, 16)

	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	want := -420 * component.DoubleJumpMultiplier(0)
	if math.Abs(ch.VY-want) > 1e-9 {
		t.Fatalf("double jump vy = %v, want %v", ch.VY, want)
	}
	if got := eventsOfType(w, ecs.EventDoubleJump); len(got) != 1 {
		t.Errorf("double jump events = %d, want 1", len(got))
	}
}

func TestDashModuleSuppressesJumpPress(t *testing.T) {
	w, controller, e := newTestWorld(t, newStubPhysics(140), 0)
	controller.ApplyUpgrade(w, "dash")
	controller.ApplyUpgrade(w, "dashModule")
	controller.ApplyUpgrade(w, "dashModule")

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Jump = true
	in.DashPressed = true
	step(w, 16)

	ds, _ := ecs.Get(w, e, component.DashComponent)
	if ds.ActiveKind != component.DashModule || ds.Speed != 500 {
		t.Fatalf("dash = %+v, want tier-2 module (speed 500)", ds)
	}

	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	if ch.VY < 0 {
		t.Error("jump executed on the dash-module activation frame")
	}
	if got := eventsOfType(w, ecs.EventJump); len(got) != 0 {
		t.Errorf("jump events = %d, want 0", len(got))
	}

	jp, _ := ecs.Get(w, e, component.JumpComponent)
	if jp.BufferMS != 0 {
		t.Errorf("suppressed press buffered %vms", jp.BufferMS)
	}
}

func TestDashForcesVelocityOverMovement(t *testing.T) {
	w, controller, e := newTestWorld(t, newStubPhysics(140), 0)
	controller.ApplyUpgrade(w, "dash")

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.MoveX = -1 // steering against the dash must not matter
	in.DashPressed = true
	step(w, 16)

	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	if ch.VX != 300 {
		t.Fatalf("vx = %v, want forced 300 (basic dash, facing right)", ch.VX)
	}

	events := eventsOfType(w, ecs.EventDash)
	if len(events) != 1 {
		t.Fatalf("dash events = %d, want 1", len(events))
	}
	data := events[0].Data.(ecs.DashEvent)
	if data.Tier != 0 || data.Speed != 300 {
		t.Errorf("dash event = %+v, want tier 0 speed 300", data)
	}
}

func TestApplyUpgrade(t *testing.T) {
	w, controller, e := newTestWorld(t, newStubPhysics(140), 0)

	if err := controller.ApplyUpgrade(w, "doubleJump"); err != nil {
		t.Fatalf("apply doubleJump: %v", err)
	}
	if err := controller.ApplyUpgrade(w, "doubleJump"); err != nil {
		t.Fatalf("re-apply doubleJump: %v", err)
	}
	up, _ := ecs.Get(w, e, component.UpgradesComponent)
	if !up.DoubleJump {
		t.Error("doubleJump not owned after two applies")
	}

	controller.ApplyUpgrade(w, "healthUpgrade")
	controller.ApplyUpgrade(w, "healthUpgrade")
	hp, _ := ecs.Get(w, e, component.HealthComponent)
	if hp.Max != 8 {
		t.Errorf("max health = %d, want exactly 8 after two upgrades", hp.Max)
	}

	for i := 0; i < 5; i++ {
		controller.ApplyUpgrade(w, "dashModule")
	}
	if up.DashModuleTier != 3 {
		t.Errorf("dash module tier = %d, want capped at 3", up.DashModuleTier)
	}

	if err := controller.ApplyUpgrade(w, "wallCling"); err == nil {
		t.Error("unknown upgrade id did not error")
	}
}

func TestDegradesWithoutPhysics(t *testing.T) {
	w, _, e := newTestWorld(t, nil, 0)

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.MoveX = 1
	step(w, 16)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.X <= 100 {
		t.Errorf("x = %v, want raw horizontal delta applied", tr.X)
	}
	if tr.Y <= 100 {
		t.Errorf("y = %v, want gravity applied without collision", tr.Y)
	}
}

func TestNaNRecovery(t *testing.T) {
	w, _, e := newTestWorld(t, newStubPhysics(140), 0)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	tr.X = math.NaN()
	ch.VY = math.NaN()

	for i := 0; i < 3; i++ {
		step(w, 16)
		if math.IsNaN(tr.X) || math.IsNaN(tr.Y) || math.IsNaN(ch.VX) || math.IsNaN(ch.VY) {
			t.Fatalf("NaN survived to frame %d", i+1)
		}
	}
	if tr.X != ch.SpawnX {
		t.Errorf("x = %v, want spawn %v", tr.X, ch.SpawnX)
	}
}

func TestHazardDamageRespectsInvulnerability(t *testing.T) {
	phys := newStubPhysics(140)
	phys.hazard = &physics.HazardHit{Kind: component.HazardSpike}
	w, _, e := newTestWorld(t, phys, 0)

	step(w, 16)
	hp, _ := ecs.Get(w, e, component.HealthComponent)
	if hp.Current != 4 {
		t.Fatalf("health = %d, want 4 after spike contact", hp.Current)
	}
	if got := eventsOfType(w, ecs.EventDamage); len(got) != 1 {
		t.Fatalf("damage events = %d, want 1", len(got))
	}

	// standing in the hazard during i-frames takes nothing further
	for i := 0; i < 10; i++ {
		step(w, 16)
	}
	if hp.Current != 4 {
		t.Errorf("health = %d, want unchanged 4 during invulnerability", hp.Current)
	}
	if got := eventsOfType(w, ecs.EventDamage); len(got) != 0 {
		t.Errorf("damage events during i-frames = %d, want 0", len(got))
	}
}

func TestSpawnGraceBlocksHazards(t *testing.T) {
	phys := newStubPhysics(140)
	phys.hazard = &physics.HazardHit{Kind: component.HazardSpike}
	w, _, e := newTestWorld(t, phys, 30)

	for i := 0; i < 10; i++ {
		step(w, 16)
	}
	hp, _ := ecs.Get(w, e, component.HealthComponent)
	if hp.Current != 6 {
		t.Errorf("health = %d, want untouched 6 under spawn grace", hp.Current)
	}
}

func TestFallIsLethal(t *testing.T) {
	phys := newStubPhysics(140)
	w, _, e := newTestWorld(t, phys, 0)

	// open the invulnerability window first; a fall must kill through it
	hp, _ := ecs.Get(w, e, component.HealthComponent)
	hp.TakeDamage(1, 0)

	phys.hazard = &physics.HazardHit{Kind: component.HazardFall}
	step(w, 16)

	if hp.Current != 0 {
		t.Fatalf("health = %d, want 0 after falling out of the level", hp.Current)
	}
	deaths := eventsOfType(w, ecs.EventDeath)
	if len(deaths) != 1 {
		t.Fatalf("death events = %d, want 1", len(deaths))
	}
	if data := deaths[0].Data.(ecs.DeathEvent); data.Reason != "fall" {
		t.Errorf("death reason = %q, want fall", data.Reason)
	}
}

func TestCollectOnce(t *testing.T) {
	phys := newStubPhysics(140)
	phys.items = []physics.CollectibleHit{{ID: 7, Kind: "dataCore", X: 100, Y: 100, Points: 50}}
	w, _, e := newTestWorld(t, phys, 0)

	step(w, 16)
	sc, _ := ecs.Get(w, e, component.ScoreComponent)
	if sc.Points != 50 || sc.Items != 1 {
		t.Fatalf("score = %+v, want 50 points 1 item", sc)
	}
	if got := eventsOfType(w, ecs.EventCollect); len(got) != 1 {
		t.Fatalf("collect events = %d, want 1", len(got))
	}

	step(w, 16)
	if sc.Points != 50 {
		t.Errorf("score = %d, item collected twice", sc.Points)
	}
}

func TestSnapshot(t *testing.T) {
	w, controller, e := newTestWorld(t, newStubPhysics(140), 0)
	controller.ApplyUpgrade(w, "speedBoost")
	step(w, 16)

	snap, ok := controller.Snapshot(w)
	if !ok {
		t.Fatal("no snapshot for live player")
	}
	if !snap.Grounded {
		t.Error("snapshot grounded = false, want true on the floor")
	}
	if snap.Health != 6 || snap.MaxHealth != 6 {
		t.Errorf("snapshot health = %d/%d, want 6/6", snap.Health, snap.MaxHealth)
	}
	if !snap.Upgrades.SpeedBoost {
		t.Error("snapshot upgrades missing speedBoost")
	}
	if !snap.DoubleJumpAvailable {
		t.Error("snapshot doubleJumpAvailable = false, want true before any air session")
	}
	if snap.AirTimeMS != 0 || snap.JumpBufferMS != 0 {
		t.Errorf("snapshot airTime/buffer = %v/%v, want 0/0 while grounded with no press", snap.AirTimeMS, snap.JumpBufferMS)
	}

	ch, _ := ecs.Get(w, e, component.CharacterComponent)
	if snap.Facing != ch.Facing {
		t.Errorf("snapshot facing = %v, want %v", snap.Facing, ch.Facing)
	}

	in, _ := ecs.Get(w, e, component.InputComponent)
	in.Jump = true
	step(w, 16)
	in.Jump = false
	step(w, 16)

	snap, ok = controller.Snapshot(w)
	if !ok {
		t.Fatal("no snapshot after jump")
	}
	if snap.Grounded {
		t.Error("snapshot grounded = true, want airborne after jump")
	}
	if snap.AirTimeMS <= 0 {
		t.Errorf("snapshot airTime = %v, want > 0 while airborne", snap.AirTimeMS)
	}
	if !snap.DoubleJumpAvailable {
		t.Error("snapshot doubleJumpAvailable = false, want true in a fresh air session")
	}
}

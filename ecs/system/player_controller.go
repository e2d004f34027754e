package system

import (
	"fmt"
	"log"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/physics"
	"github.com/milk9111/coderunner/prefabs"
)

// PhysicsQuery is the collision surface the controller consumes. The
// concrete physics.World satisfies it; tests substitute stubs, and a nil
// query degrades the controller to raw position integration.
type PhysicsQuery interface {
	CheckCollision(x, y, w, h, axisOffset float64, vertical bool) physics.CollisionResult
	MoveHorizontal(b *physics.Body, dtMS float64)
	MoveVertical(b *physics.Body, dtMS float64)
	CheckHazards(b *physics.Body, now float64) (physics.HazardHit, bool)
	CheckCollectibles(x, y, w, h float64) []physics.CollectibleHit
	Collect(id int)
}

// Snapshot is the read-only view of controller state handed to outside
// systems (HUD, camera, debug overlay). Nothing outside the controller
// mutates the live components.
type Snapshot struct {
	X, Y     float64
	VX, VY   float64
	Facing   component.Facing
	Grounded bool

	DoubleJumpAvailable bool
	AirTimeMS           float64
	JumpBufferMS        float64

	Dashing        bool
	DashCooldownMS float64

	Health       int
	MaxHealth    int
	Invulnerable bool

	Upgrades component.Upgrades

	Score int
	Items int
}

// PlayerController runs the player's per-frame pipeline in a fixed stage
// order: dash activation, motion integration, collision resolution, jump
// resolution, fault recovery, hazards, collectibles, timers. Jump
// resolution deliberately sits after collision resolution so grounded
// reflects the current frame.
type PlayerController struct {
	phys    PhysicsQuery
	catalog prefabs.UpgradeCatalog

	loggedDegraded bool
	loggedRecovery bool
}

// NewPlayerController creates the controller. phys may be nil for headless
// contexts without a live world. The upgrade catalog is passed in rather
// than read from any ambient state.
func NewPlayerController(phys PhysicsQuery, catalog prefabs.UpgradeCatalog) *PlayerController {
	return &PlayerController{phys: phys, catalog: catalog}
}

// SetCatalog swaps the upgrade catalog, used when upgrades.yaml hot-reloads.
func (s *PlayerController) SetCatalog(catalog prefabs.UpgradeCatalog) {
	s.catalog = catalog
}

func (s *PlayerController) Update(w *ecs.World) {
	e, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	ch, ok := ecs.Get(w, e, component.CharacterComponent)
	if !ok {
		return
	}
	jp, _ := ecs.Get(w, e, component.JumpComponent)
	ds, _ := ecs.Get(w, e, component.DashComponent)
	hp, _ := ecs.Get(w, e, component.HealthComponent)
	up, _ := ecs.Get(w, e, component.UpgradesComponent)
	tune, ok := ecs.Get(w, e, component.PlayerComponent)
	if !ok || jp == nil || ds == nil || hp == nil || up == nil {
		return
	}
	dt := w.DeltaMS()

	suppressJump := s.resolveDash(w, e, in, ch, ds, up)
	s.integrate(in, ch, ds, tune, up, dt)
	s.collide(t, ch, dt)
	s.resolveJump(w, e, in, ch, jp, ds, up, tune, suppressJump, dt)
	s.recover(t, ch)
	if hp.Current > 0 {
		s.applyHazards(w, e, t, ch, hp)
		s.collect(w, e, t, ch)
	}
	hp.Tick(dt)
}

// resolveDash handles an edge-triggered dash press. Returns true when a
// dash-module activation claimed the shared input, which suppresses jump
// press processing for the rest of the frame.
func (s *PlayerController) resolveDash(w *ecs.World, e ecs.Entity, in *component.Input, ch *component.Character, ds *component.Dash, up *component.Upgrades) bool {
	if !in.DashPressed {
		return false
	}
	kind := ds.TryActivate(up.BasicDash, up.DashModuleTier, ch.Facing)
	if kind == component.DashNone {
		return false
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDash, Data: ecs.DashEvent{
		Entity: e,
		Tier:   ds.ActiveTier,
		Speed:  ds.Speed,
	}})
	return kind == component.DashModule
}

// integrate advances velocity. An active dash forces horizontal velocity
// outright, overriding movement integration including any speed boost;
// gravity accumulates either way.
func (s *PlayerController) integrate(in *component.Input, ch *component.Character, ds *component.Dash, tune *component.Player, up *component.Upgrades, dt float64) {
	if ds.Tick(dt) {
		ch.VX = ds.VX()
	} else {
		ch.IntegrateHorizontal(in.MoveX, tune, up.SpeedBoost, dt)
	}
	ch.IntegrateVertical(tune, dt)
}

// collide resolves the proposed velocity against world geometry through the
// physics query, axis-separated. Without a physics query the controller
// degrades to raw position deltas and skips collision entirely.
func (s *PlayerController) collide(t *component.Transform, ch *component.Character, dt float64) {
	if s.phys == nil {
		if !s.loggedDegraded {
			log.Printf("player controller: no physics query, degrading to raw integration")
			s.loggedDegraded = true
		}
		t.X += ch.VX * dt / 1000.0
		t.Y += ch.VY * dt / 1000.0
		return
	}

	b := physics.Body{X: t.X, Y: t.Y, W: ch.Width, H: ch.Height, VX: ch.VX, VY: ch.VY, Grounded: ch.Grounded}
	s.phys.MoveHorizontal(&b, dt)
	s.phys.MoveVertical(&b, dt)
	t.X, t.Y = b.X, b.Y
	ch.VX, ch.VY = b.VX, b.VY
	ch.Grounded = b.Grounded
}

func (s *PlayerController) resolveJump(w *ecs.World, e ecs.Entity, in *component.Input, ch *component.Character, jp *component.Jump, ds *component.Dash, up *component.Upgrades, tune *component.Player, suppressed bool, dt float64) {
	kind := jp.Resolve(in.Jump, ch.Grounded, up.DoubleJump, suppressed, dt)
	if kind == component.JumpNone {
		return
	}

	power := tune.JumpPower + up.JumpBonus
	if kind == component.JumpDouble {
		power *= component.DoubleJumpMultiplier(up.DoubleJumpTier)
		w.Events().Push(ecs.Event{Type: ecs.EventDoubleJump, Data: ecs.DoubleJumpEvent{Entity: e, Tier: up.DoubleJumpTier}})
	} else {
		w.Events().Push(ecs.Event{Type: ecs.EventJump, Data: ecs.JumpEvent{Entity: e}})
	}
	ch.VY = power
	ch.Grounded = false
}

// recover repairs NaN or infinite motion state in place after integration.
func (s *PlayerController) recover(t *component.Transform, ch *component.Character) {
	if ch.Validate(t) && !s.loggedRecovery {
		log.Printf("player controller: corrupt motion state, reset to spawn (%.0f, %.0f)", ch.SpawnX, ch.SpawnY)
		s.loggedRecovery = true
	}
}

func (s *PlayerController) applyHazards(w *ecs.World, e ecs.Entity, t *component.Transform, ch *component.Character, hp *component.Health) {
	if s.phys == nil {
		return
	}
	b := physics.Body{X: t.X, Y: t.Y, W: ch.Width, H: ch.Height}
	hit, ok := s.phys.CheckHazards(&b, w.Time())
	if !ok {
		return
	}

	if hit.Kind.Lethal() {
		// falling out of the level kills through every grace window
		amount := hp.Current
		hp.Current = 0
		hp.LastHitAt = w.Time()
		w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{Entity: e, Amount: amount, Source: string(hit.Kind)}})
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.DeathEvent{Entity: e, Reason: string(hit.Kind)}})
		return
	}

	if hp.HazardShielded() {
		return
	}
	out := hp.TakeDamage(hit.Kind.Damage(hp.Current), w.Time())
	if !out.Applied {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{Entity: e, Amount: hit.Kind.Damage(hp.Current), Source: string(hit.Kind)}})
	if out.Died {
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.DeathEvent{Entity: e, Reason: string(hit.Kind)}})
	}
}

// pickupLingerFrames keeps a collected item's sprite around briefly.
const pickupLingerFrames = 8

func (s *PlayerController) collect(w *ecs.World, e ecs.Entity, t *component.Transform, ch *component.Character) {
	if s.phys == nil {
		return
	}
	hits := s.phys.CheckCollectibles(t.X, t.Y, ch.Width, ch.Height)
	if len(hits) == 0 {
		return
	}

	score, _ := ecs.Get(w, e, component.ScoreComponent)
	for _, hit := range hits {
		s.phys.Collect(hit.ID)
		if score != nil {
			score.Points += hit.Points
			score.Items++
		}
		w.Events().Push(ecs.Event{Type: ecs.EventCollect, Data: ecs.CollectEvent{
			Entity: e,
			Kind:   hit.Kind,
			X:      hit.X,
			Y:      hit.Y,
			Points: hit.Points,
		}})
		s.retireCollectible(w, hit.ID)
	}
}

// retireCollectible detaches the collectible component of the matching
// entity and leaves a short TTL so the sprite lingers as a pickup flash.
func (s *PlayerController) retireCollectible(w *ecs.World, physID int) {
	var match ecs.Entity
	found := false
	ecs.ForEach(w, component.CollectibleComponent, func(e ecs.Entity, c *component.Collectible) {
		if c.PhysID == physID {
			match = e
			found = true
		}
	})
	if !found {
		return
	}
	ecs.Remove(w, match, component.CollectibleComponent)
	ecs.Remove(w, match, component.HoverComponent)
	ecs.Add(w, match, component.TTLComponent, &component.TTL{Frames: pickupLingerFrames})
}

// Snapshot returns the current read-only controller state.
func (s *PlayerController) Snapshot(w *ecs.World) (Snapshot, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return Snapshot{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return Snapshot{}, false
	}
	ch, ok := ecs.Get(w, e, component.CharacterComponent)
	if !ok {
		return Snapshot{}, false
	}

	snap := Snapshot{
		X: t.X, Y: t.Y,
		VX: ch.VX, VY: ch.VY,
		Facing:   ch.Facing,
		Grounded: ch.Grounded,
	}
	if jp, ok := ecs.Get(w, e, component.JumpComponent); ok {
		snap.DoubleJumpAvailable = jp.DoubleJumpAvailable
		snap.AirTimeMS = jp.AirTimeMS
		snap.JumpBufferMS = jp.BufferMS
	}
	if ds, ok := ecs.Get(w, e, component.DashComponent); ok {
		snap.Dashing = ds.Dashing
		snap.DashCooldownMS = ds.RemainingCooldownMS
	}
	if hp, ok := ecs.Get(w, e, component.HealthComponent); ok {
		snap.Health = hp.Current
		snap.MaxHealth = hp.Max
		snap.Invulnerable = hp.Invulnerability.Active()
	}
	if up, ok := ecs.Get(w, e, component.UpgradesComponent); ok {
		snap.Upgrades = *up
	}
	if sc, ok := ecs.Get(w, e, component.ScoreComponent); ok {
		snap.Score = sc.Points
		snap.Items = sc.Items
	}
	return snap, true
}

// ApplyUpgrade grants an upgrade by catalog id. Boolean upgrades are
// idempotent; tiered upgrades level up to their cap; additive upgrades
// stack. Unknown ids are an error.
func (s *PlayerController) ApplyUpgrade(w *ecs.World, id string) error {
	def, ok := s.catalog[id]
	if !ok {
		return fmt.Errorf("apply upgrade: unknown id %q", id)
	}
	e, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return fmt.Errorf("apply upgrade %q: no player entity", id)
	}
	up, ok := ecs.Get(w, e, component.UpgradesComponent)
	if !ok {
		return fmt.Errorf("apply upgrade %q: player has no upgrade state", id)
	}

	switch def.Kind {
	case prefabs.UpgradeFlag:
		switch def.Field {
		case prefabs.FieldDoubleJump:
			up.DoubleJump = true
		case prefabs.FieldBasicDash:
			up.BasicDash = true
		case prefabs.FieldSpeedBoost:
			up.SpeedBoost = true
		default:
			return fmt.Errorf("apply upgrade %q: unknown flag field %q", id, def.Field)
		}
	case prefabs.UpgradeTier:
		switch def.Field {
		case prefabs.FieldDoubleJumpTier:
			if up.DoubleJumpTier < def.Max {
				up.DoubleJumpTier++
			}
			up.DoubleJump = true
		case prefabs.FieldDashModuleTier:
			if up.DashModuleTier < def.Max {
				up.DashModuleTier++
			}
		default:
			return fmt.Errorf("apply upgrade %q: unknown tier field %q", id, def.Field)
		}
	case prefabs.UpgradeAdditive:
		if def.Field != prefabs.FieldJumpBonus {
			return fmt.Errorf("apply upgrade %q: unknown additive field %q", id, def.Field)
		}
		up.JumpBonus += def.Value
	case prefabs.UpgradeHealth:
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok {
			return fmt.Errorf("apply upgrade %q: player has no health state", id)
		}
		hp.RaiseMax(int(def.Value))
	default:
		return fmt.Errorf("apply upgrade %q: unknown kind %q", id, def.Kind)
	}
	return nil
}

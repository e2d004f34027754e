package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/coderunner/common"
	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/ecs/entity"
	"github.com/milk9111/coderunner/ecs/system"
	"github.com/milk9111/coderunner/levels"
	"github.com/milk9111/coderunner/physics"
	"github.com/milk9111/coderunner/prefabs"
)

// maxFrameDeltaMS caps the wall-clock delta fed to gameplay timers so a
// stalled frame (window drag, debugger pause) can't fast-forward cooldowns
// or launch the player through geometry.
const maxFrameDeltaMS = 100.0

type Game struct {
	world       *ecs.World
	phys        *physics.World
	controller  *system.PlayerController
	hazardPhase *system.HazardPhaseSystem
	render      *system.RenderSystem
	hud         *system.HUDSystem

	catalog prefabs.UpgradeCatalog
	watcher *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	debug   bool

	lastUpdate time.Time
}

func NewGame(levelName string, debug, allAbilities bool) (*Game, error) {
	if levelName == "" {
		levelName = "stage1"
	}
	if !strings.HasSuffix(levelName, ".yaml") {
		levelName += ".yaml"
	}

	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	catalog, err := prefabs.LoadUpgradeCatalog()
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	w := ecs.NewWorld()
	pw := physics.NewWorld(lvl.Width, lvl.Height)
	hazardPhase := system.NewHazardPhaseSystem()

	if err := entity.BuildLevel(w, pw, lvl, hazardPhase.Phase); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if _, err := entity.NewPlayer(w, playerSpec, lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if _, err := entity.NewCamera(w, lvl.Spawn.X-common.BaseWidth/2, lvl.Spawn.Y-common.BaseHeight/2); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	controller := system.NewPlayerController(pw, catalog)
	w.AddSystem(system.NewInputSystem())
	w.AddSystem(hazardPhase)
	w.AddSystem(controller)
	w.AddSystem(system.NewRespawnSystem())
	w.AddSystem(system.NewCollectibleHoverSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(system.NewCameraSystem(common.BaseWidth, common.BaseHeight, lvl.Width, lvl.Height))

	g := &Game{
		world:       w,
		phys:        pw,
		controller:  controller,
		hazardPhase: hazardPhase,
		render:      system.NewRenderSystem(),
		hud:         system.NewHUDSystem(),
		catalog:     catalog,
		debug:       debug,
		lastUpdate:  time.Now(),
	}
	g.pauseUI = NewPauseUI(g)

	if allAbilities {
		// tiered upgrades need repeated applies to reach their caps
		for i := 0; i < 3; i++ {
			for id := range catalog {
				if err := controller.ApplyUpgrade(w, id); err != nil {
					return nil, fmt.Errorf("new game: %w", err)
				}
			}
		}
	}

	// prefab watching is development-only; a missing directory just means a
	// packaged build with embedded assets
	if watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts")); err == nil {
		g.watcher = watcher
	} else if debug {
		log.Printf("prefab watcher disabled: %v", err)
	}

	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := float64(now.Sub(g.lastUpdate).Microseconds()) / 1000.0
	g.lastUpdate = now
	if dt > maxFrameDeltaMS {
		dt = maxFrameDeltaMS
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainWatcher()

	g.world.SetDelta(dt)
	g.world.Update()

	for _, evt := range g.world.Events().Drain() {
		g.handleEvent(evt)
	}
	return nil
}

func (g *Game) handleEvent(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventCollect:
		data, ok := evt.Data.(ecs.CollectEvent)
		if !ok {
			return
		}
		if _, owned := g.catalog[data.Kind]; owned {
			if err := g.controller.ApplyUpgrade(g.world, data.Kind); err != nil {
				log.Printf("collect: %v", err)
			} else {
				log.Printf("ability acquired: %s", data.Kind)
			}
		}
	case ecs.EventDeath:
		if data, ok := evt.Data.(ecs.DeathEvent); ok {
			log.Printf("player died: %s", data.Reason)
		}
	case ecs.EventDamage:
		if data, ok := evt.Data.(ecs.DamageEvent); ok && g.debug {
			log.Printf("player took %d damage from %s", data.Amount, data.Source)
		}
	}
}

// drainWatcher applies pending prefab edits: player tuning reloads in place,
// script edits invalidate the compiled cache, catalog edits swap the catalog.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefab(name)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadPrefab(name string) {
	base := filepath.Base(name)
	switch {
	case base == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("reload player.yaml: %v", err)
			return
		}
		g.applyPlayerTuning(spec)
		log.Printf("reloaded player tuning")
	case base == "upgrades.yaml":
		catalog, err := prefabs.LoadUpgradeCatalog()
		if err != nil {
			log.Printf("reload upgrades.yaml: %v", err)
			return
		}
		g.catalog = catalog
		g.controller.SetCatalog(catalog)
		log.Printf("reloaded upgrade catalog")
	case strings.HasSuffix(base, ".tengo"):
		script := strings.TrimSuffix(base, ".tengo")
		g.hazardPhase.Invalidate(script)
		log.Printf("reloaded hazard script %s", script)
	}
}

// restartRun sends the player back to spawn by zeroing health; the respawn
// system picks it up on the next update.
func (g *Game) restartRun() {
	player, ok := ecs.First(g.world, component.PlayerTagComponent)
	if !ok {
		return
	}
	if hp, ok := ecs.Get(g.world, player, component.HealthComponent); ok {
		hp.Current = 0
	}
	g.paused = false
}

func (g *Game) applyPlayerTuning(spec *prefabs.PlayerSpec) {
	player, ok := ecs.First(g.world, component.PlayerTagComponent)
	if !ok {
		return
	}
	tune, ok := ecs.Get(g.world, player, component.PlayerComponent)
	if !ok {
		return
	}
	m := spec.Movement
	tune.BaseSpeed = m.BaseSpeed
	tune.SpeedBoostFactor = m.SpeedBoostFactor
	tune.Accel = m.Accel
	tune.GroundFriction = m.GroundFriction
	tune.GroundDecel = m.GroundDecel
	tune.AirResistance = m.AirResistance
	tune.Gravity = m.Gravity
	tune.MaxFallSpeed = m.MaxFallSpeed
	tune.JumpPower = m.JumpPower
	tune.DeadZone = m.DeadZone
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen)

	if g.debug {
		if snap, ok := g.controller.Snapshot(g.world); ok {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
				"pos (%.0f, %.0f) vel (%.0f, %.0f) grounded %v dashing %v cd %.0fms fps %.1f",
				snap.X, snap.Y, snap.VX, snap.VY, snap.Grounded, snap.Dashing, snap.DashCooldownMS, ebiten.ActualFPS(),
			), 10, common.BaseHeight-20)
		}
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

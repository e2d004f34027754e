package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
	"github.com/milk9111/coderunner/physics"
	"github.com/milk9111/coderunner/prefabs"
)

// HazardPhaseSystem evaluates tengo phase scripts that drive moving and
// cycling hazards (saw patrols, laser duty cycles, crusher travel). Each
// script is compiled once and re-run per evaluation with the game time bound
// to __t; the script leaves its result in the globals active, dx, and dy.
//
// The same compiled script backs both the rendered hazard entity and the
// physics world's hazard volume, so what the player sees is exactly what
// deals damage.
type HazardPhaseSystem struct {
	cache  map[string]*hazardPhaseRuntime
	failed map[string]bool
}

type hazardPhaseRuntime struct {
	compiled *tengo.Compiled
}

func NewHazardPhaseSystem() *HazardPhaseSystem {
	return &HazardPhaseSystem{
		cache:  map[string]*hazardPhaseRuntime{},
		failed: map[string]bool{},
	}
}

// Update re-evaluates every scripted hazard at the current game time and
// writes the result back to the component, keeping rendering in sync.
func (s *HazardPhaseSystem) Update(w *ecs.World) {
	now := w.Time()
	ecs.ForEach(w, component.HazardComponent, func(_ ecs.Entity, hz *component.Hazard) {
		if hz.Script == "" {
			hz.Active = true
			return
		}
		active, dx, dy, err := s.eval(hz.Script, now)
		if err != nil {
			if !s.failed[hz.Script] {
				log.Printf("hazard phase: script %s: %v", hz.Script, err)
				s.failed[hz.Script] = true
			}
			// fail static and live rather than silently harmless
			hz.Active = true
			hz.OffsetX, hz.OffsetY = 0, 0
			return
		}
		hz.Active = active
		hz.OffsetX, hz.OffsetY = dx, dy
	})
}

// Phase returns the physics-side evaluator for a script. The closure resolves
// the runtime on every call so a hot reload invalidation takes effect without
// re-registering hazard volumes.
func (s *HazardPhaseSystem) Phase(script string) physics.PhaseFunc {
	if script == "" {
		return nil
	}
	return func(t float64) (bool, float64, float64) {
		active, dx, dy, err := s.eval(script, t)
		if err != nil {
			return true, 0, 0
		}
		return active, dx, dy
	}
}

// Invalidate drops a compiled script so the next evaluation recompiles it.
// Called by the shell when the watcher reports a script edit.
func (s *HazardPhaseSystem) Invalidate(script string) {
	delete(s.cache, script)
	delete(s.failed, script)
}

func (s *HazardPhaseSystem) eval(script string, t float64) (bool, float64, float64, error) {
	rt, err := s.runtime(script)
	if err != nil {
		return false, 0, 0, err
	}
	if err := rt.compiled.Set("__t", t); err != nil {
		return false, 0, 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return false, 0, 0, fmt.Errorf("run: %w", err)
	}
	active := rt.compiled.Get("active").Bool()
	dx := rt.compiled.Get("dx").Float()
	dy := rt.compiled.Get("dy").Float()
	return active, dx, dy, nil
}

func (s *HazardPhaseSystem) runtime(name string) (*hazardPhaseRuntime, error) {
	if rt, ok := s.cache[name]; ok {
		return rt, nil
	}

	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("__t", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	rt := &hazardPhaseRuntime{compiled: compiled}
	s.cache[name] = rt
	return rt, nil
}

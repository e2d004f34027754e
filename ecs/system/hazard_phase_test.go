package system

import (
	"testing"

	"github.com/milk9111/coderunner/ecs"
	"github.com/milk9111/coderunner/ecs/component"
)

func TestLaserPhase(t *testing.T) {
	s := NewHazardPhaseSystem()
	phase := s.Phase("laser")
	if phase == nil {
		t.Fatal("nil phase for known script")
	}

	tests := []struct {
		name string
		at   float64
		want bool
	}{
		{"firing at cycle start", 0.1, true},
		{"firing near duty end", 1.1, true},
		{"cooling after duty", 1.5, false},
		{"firing again next cycle", 2.3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, dx, dy := phase(tt.at)
			if active != tt.want {
				t.Errorf("active(%v) = %v, want %v", tt.at, active, tt.want)
			}
			if dx != 0 || dy != 0 {
				t.Errorf("laser offset = (%v, %v), want static", dx, dy)
			}
		})
	}
}

func TestSawPhaseStaysOnPatrol(t *testing.T) {
	s := NewHazardPhaseSystem()
	phase := s.Phase("saw")

	for at := 0.0; at < 6.0; at += 0.25 {
		active, dx, dy := phase(at)
		if !active {
			t.Fatalf("saw inactive at t=%v", at)
		}
		if dx < 0 || dx > 96 {
			t.Fatalf("saw dx = %v at t=%v, want within [0, 96]", dx, at)
		}
		if dy != 0 {
			t.Fatalf("saw dy = %v, want 0", dy)
		}
	}
}

func TestMissingScriptFailsLive(t *testing.T) {
	s := NewHazardPhaseSystem()
	active, dx, dy := s.Phase("no_such_script")(1.0)
	if !active || dx != 0 || dy != 0 {
		t.Errorf("missing script = (%v, %v, %v), want live and static", active, dx, dy)
	}
}

func TestPhaseSystemSyncsComponents(t *testing.T) {
	w := ecs.NewWorld()
	s := NewHazardPhaseSystem()
	w.AddSystem(s)

	e := ecs.CreateEntity(w)
	hz := &component.Hazard{Kind: component.HazardLaser, Script: "laser"}
	if err := ecs.Add(w, e, component.HazardComponent, hz); err != nil {
		t.Fatalf("add hazard: %v", err)
	}
	static := ecs.CreateEntity(w)
	spike := &component.Hazard{Kind: component.HazardSpike}
	if err := ecs.Add(w, static, component.HazardComponent, spike); err != nil {
		t.Fatalf("add spike: %v", err)
	}

	w.SetDelta(100) // t = 0.1s, inside the firing window
	w.Update()
	if !hz.Active {
		t.Error("laser inactive at t=0.1")
	}
	if !spike.Active {
		t.Error("unscripted hazard must always be active")
	}

	w.SetDelta(1400) // t = 1.5s, cooling
	w.Update()
	if hz.Active {
		t.Error("laser active at t=1.5")
	}
}

package prefabs

import "testing"

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Hitbox.Width <= 0 || spec.Hitbox.Height <= 0 {
		t.Errorf("hitbox = %+v, want positive dimensions", spec.Hitbox)
	}
	if spec.Movement.JumpPower != -420 {
		t.Errorf("jump_power = %v, want -420", spec.Movement.JumpPower)
	}
	if spec.Movement.DeadZone != 2 {
		t.Errorf("dead_zone = %v, want 2", spec.Movement.DeadZone)
	}
	if spec.Health.SpawnGraceFrames <= 0 {
		t.Errorf("spawn_grace_frames = %d, want positive", spec.Health.SpawnGraceFrames)
	}
}

func TestLoadUpgradeCatalog(t *testing.T) {
	catalog, err := LoadUpgradeCatalog()
	if err != nil {
		t.Fatalf("LoadUpgradeCatalog: %v", err)
	}

	tests := []struct {
		id   string
		kind UpgradeKind
	}{
		{"doubleJump", UpgradeFlag},
		{"doubleJumpTier", UpgradeTier},
		{"dash", UpgradeFlag},
		{"dashModule", UpgradeTier},
		{"speedBoost", UpgradeFlag},
		{"jumpBoost", UpgradeAdditive},
		{"healthUpgrade", UpgradeHealth},
	}
	for _, tt := range tests {
		def, ok := catalog[tt.id]
		if !ok {
			t.Errorf("catalog missing %q", tt.id)
			continue
		}
		if def.Kind != tt.kind {
			t.Errorf("%s kind = %q, want %q", tt.id, def.Kind, tt.kind)
		}
	}

	if def := catalog["dashModule"]; def.Max != 3 {
		t.Errorf("dashModule max = %d, want 3", def.Max)
	}
	if def := catalog["jumpBoost"]; def.Value >= 0 {
		t.Errorf("jumpBoost value = %v, want negative (screen-down y)", def.Value)
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"laser", "saw.tengo", "scripts/crusher"} {
		if _, err := LoadScript(name); err != nil {
			t.Errorf("LoadScript(%q): %v", name, err)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_LoadsEmbeddedValues(t *testing.T) {
	cfg := Default()

	if cfg.Spatial.CellSize != 128 {
		t.Errorf("expected cell size 128, got %v", cfg.Spatial.CellSize)
	}
	if cfg.Spatial.TableSize != 1024 {
		t.Errorf("expected table size 1024, got %d", cfg.Spatial.TableSize)
	}
	if cfg.Movement.Friction != 0.92 {
		t.Errorf("expected friction 0.92, got %v", cfg.Movement.Friction)
	}
	if cfg.Sim.MaxAccumulator != 0.25 {
		t.Errorf("expected max accumulator 0.25, got %v", cfg.Sim.MaxAccumulator)
	}
	if cfg.Mode.Presets.Work.ChaseEnabled {
		t.Error("work preset should disable chasing")
	}
	if cfg.Mode.Presets.Chaos.EnergyScale != 3.0 {
		t.Errorf("expected chaos energy scale 3, got %v", cfg.Mode.Presets.Chaos.EnergyScale)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.Movement.Friction = 0.5
	if b.Movement.Friction == 0.5 {
		t.Error("mutating one default config leaked into another")
	}
}

func TestComputeDerived(t *testing.T) {
	cfg := Default()

	if cfg.Derived.TicksPerSec != 60 {
		t.Errorf("expected 60 ticks per second, got %d", cfg.Derived.TicksPerSec)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("expected derived width %d, got %v", cfg.Screen.Width, cfg.Derived.ScreenW32)
	}
	// Flock radius is the widest neighborhood.
	if cfg.Derived.MaxQueryRadius != cfg.Interaction.Flock.Radius {
		t.Errorf("expected max query radius %v, got %v", cfg.Interaction.Flock.Radius, cfg.Derived.MaxQueryRadius)
	}
	if cfg.Spatial.CellSize < cfg.Derived.MaxQueryRadius {
		t.Errorf("cell size %v smaller than widest query radius %v", cfg.Spatial.CellSize, cfg.Derived.MaxQueryRadius)
	}
}

func TestLoad_OverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("population:\n  initial: 7\ninteraction:\n  social:\n    play_chance: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Population.Initial != 7 {
		t.Errorf("expected initial 7, got %d", cfg.Population.Initial)
	}
	if cfg.Interaction.Social.PlayChance != 0.5 {
		t.Errorf("expected play chance 0.5, got %v", cfg.Interaction.Social.PlayChance)
	}
	// Untouched keys keep their defaults.
	if cfg.Interaction.Social.ChaseChance != 0.005 {
		t.Errorf("expected chase chance default 0.005, got %v", cfg.Interaction.Social.ChaseChance)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid overlay", "sim:\n  seed: 42\nmouse:\n  chase_chance: 0.1\n", false},
		{"unknown section", "weather:\n  rain: 1\n", true},
		{"probability above one", "interaction:\n  social:\n    nap_chance: 1.5\n", true},
		{"negative radius", "tower:\n  radius: -3\n", true},
		{"unknown interaction group", "interaction:\n  dancing:\n    radius: 3\n", true},
		{"bad mode name", "mode:\n  initial: sleepy\n", true},
		{"preset typo", "mode:\n  presets:\n    work:\n      edge_afinity: 0.3\n", true},
		{"string where number expected", "movement:\n  friction: fast\n", true},
		{"zero dt", "sim:\n  dt: 0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_EmbeddedDefaultsPass(t *testing.T) {
	if err := Validate(defaultsYAML); err != nil {
		t.Fatalf("embedded defaults fail their own schema: %v", err)
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Target = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Population.Target != 123 {
		t.Errorf("expected target 123 after round trip, got %d", loaded.Population.Target)
	}
}

func TestCfg_PanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}

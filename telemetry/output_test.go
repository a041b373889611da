package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/clowder/config"
)

func TestOutputManager_DisabledIsNil(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager and nil error, got %v, %v", om, err)
	}

	// Writes on a nil manager are no-ops.
	if err := om.WritePopulation(PopulationStats{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WritePopulation(PopulationStats{WindowEndTick: i * 600, Cats: 25}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkMassNap, Tick: 600, Description: "nap"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "population.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,cats,") {
		t.Errorf("expected population header, got %q", lines[0])
	}

	bms, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(bms), "mass_nap,600,nap") {
		t.Errorf("expected bookmark row, got %q", bms)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config.yaml, got %v", err)
	}
}

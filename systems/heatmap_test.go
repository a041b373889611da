package systems

import (
	"testing"

	"github.com/pthm-cable/clowder/config"
)

func testHeatmapConfig() config.HeatmapConfig {
	return config.HeatmapConfig{Cols: 10, Rows: 10, Decay: 0.5, Rate: 1, NeighborFactor: 0.25}
}

func TestHeatmap_HeatsCursorCell(t *testing.T) {
	h := NewHeatmap(testHeatmapConfig(), 100, 100)

	h.Update(55, 55, 0.4)

	tests := []struct {
		name   string
		cx, cy int
		want   float32
	}{
		{"cursor cell", 5, 5, 0.4},
		{"neighbor", 4, 5, 0.1},
		{"diagonal neighbor", 6, 6, 0.1},
		{"outside block", 7, 5, 0},
	}
	for _, tt := range tests {
		if got := h.Cell(tt.cx, tt.cy); got != tt.want {
			t.Errorf("%s: expected %.2f, got %.2f", tt.name, tt.want, got)
		}
	}
}

func TestHeatmap_DecaysAndCaps(t *testing.T) {
	h := NewHeatmap(testHeatmapConfig(), 100, 100)
	for i := 0; i < 10; i++ {
		h.Update(5, 5, 1)
	}
	if got := h.Cell(0, 0); got != 1 {
		t.Errorf("expected heat capped at 1, got %.3f", got)
	}

	h.Update(95, 95, 0)
	if got := h.Cell(0, 0); got != 0.5 {
		t.Errorf("expected decay to 0.5, got %.3f", got)
	}
}

func TestHeatmap_SampleOutsideGrid(t *testing.T) {
	h := NewHeatmap(testHeatmapConfig(), 100, 100)
	h.Update(1, 1, 1)

	for _, p := range [][2]float32{{-1, 5}, {5, -0.5}, {100, 5}, {5, 250}} {
		if got := h.Sample(p[0], p[1]); got != 0 {
			t.Errorf("expected 0 at (%.1f, %.1f), got %.2f", p[0], p[1], got)
		}
	}
	if got := h.Sample(1, 1); got != 1 {
		t.Errorf("expected 1 at the cursor, got %.2f", got)
	}
}

func TestHeatmap_ResizeKeepsValues(t *testing.T) {
	h := NewHeatmap(testHeatmapConfig(), 100, 100)
	h.Update(15, 15, 0.5)

	h.Resize(200, 200)

	if got := h.Sample(30, 30); got != 0.5 {
		t.Errorf("expected rescaled sample 0.5, got %.2f", got)
	}
}

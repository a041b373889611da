package systems

import "github.com/pthm-cable/clowder/config"

// Heatmap is a decaying grid of where the cursor has been. It implements
// AvoidanceField so mobile cats drift away from hot spots.
type Heatmap struct {
	cols, rows   int
	cellW, cellH float32
	cells        []float32
	cfg          config.HeatmapConfig
	enabled      bool
}

// NewHeatmap creates a heatmap covering a width x height screen.
func NewHeatmap(cfg config.HeatmapConfig, width, height float32) *Heatmap {
	h := &Heatmap{
		cols:  max(cfg.Cols, 1),
		rows:  max(cfg.Rows, 1),
		cfg:   cfg,
		cells: make([]float32, max(cfg.Cols, 1)*max(cfg.Rows, 1)),
	}
	h.Resize(width, height)
	return h
}

// Resize rescales the grid to a new screen size, keeping the heat values.
func (h *Heatmap) Resize(width, height float32) {
	h.cellW = width / float32(h.cols)
	h.cellH = height / float32(h.rows)
}

// Enabled reports whether cats should avoid the field.
func (h *Heatmap) Enabled() bool { return h.enabled }

// SetEnabled toggles avoidance.
func (h *Heatmap) SetEnabled(on bool) { h.enabled = on }

// Dims returns the grid size.
func (h *Heatmap) Dims() (cols, rows int) { return h.cols, h.rows }

// Cell returns the heat of grid cell (cx, cy).
func (h *Heatmap) Cell(cx, cy int) float32 {
	if cx < 0 || cy < 0 || cx >= h.cols || cy >= h.rows {
		return 0
	}
	return h.cells[cy*h.cols+cx]
}

// Update decays every cell and heats the cursor cell and its neighbors.
func (h *Heatmap) Update(cursorX, cursorY, dt float32) {
	for i := range h.cells {
		h.cells[i] *= h.cfg.Decay
	}

	cx, cy, ok := h.cellOf(cursorX, cursorY)
	if !ok {
		return
	}
	add := dt * h.cfg.Rate
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := cx+dx, cy+dy
			if nx < 0 || ny < 0 || nx >= h.cols || ny >= h.rows {
				continue
			}
			v := add
			if dx != 0 || dy != 0 {
				v *= h.cfg.NeighborFactor
			}
			i := ny*h.cols + nx
			h.cells[i] = min(h.cells[i]+v, 1)
		}
	}
}

// Sample returns the heat at a screen position, 0 outside the grid.
func (h *Heatmap) Sample(x, y float32) float32 {
	cx, cy, ok := h.cellOf(x, y)
	if !ok {
		return 0
	}
	return h.cells[cy*h.cols+cx]
}

func (h *Heatmap) cellOf(x, y float32) (int, int, bool) {
	if x < 0 || y < 0 || h.cellW <= 0 || h.cellH <= 0 {
		return 0, 0, false
	}
	cx, cy := int(x/h.cellW), int(y/h.cellH)
	if cx >= h.cols || cy >= h.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// Package systems provides ECS systems for the simulation.
package systems

import "math"

// SpatialHash buckets snapshot indices by grid cell. Cells are mapped into a
// fixed-size table with a multiplicative hash, so the grid is unbounded and
// off-screen positions still land somewhere. Distinct cells may share a
// bucket: callers must distance-check what they get back.
type SpatialHash struct {
	cellSize    float32
	invCellSize float32
	buckets     [][]int32
}

// NewSpatialHash creates a hash with tableSize buckets, each pre-sized to
// bucketCap entries.
func NewSpatialHash(cellSize float32, tableSize, bucketCap int) *SpatialHash {
	if tableSize < 1 {
		tableSize = 1
	}
	buckets := make([][]int32, tableSize)
	for i := range buckets {
		buckets[i] = make([]int32, 0, bucketCap)
	}
	return &SpatialHash{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		buckets:     buckets,
	}
}

// CellSize returns the grid cell edge length.
func (h *SpatialHash) CellSize() float32 {
	return h.cellSize
}

// Clear empties every bucket, keeping capacity.
func (h *SpatialHash) Clear() {
	for i := range h.buckets {
		h.buckets[i] = h.buckets[i][:0]
	}
}

// Insert adds idx to the bucket of the cell containing (x, y).
func (h *SpatialHash) Insert(x, y float32, idx int32) {
	cx, cy := h.cellCoords(x, y)
	b := h.bucket(cx, cy)
	h.buckets[b] = append(h.buckets[b], idx)
}

// ForEachNeighbor calls fn for every index stored in the 3x3 block of cells
// around (x, y). Each index is reported at most once per call even when
// several of the nine cells hash to the same bucket.
func (h *SpatialHash) ForEachNeighbor(x, y float32, fn func(idx int32)) {
	var seen [9]int
	n := h.blockBuckets(x, y, &seen)
	for _, b := range seen[:n] {
		for _, idx := range h.buckets[b] {
			fn(idx)
		}
	}
}

// NeighborsInto appends the same set as ForEachNeighbor to dst and returns
// it. Reuse dst across calls to avoid allocations.
func (h *SpatialHash) NeighborsInto(dst []int32, x, y float32) []int32 {
	var seen [9]int
	n := h.blockBuckets(x, y, &seen)
	for _, b := range seen[:n] {
		dst = append(dst, h.buckets[b]...)
	}
	return dst
}

// blockBuckets writes the distinct bucket indices for the 3x3 block into
// out and returns how many there are.
func (h *SpatialHash) blockBuckets(x, y float32, out *[9]int) int {
	cx, cy := h.cellCoords(x, y)
	n := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			b := h.bucket(cx+dx, cy+dy)
			dup := false
			for _, s := range out[:n] {
				if s == b {
					dup = true
					break
				}
			}
			if !dup {
				out[n] = b
				n++
			}
		}
	}
	return n
}

func (h *SpatialHash) cellCoords(x, y float32) (int32, int32) {
	return int32(math.Floor(float64(x * h.invCellSize))), int32(math.Floor(float64(y * h.invCellSize)))
}

func (h *SpatialHash) bucket(cx, cy int32) int {
	hash := (uint32(cx) * 73856093) ^ (uint32(cy) * 19349663)
	return int(hash % uint32(len(h.buckets)))
}

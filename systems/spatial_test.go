package systems

import (
	"slices"
	"testing"

	"github.com/pthm-cable/clowder/components"
)

func TestSpatialHash_FindsBlockNeighbors(t *testing.T) {
	h := NewSpatialHash(100, 1024, 4)
	points := []struct {
		x, y float32
	}{
		{150, 150}, // center cell (1,1)
		{50, 50},   // (0,0)
		{250, 250}, // (2,2)
		{150, 250}, // (1,2)
		{-20, 150}, // (-1,1), outside the 3x3 block
	}
	for i, p := range points {
		h.Insert(p.x, p.y, int32(i))
	}

	got := h.NeighborsInto(nil, 150, 150)
	for _, want := range []int32{0, 1, 2, 3} {
		if !slices.Contains(got, want) {
			t.Errorf("expected index %d in neighbors, got %v", want, got)
		}
	}
}

func TestSpatialHash_NoDuplicatesWhenBucketsCollide(t *testing.T) {
	// A single bucket makes all nine cells collide.
	h := NewSpatialHash(50, 1, 8)
	for i := int32(0); i < 6; i++ {
		h.Insert(float32(i)*10, float32(i)*10, i)
	}

	seen := make(map[int32]int)
	h.ForEachNeighbor(20, 20, func(idx int32) { seen[idx]++ })

	if len(seen) != 6 {
		t.Errorf("expected 6 distinct indices, got %d", len(seen))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("index %d reported %d times", idx, n)
		}
	}
}

func TestSpatialHash_ClearKeepsCapacity(t *testing.T) {
	h := NewSpatialHash(64, 16, 4)
	for i := int32(0); i < 100; i++ {
		h.Insert(10, 10, i)
	}
	b := h.bucket(h.cellCoords(10, 10))
	capBefore := cap(h.buckets[b])

	h.Clear()

	if len(h.buckets[b]) != 0 {
		t.Errorf("expected empty bucket after Clear, got %d", len(h.buckets[b]))
	}
	if cap(h.buckets[b]) != capBefore {
		t.Errorf("expected capacity %d kept, got %d", capBefore, cap(h.buckets[b]))
	}
	if got := h.NeighborsInto(nil, 10, 10); len(got) != 0 {
		t.Errorf("expected no neighbors after Clear, got %v", got)
	}
}

func TestSpatialHash_NegativeCoordinates(t *testing.T) {
	h := NewSpatialHash(100, 256, 4)
	h.Insert(-150, -150, 7)

	got := h.NeighborsInto(nil, -120, -180)
	if !slices.Contains(got, 7) {
		t.Errorf("expected off-screen index to be found, got %v", got)
	}
}

func TestSnapshot_RebuildMarksStacksAndSkipsDropIns(t *testing.T) {
	tw := newTestWorld(t, 1)
	base := tw.spawn(100, 100, 0, 5, neutral)
	climber := tw.spawn(100, 70, 0, 5, neutral)
	falling := tw.spawn(300, -50, 0, 5, neutral)
	tw.stack.Add(climber, &components.Stacked{Base: base})
	tw.addSpawnAnim(falling, 100)

	tw.rebuild()

	if len(tw.snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(tw.snaps))
	}
	for _, s := range tw.snaps {
		switch s.Entity {
		case base:
			if !s.IsBase || s.IsStacked {
				t.Errorf("base flags wrong: base=%v stacked=%v", s.IsBase, s.IsStacked)
			}
		case climber:
			if !s.IsStacked || s.IsBase {
				t.Errorf("climber flags wrong: base=%v stacked=%v", s.IsBase, s.IsStacked)
			}
		default:
			t.Errorf("unexpected entity in snapshot")
		}
	}

	for i, s := range tw.snaps {
		if idx, ok := tw.snap.IndexOf(s.Entity); !ok || int(idx) != i {
			t.Errorf("expected index %d, got %d (ok=%v)", i, idx, ok)
		}
	}
}

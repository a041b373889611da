package systems

import (
	"testing"

	"github.com/pthm-cable/clowder/components"
)

func TestSpawnAnim_DropsAndSettles(t *testing.T) {
	tw := newTestWorld(t, 1)
	e := tw.spawn(300, -60, components.Idle, 2, neutral)
	tw.addSpawnAnim(e, 400)
	sys := NewSpawnAnimSystem(tw.w, tw.cfg.SpawnAnim)

	bounces := 0
	var first float32
	for tick := 0; tick < 600 && tw.anim.Has(e); tick++ {
		for _, ev := range sys.Update(tw.cfg.Derived.DT32) {
			if ev.Y != 400 {
				t.Errorf("expected impact at y 400, got %.1f", ev.Y)
			}
			if bounces == 0 {
				first = ev.Intensity
			} else if ev.Intensity > first {
				t.Errorf("expected bounces to lose energy: %.2f after %.2f", ev.Intensity, first)
			}
			bounces++
		}
	}

	if tw.anim.Has(e) {
		t.Fatal("expected the drop-in to finish")
	}
	if bounces == 0 || bounces > tw.cfg.SpawnAnim.MaxBounces {
		t.Errorf("expected 1 to %d impacts, got %d", tw.cfg.SpawnAnim.MaxBounces, bounces)
	}
	if pos := tw.pos.Get(e); pos.Y != 400 {
		t.Errorf("expected cat resting at y 400, got %.1f", pos.Y)
	}
	if prev := tw.prev.Get(e); prev.Y != 400 {
		t.Errorf("expected prev y 400, got %.1f", prev.Y)
	}
}

func TestCursorPath_DeterministicAndBounded(t *testing.T) {
	a := NewCursorPath(9, 1280, 800)
	b := NewCursorPath(9, 1280, 800)

	for i := 0; i < 5000; i++ {
		ax, ay := a.Advance(1.0 / 60)
		bx, by := b.Advance(1.0 / 60)
		if ax != bx || ay != by {
			t.Fatalf("step %d: paths diverged (%.2f, %.2f) vs (%.2f, %.2f)", i, ax, ay, bx, by)
		}
		if ax < 0 || ax > 1280 || ay < 0 || ay > 800 {
			t.Fatalf("step %d: left the screen at (%.2f, %.2f)", i, ax, ay)
		}
	}
	if x, y := a.Position(); x == 0 && y == 0 {
		t.Error("expected a non-trivial position")
	}
}

package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/clowder/components"
)

var curious = components.Personality{Laziness: 0.2, Energy: 0.5, Curiosity: 0.9, Skittishness: 0.1}

func TestCursorState_Speed(t *testing.T) {
	var c CursorState
	c.Update(100, 100, 0.1, 5)
	if c.Speed != 0 {
		t.Errorf("expected first sample speed 0, got %.2f", c.Speed)
	}
	if c.StillTime <= 0 {
		t.Errorf("expected still time to accumulate, got %.2f", c.StillTime)
	}

	c.Update(110, 100, 0.1, 5)
	if math.Abs(float64(c.Speed-100)) > 0.01 {
		t.Errorf("expected speed 100, got %.2f", c.Speed)
	}
	if c.StillTime != 0 {
		t.Errorf("expected still time reset, got %.2f", c.StillTime)
	}
}

func TestMouse_CuriousCatChasesStillCursor(t *testing.T) {
	tw := newTestWorld(t, 11)
	e := tw.spawn(100, 100, components.Idle, 5, curious)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)
	cursor := &CursorState{X: 150, Y: 100}

	chased := false
	for tick := 0; tick < 2000 && !chased; tick++ {
		sys.Update(tw.rng, cursor, true)
		chased = tw.stateOf(e) == components.ChasingMouse
	}

	if !chased {
		t.Fatal("expected the curious cat to start chasing")
	}
	if v := tw.vel.Get(e); v.X <= 0 || v.Y != 0 {
		t.Errorf("expected velocity toward the cursor, got (%.2f, %.2f)", v.X, v.Y)
	}
}

func TestMouse_ChaseDisabled(t *testing.T) {
	tw := newTestWorld(t, 11)
	e := tw.spawn(100, 100, components.Idle, 5, curious)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)
	cursor := &CursorState{X: 150, Y: 100, StillTime: 60}

	for tick := 0; tick < 2000; tick++ {
		sys.Update(tw.rng, cursor, false)
	}

	if got := tw.stateOf(e); got != components.Idle {
		t.Errorf("expected Idle with chase disabled, got %v", got)
	}
}

func TestMouse_LazyCatsIgnoreCursor(t *testing.T) {
	tw := newTestWorld(t, 5)
	lazy := components.Personality{Laziness: 0.9, Curiosity: 0.9, Skittishness: 0.9}
	e := tw.spawn(100, 100, components.Idle, 5, lazy)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)
	cursor := &CursorState{X: 120, Y: 100, StillTime: 60}

	for tick := 0; tick < 2000; tick++ {
		sys.Update(tw.rng, cursor, true)
	}

	if got := tw.stateOf(e); got != components.Idle {
		t.Errorf("expected lazy cat to stay Idle, got %v", got)
	}
}

func TestMouse_MosesScatter(t *testing.T) {
	tw := newTestWorld(t, 1)
	const cx, cy = 640, 400
	for i := 0; i < 20; i++ {
		a := float64(i) / 20 * twoPi
		tw.spawn(cx+100*float32(math.Cos(a)), cy+100*float32(math.Sin(a)), components.Sleeping, 5, neutral)
	}
	far := tw.spawn(cx+450, cy, components.Sleeping, 5, neutral)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)
	cursor := &CursorState{X: cx, Y: cy, Speed: 2000}

	sys.Update(tw.rng, cursor, true)

	query := sys.filter.Query()
	for query.Next() {
		pos, vel, st, _ := query.Get()
		if query.Entity() == far {
			if vel.X != 0 || vel.Y != 0 || st.State != components.Sleeping {
				t.Errorf("expected cat outside the radius untouched, got %v (%.1f, %.1f)", st.State, vel.X, vel.Y)
			}
			continue
		}
		if dot := vel.X*(pos.X-cx) + vel.Y*(pos.Y-cy); dot <= 0 {
			t.Errorf("expected push away from cursor, got dot %.2f", dot)
		}
		if st.State != components.Running {
			t.Errorf("expected strong push to wake the cat, got %v", st.State)
		}
	}
}

func TestMouse_OngoingFleeSteersAway(t *testing.T) {
	tw := newTestWorld(t, 1)
	pers := components.Personality{Skittishness: 1}
	e := tw.spawn(200, 100, components.FleeingCursor, 1, pers)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)

	sys.Update(tw.rng, &CursorState{X: 100, Y: 100}, true)

	v := tw.vel.Get(e)
	if math.Abs(float64(v.X-tw.cfg.Mouse.FleeSpeedMax)) > 0.01 || v.Y != 0 {
		t.Errorf("expected (%.1f, 0), got (%.2f, %.2f)", tw.cfg.Mouse.FleeSpeedMax, v.X, v.Y)
	}
}

func TestMouse_ChaserArrives(t *testing.T) {
	tw := newTestWorld(t, 1)
	e := tw.spawn(100, 100, components.ChasingMouse, 2, curious)
	sys := NewMouseSystem(tw.w, tw.cfg.Mouse)

	sys.Update(tw.rng, &CursorState{X: 103, Y: 100}, true)

	if got := tw.stateOf(e); got != components.Idle {
		t.Errorf("expected Idle on arrival, got %v", got)
	}
}

package systems

import (
	"testing"

	"github.com/pthm-cable/clowder/components"
)

// rampField heats up linearly from left to right.
type rampField struct{ width float32 }

func (f rampField) Enabled() bool { return true }

func (f rampField) Sample(x, _ float32) float32 { return clamp01(x / f.width) }

func TestMovement_KeepsCatsOnScreen(t *testing.T) {
	tw := newTestWorld(t, 1)
	b := tw.bounds()
	margin := tw.cfg.Movement.ScreenMargin

	starts := []struct {
		x, y, vx, vy float32
	}{
		{-500, -500, -100, -100},
		{b.Width + 900, b.Height + 900, 400, 400},
		{10, b.Height - 10, -2000, 2000},
		{b.Width / 2, b.Height / 2, 5000, 0},
	}
	for _, s := range starts {
		e := tw.spawn(s.x, s.y, components.Running, 5, neutral)
		v := tw.vel.Get(e)
		v.X, v.Y = s.vx, s.vy
	}
	sys := NewMovementSystem(tw.w, tw.cfg.Movement)

	for tick := 0; tick < 120; tick++ {
		sys.Update(tw.cfg.Derived.DT32, b, nil, 0)

		query := sys.filter.Query()
		for query.Next() {
			pos, _, _, _ := query.Get()
			if pos.X < margin || pos.X > b.Width-margin || pos.Y < margin || pos.Y > b.Height-margin {
				query.Close()
				t.Fatalf("tick %d: cat escaped to (%.1f, %.1f)", tick, pos.X, pos.Y)
			}
		}
	}
}

func TestMovement_SnapsSlowVelocityToZero(t *testing.T) {
	tw := newTestWorld(t, 1)
	e := tw.spawn(640, 400, components.Idle, 5, neutral)
	tw.vel.Get(e).X = 0.3
	sys := NewMovementSystem(tw.w, tw.cfg.Movement)

	sys.Update(tw.cfg.Derived.DT32, tw.bounds(), nil, 0)

	if v := tw.vel.Get(e); v.X != 0 || v.Y != 0 {
		t.Errorf("expected zero velocity, got (%.3f, %.3f)", v.X, v.Y)
	}
}

func TestMovement_RecordsPreviousPosition(t *testing.T) {
	tw := newTestWorld(t, 1)
	e := tw.spawn(300, 300, components.Running, 5, neutral)
	tw.vel.Get(e).X = 60
	sys := NewMovementSystem(tw.w, tw.cfg.Movement)

	sys.Update(0.5, tw.bounds(), nil, 0)

	prev := tw.prev.Get(e)
	if prev.X != 300 || prev.Y != 300 {
		t.Errorf("expected prev (300, 300), got (%.1f, %.1f)", prev.X, prev.Y)
	}
	if pos := tw.pos.Get(e); pos.X != 330 {
		t.Errorf("expected x 330, got %.1f", pos.X)
	}
}

func TestMovement_EdgeAffinityOnlyPullsWalkers(t *testing.T) {
	tests := []struct {
		name  string
		state components.BehaviorState
		wantX bool // expect a positive x velocity
	}{
		{"walker drifts outward", components.Walking, true},
		{"idle cat stays put", components.Idle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld(t, 1)
			e := tw.spawn(1000, 400, tt.state, 5, neutral)
			sys := NewMovementSystem(tw.w, tw.cfg.Movement)

			sys.Update(tw.cfg.Derived.DT32, tw.bounds(), nil, 1)

			v := tw.vel.Get(e)
			if tt.wantX && v.X <= 0 {
				t.Errorf("expected outward pull, got vel.X %.2f", v.X)
			}
			if !tt.wantX && v.X != 0 {
				t.Errorf("expected no pull, got vel.X %.2f", v.X)
			}
		})
	}
}

func TestMovement_AvoidsHotField(t *testing.T) {
	tw := newTestWorld(t, 1)
	idle := tw.spawn(640, 300, components.Idle, 5, neutral)
	asleep := tw.spawn(640, 500, components.Sleeping, 5, neutral)
	sys := NewMovementSystem(tw.w, tw.cfg.Movement)

	sys.Update(tw.cfg.Derived.DT32, tw.bounds(), rampField{width: 1000}, 0)

	if v := tw.vel.Get(idle); v.X >= 0 {
		t.Errorf("expected mobile cat to move toward cooler cells, got vel.X %.2f", v.X)
	}
	if v := tw.vel.Get(asleep); v.X != 0 {
		t.Errorf("expected sleeping cat to ignore the field, got vel.X %.2f", v.X)
	}
}

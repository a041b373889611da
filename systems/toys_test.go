package systems

import (
	"testing"

	"github.com/pthm-cable/clowder/components"
)

func TestYarnBalls_SpawnReplacesOldest(t *testing.T) {
	tw := newTestWorld(t, 1)
	tw.cfg.Yarn.MaxBalls = 3
	yb := NewYarnBalls(tw.cfg.Yarn)

	for i := 0; i < 5; i++ {
		yb.Spawn(float32(100+i), 100)
	}
	if len(yb.Balls) != 3 {
		t.Fatalf("expected 3 balls, got %d", len(yb.Balls))
	}
	if yb.Balls[0].X != 102 || yb.Balls[2].X != 104 {
		t.Errorf("expected the newest balls kept, got x=%.0f..%.0f", yb.Balls[0].X, yb.Balls[2].X)
	}
}

func TestYarnBalls_Update(t *testing.T) {
	tests := []struct {
		name      string
		ball      YarnBall
		cursorX   float32
		cursorY   float32
		wantVX    func(vx float32) bool
		wantAlive bool
	}{
		{
			name:      "cursor pushes ball away",
			ball:      YarnBall{X: 400, Y: 300, Lifetime: 10},
			cursorX:   390,
			cursorY:   300,
			wantVX:    func(vx float32) bool { return vx > 0 },
			wantAlive: true,
		},
		{
			name:      "right wall bounces back",
			ball:      YarnBall{X: 795, Y: 300, VX: 400, Lifetime: 10},
			cursorX:   -1000,
			cursorY:   -1000,
			wantVX:    func(vx float32) bool { return vx < 0 },
			wantAlive: true,
		},
		{
			name:      "slow ball stops",
			ball:      YarnBall{X: 400, Y: 300, VX: 2, Lifetime: 10},
			cursorX:   -1000,
			cursorY:   -1000,
			wantVX:    func(vx float32) bool { return vx == 0 },
			wantAlive: true,
		},
		{
			name:      "expired ball is dropped",
			ball:      YarnBall{X: 400, Y: 300, Lifetime: 0.01},
			cursorX:   -1000,
			cursorY:   -1000,
			wantAlive: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld(t, 1)
			yb := NewYarnBalls(tw.cfg.Yarn)
			yb.Balls = append(yb.Balls, tt.ball)

			yb.Update(1.0/60, 800, 600, tt.cursorX, tt.cursorY)

			if alive := len(yb.Balls) == 1; alive != tt.wantAlive {
				t.Fatalf("expected alive %v, got %v", tt.wantAlive, alive)
			}
			if !tt.wantAlive {
				return
			}
			b := yb.Balls[0]
			if !tt.wantVX(b.VX) {
				t.Errorf("unexpected horizontal velocity %.2f", b.VX)
			}
			m := tw.cfg.Yarn.Margin
			if b.X < m || b.X > 800-m {
				t.Errorf("expected ball inside the margins, got x=%.1f", b.X)
			}
		})
	}
}

func TestYarnSystem_ChaseAndBat(t *testing.T) {
	tw := newTestWorld(t, 1)
	curious := components.Personality{Curiosity: 0.9}
	chaser := tw.spawn(300, 300, components.Idle, 5, curious)
	batter := tw.spawn(505, 300, components.Walking, 5, curious)
	dull := tw.spawn(400, 250, components.Idle, 5, components.Personality{Curiosity: 0.1})
	sleeper := tw.spawn(420, 300, components.Sleeping, 5, curious)
	_ = batter

	yb := NewYarnBalls(tw.cfg.Yarn)
	yb.Spawn(500, 300)
	sys := NewYarnSystem(tw.w, tw.cfg.Yarn)

	sys.Update(yb)

	if v := tw.vel.Get(chaser); v.X <= 0 || v.Y != 0 {
		t.Errorf("expected the curious cat to run at the ball, got (%.1f, %.1f)", v.X, v.Y)
	}
	if got := tw.stateOf(chaser); got != components.Walking {
		t.Errorf("expected the chaser Walking, got %v", got)
	}
	if yb.Balls[0].VX >= 0 {
		t.Errorf("expected the ball batted away from the cat, got vx=%.1f", yb.Balls[0].VX)
	}
	if v := tw.vel.Get(dull); v.X != 0 || v.Y != 0 {
		t.Errorf("expected an incurious cat to ignore the ball, got (%.1f, %.1f)", v.X, v.Y)
	}
	if got := tw.stateOf(sleeper); got != components.Sleeping {
		t.Errorf("expected the sleeper undisturbed, got %v", got)
	}
}

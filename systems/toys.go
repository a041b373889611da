package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// YarnBall is a middle-click toy that rolls, bounces off the screen edges
// and gets batted around by cats.
type YarnBall struct {
	X, Y     float32
	VX, VY   float32
	Lifetime float32
}

// YarnBalls owns the yarn balls on screen, oldest first.
type YarnBalls struct {
	cfg   config.YarnConfig
	Balls []YarnBall
}

// NewYarnBalls creates an empty yarn ball set.
func NewYarnBalls(cfg config.YarnConfig) *YarnBalls {
	return &YarnBalls{
		cfg:   cfg,
		Balls: make([]YarnBall, 0, cfg.MaxBalls),
	}
}

// Spawn drops a resting ball at (x, y), replacing the oldest when full.
func (yb *YarnBalls) Spawn(x, y float32) {
	if yb.cfg.MaxBalls <= 0 {
		return
	}
	if len(yb.Balls) >= yb.cfg.MaxBalls {
		copy(yb.Balls, yb.Balls[1:])
		yb.Balls = yb.Balls[:len(yb.Balls)-1]
	}
	yb.Balls = append(yb.Balls, YarnBall{X: x, Y: y, Lifetime: yb.cfg.Lifetime})
}

// Bat adds an impulse to ball i.
func (yb *YarnBalls) Bat(i int, ix, iy float32) {
	if i < 0 || i >= len(yb.Balls) {
		return
	}
	yb.Balls[i].VX += ix
	yb.Balls[i].VY += iy
}

// Update pushes balls away from the cursor, integrates them, bounces them
// off the screen edges and drops expired ones.
func (yb *YarnBalls) Update(dt, width, height, cursorX, cursorY float32) {
	cfg := &yb.cfg
	kept := yb.Balls[:0]
	for _, b := range yb.Balls {
		dx, dy := b.X-cursorX, b.Y-cursorY
		if dist := length(dx, dy); dist < cfg.PushRadius && dist > 1 {
			k := (1 - dist/cfg.PushRadius) * cfg.PushStrength * dt / dist
			b.VX += dx * k
			b.VY += dy * k
		}

		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.VX *= cfg.Friction
		b.VY *= cfg.Friction
		b.Lifetime -= dt

		m := cfg.Margin
		if b.X < m {
			b.X, b.VX = m, abs32(b.VX)*cfg.Bounce
		}
		if b.X > width-m {
			b.X, b.VX = width-m, -abs32(b.VX)*cfg.Bounce
		}
		if b.Y < m {
			b.Y, b.VY = m, abs32(b.VY)*cfg.Bounce
		}
		if b.Y > height-m {
			b.Y, b.VY = height-m, -abs32(b.VY)*cfg.Bounce
		}

		if b.VX*b.VX+b.VY*b.VY < cfg.MinSpeed*cfg.MinSpeed {
			b.VX, b.VY = 0, 0
		}
		if b.Lifetime > 0 {
			kept = append(kept, b)
		}
	}
	yb.Balls = kept
}

// YarnSystem sends curious cats after the nearest yarn ball and lets the
// ones that reach it bat it away.
type YarnSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.CatState, components.Personality]
	cfg    config.YarnConfig
}

// NewYarnSystem creates a yarn play system.
func NewYarnSystem(w *ecs.World, cfg config.YarnConfig) *YarnSystem {
	return &YarnSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.CatState, components.Personality](w).
			Without(ecs.C[components.SpawnAnimation]()),
		cfg: cfg,
	}
}

// Update steers cats toward balls. Does nothing without balls.
func (s *YarnSystem) Update(balls *YarnBalls) {
	if len(balls.Balls) == 0 {
		return
	}
	cfg := &s.cfg
	query := s.filter.Query()
	for query.Next() {
		pos, vel, st, pers := query.Get()
		if st.State != components.Idle && st.State != components.Walking {
			continue
		}
		if pers.Curiosity < cfg.MinCuriosity {
			continue
		}

		nearest := -1
		best := cfg.ChaseRadius * cfg.ChaseRadius
		for i := range balls.Balls {
			if d := distanceSq(balls.Balls[i].X, balls.Balls[i].Y, pos.X, pos.Y); d < best {
				best = d
				nearest = i
			}
		}
		if nearest < 0 {
			continue
		}

		b := &balls.Balls[nearest]
		dx, dy := b.X-pos.X, b.Y-pos.Y
		dist := length(dx, dy)
		if dist < 0.001 {
			continue
		}
		nx, ny := dx/dist, dy/dist
		if dist <= cfg.BatRadius {
			balls.Bat(nearest, nx*cfg.BatSpeed, ny*cfg.BatSpeed)
			vel.X, vel.Y = vel.X*0.5, vel.Y*0.5
		} else {
			speed := cfg.ChaseSpeed * (0.5 + pers.Curiosity)
			vel.X, vel.Y = nx*speed, ny*speed
		}
		st.State = components.Walking
		st.Timer = 0.5
	}
}

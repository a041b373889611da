package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// Treat is a right-click treat that attracts nearby cats until it expires.
type Treat struct {
	X, Y  float32
	Timer float32
}

// ClickState edge-detects mouse buttons and tracks treats and the laser.
type ClickState struct {
	cfg config.ClickConfig

	leftWasDown   bool
	rightWasDown  bool
	middleWasDown bool
	lastLeft      float64
	elapsed       float64

	Treats     []Treat
	LaserOn    bool
	LaserTimer float32

	// Set for the update that saw the press.
	LeftClicked   bool
	RightClicked  bool
	DoubleClicked bool
	MiddleClicked bool
}

// NewClickState creates a click tracker.
func NewClickState(cfg config.ClickConfig) *ClickState {
	return &ClickState{
		cfg:      cfg,
		lastLeft: -1,
		Treats:   make([]Treat, 0, cfg.TreatMax),
	}
}

// Update polls the raw button state. Call once per tick.
func (c *ClickState) Update(leftDown, rightDown, middleDown bool, x, y, dt float32) {
	c.elapsed += float64(dt)
	c.LeftClicked = false
	c.RightClicked = false
	c.DoubleClicked = false
	c.MiddleClicked = false

	if leftDown && !c.leftWasDown {
		if c.elapsed-c.lastLeft < float64(c.cfg.DoubleClickWindow) {
			c.DoubleClicked = true
		} else {
			c.LeftClicked = true
		}
		c.lastLeft = c.elapsed
	}
	c.leftWasDown = leftDown

	if rightDown && !c.rightWasDown {
		c.RightClicked = true
		if len(c.Treats) < c.cfg.TreatMax {
			c.Treats = append(c.Treats, Treat{X: x, Y: y, Timer: c.cfg.TreatLifetime})
		}
	}
	c.rightWasDown = rightDown

	c.MiddleClicked = middleDown && !c.middleWasDown
	c.middleWasDown = middleDown

	kept := c.Treats[:0]
	for _, t := range c.Treats {
		t.Timer -= dt
		if t.Timer > 0 {
			kept = append(kept, t)
		}
	}
	c.Treats = kept

	if c.DoubleClicked {
		c.LaserOn = true
		c.LaserTimer = c.cfg.LaserDuration
	}
	if c.LaserOn {
		c.LaserTimer -= dt
		if c.LaserTimer <= 0 {
			c.LaserOn = false
			c.LaserTimer = 0
		}
	}
}

// ClickSystem applies click reactions: startle and scatter on left click,
// treat attraction, and the laser chase.
type ClickSystem struct {
	filter   ecs.Filter4[components.Position, components.Velocity, components.CatState, components.Personality]
	stateMap *ecs.Map[components.CatState]
	velMap   *ecs.Map[components.Velocity]

	cfg      config.ClickConfig
	behavior config.BehaviorConfig
}

// NewClickSystem creates a click reaction system.
func NewClickSystem(w *ecs.World, cfg config.ClickConfig, behavior config.BehaviorConfig) *ClickSystem {
	return &ClickSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.CatState, components.Personality](w).
			Without(ecs.C[components.SpawnAnimation]()),
		stateMap: ecs.NewMap[components.CatState](w),
		velMap:   ecs.NewMap[components.Velocity](w),
		cfg:      cfg,
		behavior: behavior,
	}
}

// Update applies this tick's click effects at the cursor (x, y).
func (s *ClickSystem) Update(rng *rand.Rand, click *ClickState, x, y float32) {
	if click.LeftClicked {
		s.scatter(rng, x, y)
	}
	if len(click.Treats) > 0 {
		s.attract(click.Treats)
	}
	if click.LaserOn {
		s.laser(rng, x, y)
	}
}

func (s *ClickSystem) scatter(rng *rand.Rand, x, y float32) {
	var nearest ecs.Entity
	found := false
	best := s.cfg.StartleRadius * s.cfg.StartleRadius
	fleeSq := s.cfg.FleeRadius * s.cfg.FleeRadius

	query := s.filter.Query()
	for query.Next() {
		pos, vel, st, _ := query.Get()
		dx, dy := pos.X-x, pos.Y-y
		dSq := dx*dx + dy*dy
		if dSq < best {
			best = dSq
			nearest = query.Entity()
			found = true
		}
		if dSq < fleeSq && dSq > 1 {
			dist := length(dx, dy)
			k := s.cfg.FleeStrength * (1 - dist/s.cfg.FleeRadius) / dist
			vel.X += dx * k
			vel.Y += dy * k
			switch st.State {
			case components.Sleeping, components.Idle, components.Grooming:
				st.State = components.Running
				st.Timer = 0.3 + rng.Float32()*0.5
			}
		}
	}

	if found {
		TriggerStartle(s.stateMap.Get(nearest), s.velMap.Get(nearest), rng, &s.behavior)
	}
}

func (s *ClickSystem) attract(treats []Treat) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, st, pers := query.Get()
		if st.State != components.Idle && st.State != components.Walking {
			continue
		}
		best := s.cfg.TreatRadius * s.cfg.TreatRadius
		var tx, ty float32
		found := false
		for _, t := range treats {
			if d := distanceSq(t.X, t.Y, pos.X, pos.Y); d < best {
				best = d
				tx, ty = t.X, t.Y
				found = true
			}
		}
		if !found {
			continue
		}
		dx, dy := tx-pos.X, ty-pos.Y
		dist := length(dx, dy)
		if dist <= 5 {
			continue
		}
		speed := s.cfg.TreatSpeed * (0.5 + pers.Curiosity)
		vel.X, vel.Y = dx/dist*speed, dy/dist*speed
		st.State = components.Walking
		st.Timer = 0.5
	}
}

func (s *ClickSystem) laser(rng *rand.Rand, x, y float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, st, pers := query.Get()
		if pers.Curiosity < s.cfg.LaserMinCuriosity {
			continue
		}
		switch st.State {
		case components.Idle, components.Walking, components.Running, components.ChasingMouse:
		default:
			continue
		}
		dx, dy := x-pos.X, y-pos.Y
		dist := length(dx, dy)
		if dist <= 10 || dist >= s.cfg.LaserRadius {
			continue
		}
		speed := s.cfg.LaserSpeed * (0.8 + pers.Curiosity*0.4)
		jx := (rng.Float32() - 0.5) * s.cfg.LaserJitter
		jy := (rng.Float32() - 0.5) * s.cfg.LaserJitter
		vel.X = dx/dist*speed + jx
		vel.Y = dy/dist*speed + jy
		st.State = components.ChasingMouse
		st.Timer = 0.5
	}
}

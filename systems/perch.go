package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// DesktopWindow is a window rectangle in screen pixels. Its top edge is a
// platform cats can walk along.
type DesktopWindow struct {
	Left, Top, Right, Bottom float32
}

// PerchSystem snaps wandering cats onto nearby window tops.
type PerchSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.CatState]
	cfg    config.PerchConfig
}

// NewPerchSystem creates a perching system.
func NewPerchSystem(w *ecs.World, cfg config.PerchConfig) *PerchSystem {
	return &PerchSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.CatState](w).
			Without(ecs.C[components.SpawnAnimation](), ecs.C[components.Stacked]()),
		cfg: cfg,
	}
}

// Update perches at most one platform per cat.
func (s *PerchSystem) Update(rng *rand.Rand, windows []DesktopWindow) {
	if len(windows) == 0 {
		return
	}
	tol := s.cfg.Tolerance

	query := s.filter.Query()
	for query.Next() {
		pos, vel, st := query.Get()
		switch st.State {
		case components.Walking, components.Idle, components.Parading:
		default:
			continue
		}

		for i := range windows {
			win := &windows[i]
			dy := pos.Y - win.Top
			if dy < -tol || dy > s.cfg.SnapDistance {
				continue
			}
			if pos.X < win.Left-tol || pos.X > win.Right+tol {
				continue
			}
			if rng.Float32() > s.cfg.Chance {
				continue
			}

			pos.Y = win.Top - 8
			vel.Y = 0
			if vel.X > -5 && vel.X < 5 {
				if rng.Intn(2) == 0 {
					vel.X = s.cfg.WalkSpeed
				} else {
					vel.X = -s.cfg.WalkSpeed
				}
			}
			pos.X = clampFloat(pos.X, win.Left+5, win.Right-5)

			if st.State == components.Idle {
				st.State = components.Walking
			}
			st.Timer = max(st.Timer, 2+rng.Float32()*3)
			break
		}
	}
}

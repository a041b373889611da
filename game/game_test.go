package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
	"github.com/pthm-cable/clowder/mode"
)

func newTestGame(t *testing.T, seed int64, cats int, tweak func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Population.GrowthDelay = 1e9
	if tweak != nil {
		tweak(cfg)
	}
	g := NewGameWithOptions(Options{Seed: seed, Cats: cats, Headless: true, Config: cfg})
	t.Cleanup(g.Unload)
	return g
}

type catPos struct {
	x, y  float32
	state components.BehaviorState
}

func positions(g *Game) []catPos {
	var out []catPos
	filter := ecs.NewFilter2[components.Position, components.CatState](g.world)
	query := filter.Query()
	for query.Next() {
		pos, st := query.Get()
		out = append(out, catPos{pos.X, pos.Y, st.State})
	}
	return out
}

func TestGame_Deterministic(t *testing.T) {
	run := func() []catPos {
		g := newTestGame(t, 99, 200, nil)
		for i := 0; i < 300; i++ {
			g.UpdateHeadless()
		}
		return positions(g)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("expected equal cat counts, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cat %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGame_InvariantsHoldEveryTick(t *testing.T) {
	g := newTestGame(t, 5, 300, func(cfg *config.Config) {
		cfg.Population.DropIn = true
	})
	g.SpawnCats(50)

	cats := ecs.NewFilter1[components.CatState](g.world)
	targets := ecs.NewFilter2[components.CatState, components.InteractionTarget](g.world)
	stacks := ecs.NewFilter1[components.Stacked](g.world)
	stackMap := ecs.NewMap[components.Stacked](g.world)

	for tick := 0; tick < 600; tick++ {
		g.UpdateHeadless()

		q := cats.Query()
		for q.Next() {
			if st := q.Get(); st.Timer < 0 {
				q.Close()
				t.Fatalf("tick %d: negative timer %v", tick, st.Timer)
			}
		}

		tq := targets.Query()
		for tq.Next() {
			st, _ := tq.Get()
			if !st.State.Targeted() {
				tq.Close()
				t.Fatalf("tick %d: %s cat holds an interaction target", tick, st.State)
			}
		}

		sq := stacks.Query()
		for sq.Next() {
			base := sq.Get().Base
			if stackMap.Has(base) {
				sq.Close()
				t.Fatalf("tick %d: climber stacked on another climber", tick)
			}
		}
	}
}

func TestGame_ContainsCats(t *testing.T) {
	g := newTestGame(t, 11, 200, nil)
	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	margin := g.cfg.Movement.ScreenMargin
	// A climber dropped by a collapse this tick sits one tower step above
	// its base until the next movement pass.
	top := margin - g.cfg.Tower.Offset*1.4
	filter := ecs.NewFilter1[components.Position](g.world).
		Without(ecs.C[components.SpawnAnimation](), ecs.C[components.Stacked]())
	query := filter.Query()
	for query.Next() {
		pos := query.Get()
		if pos.X < margin || pos.X > g.width-margin || pos.Y < top || pos.Y > g.height-margin {
			t.Errorf("expected cat inside the screen, got (%v, %v)", pos.X, pos.Y)
		}
	}
}

func TestGame_AccumulatorIsCapped(t *testing.T) {
	g := newTestGame(t, 3, 10, nil)
	in := FrameInput{ScreenW: 800, ScreenH: 600, CursorX: 400, CursorY: 300}

	// A 5 second stall runs at most max_accumulator worth of ticks.
	g.Update(5, in)

	want := int32(g.cfg.Sim.MaxAccumulator / g.cfg.Sim.DT)
	if got := g.TickCount(); got > want+1 || got < want-1 {
		t.Errorf("expected about %d ticks, got %d", want, got)
	}
	if g.accumulator >= g.cfg.Sim.DT {
		t.Errorf("expected leftover below one tick, got %v", g.accumulator)
	}
}

func TestGame_SkipsEmptyScreen(t *testing.T) {
	g := newTestGame(t, 3, 10, nil)

	tests := []struct {
		name string
		w, h float32
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		g.Update(0.1, FrameInput{ScreenW: tt.w, ScreenH: tt.h})
		if g.TickCount() != 0 {
			t.Errorf("%s: expected no ticks, got %d", tt.name, g.TickCount())
		}
	}
}

func TestGame_PausedDoesNotTick(t *testing.T) {
	g := newTestGame(t, 3, 10, nil)
	g.SetPaused(true)
	g.Update(0.1, FrameInput{ScreenW: 800, ScreenH: 600})
	if g.TickCount() != 0 {
		t.Errorf("expected no ticks while paused, got %d", g.TickCount())
	}
}

func TestGame_PopulationGrowsToTarget(t *testing.T) {
	g := newTestGame(t, 8, 5, func(cfg *config.Config) {
		cfg.Population.GrowthDelay = 0
		cfg.Population.GrowthRate = 60
		cfg.Population.Target = 12
		cfg.Population.DropIn = false
	})

	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	if g.CatCount() != 12 {
		t.Errorf("expected 12 cats, got %d", g.CatCount())
	}

	g.SetTargetPopulation(4)
	g.UpdateHeadless()
	if g.CatCount() != 4 {
		t.Errorf("expected trim to 4 cats, got %d", g.CatCount())
	}
	if n := len(positions(g)); n != 4 {
		t.Errorf("expected 4 entities in the world, got %d", n)
	}
}

func TestGame_AFKBonusCatsComeAndGo(t *testing.T) {
	g := newTestGame(t, 21, 10, func(cfg *config.Config) {
		cfg.Mode.AutoZen = true
		cfg.Mode.DriftAfter = 0.1
		cfg.Mode.EnergizeAfter = 0.2
		cfg.Mode.ZenAfter = 0.3
		cfg.Mode.SpawnPerMinute = 600
		cfg.Mode.BonusCap = 5
		cfg.Mode.ReturnPrevIdle = 0.5
	})

	still := FrameInput{ScreenW: 800, ScreenH: 600, CursorX: 100, CursorY: 100}
	for i := 0; i < 120; i++ {
		g.Update(1.0/60, still)
	}

	if g.Modes().Mode() != mode.Zen {
		t.Errorf("expected Zen while away, got %s", g.Modes().Mode())
	}
	if g.CatCount() != 15 {
		t.Errorf("expected 10 cats plus 5 bonus, got %d", g.CatCount())
	}

	moved := still
	moved.CursorX = 400
	g.Update(1.0/60, moved)

	if g.Modes().AFKActive() {
		t.Error("expected AFK to end on input")
	}
	if g.CatCount() != 10 {
		t.Errorf("expected bonus cats removed, got %d cats", g.CatCount())
	}
}

func TestGame_StateCountsMatchPopulation(t *testing.T) {
	g := newTestGame(t, 4, 64, nil)
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	total := 0
	for _, n := range g.StateCounts() {
		total += n
	}
	if total != g.CatCount() {
		t.Errorf("expected %d cats across states, got %d", g.CatCount(), total)
	}
}

func TestGame_RenderCatsAndSelection(t *testing.T) {
	g := newTestGame(t, 6, 25, nil)
	g.UpdateHeadless()

	cats := g.RenderCats(nil)
	if len(cats) != 25 {
		t.Fatalf("expected 25 render cats, got %d", len(cats))
	}

	snap := g.Snapshots()[0]
	info, ok := g.CatAt(snap.X+1, snap.Y)
	if !ok {
		t.Fatal("expected a cat under the cursor")
	}
	if info.Name == "" {
		t.Error("expected the picked cat to have a name")
	}
	if _, ok := g.CatAt(-500, -500); ok {
		t.Error("expected no cat far off screen")
	}
}

func TestGame_FrameBouncesCollectDropIns(t *testing.T) {
	g := newTestGame(t, 13, 2, func(cfg *config.Config) {
		cfg.Population.DropIn = true
		cfg.Population.Target = 100
	})
	g.SpawnCats(8)

	total := 0
	for i := 0; i < 120 && total == 0; i++ {
		g.UpdateHeadless()
		total += len(g.FrameBounces())
	}
	if total == 0 {
		t.Fatal("expected dropped cats to report landing bounces")
	}

	g.SetPaused(true)
	g.Update(0.1, FrameInput{ScreenW: 800, ScreenH: 600})
	if n := len(g.FrameBounces()); n != 0 {
		t.Errorf("expected no bounces while paused, got %d", n)
	}
}

func TestGame_ChaosModeZoomies(t *testing.T) {
	tests := []struct {
		name   string
		chance float32
		want   bool
	}{
		{"default chance", -1, true},
		{"disabled", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 7, 150, func(cfg *config.Config) {
				if tt.chance >= 0 {
					cfg.Behavior.ZoomiesChance = tt.chance
				}
			})
			g.SetMode(mode.Chaos)

			seen := 0
			for i := 0; i < 900; i++ {
				g.UpdateHeadless()
				if g.StateCounts()[components.Zoomies] > 0 {
					seen++
				}
			}
			if got := seen > 0; got != tt.want {
				t.Errorf("expected zoomies seen %v, got %d ticks with zoomies", tt.want, seen)
			}
		})
	}
}

func TestGame_MiddleClickSpawnsYarn(t *testing.T) {
	g := newTestGame(t, 3, 5, nil)
	press := FrameInput{ScreenW: 800, ScreenH: 600, CursorX: 400, CursorY: 300, MiddleDown: true}
	release := press
	release.MiddleDown = false

	g.Update(g.cfg.Sim.DT, press)
	g.Update(g.cfg.Sim.DT, press)
	if n := len(g.Yarn().Balls); n != 1 {
		t.Fatalf("expected one yarn ball while held, got %d", n)
	}

	g.Update(g.cfg.Sim.DT, release)
	g.Update(g.cfg.Sim.DT, press)
	if n := len(g.Yarn().Balls); n != 2 {
		t.Errorf("expected a second ball after another click, got %d", n)
	}
	if g.IdleSeconds() != 0 {
		t.Errorf("expected a middle click to reset idle time, got %.2f", g.IdleSeconds())
	}
}

package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// testWorld is a small world with spawn helpers shared by the system tests.
type testWorld struct {
	w      *ecs.World
	cfg    *config.Config
	rng    *rand.Rand
	mapper *ecs.Map6[
		components.Position,
		components.PrevPosition,
		components.Velocity,
		components.CatState,
		components.Personality,
		components.Appearance,
	]
	pos    *ecs.Map[components.Position]
	prev   *ecs.Map[components.PrevPosition]
	vel    *ecs.Map[components.Velocity]
	state  *ecs.Map[components.CatState]
	target *ecs.Map[components.InteractionTarget]
	pile   *ecs.Map[components.SleepingPile]
	stack  *ecs.Map[components.Stacked]
	anim   *ecs.Map[components.SpawnAnimation]
	gift   *ecs.Map[components.GiftCarrier]

	hash  *SpatialHash
	snaps []CatSnapshot
	snap  *SnapshotSystem
}

func newTestWorld(t *testing.T, seed int64) *testWorld {
	t.Helper()
	w := ecs.NewWorld()
	cfg := config.Default()
	return &testWorld{
		w:   w,
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		mapper: ecs.NewMap6[
			components.Position,
			components.PrevPosition,
			components.Velocity,
			components.CatState,
			components.Personality,
			components.Appearance,
		](w),
		pos:    ecs.NewMap[components.Position](w),
		prev:   ecs.NewMap[components.PrevPosition](w),
		vel:    ecs.NewMap[components.Velocity](w),
		state:  ecs.NewMap[components.CatState](w),
		target: ecs.NewMap[components.InteractionTarget](w),
		pile:   ecs.NewMap[components.SleepingPile](w),
		stack:  ecs.NewMap[components.Stacked](w),
		anim:   ecs.NewMap[components.SpawnAnimation](w),
		gift:   ecs.NewMap[components.GiftCarrier](w),
		hash:   NewSpatialHash(cfg.Spatial.CellSize, cfg.Spatial.TableSize, cfg.Spatial.BucketCapacity),
		snap:   NewSnapshotSystem(w),
	}
}

// neutral is a personality that triggers nothing on its own.
var neutral = components.Personality{Laziness: 0.5, Energy: 0.5, Curiosity: 0.5, Skittishness: 0.5}

func (tw *testWorld) spawn(x, y float32, state components.BehaviorState, timer float32, pers components.Personality) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	prev := components.PrevPosition{X: x, Y: y}
	vel := components.Velocity{}
	st := components.CatState{State: state, Timer: timer}
	app := components.Appearance{Color: 0xFFA532FF, Size: 1}
	return tw.mapper.NewEntity(&pos, &prev, &vel, &st, &pers, &app)
}

func (tw *testWorld) rebuild() {
	tw.snaps = tw.snap.Rebuild(tw.hash, tw.snaps)
}

func (tw *testWorld) bounds() Bounds {
	return Bounds{Width: tw.cfg.Derived.ScreenW32, Height: tw.cfg.Derived.ScreenH32}
}

// stateOf returns the current behavior of e.
func (tw *testWorld) stateOf(e ecs.Entity) components.BehaviorState {
	return tw.state.Get(e).State
}

// addSpawnAnim marks e as still dropping towards targetY.
func (tw *testWorld) addSpawnAnim(e ecs.Entity, targetY float32) {
	tw.anim.Add(e, &components.SpawnAnimation{TargetY: targetY})
}

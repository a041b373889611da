// Package game owns the simulation state and runs the fixed-timestep tick
// pipeline over it.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
	"github.com/pthm-cable/clowder/mode"
	"github.com/pthm-cable/clowder/systems"
	"github.com/pthm-cable/clowder/telemetry"
)

// Options configures game creation.
type Options struct {
	Seed           int64   // RNG seed; 0 means config seed, then time-based
	Cats           int     // Initial population; 0 means config
	LogStats       bool    // Log stats windows via slog
	StatsWindowSec float64 // Stats window size; 0 means config
	OutputDir      string  // CSV output directory; empty disables output
	Headless       bool    // Drive the cursor with a synthetic path
	StepsPerUpdate int     // Ticks per UpdateHeadless call
	Config         *config.Config
	StatsCallback  func(telemetry.PopulationStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config
	seed  int64

	// Entity mappers
	catMapper *ecs.Map7[
		components.Position,
		components.PrevPosition,
		components.Velocity,
		components.CatState,
		components.Personality,
		components.Appearance,
		components.Name,
	]
	catFilter *ecs.Filter1[components.CatState]

	// Individual component mappers for lookups
	posMap   *ecs.Map[components.Position]
	velMap   *ecs.Map[components.Velocity]
	stateMap *ecs.Map[components.CatState]
	nameMap  *ecs.Map[components.Name]
	animMap  *ecs.Map[components.SpawnAnimation]

	// Systems
	snapshot    *systems.SnapshotSystem
	behavior    *systems.BehaviorSystem
	movement    *systems.MovementSystem
	mouse       *systems.MouseSystem
	interaction *systems.InteractionSystem
	gifts       *systems.GiftSystem
	towers      *systems.TowerSystem
	perch       *systems.PerchSystem
	clicks      *systems.ClickSystem
	toys        *systems.YarnSystem
	spawnAnim   *systems.SpawnAnimSystem
	registry    *systems.SystemRegistry

	// Per-tick state owned by the game
	hash    *systems.SpatialHash
	snaps   []systems.CatSnapshot
	cursor  systems.CursorState
	click   *systems.ClickState
	yarn    *systems.YarnBalls
	heatmap *systems.Heatmap
	bounces []systems.BounceEvent
	path    *systems.CursorPath

	// Bounces of every tick run by the last Update
	frameBounces []systems.BounceEvent

	// Mode and AFK
	modes     *mode.Controller
	bonus     []ecs.Entity
	idle      float64
	lastX     float32
	lastY     float32
	hasLast   bool
	energyMod float32

	// Population
	catCount    int
	growthAcc   float64
	targetCats  int
	despawnList []ecs.Entity

	// Fixed timestep
	accumulator float64
	simTime     float64
	tick        int32
	paused      bool
	width       float32
	height      float32

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.PopulationStats)
	logStats         bool
	stateCounts      []int
	speeds           []float64
	lastGifts        int

	rv             *renderView
	stepsPerUpdate int
}

// NewGame creates a game with the global config and default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Sim.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()
	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg,
		seed:  seed,
		catMapper: ecs.NewMap7[
			components.Position,
			components.PrevPosition,
			components.Velocity,
			components.CatState,
			components.Personality,
			components.Appearance,
			components.Name,
		](world),
		catFilter: ecs.NewFilter1[components.CatState](world),
		posMap:    ecs.NewMap[components.Position](world),
		velMap:    ecs.NewMap[components.Velocity](world),
		stateMap:  ecs.NewMap[components.CatState](world),
		nameMap:   ecs.NewMap[components.Name](world),
		animMap:   ecs.NewMap[components.SpawnAnimation](world),

		snapshot:    systems.NewSnapshotSystem(world),
		behavior:    systems.NewBehaviorSystem(world, cfg.Behavior),
		movement:    systems.NewMovementSystem(world, cfg.Movement),
		mouse:       systems.NewMouseSystem(world, cfg.Mouse),
		interaction: systems.NewInteractionSystem(world, cfg.Interaction, cfg.Behavior),
		gifts:       systems.NewGiftSystem(world, cfg.Interaction.Gifts),
		towers:      systems.NewTowerSystem(world, cfg.Tower),
		perch:       systems.NewPerchSystem(world, cfg.Perch),
		clicks:      systems.NewClickSystem(world, cfg.Click, cfg.Behavior),
		toys:        systems.NewYarnSystem(world, cfg.Yarn),
		spawnAnim:   systems.NewSpawnAnimSystem(world, cfg.SpawnAnim),
		registry:    systems.NewSystemRegistry(),

		hash:    systems.NewSpatialHash(cfg.Spatial.CellSize, cfg.Spatial.TableSize, cfg.Spatial.BucketCapacity),
		click:   systems.NewClickState(cfg.Click),
		yarn:    systems.NewYarnBalls(cfg.Yarn),
		heatmap: systems.NewHeatmap(cfg.Heatmap, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),

		energyMod:      1,
		targetCats:     cfg.Population.Target,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		stateCounts:    make([]int, components.StateCount()),
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
	}

	modes, err := mode.NewController(cfg.Mode)
	if err != nil {
		slog.Warn("unknown initial mode, using work", "error", err)
		cfg.Mode.Initial = mode.Work.String()
		modes, _ = mode.NewController(cfg.Mode)
	}
	g.modes = modes

	if opts.Headless {
		g.path = systems.NewCursorPath(seed, g.width, g.height)
	}

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, g.registry.IDs())
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	initial := opts.Cats
	if initial <= 0 {
		initial = cfg.Population.Initial
	}
	g.spawnInitialPopulation(initial)

	return g
}

// Unload releases resources. The game must not be used afterwards.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// TickCount returns the number of simulation ticks run so far.
func (g *Game) TickCount() int32 {
	return g.tick
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// SimTime returns elapsed simulation seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// CatCount returns the number of live cats, including ones still dropping in.
func (g *Game) CatCount() int {
	return g.catCount
}

// Snapshots returns the snapshot slice built by the last tick. It is
// reused by the next tick and must not be modified.
func (g *Game) Snapshots() []systems.CatSnapshot {
	return g.snaps
}

// Bounces returns the landing impacts of the last tick.
func (g *Game) Bounces() []systems.BounceEvent {
	return g.bounces
}

// FrameBounces returns the landing impacts of every tick run by the last
// Update call. The slice is reused by the next Update.
func (g *Game) FrameBounces() []systems.BounceEvent {
	return g.frameBounces
}

// Heatmap returns the cursor avoidance field.
func (g *Game) Heatmap() *systems.Heatmap {
	return g.heatmap
}

// Click returns the click tracker with active treats and laser state.
func (g *Game) Click() *systems.ClickState {
	return g.click
}

// Yarn returns the yarn balls on screen.
func (g *Game) Yarn() *systems.YarnBalls {
	return g.yarn
}

// Cursor returns the cursor tracker as of the last tick.
func (g *Game) Cursor() systems.CursorState {
	return g.cursor
}

// Modes returns the mode controller.
func (g *Game) Modes() *mode.Controller {
	return g.modes
}

// Registry returns the tick phase registry.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// PerfStats returns per-phase timings over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// GiftsDelivered returns how many gifts reached the cursor so far.
func (g *Game) GiftsDelivered() int {
	return g.gifts.Delivered()
}

// Paused reports whether ticks are suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes ticking.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StateCounts returns the number of live cats per behavior state, indexed
// by components.BehaviorState. The slice is reused.
func (g *Game) StateCounts() []int {
	clear(g.stateCounts)
	query := g.catFilter.Query()
	for query.Next() {
		st := query.Get()
		if int(st.State) < len(g.stateCounts) {
			g.stateCounts[st.State]++
		}
	}
	return g.stateCounts
}

// Alive reports whether e is still a live cat.
func (g *Game) Alive(e ecs.Entity) bool {
	return g.world.Alive(e)
}

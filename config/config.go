// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Sim         SimConfig         `yaml:"sim"`
	Population  PopulationConfig  `yaml:"population"`
	Spatial     SpatialConfig     `yaml:"spatial"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
	Movement    MovementConfig    `yaml:"movement"`
	Interaction InteractionConfig `yaml:"interaction"`
	Tower       TowerConfig       `yaml:"tower"`
	Mouse       MouseConfig       `yaml:"mouse"`
	Perch       PerchConfig       `yaml:"perch"`
	Click       ClickConfig       `yaml:"click"`
	Yarn        YarnConfig        `yaml:"yarn"`
	Heatmap     HeatmapConfig     `yaml:"heatmap"`
	SpawnAnim   SpawnAnimConfig   `yaml:"spawn_anim"`
	Mode        ModeConfig        `yaml:"mode"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds fixed-timestep parameters.
type SimConfig struct {
	DT             float64 `yaml:"dt"`              // Seconds per tick
	MaxAccumulator float64 `yaml:"max_accumulator"` // Frame time carried over is capped here
	Seed           int64   `yaml:"seed"`            // 0 = caller picks
}

// PopulationConfig holds population sizing.
type PopulationConfig struct {
	Initial     int     `yaml:"initial"`
	Target      int     `yaml:"target"`
	GrowthRate  float64 `yaml:"growth_rate"`  // Cats per second
	GrowthDelay float64 `yaml:"growth_delay"` // Seconds before growth starts
	DropIn      bool    `yaml:"drop_in"`
}

// SpatialConfig holds spatial hash parameters.
type SpatialConfig struct {
	CellSize       float32 `yaml:"cell_size"`
	TableSize      int     `yaml:"table_size"`
	BucketCapacity int     `yaml:"bucket_capacity"`
}

// BehaviorConfig holds state machine weights and speeds.
type BehaviorConfig struct {
	IdleWeight      float32 `yaml:"idle_weight"`
	IdleLaziness    float32 `yaml:"idle_laziness"`
	SleepWeight     float32 `yaml:"sleep_weight"`
	SleepLaziness   float32 `yaml:"sleep_laziness"`
	GroomWeight     float32 `yaml:"groom_weight"`
	WalkWeight      float32 `yaml:"walk_weight"`
	WalkEnergy      float32 `yaml:"walk_energy"`
	RunWeight       float32 `yaml:"run_weight"`
	RunEnergy       float32 `yaml:"run_energy"`
	WalkSpeed       float32 `yaml:"walk_speed"`
	RunSpeed        float32 `yaml:"run_speed"`
	ZoomiesSpeed    float32 `yaml:"zoomies_speed"`
	ZoomiesChance   float32 `yaml:"zoomies_chance"`
	StartleJump     float32 `yaml:"startle_jump"`
	StartleLateral  float32 `yaml:"startle_lateral"`
	StartleDuration float32 `yaml:"startle_duration"`
}

// MovementConfig holds integrator parameters.
type MovementConfig struct {
	Friction          float32 `yaml:"friction"`
	MinVelocity       float32 `yaml:"min_velocity"`
	ScreenMargin      float32 `yaml:"screen_margin"`
	EdgePull          float32 `yaml:"edge_pull"`
	EdgeMargin        float32 `yaml:"edge_margin"`
	EdgePush          float32 `yaml:"edge_push"`
	AvoidStrength     float32 `yaml:"avoid_strength"`
	AvoidThreshold    float32 `yaml:"avoid_threshold"`
	AvoidSampleOffset float32 `yaml:"avoid_sample_offset"`
}

// InteractionConfig groups the interaction engine parameters.
type InteractionConfig struct {
	Separation SeparationConfig `yaml:"separation"`
	Flock      FlockConfig      `yaml:"flock"`
	Social     SocialConfig     `yaml:"social"`
	Contagion  ContagionConfig  `yaml:"contagion"`
	Parade     ParadeConfig     `yaml:"parade"`
	Pile       PileConfig       `yaml:"pile"`
	Gifts      GiftConfig       `yaml:"gifts"`
}

// SeparationConfig holds personal-space parameters.
type SeparationConfig struct {
	Radius   float32 `yaml:"radius"`
	Strength float32 `yaml:"strength"`
	Max      float32 `yaml:"max"`
}

// FlockConfig holds cohesion and alignment parameters.
type FlockConfig struct {
	Radius       float32 `yaml:"radius"`
	Cohesion     float32 `yaml:"cohesion"`
	CohesionMax  float32 `yaml:"cohesion_max"`
	Alignment    float32 `yaml:"alignment"`
	AlignmentMax float32 `yaml:"alignment_max"`
}

// SocialConfig holds pairwise play/chase/pounce/nap parameters.
type SocialConfig struct {
	Radius       float32 `yaml:"radius"`
	PlayChance   float32 `yaml:"play_chance"`
	ChaseChance  float32 `yaml:"chase_chance"`
	PounceChance float32 `yaml:"pounce_chance"`
	NapChance    float32 `yaml:"nap_chance"`
	ChaseSpeed   float32 `yaml:"chase_speed"`
	FleeSpeed    float32 `yaml:"flee_speed"`
	PlaySpeed    float32 `yaml:"play_speed"`
	ChaseGiveUp  float32 `yaml:"chase_give_up"`
	PlayGiveUp   float32 `yaml:"play_give_up"`
	PounceSpeed  float32 `yaml:"pounce_speed"`
	PounceRange  float32 `yaml:"pounce_range"`
	PounceWindup float32 `yaml:"pounce_windup"`
}

// ContagionConfig holds mood spreading parameters.
type ContagionConfig struct {
	Radius         float32 `yaml:"radius"`
	ZoomiesChance  float32 `yaml:"zoomies_chance"`
	YawnChance     float32 `yaml:"yawn_chance"`
	YawnSeedChance float32 `yaml:"yawn_seed_chance"`
	YawnDuration   float32 `yaml:"yawn_duration"`
}

// ParadeConfig holds parade formation parameters.
type ParadeConfig struct {
	Radius         float32 `yaml:"radius"`
	MinCats        int     `yaml:"min_cats"`
	FollowDistance float32 `yaml:"follow_distance"`
	Speed          float32 `yaml:"speed"`
	HeadingDot     float32 `yaml:"heading_dot"`
	AheadMin       float32 `yaml:"ahead_min"`
}

// PileConfig holds sleeping pile parameters.
type PileConfig struct {
	Radius       float32 `yaml:"radius"`
	MinNeighbors int     `yaml:"min_neighbors"`
	WakeRadius   float32 `yaml:"wake_radius"`
}

// GiftConfig holds gift delivery parameters.
type GiftConfig struct {
	SpawnChance  float32 `yaml:"spawn_chance"`
	MinCuriosity float32 `yaml:"min_curiosity"`
	CarrySpeed   float32 `yaml:"carry_speed"`
	DropDistance float32 `yaml:"drop_distance"`
	MaxCarriers  int     `yaml:"max_carriers"`
	Timeout      float32 `yaml:"timeout"`
}

// TowerConfig holds cat tower stacking parameters.
type TowerConfig struct {
	Radius       float32 `yaml:"radius"`
	Chance       float32 `yaml:"chance"`
	MinEnergy    float32 `yaml:"min_energy"`
	MinCuriosity float32 `yaml:"min_curiosity"`
	MaxClimbers  int     `yaml:"max_climbers"`
	Offset       float32 `yaml:"offset"`
}

// MouseConfig holds cursor reaction parameters.
type MouseConfig struct {
	NoticeRadius   float32 `yaml:"notice_radius"`
	ChaseSpeed     float32 `yaml:"chase_speed"`
	ChaseChance    float32 `yaml:"chase_chance"`
	MosesRadius    float32 `yaml:"moses_radius"`
	MosesThreshold float32 `yaml:"moses_threshold"`
	MosesStrength  float32 `yaml:"moses_strength"`
	MosesMax       float32 `yaml:"moses_max"`
	MosesOverride  float32 `yaml:"moses_override"`
	FleeSpeedMin   float32 `yaml:"flee_speed_min"`
	FleeSpeedMax   float32 `yaml:"flee_speed_max"`
	FleeChance     float32 `yaml:"flee_chance"`
	FleeKeepRadius float32 `yaml:"flee_keep_radius"`
	CautiousSpeed  float32 `yaml:"cautious_speed"`
	CautiousRadius float32 `yaml:"cautious_radius"`
	CautiousChance float32 `yaml:"cautious_chance"`
	CreepStillTime float32 `yaml:"creep_still_time"`
	CreepRadius    float32 `yaml:"creep_radius"`
	CreepChance    float32 `yaml:"creep_chance"`
	CreepSpeed     float32 `yaml:"creep_speed"`
	StillSpeed     float32 `yaml:"still_speed"`
	ArriveRadius   float32 `yaml:"arrive_radius"`
}

// PerchConfig holds window-top perching parameters.
type PerchConfig struct {
	SnapDistance float32 `yaml:"snap_distance"`
	Tolerance    float32 `yaml:"tolerance"`
	Chance       float32 `yaml:"chance"`
	WalkSpeed    float32 `yaml:"walk_speed"`
}

// ClickConfig holds click, treat and laser parameters.
type ClickConfig struct {
	StartleRadius     float32 `yaml:"startle_radius"`
	FleeRadius        float32 `yaml:"flee_radius"`
	FleeStrength      float32 `yaml:"flee_strength"`
	DoubleClickWindow float32 `yaml:"double_click_window"`
	TreatMax          int     `yaml:"treat_max"`
	TreatLifetime     float32 `yaml:"treat_lifetime"`
	TreatRadius       float32 `yaml:"treat_radius"`
	TreatSpeed        float32 `yaml:"treat_speed"`
	LaserDuration     float32 `yaml:"laser_duration"`
	LaserRadius       float32 `yaml:"laser_radius"`
	LaserSpeed        float32 `yaml:"laser_speed"`
	LaserJitter       float32 `yaml:"laser_jitter"`
	LaserMinCuriosity float32 `yaml:"laser_min_curiosity"`
}

// YarnConfig holds middle-click yarn ball parameters.
type YarnConfig struct {
	MaxBalls     int     `yaml:"max_balls"`
	Lifetime     float32 `yaml:"lifetime"`
	Friction     float32 `yaml:"friction"`
	MinSpeed     float32 `yaml:"min_speed"`
	Bounce       float32 `yaml:"bounce"`
	Margin       float32 `yaml:"margin"`
	PushRadius   float32 `yaml:"push_radius"`
	PushStrength float32 `yaml:"push_strength"`
	ChaseRadius  float32 `yaml:"chase_radius"`
	ChaseSpeed   float32 `yaml:"chase_speed"`
	MinCuriosity float32 `yaml:"min_curiosity"`
	BatRadius    float32 `yaml:"bat_radius"`
	BatSpeed     float32 `yaml:"bat_speed"`
}

// HeatmapConfig holds cursor avoidance field parameters.
type HeatmapConfig struct {
	Cols           int     `yaml:"cols"`
	Rows           int     `yaml:"rows"`
	Decay          float32 `yaml:"decay"`
	Rate           float32 `yaml:"rate"`
	NeighborFactor float32 `yaml:"neighbor_factor"`
}

// SpawnAnimConfig holds drop-in animation parameters.
type SpawnAnimConfig struct {
	Gravity           float32 `yaml:"gravity"`
	Restitution       float32 `yaml:"restitution"`
	MaxBounces        int     `yaml:"max_bounces"`
	MinBounceVelocity float32 `yaml:"min_bounce_velocity"`
	ImpactScale       float32 `yaml:"impact_scale"`
	MinIntensity      float32 `yaml:"min_intensity"`
}

// ModeConfig holds mode presets and AFK escalation thresholds.
type ModeConfig struct {
	Initial        string        `yaml:"initial"`
	AutoZen        bool          `yaml:"auto_zen"`
	DriftAfter     float64       `yaml:"drift_after"`    // Edge affinity starts fading
	EnergizeAfter  float64       `yaml:"energize_after"` // AFK becomes active
	ZenAfter       float64       `yaml:"zen_after"`      // Zen + bonus cats
	ReturnIdle     float64       `yaml:"return_idle"`
	ReturnPrevIdle float64       `yaml:"return_prev_idle"`
	SpawnPerMinute float64       `yaml:"spawn_per_minute"`
	BonusCap       int           `yaml:"bonus_cap"`
	Presets        PresetsConfig `yaml:"presets"`
}

// PresetsConfig holds one preset per mode.
type PresetsConfig struct {
	Work  PresetConfig `yaml:"work"`
	Play  PresetConfig `yaml:"play"`
	Zen   PresetConfig `yaml:"zen"`
	Chaos PresetConfig `yaml:"chaos"`
}

// PresetConfig is the controller output for a mode.
type PresetConfig struct {
	EdgeAffinity float32 `yaml:"edge_affinity"`
	EnergyScale  float32 `yaml:"energy_scale"`
	ChaseEnabled bool    `yaml:"chase_enabled"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Sim.DT as float32
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	TicksPerSec int     // Rounded 1/DT
	// Largest neighbor radius used by the interaction engine. The spatial
	// hash only guarantees full coverage when CellSize >= this.
	MaxQueryRadius float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults. Each call returns
// a new value so tests can mutate it freely.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Overlay(cfg, data); err != nil {
			return nil, err
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// Overlay validates a user document and merges it into cfg. Only the keys
// present in data are overwritten.
func Overlay(cfg *Config, data []byte) error {
	if err := Validate(data); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Sim.DT > 0 {
		c.Derived.TicksPerSec = int(1/c.Sim.DT + 0.5)
	}

	ic := &c.Interaction
	r := ic.Separation.Radius
	for _, v := range []float32{ic.Flock.Radius, ic.Social.Radius, ic.Contagion.Radius, ic.Parade.Radius, ic.Pile.Radius} {
		if v > r {
			r = v
		}
	}
	c.Derived.MaxQueryRadius = r
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package mode

import "github.com/pthm-cable/clowder/config"

// ActionKind tells the caller what AFK escalation wants done this frame.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	// ActionSpawn adds Count bonus cats.
	ActionSpawn
	// ActionScatterAndDespawn startles every cat and removes Count bonus cats.
	ActionScatterAndDespawn
	// ActionScatter startles every cat.
	ActionScatter
)

// Action is the result of one UpdateAFK call.
type Action struct {
	Kind  ActionKind
	Count int
}

// Controller owns the current mode and the knobs it hands to the simulation.
type Controller struct {
	cfg config.ModeConfig

	mode      Mode
	prev      Mode
	hasPrev   bool
	afkActive bool
	idle      float64

	edgeAffinity float32
	energyScale  float32
	chaseEnabled bool

	bonusSpawned int
	spawnAcc     float64
}

// NewController starts in cfg.Initial.
func NewController(cfg config.ModeConfig) (*Controller, error) {
	m, err := Parse(cfg.Initial)
	if err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, mode: m}
	c.applyPreset()
	return c, nil
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode { return c.mode }

// AFKActive reports whether escalation has kicked in.
func (c *Controller) AFKActive() bool { return c.afkActive }

// BonusSpawned returns how many AFK bonus cats are alive.
func (c *Controller) BonusSpawned() int { return c.bonusSpawned }

// EnergyScale multiplies locomotion weights and speeds.
func (c *Controller) EnergyScale() float32 { return c.energyScale }

// EdgeAffinity is 0 for uniform roaming, 1 for hugging the screen edges.
func (c *Controller) EdgeAffinity() float32 { return c.edgeAffinity }

// ChaseEnabled gates new cursor chases.
func (c *Controller) ChaseEnabled() bool { return c.chaseEnabled }

// Cycle switches to the next mode and cancels AFK escalation.
func (c *Controller) Cycle() {
	c.switchTo(c.mode.Next())
}

// SetMode switches to m. Selecting the current mode is a no-op.
func (c *Controller) SetMode(m Mode) {
	if m != c.mode {
		c.switchTo(m)
	}
}

func (c *Controller) switchTo(m Mode) {
	c.mode = m
	c.applyPreset()
	c.afkActive = false
	c.hasPrev = false
}

func (c *Controller) applyPreset() {
	p := preset(&c.cfg.Presets, c.mode)
	c.edgeAffinity = p.EdgeAffinity
	c.energyScale = p.EnergyScale
	c.chaseEnabled = p.ChaseEnabled
}

// UpdateAFK advances escalation given the seconds since the last user input.
// Call once per frame.
func (c *Controller) UpdateAFK(idleSeconds, dt float64) Action {
	prevIdle := c.idle
	c.idle = idleSeconds

	if c.afkActive && prevIdle > c.cfg.ReturnPrevIdle && idleSeconds < c.cfg.ReturnIdle {
		return c.returnFromAFK()
	}
	if !c.cfg.AutoZen || idleSeconds < c.cfg.DriftAfter {
		return Action{}
	}

	if idleSeconds < c.cfg.EnergizeAfter {
		// Decay from the preset value so repeated frames do not compound.
		t := float32((idleSeconds - c.cfg.DriftAfter) / (c.cfg.EnergizeAfter - c.cfg.DriftAfter))
		c.edgeAffinity = preset(&c.cfg.Presets, c.mode).EdgeAffinity * (1 - t*0.5)
		return Action{}
	}

	c.enterAFK()
	if idleSeconds < c.cfg.ZenAfter {
		c.energyScale = preset(&c.cfg.Presets, Zen).EnergyScale
		c.edgeAffinity = 0
		return Action{}
	}

	c.mode = Zen
	c.applyPreset()

	if c.bonusSpawned >= c.cfg.BonusCap {
		c.spawnAcc = 0
		return Action{}
	}
	c.spawnAcc += c.cfg.SpawnPerMinute / 60 * dt
	n := int(c.spawnAcc)
	if n == 0 {
		return Action{}
	}
	n = min(n, c.cfg.BonusCap-c.bonusSpawned)
	c.spawnAcc -= float64(n)
	c.bonusSpawned += n
	return Action{Kind: ActionSpawn, Count: n}
}

func (c *Controller) enterAFK() {
	if c.afkActive {
		return
	}
	c.afkActive = true
	c.prev = c.mode
	c.hasPrev = true
}

func (c *Controller) returnFromAFK() Action {
	c.afkActive = false
	n := c.bonusSpawned
	c.bonusSpawned = 0
	c.spawnAcc = 0

	if c.hasPrev {
		c.mode = c.prev
		c.hasPrev = false
	}
	c.applyPreset()

	if n > 0 {
		return Action{Kind: ActionScatterAndDespawn, Count: n}
	}
	return Action{Kind: ActionScatter}
}

package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/clowder/components"
	"github.com/pthm-cable/clowder/config"
)

// CommandKind identifies a queued social event.
type CommandKind uint8

const (
	CmdStartPlay CommandKind = iota
	CmdStartChase
	CmdFlee
	CmdJoinNap
	CmdCatchZoomies
	CmdContagiousYawn
	CmdSeedYawn
	CmdStartPounce
)

var commandNames = [...]string{
	"StartPlay", "StartChase", "Flee", "JoinNap",
	"CatchZoomies", "ContagiousYawn", "SeedYawn", "StartPounce",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "Unknown"
}

// Command is a social event decided in the read pass and applied in the
// write pass. Entity is the cat the command changes; Other is the partner,
// chase target or pounce target. Flee commands carry the point to run from.
type Command struct {
	Kind         CommandKind
	Entity       ecs.Entity
	Other        ecs.Entity
	AwayX, AwayY float32
}

// neighborAccum holds one cat's read-pass sums.
type neighborAccum struct {
	sepX, sepY   float32
	cohX, cohY   float32
	cohN         int32
	aliX, aliY   float32
	aliN         int32
	parX, parY   float32
	parN         int32
	followX      float32
	followY      float32
	followDistSq float32
	sleepN       int32
}

type activeInteraction struct {
	entity    ecs.Entity
	state     components.BehaviorState
	kind      components.BehaviorState
	x, y      float32
	target    ecs.Entity
	tx, ty    float32
	hasTarget bool
}

// InteractionSystem runs the cat-to-cat interaction phases:
//
//	A  steer cats already chasing, playing or pouncing
//	B  read-only neighbor pass over snapshots, emitting commands
//	C  apply flocking forces, parades and commands
//	D  wake cascade and sleeping pile membership
//
// Buffers are sized once and reused every tick.
type InteractionSystem struct {
	world *ecs.World

	activeFilter ecs.Filter3[components.Position, components.CatState, components.InteractionTarget]
	pileFilter   ecs.Filter3[components.Position, components.CatState, components.SleepingPile]
	catFilter    ecs.Filter3[components.Position, components.Velocity, components.CatState]

	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	stateMap  *ecs.Map[components.CatState]
	targetMap *ecs.Map[components.InteractionTarget]
	pileMap   *ecs.Map[components.SleepingPile]

	cfg      config.InteractionConfig
	behavior config.BehaviorConfig

	accum     []neighborAccum
	neighbors []int32
	commands  []Command
	active    []activeInteraction
	wake      [][2]float32
	pending   [][2]float32
	strip     []ecs.Entity

	// PairHook, when set, is called once for every unordered neighbor pair
	// that reaches the social checks in the read pass.
	PairHook func(a, b int32)
}

// NewInteractionSystem creates an interaction system.
func NewInteractionSystem(w *ecs.World, cfg config.InteractionConfig, behavior config.BehaviorConfig) *InteractionSystem {
	return &InteractionSystem{
		world:        w,
		activeFilter: *ecs.NewFilter3[components.Position, components.CatState, components.InteractionTarget](w),
		pileFilter:   *ecs.NewFilter3[components.Position, components.CatState, components.SleepingPile](w),
		catFilter: *ecs.NewFilter3[components.Position, components.Velocity, components.CatState](w).
			Without(ecs.C[components.SpawnAnimation]()),
		posMap:    ecs.NewMap[components.Position](w),
		velMap:    ecs.NewMap[components.Velocity](w),
		stateMap:  ecs.NewMap[components.CatState](w),
		targetMap: ecs.NewMap[components.InteractionTarget](w),
		pileMap:   ecs.NewMap[components.SleepingPile](w),
		cfg:       cfg,
		behavior:  behavior,
		neighbors: make([]int32, 0, 64),
		commands:  make([]Command, 0, 64),
		active:    make([]activeInteraction, 0, 64),
	}
}

// Update runs phases A to D in order.
func (s *InteractionSystem) Update(rng *rand.Rand, snaps []CatSnapshot, hash *SpatialHash) {
	s.SteerActive(rng)
	s.Decide(rng, snaps, hash)
	s.Apply(rng, snaps)
	s.UpdatePiles(rng, snaps)
}

// Commands returns the commands queued by the last Decide call. The slice
// is reused on the next tick.
func (s *InteractionSystem) Commands() []Command {
	return s.commands
}

// SteerActive is phase A.
func (s *InteractionSystem) SteerActive(rng *rand.Rand) {
	s.active = s.active[:0]
	query := s.activeFilter.Query()
	for query.Next() {
		pos, st, it := query.Get()
		s.active = append(s.active, activeInteraction{
			entity: query.Entity(),
			state:  st.State,
			kind:   it.Kind,
			x:      pos.X,
			y:      pos.Y,
			target: it.Target,
		})
	}

	for i := range s.active {
		ai := &s.active[i]
		if s.world.Alive(ai.target) && s.posMap.Has(ai.target) {
			tp := s.posMap.Get(ai.target)
			ai.tx, ai.ty, ai.hasTarget = tp.X, tp.Y, true
		}
	}

	soc := &s.cfg.Social
	for i := range s.active {
		ai := &s.active[i]
		if ai.state == components.Pouncing {
			continue
		}

		// The state moved on without this system: resolve and drop the link.
		if ai.state != ai.kind {
			if ai.kind == components.Pouncing && ai.hasTarget {
				s.leap(rng, ai)
			}
			s.targetMap.Remove(ai.entity)
			continue
		}

		if !ai.hasTarget {
			s.giveUp(rng, ai.entity)
			continue
		}

		dx, dy := ai.tx-ai.x, ai.ty-ai.y
		distSq := dx*dx + dy*dy
		vel := s.velMap.Get(ai.entity)

		switch ai.state {
		case components.ChasingCat:
			if distSq > soc.ChaseGiveUp*soc.ChaseGiveUp {
				s.giveUp(rng, ai.entity)
			} else if distSq > 1 {
				d := float32(math.Sqrt(float64(distSq)))
				vel.X, vel.Y = dx/d*soc.ChaseSpeed, dy/d*soc.ChaseSpeed
			}
		case components.Playing:
			if distSq > soc.PlayGiveUp*soc.PlayGiveUp {
				s.giveUp(rng, ai.entity)
				continue
			}
			jx, jy := rng.Float32()*2-1, rng.Float32()*2-1
			var nx, ny float32
			if distSq > 1 {
				d := float32(math.Sqrt(float64(distSq)))
				nx, ny = dx/d, dy/d
			} else {
				nx, ny = normalize(jx, jy)
			}
			vel.X = (nx + jx*0.5) * soc.PlaySpeed
			vel.Y = (ny + jy*0.5) * soc.PlaySpeed
		}
	}
}

// leap launches a pouncer whose wind-up just ended at its stored target.
func (s *InteractionSystem) leap(rng *rand.Rand, ai *activeInteraction) {
	soc := &s.cfg.Social
	dx, dy := ai.tx-ai.x, ai.ty-ai.y
	dist := length(dx, dy)
	if dist <= 1 || dist >= soc.PounceRange {
		return
	}
	vel := s.velMap.Get(ai.entity)
	vel.X, vel.Y = dx/dist*soc.PounceSpeed, dy/dist*soc.PounceSpeed
	st := s.stateMap.Get(ai.entity)
	st.State = components.Running
	st.Timer = 0.3

	if s.stateMap.Has(ai.target) && s.velMap.Has(ai.target) {
		TriggerStartle(s.stateMap.Get(ai.target), s.velMap.Get(ai.target), rng, &s.behavior)
	}
}

func (s *InteractionSystem) giveUp(rng *rand.Rand, e ecs.Entity) {
	s.targetMap.Remove(e)
	st := s.stateMap.Get(e)
	st.State = components.Idle
	st.Timer = 0.5 + rng.Float32()*1.5
	vel := s.velMap.Get(e)
	vel.X, vel.Y = 0, 0
}

// Decide is phase B. It never touches the world.
func (s *InteractionSystem) Decide(rng *rand.Rand, snaps []CatSnapshot, hash *SpatialHash) {
	s.commands = s.commands[:0]
	n := len(snaps)
	if cap(s.accum) < n {
		s.accum = make([]neighborAccum, n, n+n/4)
	}
	s.accum = s.accum[:n]
	clear(s.accum)
	for i := range s.accum {
		s.accum[i].followDistSq = math.MaxFloat32
	}

	for i := range snaps {
		me := int32(i)
		s.neighbors = hash.NeighborsInto(s.neighbors[:0], snaps[i].X, snaps[i].Y)
		for _, other := range s.neighbors {
			if other == me || int(other) >= n {
				continue
			}
			s.visit(rng, snaps, me, other)
		}

		if snaps[i].State == components.Sleeping && rng.Float32() < s.cfg.Contagion.YawnSeedChance {
			s.commands = append(s.commands, Command{Kind: CmdSeedYawn, Entity: snaps[i].Entity})
		}
	}
}

// visit accumulates the ordered pair (mi, ni) and runs the pair checks
// when mi < ni.
func (s *InteractionSystem) visit(rng *rand.Rand, snaps []CatSnapshot, mi, ni int32) {
	me, them := &snaps[mi], &snaps[ni]
	acc := &s.accum[mi]
	cfg := &s.cfg

	dx, dy := me.X-them.X, me.Y-them.Y
	distSq := dx*dx + dy*dy

	sep := cfg.Separation.Radius
	if distSq < sep*sep && distSq > 0.001 {
		dist := float32(math.Sqrt(float64(distSq)))
		k := (sep - dist) * cfg.Separation.Strength * (0.5 + them.Size*0.5) / dist
		acc.sepX += dx * k
		acc.sepY += dy * k
	}

	fr := cfg.Flock.Radius
	if distSq < fr*fr && flocking(me.State) && flocking(them.State) {
		acc.cohX += them.X
		acc.cohY += them.Y
		acc.cohN++
		acc.aliX += them.VX
		acc.aliY += them.VY
		acc.aliN++
	}

	pr := cfg.Parade.Radius
	if distSq < pr*pr && parading(me.State) && parading(them.State) &&
		me.VX*me.VX+me.VY*me.VY > 1 && them.VX*them.VX+them.VY*them.VY > 1 {
		mx, my := normalize(me.VX, me.VY)
		tx, ty := normalize(them.VX, them.VY)
		if mx*tx+my*ty > cfg.Parade.HeadingDot {
			acc.parX += tx
			acc.parY += ty
			acc.parN++
			ahead := (them.X-me.X)*mx + (them.Y-me.Y)*my
			if ahead > cfg.Parade.AheadMin && distSq < acc.followDistSq {
				acc.followDistSq = distSq
				acc.followX, acc.followY = them.X, them.Y
			}
		}
	}

	pile := cfg.Pile.Radius
	if distSq < pile*pile && me.State == components.Sleeping && them.State == components.Sleeping {
		acc.sleepN++
	}

	// Each unordered pair is checked from its lower index only.
	if mi >= ni {
		return
	}
	if s.PairHook != nil {
		s.PairHook(mi, ni)
	}

	soc := cfg.Social.Radius
	if distSq <= soc*soc && me.State.Interactable() && s.social(rng, me, them) {
		return
	}

	cr := cfg.Contagion.Radius
	if distSq <= cr*cr {
		s.contagion(rng, me, them)
		s.contagion(rng, them, me)
	}
}

// social runs the pairwise event checks in priority order and reports
// whether one fired.
func (s *InteractionSystem) social(rng *rand.Rand, me, them *CatSnapshot) bool {
	cfg := &s.cfg.Social
	mp, tp := &me.Personality, &them.Personality

	if idleOrWalking(me.State) && idleOrWalking(them.State) {
		if rng.Float32() < cfg.PlayChance*(1-mp.Skittishness)*(1-tp.Skittishness) {
			s.commands = append(s.commands, Command{Kind: CmdStartPlay, Entity: me.Entity, Other: them.Entity})
			return true
		}
	}

	if idleOrWalking(me.State) && walkingOrRunning(them.State) {
		if rng.Float32() < cfg.ChaseChance*mp.Curiosity*mp.Energy {
			s.chase(rng, me, them)
			return true
		}
	}
	if idleOrWalking(them.State) && walkingOrRunning(me.State) && them.State.Interactable() {
		if rng.Float32() < cfg.ChaseChance*tp.Curiosity*tp.Energy {
			s.chase(rng, them, me)
			return true
		}
	}

	if idleOrWalking(me.State) && pounceable(them.State) && mp.Energy > 0.5 && mp.Curiosity > 0.3 {
		if rng.Float32() < cfg.PounceChance*mp.Energy {
			s.commands = append(s.commands, Command{Kind: CmdStartPounce, Entity: me.Entity, Other: them.Entity})
			return true
		}
	}
	if idleOrWalking(them.State) && pounceable(me.State) && tp.Energy > 0.5 && tp.Curiosity > 0.3 {
		if rng.Float32() < cfg.PounceChance*tp.Energy {
			s.commands = append(s.commands, Command{Kind: CmdStartPounce, Entity: them.Entity, Other: me.Entity})
			return true
		}
	}

	if me.State == components.Sleeping && idleOrGrooming(them.State) {
		if rng.Float32() < cfg.NapChance*tp.Laziness {
			s.commands = append(s.commands, Command{Kind: CmdJoinNap, Entity: them.Entity})
			return true
		}
	}
	if them.State == components.Sleeping && idleOrGrooming(me.State) {
		if rng.Float32() < cfg.NapChance*mp.Laziness {
			s.commands = append(s.commands, Command{Kind: CmdJoinNap, Entity: me.Entity})
			return true
		}
	}
	return false
}

func (s *InteractionSystem) chase(rng *rand.Rand, chaser, target *CatSnapshot) {
	s.commands = append(s.commands, Command{Kind: CmdStartChase, Entity: chaser.Entity, Other: target.Entity})
	sk := target.Personality.Skittishness
	if sk > 0.5 && rng.Float32() < sk {
		s.commands = append(s.commands, Command{Kind: CmdFlee, Entity: target.Entity, AwayX: chaser.X, AwayY: chaser.Y})
	}
}

// contagion spreads src's zoomies or yawn to dst.
func (s *InteractionSystem) contagion(rng *rand.Rand, src, dst *CatSnapshot) {
	cfg := &s.cfg.Contagion
	switch {
	case src.State == components.Zoomies && idleOrWalking(dst.State):
		if rng.Float32() < cfg.ZoomiesChance {
			s.commands = append(s.commands, Command{Kind: CmdCatchZoomies, Entity: dst.Entity})
		}
	case src.State == components.Yawning && idleOrGrooming(dst.State):
		if rng.Float32() < cfg.YawnChance {
			s.commands = append(s.commands, Command{Kind: CmdContagiousYawn, Entity: dst.Entity})
		}
	}
}

// Apply is phase C.
func (s *InteractionSystem) Apply(rng *rand.Rand, snaps []CatSnapshot) {
	s.applyForces(snaps)
	s.applyParades(snaps)
	for i := range s.commands {
		s.apply(rng, &s.commands[i])
	}
}

func (s *InteractionSystem) applyForces(snaps []CatSnapshot) {
	cfg := &s.cfg
	for i := range snaps {
		snap := &snaps[i]
		acc := &s.accum[i]
		var fx, fy float32

		if acc.sepX*acc.sepX+acc.sepY*acc.sepY > 0.01 {
			x, y := clampLength(acc.sepX, acc.sepY, cfg.Separation.Max)
			fx += x
			fy += y
		}

		if acc.cohN > 0 {
			inv := 1 / float32(acc.cohN)
			tx, ty := acc.cohX*inv-snap.X, acc.cohY*inv-snap.Y
			if tx*tx+ty*ty > 1 {
				nx, ny := normalize(tx, ty)
				x, y := clampLength(nx*cfg.Flock.Cohesion, ny*cfg.Flock.Cohesion, cfg.Flock.CohesionMax)
				fx += x
				fy += y
			}
		}

		if acc.aliN > 0 {
			inv := 1 / float32(acc.aliN)
			ax, ay := acc.aliX*inv, acc.aliY*inv
			if ax*ax+ay*ay > 1 {
				nx, ny := normalize(ax, ay)
				vx, vy := normalize(snap.VX, snap.VY)
				k := cfg.Flock.Alignment
				x, y := clampLength((nx-vx)*k, (ny-vy)*k, cfg.Flock.AlignmentMax)
				fx += x
				fy += y
			}
		}

		if fx*fx+fy*fy < 0.01 {
			continue
		}
		vel := s.velMap.Get(snap.Entity)
		vel.X += fx
		vel.Y += fy
	}
}

func (s *InteractionSystem) applyParades(snaps []CatSnapshot) {
	cfg := &s.cfg.Parade
	for i := range snaps {
		acc := &s.accum[i]
		if int(acc.parN) < cfg.MinCats-1 || acc.parN == 0 {
			continue
		}
		inv := 1 / float32(acc.parN)
		ax, ay := acc.parX*inv, acc.parY*inv
		if ax*ax+ay*ay < 0.01 {
			continue
		}
		dx, dy := normalize(ax, ay)
		snap := &snaps[i]
		vel := s.velMap.Get(snap.Entity)

		if acc.followDistSq < math.MaxFloat32 {
			// Follower: aim at a point behind the nearest cat ahead.
			tx := acc.followX - dx*cfg.FollowDistance - snap.X
			ty := acc.followY - dy*cfg.FollowDistance - snap.Y
			fx, fy := dx*cfg.Speed, dy*cfg.Speed
			if tx*tx+ty*ty > 1 {
				nx, ny := normalize(tx, ty)
				fx, fy = nx*cfg.Speed, ny*cfg.Speed
			}
			vel.X = vel.X*0.5 + fx*0.5
			vel.Y = vel.Y*0.5 + fy*0.5
		} else {
			vel.X = vel.X*0.7 + dx*cfg.Speed*0.3
			vel.Y = vel.Y*0.7 + dy*cfg.Speed*0.3
		}

		st := s.stateMap.Get(snap.Entity)
		if parading(st.State) {
			st.State = components.Parading
			st.Timer = 0.5
		}
	}
}

func (s *InteractionSystem) canStart(e ecs.Entity) bool {
	return s.world.Alive(e) && s.stateMap.Has(e) && s.stateMap.Get(e).State.Interactable()
}

func (s *InteractionSystem) setTarget(e, target ecs.Entity, kind components.BehaviorState) {
	if s.targetMap.Has(e) {
		it := s.targetMap.Get(e)
		it.Target, it.Kind = target, kind
		return
	}
	s.targetMap.Add(e, &components.InteractionTarget{Target: target, Kind: kind})
}

func (s *InteractionSystem) apply(rng *rand.Rand, cmd *Command) {
	cfg := &s.cfg
	switch cmd.Kind {
	case CmdStartPlay:
		if !s.canStart(cmd.Entity) || !s.canStart(cmd.Other) {
			return
		}
		timer := 2 + rng.Float32()*3
		for _, pair := range [2][2]ecs.Entity{{cmd.Entity, cmd.Other}, {cmd.Other, cmd.Entity}} {
			st := s.stateMap.Get(pair[0])
			st.State, st.Timer = components.Playing, timer
			s.setTarget(pair[0], pair[1], components.Playing)
		}

	case CmdStartChase:
		if !s.canStart(cmd.Entity) || !s.world.Alive(cmd.Other) {
			return
		}
		st := s.stateMap.Get(cmd.Entity)
		st.State, st.Timer = components.ChasingCat, 2+rng.Float32()*4
		s.setTarget(cmd.Entity, cmd.Other, components.ChasingCat)
		p, tp := s.posMap.Get(cmd.Entity), s.posMap.Get(cmd.Other)
		nx, ny := normalize(tp.X-p.X, tp.Y-p.Y)
		vel := s.velMap.Get(cmd.Entity)
		vel.X, vel.Y = nx*cfg.Social.ChaseSpeed, ny*cfg.Social.ChaseSpeed

	case CmdFlee:
		if !s.canStart(cmd.Entity) {
			return
		}
		p := s.posMap.Get(cmd.Entity)
		nx, ny := normalize(p.X-cmd.AwayX, p.Y-cmd.AwayY)
		vel := s.velMap.Get(cmd.Entity)
		vel.X, vel.Y = nx*cfg.Social.FleeSpeed, ny*cfg.Social.FleeSpeed
		st := s.stateMap.Get(cmd.Entity)
		st.State, st.Timer = components.Running, 1+rng.Float32()*1.5

	case CmdJoinNap:
		if !s.canStart(cmd.Entity) {
			return
		}
		st := s.stateMap.Get(cmd.Entity)
		st.State, st.Timer = components.Sleeping, 3+rng.Float32()*5
		vel := s.velMap.Get(cmd.Entity)
		vel.X, vel.Y = 0, 0

	case CmdCatchZoomies:
		if !s.canStart(cmd.Entity) {
			return
		}
		st := s.stateMap.Get(cmd.Entity)
		st.State, st.Timer = components.Zoomies, 1+rng.Float32()
		hx, hy := randomHeading(rng)
		vel := s.velMap.Get(cmd.Entity)
		vel.X, vel.Y = hx*s.behavior.ZoomiesSpeed, hy*s.behavior.ZoomiesSpeed

	case CmdContagiousYawn:
		if !s.canStart(cmd.Entity) {
			return
		}
		s.yawn(cmd.Entity)

	case CmdSeedYawn:
		if !s.world.Alive(cmd.Entity) || s.stateMap.Get(cmd.Entity).State != components.Sleeping {
			return
		}
		s.yawn(cmd.Entity)

	case CmdStartPounce:
		if !s.canStart(cmd.Entity) || !s.world.Alive(cmd.Other) {
			return
		}
		st := s.stateMap.Get(cmd.Entity)
		st.State, st.Timer = components.Pouncing, cfg.Social.PounceWindup
		vel := s.velMap.Get(cmd.Entity)
		vel.X, vel.Y = 0, 0
		s.setTarget(cmd.Entity, cmd.Other, components.Pouncing)
	}
}

func (s *InteractionSystem) yawn(e ecs.Entity) {
	st := s.stateMap.Get(e)
	st.State, st.Timer = components.Yawning, s.cfg.Contagion.YawnDuration
	vel := s.velMap.Get(e)
	vel.X, vel.Y = 0, 0
}

// UpdatePiles is phase D: sleeping cats near a pile member that woke up are
// startled, then pile membership is recomputed from the read pass counts.
// The cascade spreads one hop per tick through the pile.
func (s *InteractionSystem) UpdatePiles(rng *rand.Rand, snaps []CatSnapshot) {
	s.wake = append(s.wake[:0], s.pending...)
	s.pending = s.pending[:0]

	pq := s.pileFilter.Query()
	for pq.Next() {
		pos, st, _ := pq.Get()
		if st.State != components.Sleeping {
			s.wake = append(s.wake, [2]float32{pos.X, pos.Y})
		}
	}

	if len(s.wake) > 0 {
		r := s.cfg.Pile.WakeRadius
		rSq := r * r
		cq := s.catFilter.Query()
		for cq.Next() {
			pos, vel, st := cq.Get()
			if st.State != components.Sleeping {
				continue
			}
			for _, w := range s.wake {
				if distanceSq(pos.X, pos.Y, w[0], w[1]) < rSq {
					TriggerStartle(st, vel, rng, &s.behavior)
					// Woken pile members carry the cascade into the next tick.
					if s.pileMap.Has(cq.Entity()) {
						s.pending = append(s.pending, [2]float32{pos.X, pos.Y})
					}
					break
				}
			}
		}
	}

	minN := int32(s.cfg.Pile.MinNeighbors)
	for i := range snaps {
		if i >= len(s.accum) {
			break
		}
		e := snaps[i].Entity
		if !s.world.Alive(e) {
			continue
		}
		inPile := s.stateMap.Get(e).State == components.Sleeping && s.accum[i].sleepN >= minN
		has := s.pileMap.Has(e)
		switch {
		case inPile && !has:
			s.pileMap.Add(e, &components.SleepingPile{BreathingOffset: rng.Float32() * twoPi})
		case !inPile && has:
			s.pileMap.Remove(e)
		}
	}
}

// SweepRelations drops relationship components that systems running after
// the interaction phases left inconsistent with the cat's state. Positions
// of pile members that woke up are kept for the next wake cascade.
func (s *InteractionSystem) SweepRelations() {
	s.strip = s.strip[:0]
	tq := s.activeFilter.Query()
	for tq.Next() {
		_, st, _ := tq.Get()
		if !st.State.Targeted() {
			s.strip = append(s.strip, tq.Entity())
		}
	}
	for _, e := range s.strip {
		s.targetMap.Remove(e)
	}

	s.strip = s.strip[:0]
	pq := s.pileFilter.Query()
	for pq.Next() {
		pos, st, _ := pq.Get()
		if st.State != components.Sleeping {
			s.strip = append(s.strip, pq.Entity())
			s.pending = append(s.pending, [2]float32{pos.X, pos.Y})
		}
	}
	for _, e := range s.strip {
		s.pileMap.Remove(e)
	}
}

func flocking(s components.BehaviorState) bool {
	return s == components.Idle || s == components.Walking || s == components.Running
}

func parading(s components.BehaviorState) bool {
	return s == components.Walking || s == components.Running || s == components.Parading
}

func idleOrWalking(s components.BehaviorState) bool {
	return s == components.Idle || s == components.Walking
}

func idleOrGrooming(s components.BehaviorState) bool {
	return s == components.Idle || s == components.Grooming
}

func walkingOrRunning(s components.BehaviorState) bool {
	return s == components.Walking || s == components.Running
}

func pounceable(s components.BehaviorState) bool {
	return s == components.Idle || s == components.Walking || s == components.Grooming
}

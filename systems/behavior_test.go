package systems

import (
	"testing"

	"github.com/pthm-cable/clowder/components"
)

func TestPickWeightedState(t *testing.T) {
	tests := []struct {
		name    string
		weights [5]float32
		roll    float32
		want    components.BehaviorState
	}{
		{"zero roll picks first bucket", [5]float32{1, 1, 1, 1, 1}, 0, components.Idle},
		{"roll on a boundary moves on", [5]float32{1, 1, 1, 1, 1}, 0.2, components.Sleeping},
		{"middle bucket", [5]float32{1, 1, 1, 1, 1}, 0.5, components.Grooming},
		{"top roll picks last bucket", [5]float32{1, 1, 1, 1, 1}, 0.99, components.Running},
		{"empty buckets are skipped", [5]float32{0, 1, 0, 0, 0}, 0, components.Sleeping},
		{"single walking bucket", [5]float32{0, 0, 0, 2, 0}, 0.7, components.Walking},
		{"roll past total falls back to running", [5]float32{1, 0, 0, 0, 0}, 1, components.Running},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickWeightedState(tt.weights, tt.roll); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTriggerStartle_HopsUp(t *testing.T) {
	tw := newTestWorld(t, 1)
	st := components.CatState{State: components.Sleeping, Timer: 4}
	vel := components.Velocity{X: 3, Y: 10}

	TriggerStartle(&st, &vel, tw.rng, &tw.cfg.Behavior)

	if st.State != components.Startled {
		t.Errorf("expected Startled, got %v", st.State)
	}
	if st.Timer != tw.cfg.Behavior.StartleDuration {
		t.Errorf("expected timer %.2f, got %.2f", tw.cfg.Behavior.StartleDuration, st.Timer)
	}
	if vel.Y != 10-tw.cfg.Behavior.StartleJump {
		t.Errorf("expected vel.Y %.1f, got %.1f", 10-tw.cfg.Behavior.StartleJump, vel.Y)
	}
	half := tw.cfg.Behavior.StartleLateral / 2
	if vel.X < 3-half || vel.X > 3+half {
		t.Errorf("expected lateral kick within ±%.1f, got vel.X %.2f", half, vel.X)
	}
}

func TestBehavior_DeterministicFollowUps(t *testing.T) {
	tests := []struct {
		from components.BehaviorState
		want components.BehaviorState
	}{
		{components.Startled, components.Running},
		{components.Yawning, components.Sleeping},
		{components.Zoomies, components.Idle},
		{components.Parading, components.Walking},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			tw := newTestWorld(t, 7)
			e := tw.spawn(200, 200, tt.from, 0.001, neutral)
			tw.vel.Get(e).X = 50
			sys := NewBehaviorSystem(tw.w, tw.cfg.Behavior)

			sys.Update(tw.rng, tw.cfg.Derived.DT32, 1)

			st := tw.state.Get(e)
			if st.State != tt.want {
				t.Errorf("expected %v, got %v", tt.want, st.State)
			}
			if st.Timer <= 0 {
				t.Errorf("expected a fresh timer, got %.3f", st.Timer)
			}
			vel := tw.vel.Get(e)
			switch tt.want {
			case components.Running:
				speed := length(vel.X, vel.Y)
				if diff := speed - tw.cfg.Behavior.RunSpeed; diff > 0.01 || diff < -0.01 {
					t.Errorf("expected run speed %.1f, got %.2f", tw.cfg.Behavior.RunSpeed, speed)
				}
			case components.Sleeping:
				if vel.X != 0 || vel.Y != 0 {
					t.Errorf("expected a yawn to end at rest, got (%.1f, %.1f)", vel.X, vel.Y)
				}
			}
		})
	}
}

func TestBehavior_TimersNeverNegative(t *testing.T) {
	tw := newTestWorld(t, 42)
	for i := 0; i < 50; i++ {
		pers := components.RandomPersonality(tw.rng)
		tw.spawn(float32(i*20), 300, components.Idle, tw.rng.Float32(), pers)
	}
	sys := NewBehaviorSystem(tw.w, tw.cfg.Behavior)

	for tick := 0; tick < 1200; tick++ {
		sys.Update(tw.rng, tw.cfg.Derived.DT32, 3)

		query := sys.filter.Query()
		for query.Next() {
			_, st, _ := query.Get()
			if st.Timer < 0 {
				query.Close()
				t.Fatalf("tick %d: negative timer %.4f", tick, st.Timer)
			}
		}
	}
}

func TestBehavior_SpeedScalesWithEnergy(t *testing.T) {
	tw := newTestWorld(t, 3)
	tw.cfg.Behavior.IdleWeight = 0
	tw.cfg.Behavior.IdleLaziness = 0
	tw.cfg.Behavior.SleepWeight = 0
	tw.cfg.Behavior.SleepLaziness = 0
	tw.cfg.Behavior.GroomWeight = 0
	tw.cfg.Behavior.RunWeight = 0
	tw.cfg.Behavior.RunEnergy = 0

	lazy := components.Personality{Energy: 0}
	e := tw.spawn(400, 400, components.Idle, 0, lazy)
	sys := NewBehaviorSystem(tw.w, tw.cfg.Behavior)

	sys.Update(tw.rng, tw.cfg.Derived.DT32, 1)

	if got := tw.stateOf(e); got != components.Walking {
		t.Fatalf("expected Walking, got %v", got)
	}
	vel := tw.vel.Get(e)
	want := tw.cfg.Behavior.WalkSpeed * 0.5
	if diff := length(vel.X, vel.Y) - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("expected speed %.2f, got %.2f", want, length(vel.X, vel.Y))
	}
}

func TestBehavior_SkipsDroppingCats(t *testing.T) {
	tw := newTestWorld(t, 1)
	e := tw.spawn(100, -40, components.Idle, 0.01, neutral)
	tw.addSpawnAnim(e, 300)
	sys := NewBehaviorSystem(tw.w, tw.cfg.Behavior)

	sys.Update(tw.rng, 1, 1)

	if st := tw.state.Get(e); st.Timer != 0.01 || st.State != components.Idle {
		t.Errorf("expected untouched state, got %v timer %.3f", st.State, st.Timer)
	}
}

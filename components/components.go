// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// BehaviorState is the single activity a cat is engaged in.
type BehaviorState uint8

const (
	Idle BehaviorState = iota
	Walking
	Running
	Sleeping
	Grooming
	ChasingMouse
	FleeingCursor
	ChasingCat
	Playing
	Zoomies
	Startled
	Yawning
	Parading
	Pouncing
)

// CatState holds the current behavior and its remaining duration.
type CatState struct {
	State BehaviorState
	Timer float32 // seconds left in State, never negative after a tick
}

// InteractionTarget points at the other cat in a chase, play or pounce.
// Present only while State is ChasingCat, Playing or Pouncing.
type InteractionTarget struct {
	Target ecs.Entity
	Kind   BehaviorState // state the interaction was started in
}

// SleepingPile marks a sleeping cat with enough sleeping neighbors.
type SleepingPile struct {
	BreathingOffset float32 // radians, desyncs the breathing animation
}

// Stacked marks a cat sitting on top of Base. Chains are not allowed:
// Base is never Stacked itself.
type Stacked struct {
	Base ecs.Entity
}

// GiftCarrier marks a cat bringing a gift to the cursor.
type GiftCarrier struct {
	Timer float32
}

// SpawnAnimation marks a cat still falling into the scene.
// Behavior and movement skip it until it lands.
type SpawnAnimation struct {
	TargetY float32
	VelY    float32
	Bounces uint8
	Landed  bool // touched the ground at least once
}

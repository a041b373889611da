package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for bars)
	Max    float32 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

var stateNames = [...]string{
	Idle:          "Idle",
	Walking:       "Walking",
	Running:       "Running",
	Sleeping:      "Sleeping",
	Grooming:      "Grooming",
	ChasingMouse:  "ChasingMouse",
	FleeingCursor: "FleeingCursor",
	ChasingCat:    "ChasingCat",
	Playing:       "Playing",
	Zoomies:       "Zoomies",
	Startled:      "Startled",
	Yawning:       "Yawning",
	Parading:      "Parading",
	Pouncing:      "Pouncing",
}

// String returns the display name for a BehaviorState.
func (s BehaviorState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// StateCount returns the number of behavior states.
func StateCount() int {
	return len(stateNames)
}

// Mobile reports whether the state takes part in flocking and
// avoidance steering.
func (s BehaviorState) Mobile() bool {
	switch s {
	case Idle, Walking, Running, Parading:
		return true
	}
	return false
}

// Stationary reports whether a cat in this state stays put and can
// anchor or hold a tower.
func (s BehaviorState) Stationary() bool {
	switch s {
	case Idle, Sleeping, Grooming, Yawning:
		return true
	}
	return false
}

// Interactable reports whether a new social interaction may start.
func (s BehaviorState) Interactable() bool {
	switch s {
	case Idle, Walking, Grooming, Sleeping:
		return true
	}
	return false
}

// Targeted reports whether the state requires an InteractionTarget.
func (s BehaviorState) Targeted() bool {
	switch s {
	case ChasingCat, Playing, Pouncing:
		return true
	}
	return false
}

// PersonalityFieldDescriptors returns metadata for Personality fields.
func PersonalityFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "laziness", Label: "Lazy", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "personality"},
		{ID: "energy", Label: "Energy", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "personality"},
		{ID: "curiosity", Label: "Curious", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "personality"},
		{ID: "skittishness", Label: "Skittish", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "personality"},
	}
}

// FieldValue returns the value for a personality descriptor ID.
func (p Personality) FieldValue(id string) float32 {
	switch id {
	case "laziness":
		return p.Laziness
	case "energy":
		return p.Energy
	case "curiosity":
		return p.Curiosity
	case "skittishness":
		return p.Skittishness
	}
	return 0
}

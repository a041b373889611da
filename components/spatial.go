package components

// Position represents an entity's screen position in pixels.
type Position struct {
	X, Y float32
}

// PrevPosition is the position at the start of the last tick.
// Only the renderer reads it, to interpolate between ticks.
type PrevPosition struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}

package systems

// SystemInfo describes a tick phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "social", "input")
}

// SystemRegistry holds metadata about all tick phases, in pipeline order.
// This centralizes phase naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the tick pipeline in execution order.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	// Input
	r.Register(SystemInfo{ID: "cursor", Name: "Cursor", Description: "Tracks cursor speed, stillness and heat", Category: "input"})
	r.Register(SystemInfo{ID: "mouse", Name: "Mouse", Description: "Moses scatter and cursor chase/flee", Category: "input"})

	// Core
	r.Register(SystemInfo{ID: "behavior", Name: "Behavior", Description: "Timers and state transitions", Category: "core"})
	r.Register(SystemInfo{ID: "movement", Name: "Movement", Description: "Integrates velocity, edges and avoidance", Category: "core"})
	r.Register(SystemInfo{ID: "spatial", Name: "Spatial Hash", Description: "Rebuilds snapshots and neighbor buckets", Category: "core"})

	// Social
	r.Register(SystemInfo{ID: "steer", Name: "Steer", Description: "Chases, play and pounce leaps", Category: "social"})
	r.Register(SystemInfo{ID: "decide", Name: "Decide", Description: "Read-only neighbor pass", Category: "social"})
	r.Register(SystemInfo{ID: "apply", Name: "Apply", Description: "Flocking forces, parades, commands", Category: "social"})
	r.Register(SystemInfo{ID: "piles", Name: "Piles", Description: "Wake cascade and sleeping piles", Category: "social"})
	r.Register(SystemInfo{ID: "gifts", Name: "Gifts", Description: "Carries gifts to the cursor", Category: "social"})
	r.Register(SystemInfo{ID: "towers", Name: "Towers", Description: "Stacks and collapses cat towers", Category: "social"})

	// Environment
	r.Register(SystemInfo{ID: "perch", Name: "Perch", Description: "Snaps cats onto window tops", Category: "environment"})
	r.Register(SystemInfo{ID: "click", Name: "Click", Description: "Startles, treats and laser", Category: "input"})
	r.Register(SystemInfo{ID: "toys", Name: "Yarn", Description: "Yarn ball physics and batting", Category: "input"})
	r.Register(SystemInfo{ID: "spawnAnim", Name: "Drop-in", Description: "Falling and bouncing new cats", Category: "visual"})

	// Cleanup
	r.Register(SystemInfo{ID: "sweep", Name: "Sweep", Description: "Drops stale relationship markers", Category: "core"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

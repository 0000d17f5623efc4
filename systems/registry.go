package systems

// SystemInfo describes a world system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "visual")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "anchors", Name: "Anchors", Description: "Turns and expires effect anchors", Category: "core"})
	r.Register(SystemInfo{ID: "effects", Name: "Effects", Description: "Runs scheduled wave effects", Category: "core"})
	r.Register(SystemInfo{ID: "particles", Name: "Particles", Description: "Ages displayed particles", Category: "visual"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Collects tick statistics", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, exists := r.byID[info.ID]; exists {
		return
	}
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// Name returns the display name for a system ID, or the ID itself if unknown.
func (r *SystemRegistry) Name(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems in registration order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, s := range r.systems {
		ids[i] = s.ID
	}
	return ids
}

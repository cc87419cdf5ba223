package core

// RuntimeConfig contains fixed parameters handed to the runtime at startup.
// Live, editor-mutable configuration lives elsewhere; this covers the host
// surface the runtime cannot change about itself.
type RuntimeConfig struct {
	CanvasW  int    // Canvas width in characters
	CanvasH  int    // Canvas height in characters
	TickRate int    // Simulation ticks per second (default 30)
	Seed     int64  // RNG seed for deterministic gameplay
	Template string // Template identifier, keys persisted first-party data
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		CanvasW:  80,
		CanvasH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
		Template: "default",
	}
}

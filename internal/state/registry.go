// Package state holds gameplay values that must survive scene restarts:
// score, lives, match counts and elapsed time. The registry is owned by the
// runtime and injected into scenes; it is reset to defaults on fresh starts
// and preserved across collision-triggered restarts and mid-game capture
// interruptions.
package state

import (
	"sync"
)

// Well-known registry keys shared across game variants.
const (
	KeyLivesRemaining  = "livesRemaining"
	KeyTotalScore      = "totalScore"
	KeyMatchCount      = "matchCount"
	KeyElapsedMillis   = "elapsedMillis"
	KeyMidCaptureDone  = "midCaptureDone"
	KeyGameCompleted   = "gameCompleted"
	KeyRestartsUsed    = "restartsUsed"
)

// Registry is a named-value store for persisted gameplay state.
type Registry struct {
	mu       sync.RWMutex
	values   map[string]int
	defaults map[string]int
}

// NewRegistry creates a registry seeded with the given defaults.
func NewRegistry(defaults map[string]int) *Registry {
	r := &Registry{
		defaults: make(map[string]int, len(defaults)),
		values:   make(map[string]int, len(defaults)),
	}
	for k, v := range defaults {
		r.defaults[k] = v
		r.values[k] = v
	}
	return r
}

// Get returns the value for a key, or zero if unset.
func (r *Registry) Get(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key]
}

// GetOr returns the value for a key, or fallback if unset.
func (r *Registry) GetOr(key string, fallback int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.values[key]; ok {
		return v
	}
	return fallback
}

// Set stores a value under a key.
func (r *Registry) Set(key string, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}

// Add adjusts the value under a key by delta and returns the new value.
func (r *Registry) Add(key string, delta int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] += delta
	return r.values[key]
}

// SetFlag stores a boolean under a key.
func (r *Registry) SetFlag(key string, on bool) {
	v := 0
	if on {
		v = 1
	}
	r.Set(key, v)
}

// Flag returns the boolean under a key.
func (r *Registry) Flag(key string) bool {
	return r.Get(key) != 0
}

// SetDefault records (or replaces) the default for a key without touching
// its current value.
func (r *Registry) SetDefault(key string, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[key] = value
}

// ResetToDefaults discards all values and reinstates the defaults. Keys
// without a default are dropped entirely.
func (r *Registry) ResetToDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]int, len(r.defaults))
	for k, v := range r.defaults {
		r.values[k] = v
	}
}

// Snapshot copies the current values, used to capture resumable state before
// a mid-game interruption.
func (r *Registry) Snapshot() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Restore reinstates a snapshot taken earlier.
func (r *Registry) Restore(snapshot map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]int, len(snapshot))
	for k, v := range snapshot {
		r.values[k] = v
	}
}

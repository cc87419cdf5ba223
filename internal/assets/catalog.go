// Package assets provides the asset catalog: resolution of logical asset
// keys to URLs (with editor-supplied overrides winning over configuration
// defaults) and per-key load state tracking for the preload pathway.
package assets

import (
	"sort"
	"sync"

	"github.com/adforge/playable/internal/config"
)

// LoadState tracks where an asset key is in its load lifecycle.
type LoadState int

const (
	StateUnloaded LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

// String returns a human-readable name for the load state.
func (s LoadState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Catalog resolves logical asset keys and tracks load state per key.
// Scenes hold direct handles to decoded assets, so replacing an asset must
// invalidate its state and force the preload pathway to run again.
type Catalog struct {
	store *config.Store

	mu        sync.RWMutex
	overrides map[string]string
	states    map[string]LoadState
}

// NewCatalog creates a catalog backed by the given configuration store.
func NewCatalog(store *config.Store) *Catalog {
	return &Catalog{
		store:     store,
		overrides: make(map[string]string),
		states:    make(map[string]LoadState),
	}
}

// Resolve returns the URL or data URI for an asset key, preferring a custom
// override over the configured default. Returns "" for unknown keys.
func (c *Catalog) Resolve(key string) string {
	c.mu.RLock()
	override, ok := c.overrides[key]
	c.mu.RUnlock()
	if ok && override != "" {
		return NormalizeURL(override)
	}

	url := c.store.Str("", config.SectionAssets, key)
	if url == "" {
		return ""
	}
	return NormalizeURL(url)
}

// Exists reports whether the key resolves to anything.
func (c *Catalog) Exists(key string) bool {
	return c.Resolve(key) != ""
}

// Override installs a custom asset URL for a key and invalidates any cached
// load state under it, since downstream scenes hold handles to the previous
// decoded asset.
func (c *Catalog) Override(key, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[key] = url
	c.states[key] = StateUnloaded
}

// ClearOverrides drops every custom override and invalidates their state.
func (c *Catalog) ClearOverrides() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.overrides {
		c.states[key] = StateUnloaded
	}
	c.overrides = make(map[string]string)
}

// State returns the load state for a key.
func (c *Catalog) State(key string) LoadState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states[key]
}

// SetState records the load state for a key.
func (c *Catalog) SetState(key string, state LoadState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[key] = state
}

// Invalidate resets a key to unloaded.
func (c *Catalog) Invalidate(key string) {
	c.SetState(key, StateUnloaded)
}

// PendingKeys returns the sorted set of known keys (configured defaults plus
// overrides) that resolve to something and are not yet loaded. The Preload
// scene drives this to empty before moving on.
func (c *Catalog) PendingKeys() []string {
	seen := make(map[string]bool)
	for _, key := range c.store.Keys(config.SectionAssets) {
		seen[key] = true
	}

	c.mu.RLock()
	for key := range c.overrides {
		seen[key] = true
	}
	c.mu.RUnlock()

	var pending []string
	for key := range seen {
		if c.Resolve(key) == "" {
			continue
		}
		if c.State(key) != StateLoaded {
			pending = append(pending, key)
		}
	}
	sort.Strings(pending)
	return pending
}

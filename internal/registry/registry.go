// Package registry provides a global registry for playable templates.
// Templates register themselves in init() functions, allowing the platform
// and CLI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
)

// Template describes one registered playable: its identity, its default
// configuration document, and the constructor for its Game scene. The shared
// scene set (Boot through End) comes from the scenes package; only the Game
// scene is template-specific.
type Template struct {
	// ID is the unique template identifier (e.g. "catcher", "match3").
	// Used for CLI commands, config lookup and score storage.
	ID string

	// Title is the human-readable name for listings.
	Title string

	// NewGame constructs the template's Game scene against a shared
	// environment.
	NewGame func(env *scenes.Env) scene.Scene
}

// Info contains listing metadata about a registered template.
type Info struct {
	ID    string
	Title string
}

var (
	templates = make(map[string]Template)
	mu        sync.RWMutex
)

// Register adds a template to the registry. Typically called from a template
// package's init(). Panics on a duplicate ID, which is a wiring bug.
func Register(t Template) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := templates[t.ID]; exists {
		panic(fmt.Sprintf("registry: template %q already registered", t.ID))
	}
	if t.NewGame == nil {
		panic(fmt.Sprintf("registry: template %q has no game constructor", t.ID))
	}
	templates[t.ID] = t
}

// List returns metadata for all registered templates, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(templates))
	for _, t := range templates {
		result = append(result, Info{ID: t.ID, Title: t.Title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns a template by ID.
func Lookup(id string) (Template, error) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := templates[id]
	if !ok {
		return Template{}, fmt.Errorf("registry: unknown template %q", id)
	}
	return t, nil
}

// Exists reports whether a template ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := templates[id]
	return ok
}

package scene

import (
	"time"

	"github.com/adforge/playable/internal/core"
)

// ID names a scene in the lifecycle.
type ID string

// The scene set every playable template carries.
const (
	Boot        ID = "Boot"
	Preload     ID = "Preload"
	Splash      ID = "Splash"
	HowTo       ID = "HowTo"
	Game        ID = "Game"
	DataCapture ID = "DataCapture"
	End         ID = "End"
)

// Payload carries explicit data between scenes on transition: score, match
// count, elapsed time, capture routing. Scenes entered via a host-driven
// jump receive an empty payload (full reset).
type Payload map[string]any

// Well-known payload keys.
const (
	PayloadNextScene = "nextScene"
	PayloadPlacement = "placement"
	PayloadGameData  = "gameData"
	PayloadScore     = "score"
	PayloadMatches   = "matchCount"
	PayloadElapsed   = "elapsedMillis"
	PayloadResume    = "resume"
)

// Int reads an int-valued payload key with a fallback.
func (p Payload) Int(key string, fallback int) int {
	if p == nil {
		return fallback
	}
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// Str reads a string-valued payload key with a fallback.
func (p Payload) Str(key string, fallback string) string {
	if p == nil {
		return fallback
	}
	if s, ok := p[key].(string); ok {
		return s
	}
	return fallback
}

// Sub reads a nested payload.
func (p Payload) Sub(key string) Payload {
	if p == nil {
		return nil
	}
	switch v := p[key].(type) {
	case Payload:
		return v
	case map[string]any:
		return Payload(v)
	}
	return nil
}

// Scene is the lifecycle capability every visual mode implements. Scenes are
// state-variant components composed by the Controller, not subclasses of an
// engine base.
//
// Enter may be called again after Exit (restart); the scene must come up
// fresh each time and must release every owned resource on Exit.
type Scene interface {
	// ID returns the scene's lifecycle name.
	ID() ID

	// Enter activates the scene with an explicit payload from the
	// previous scene (empty on fresh starts and host-driven jumps).
	Enter(p Payload)

	// Exit deactivates the scene and releases all owned resources:
	// timers cleared, listeners detached. Violations leak across
	// editor-driven restarts.
	Exit()

	// Tick advances the scene by one frame.
	Tick(dt time.Duration)

	// HandleInput delivers one semantic input action.
	HandleInput(a core.Action)

	// Render draws the scene into the canvas. The canvas is pre-cleared.
	Render(c *core.Canvas)
}

package scene

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/state"
)

// Controller is the state machine governing which scene is active and how
// transitions occur: directly, via an injected DataCapture interstitial, or
// as a host-driven jump. Exactly one scene is active at a time; transitions
// are strictly sequential (the next start is issued only after the previous
// scene's shutdown completed).
type Controller struct {
	store    *config.Store
	registry *state.Registry
	logger   *log.Logger

	scenes map[ID]Scene
	active Scene

	// effect is the transition effect every scene change must disable so
	// a pending completion cannot fire into the next scene. Optional.
	effect *Effect

	// resetEvents clears once-per-run tracking state when a fresh run
	// begins. Optional.
	resetEvents func()

	inTransition bool
}

// NewController creates a controller over an empty scene table.
func NewController(store *config.Store, registry *state.Registry, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "scene"})
	}
	return &Controller{
		store:    store,
		registry: registry,
		logger:   logger,
		scenes:   make(map[ID]Scene),
	}
}

// Register adds a scene to the table. Later registrations replace earlier
// ones, which is how a template swaps in its own Game scene.
func (c *Controller) Register(s Scene) {
	c.scenes[s.ID()] = s
}

// SetTransitionEffect wires the effect instance the controller disables on
// every scene change.
func (c *Controller) SetTransitionEffect(e *Effect) {
	c.effect = e
}

// SetEventReset wires the callback that re-arms once-per-run tracking events
// when a jump to Game or Splash starts a fresh run.
func (c *Controller) SetEventReset(fn func()) {
	c.resetEvents = fn
}

// Active returns the active scene, or nil before boot.
func (c *Controller) Active() Scene {
	return c.active
}

// ActiveID returns the active scene's ID, or "" before boot.
func (c *Controller) ActiveID() ID {
	if c.active == nil {
		return ""
	}
	return c.active.ID()
}

// Start stops the active scene and starts the named one with the given
// payload. A start requested while another transition is still in flight is
// dropped silently (the in-flight one wins; the caller's loop token will
// reveal the supersession).
func (c *Controller) Start(id ID, p Payload) {
	next, ok := c.scenes[id]
	if !ok {
		c.logger.Warn("requested scene does not exist", "scene", id)
		return
	}
	if c.inTransition {
		c.logger.Debug("transition already in flight, dropping", "scene", id)
		return
	}
	c.inTransition = true

	// The scene change supersedes any in-flight transition effect; its
	// pending completion must not fire into the scene starting now.
	if c.effect != nil {
		c.effect.Disable()
	}
	if c.active != nil {
		c.active.Exit()
	}
	// Previous scene's shutdown has completed; only now may the next
	// scene start.
	c.active = next
	next.Enter(p)
	c.inTransition = false
}

// TransitionTo performs a normal forward transition, injecting the
// DataCapture interstitial when first-party-data capture is configured for
// the boundary being crossed and has not run yet this session.
func (c *Controller) TransitionTo(id ID, p Payload) {
	placement, ok := c.placementFor(c.ActiveID(), id)
	if ok && c.shouldCapture(placement) {
		c.registry.SetFlag(captureFlagKey(placement), true)
		c.Start(DataCapture, Payload{
			PayloadNextScene: string(id),
			PayloadPlacement: string(placement),
			PayloadGameData:  p,
		})
		return
	}
	c.Start(id, p)
}

// InterruptForCapture suspends gameplay for a mid-game capture. Returns
// false (and does nothing) when the mid-game placement is not configured or
// already ran. The caller passes a snapshot of resumable state as gameData;
// on completion DataCapture resumes the Game scene with it.
func (c *Controller) InterruptForCapture(gameData Payload) bool {
	if !c.shouldCapture(config.PlacementMidGame) {
		return false
	}
	c.registry.SetFlag(captureFlagKey(config.PlacementMidGame), true)
	c.Start(DataCapture, Payload{
		PayloadNextScene: string(Game),
		PayloadPlacement: string(config.PlacementMidGame),
		PayloadGameData:  gameData,
	})
	return true
}

// JumpTo services a host-driven jump request. If the requested scene is
// already active it restarts with an empty payload (full reset); otherwise
// the active scene stops and the requested one starts. Jumps to Game or
// Splash begin a fresh run: persisted gameplay state resets to defaults and
// once-per-run tracking events re-arm. Unknown scene names log and no-op.
func (c *Controller) JumpTo(name string) {
	id := ID(name)
	if _, ok := c.scenes[id]; !ok {
		c.logger.Warn("jump to unknown scene ignored", "scene", name)
		return
	}

	if id == Game || id == Splash {
		c.registry.ResetToDefaults()
		if c.resetEvents != nil {
			c.resetEvents()
		}
	}

	if c.active != nil && c.active.ID() == id {
		// Restart in place with a full reset
		c.inTransition = true
		if c.effect != nil {
			c.effect.Disable()
		}
		c.active.Exit()
		c.active.Enter(Payload{})
		c.inTransition = false
		return
	}

	c.Start(id, Payload{})
}

// Tick advances the active scene.
func (c *Controller) Tick(dt time.Duration) {
	if c.active != nil {
		c.active.Tick(dt)
	}
}

// HandleInput delivers an action to the active scene.
func (c *Controller) HandleInput(a core.Action) {
	if c.active != nil {
		c.active.HandleInput(a)
	}
}

// Render draws the active scene.
func (c *Controller) Render(canvas *core.Canvas) {
	if c.active != nil {
		c.active.Render(canvas)
	}
}

// placementFor maps a scene boundary to its capture placement.
func (c *Controller) placementFor(from, to ID) (config.Placement, bool) {
	switch {
	case (from == Splash || from == HowTo) && to == Game:
		return config.PlacementAfterSplash, true
	case from == Game && to == End:
		return config.PlacementBeforeEnd, true
	default:
		return "", false
	}
}

// shouldCapture reports whether a placement is enabled and has not run yet.
func (c *Controller) shouldCapture(p config.Placement) bool {
	if !config.FPDEnabled(c.store, p) {
		return false
	}
	return !c.registry.Flag(captureFlagKey(p))
}

func captureFlagKey(p config.Placement) string {
	return "fpdDone_" + string(p)
}

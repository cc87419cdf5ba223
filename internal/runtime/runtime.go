// Package runtime composes one running playable: configuration store, asset
// catalog, gameplay registry, tracker, scene controller, transition effect
// and the patch applier, wired together for a single template.
package runtime

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/registry"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
	"github.com/adforge/playable/internal/state"
	"github.com/adforge/playable/internal/storage"
	"github.com/adforge/playable/internal/track"
)

// Options configures a runtime instance.
type Options struct {
	// TemplateID selects the registered template to run.
	TemplateID string

	// ConfigPath optionally points at a YAML document overriding the
	// template's embedded defaults.
	ConfigPath string

	// DB optionally persists captures, scores and fired tracking events.
	DB *storage.Store

	// Runtime holds the fixed host parameters (canvas size, tick rate,
	// seed).
	Runtime core.RuntimeConfig

	Logger *log.Logger
}

// Runtime drives one playable from boot to end card. The host platform owns
// the clock and the canvas; the runtime owns everything in between.
type Runtime struct {
	template registry.Template
	store    *config.Store
	catalog  *assets.Catalog
	states   *state.Registry
	tracker  *track.Tracker
	control  *scene.Controller
	applier  *patch.Applier
	env      *scenes.Env
	logger   *log.Logger

	// The effect outlives any single scene, so it runs on its own loop
	// and timer set, ticked alongside the controller.
	effect       *scene.Effect
	effectTimers *scene.Timers

	recordTracking track.Recorder
}

// New assembles a runtime for a registered template.
func New(opts Options) (*Runtime, error) {
	tmpl, err := registry.Lookup(opts.TemplateID)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "runtime"})
	}

	store, err := config.Load(tmpl.ID, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	rc := opts.Runtime
	if rc.CanvasW == 0 || rc.CanvasH == 0 || rc.TickRate == 0 {
		def := core.DefaultRuntimeConfig()
		if rc.CanvasW == 0 {
			rc.CanvasW = def.CanvasW
		}
		if rc.CanvasH == 0 {
			rc.CanvasH = def.CanvasH
		}
		if rc.TickRate == 0 {
			rc.TickRate = def.TickRate
		}
	}
	rc.Template = tmpl.ID

	catalog := assets.NewCatalog(store)
	states := state.NewRegistry(nil)
	control := scene.NewController(store, states, logger)

	tracker := track.New(store, logger)
	var record track.Recorder
	if opts.DB != nil {
		db := opts.DB
		record = func(eventKey, url string) {
			if err := db.RecordTrackingEvent(eventKey, url); err != nil {
				logger.Error("tracking event not recorded", "err", err)
			}
		}
		tracker.SetRecorder(record)
	}
	// Replays started by jump re-fire once-per-run events like gameStart.
	control.SetEventReset(tracker.Reset)

	effectLoop := scene.NewLoop()
	effectBag := scene.NewDisposerBag()
	effectTimers := scene.NewTimers(effectLoop, effectBag)
	effectLoop.Begin()
	effect := scene.NewEffect(effectLoop, effectTimers, rc.Seed)
	control.SetTransitionEffect(effect)

	env := scenes.NewEnv(scenes.Env{
		Store:    store,
		Catalog:  catalog,
		Registry: states,
		Tracker:  tracker,
		Control:  control,
		Effect:   effect,
		Logger:   logger,
		Runtime:  rc,
	})
	if opts.DB != nil {
		env.Saver = opts.DB
		env.Scores = opts.DB
	}

	scenes.RegisterShared(env)
	control.Register(tmpl.NewGame(env))

	r := &Runtime{
		template:     tmpl,
		store:        store,
		catalog:      catalog,
		states:       states,
		tracker:      tracker,
		control:      control,
		env:          env,
		logger:       logger,
		effect:       effect,
		effectTimers: effectTimers,

		recordTracking: record,
	}

	r.applier = patch.NewApplier(store, catalog, patch.Hooks{
		ActiveScenes:       r.activeReappliers,
		JumpTo:             control.JumpTo,
		RestartFromPreload: r.restartFromPreload,
	}, logger)

	return r, nil
}

// Start boots the playable.
func (r *Runtime) Start() {
	r.logger.Info("starting playable", "template", r.template.ID)
	r.control.Start(scene.Boot, scene.Payload{})
}

// Tick advances the active scene and the transition effect by one frame.
func (r *Runtime) Tick(dt time.Duration) {
	r.control.Tick(dt)
	r.effectTimers.Tick(dt)
	r.effect.Tick(dt)
}

// HandleInput delivers a semantic action to the active scene.
func (r *Runtime) HandleInput(a core.Action) {
	r.control.HandleInput(a)
}

// Render draws the active scene, then the transition effect on top.
func (r *Runtime) Render(c *core.Canvas) {
	r.control.Render(c)
	r.effect.Render(c, scene.DefaultEffectConfig().Color)
}

// ApplyPatch merges one editor patch and reapplies it to active scenes.
func (r *Runtime) ApplyPatch(msg patch.Message) {
	r.applier.Apply(msg)
}

// JumpTo services a host-driven jump by scene name.
func (r *Runtime) JumpTo(name string) {
	r.control.JumpTo(name)
}

// ActiveID returns the active scene's ID, or "" before boot.
func (r *Runtime) ActiveID() scene.ID {
	return r.control.ActiveID()
}

// Active returns the active scene. The platform layer uses this to route
// raw key input to the data-capture form.
func (r *Runtime) Active() scene.Scene {
	return r.control.Active()
}

// Env exposes the shared scene environment.
func (r *Runtime) Env() *scenes.Env {
	return r.env
}

// Template returns the running template's metadata.
func (r *Runtime) Template() registry.Template {
	return r.template
}

// ObserveTracking mirrors fired tracking URLs to fn, in addition to the
// persistent event log. The editor bridge uses this for its debug feed.
func (r *Runtime) ObserveTracking(fn func(eventKey, url string)) {
	record := r.recordTracking
	r.tracker.SetRecorder(func(eventKey, url string) {
		if record != nil {
			record(eventKey, url)
		}
		fn(eventKey, url)
	})
}

// activeReappliers returns the active scene when it participates in patch
// reapplication.
func (r *Runtime) activeReappliers() []patch.Reapplier {
	active := r.control.Active()
	if ra, ok := active.(patch.Reapplier); ok {
		return []patch.Reapplier{ra}
	}
	return nil
}

// restartFromPreload re-enters the load pathway after asset replacement.
func (r *Runtime) restartFromPreload() {
	r.control.Start(scene.Preload, scene.Payload{})
}

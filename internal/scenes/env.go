// Package scenes implements the scene set every playable template shares:
// Boot, Preload, Splash, HowTo, DataCapture and End. Game scenes live in
// their template packages and plug into the same environment.
package scenes

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/fpd"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/state"
	"github.com/adforge/playable/internal/track"
)

// ScoreSaver records a finished run. Satisfied by the sqlite store.
type ScoreSaver interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Env bundles the shared collaborators every scene receives. One Env exists
// per running playable; scenes never construct their own.
type Env struct {
	Store    *config.Store
	Catalog  *assets.Catalog
	Registry *state.Registry
	Tracker  *track.Tracker
	Control  *scene.Controller
	Effect   *scene.Effect
	Saver    fpd.Saver   // optional, nil disables capture persistence
	Scores   ScoreSaver  // optional, nil disables score persistence
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
	Rand     *rand.Rand
}

// NewEnv fills in the optional collaborators so scenes can rely on them.
func NewEnv(env Env) *Env {
	if env.Logger == nil {
		env.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "scenes"})
	}
	if env.Rand == nil {
		seed := env.Runtime.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		env.Rand = rand.New(rand.NewSource(seed))
	}
	return &env
}

// FinishGame routes a completed run to the End scene through the transition
// effect. The controller disables the effect on any scene change, so a
// completion pending when the host jumps elsewhere never fires.
func (e *Env) FinishGame(p scene.Payload) {
	e.Tracker.Fire("gameComplete")
	if e.Effect == nil {
		e.Control.TransitionTo(scene.End, p)
		return
	}
	e.Effect.Play(scene.EffectParticles, scene.DefaultEffectConfig(), func() {
		e.Control.TransitionTo(scene.End, p)
	})
}

// RecordScore persists a finished run's score, logging failures instead of
// propagating them.
func (e *Env) RecordScore(score int) {
	if e.Scores == nil {
		return
	}
	if _, err := e.Scores.SaveScore(e.Runtime.Template, score); err != nil {
		e.Logger.Error("score persistence failed", "err", err)
	}
}

// Base carries the lifecycle plumbing common to all scenes: the loop token,
// the disposer bag and the tick-driven timers. Embed it and call begin/end
// from Enter/Exit.
type Base struct {
	Env    *Env
	loop   *scene.Loop
	bag    *scene.DisposerBag
	timers *scene.Timers
	active bool
}

// NewBase creates the plumbing for one scene instance.
func NewBase(env *Env) Base {
	loop := scene.NewLoop()
	bag := scene.NewDisposerBag()
	return Base{
		Env:    env,
		loop:   loop,
		bag:    bag,
		timers: scene.NewTimers(loop, bag),
	}
}

// Begin starts a fresh loop for this activation and returns its token.
func (b *Base) Begin() scene.Token {
	b.active = true
	return b.loop.Begin()
}

// End supersedes the loop and disposes every owned resource. Timers already
// scheduled become no-ops through their captured tokens.
func (b *Base) End() {
	b.active = false
	b.loop.End()
	b.bag.Dispose()
	b.timers.CancelAll()
}

// Timers returns the scene's scheduler.
func (b *Base) Timers() *scene.Timers {
	return b.timers
}

// Loop returns the scene's loop for token checks.
func (b *Base) Loop() *scene.Loop {
	return b.loop
}

// Active reports whether the scene is between Enter and Exit.
func (b *Base) Active() bool {
	return b.active
}

// Tick advances the scene's timers. Scenes with extra per-frame work wrap
// this in their own Tick.
func (b *Base) Tick(dt time.Duration) {
	b.timers.Tick(dt)
}

// HandleInput is a no-op default.
func (b *Base) HandleInput(core.Action) {}

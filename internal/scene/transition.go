package scene

import (
	"math/rand"
	"time"

	"github.com/adforge/playable/internal/core"
)

// EffectKind selects the transition visual.
type EffectKind string

const (
	EffectParticles EffectKind = "particle-burst"
	EffectFade      EffectKind = "fade"
	EffectNone      EffectKind = "none"
)

// EffectConfig tunes a transition effect run.
type EffectConfig struct {
	Duration   time.Duration // total effect duration before completion fires
	Bursts     int           // secondary delayed bursts (particle-burst only)
	BurstDelay time.Duration // delay between secondary bursts
	Color      core.Color
}

// DefaultEffectConfig returns the stock completion celebration.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		Duration:   1200 * time.Millisecond,
		Bursts:     2,
		BurstDelay: 250 * time.Millisecond,
		Color:      core.RGB(0xff, 0xd7, 0x00),
	}
}

// burst is one visible particle burst being animated.
type burst struct {
	x, y     float64 // fractional canvas position
	age      time.Duration
	lifetime time.Duration
}

// Effect plays a bounded-duration transition visual and invokes a completion
// callback exactly once, suppressed if the owning scene's loop token goes
// stale. Secondary bursts scheduled before a restart never render into the
// new scene: each fires through the token-checking timer scheduler.
type Effect struct {
	loop   *Loop
	timers *Timers
	rng    *rand.Rand

	fading    bool
	fadeLevel float64
	bursts    []*burst
	disabled  bool
	completed bool
}

// NewEffect creates an effect bound to the owning scene's loop and timers.
func NewEffect(loop *Loop, timers *Timers, seed int64) *Effect {
	return &Effect{
		loop:   loop,
		timers: timers,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Play starts the effect and arranges for onComplete to fire exactly once
// after cfg.Duration. A zero-duration or "none" effect still completes
// asynchronously (next tick), never synchronously from inside Play.
func (e *Effect) Play(kind EffectKind, cfg EffectConfig, onComplete func()) {
	token := e.loop.Current()
	e.disabled = false
	e.completed = false

	complete := func() {
		// Token staleness is re-checked by the timer layer; the local
		// guards cover disable-by-jump and repeated completion calls.
		if e.disabled || e.completed {
			return
		}
		e.completed = true
		if onComplete != nil {
			onComplete()
		}
	}

	switch kind {
	case EffectFade:
		e.fading = true
		e.fadeLevel = 0
		e.timers.Animate(cfg.Duration,
			func(progress float64) { e.fadeLevel = progress },
			complete,
		)

	case EffectParticles:
		e.spawnBurst(token, cfg)
		for i := 1; i <= cfg.Bursts; i++ {
			delay := time.Duration(i) * cfg.BurstDelay
			// Each delayed burst independently re-checks staleness
			// when its timer fires.
			e.timers.After(delay, func() {
				e.spawnBurst(token, cfg)
			})
		}
		e.timers.After(cfg.Duration, complete)

	default:
		e.timers.After(0, complete)
	}
}

// spawnBurst adds a burst at a random upper-canvas position. The token check
// here is deliberate double-coverage: timers already guard firing, but a
// burst must also not render if the loop moved on between schedule and draw.
func (e *Effect) spawnBurst(token Token, cfg EffectConfig) {
	if !e.loop.IsCurrent(token) {
		return
	}
	e.bursts = append(e.bursts, &burst{
		x:        0.2 + 0.6*e.rng.Float64(),
		y:        0.2 + 0.3*e.rng.Float64(),
		lifetime: 600 * time.Millisecond,
	})
}

// Disable suppresses any in-flight completion and clears visuals. Called
// when a host-driven jump lands on End or DataCapture.
func (e *Effect) Disable() {
	e.disabled = true
	e.fading = false
	e.bursts = nil
}

// Tick ages active bursts.
func (e *Effect) Tick(dt time.Duration) {
	live := e.bursts[:0]
	for _, b := range e.bursts {
		b.age += dt
		if b.age < b.lifetime {
			live = append(live, b)
		}
	}
	e.bursts = live
}

// Active reports whether anything is currently being drawn.
func (e *Effect) Active() bool {
	return !e.disabled && (e.fading || len(e.bursts) > 0)
}

var particleGlyphs = []rune{'*', '+', '.', 'x', 'o'}

// Render draws the effect over the scene.
func (e *Effect) Render(c *core.Canvas, color core.Color) {
	if e.disabled {
		return
	}

	if e.fading {
		// Darken by degrading cells to dots as the fade progresses
		cut := int(e.fadeLevel * float64(c.Height()))
		for y := 0; y < cut; y++ {
			for x := 0; x < c.Width(); x++ {
				c.SetColored(x, y, '░', color)
			}
		}
	}

	for _, b := range e.bursts {
		cx := int(b.x * float64(c.Width()))
		cy := int(b.y * float64(c.Height()))
		radius := 1 + int(float64(b.age)/float64(b.lifetime)*4)
		for i, g := range particleGlyphs {
			dx := (i%3 - 1) * radius
			dy := (i/3 - 1) * radius
			c.SetColored(cx+dx, cy+dy, g, color)
		}
	}
}

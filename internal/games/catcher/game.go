// Package catcher implements the falling-item catcher template: timed item
// spawns, a player-steered basket, score target and lives.
package catcher

import (
	"fmt"
	"time"

	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/fpd"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
	"github.com/adforge/playable/internal/state"
)

// catcherStep is how far one input moves the basket, as a width fraction.
const catcherStep = 0.06

// Item is one falling object. Positions are canvas fractions so layout
// survives canvas resizes.
type Item struct {
	X, Y float64
	Good bool
}

// GameScene is the catcher gameplay scene.
type GameScene struct {
	scenes.Base

	items    []*Item
	catcherX float64

	score    int
	lives    int
	target   int
	duration time.Duration
	elapsed  time.Duration
	finished bool

	fallSpeed  float64
	goodScore  int
	badPenalty int
	badChance  float64
	width      float64

	trigger *fpd.MidGameTrigger
	reapply patch.Table
}

// NewGame creates the catcher game scene.
func NewGame(env *scenes.Env) *GameScene {
	s := &GameScene{Base: scenes.NewBase(env)}
	s.reapply = patch.Table{
		// Geometry is read live at render time.
		patch.KindUpdateLayout: func(map[string]any) {},
	}
	return s
}

func (s *GameScene) ID() scene.ID { return scene.Game }

func (s *GameScene) Enter(p scene.Payload) {
	s.Begin()
	store := s.Env.Store

	s.target = store.Int(100, config.SectionGameplay, "targetScore")
	s.duration = time.Duration(store.Num(30, config.SectionGameplay, "duration") * float64(time.Second))
	s.fallSpeed = store.Num(0.35, config.SectionGameplay, "fallSpeed")
	s.goodScore = store.Int(10, config.SectionGameplay, "goodItemScore")
	s.badPenalty = store.Int(5, config.SectionGameplay, "badItemPenalty")
	s.badChance = core.ClampF(store.Num(0.25, config.SectionGameplay, "badItemChance"), 0, 1)
	s.width = store.Frac(0.12, config.SectionLayout, "catcher", "width")

	s.items = nil
	s.catcherX = 0.5
	s.finished = false
	s.trigger = fpd.NewMidGameTrigger(store, s.duration, s.target)

	lives := store.Int(3, config.SectionGameplay, "lives")
	s.Env.Registry.SetDefault(state.KeyLivesRemaining, lives)

	if p.Int(scene.PayloadResume, 0) != 0 {
		s.score = p.Int(scene.PayloadScore, 0)
		s.elapsed = time.Duration(p.Int(scene.PayloadElapsed, 0)) * time.Millisecond
		s.lives = s.Env.Registry.GetOr(state.KeyLivesRemaining, lives)
	} else {
		s.score = 0
		s.elapsed = 0
		s.lives = lives
		s.Env.Registry.Set(state.KeyLivesRemaining, lives)
		s.Env.Registry.Set(state.KeyTotalScore, 0)
		s.Env.Tracker.Fire("gameStart")
	}

	interval := store.Num(0.8, config.SectionGameplay, "spawnInterval")
	s.Timers().Every(time.Duration(interval*float64(time.Second)), s.spawn)
}

func (s *GameScene) Exit() {
	s.End()
}

func (s *GameScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

// spawn drops one new item at a random horizontal position.
func (s *GameScene) spawn() {
	if s.finished {
		return
	}
	s.items = append(s.items, &Item{
		X:    0.05 + 0.9*s.Env.Rand.Float64(),
		Y:    0,
		Good: s.Env.Rand.Float64() >= s.badChance,
	})
}

func (s *GameScene) Tick(dt time.Duration) {
	s.Base.Tick(dt)
	if s.finished {
		return
	}

	s.elapsed += dt
	s.Env.Registry.Set(state.KeyElapsedMillis, int(s.elapsed.Milliseconds()))

	s.advanceItems(dt)

	if s.trigger.Check(s.elapsed, s.score) && s.interrupt() {
		return
	}
	switch {
	case s.score >= s.target:
		s.finish(true)
	case s.lives <= 0:
		s.finish(false)
	case s.duration > 0 && s.elapsed >= s.duration:
		s.finish(s.score >= s.target)
	}
}

// basketWidth is the configured width times the editor-tuned basket scale,
// read live so an asset-scale patch widens both the sprite and the catch.
func (s *GameScene) basketWidth() float64 {
	return s.width * config.AssetScale(s.Env.Store, "basket")
}

// advanceItems moves every item down and resolves catches and misses.
func (s *GameScene) advanceItems(dt time.Duration) {
	catchY := s.Env.Store.Frac(0.9, config.SectionLayout, "catcher", "y")
	half := s.basketWidth() / 2

	live := s.items[:0]
	for _, it := range s.items {
		it.Y += s.fallSpeed * dt.Seconds()
		if it.Y < catchY {
			live = append(live, it)
			continue
		}
		if it.X >= s.catcherX-half && it.X <= s.catcherX+half {
			s.catch(it)
			continue
		}
		if it.Y <= 1.05 {
			live = append(live, it)
		}
	}
	s.items = live
}

func (s *GameScene) catch(it *Item) {
	if it.Good {
		s.score += s.goodScore
		s.Env.Registry.Set(state.KeyTotalScore, s.score)
		return
	}
	s.score = core.Max(s.score-s.badPenalty, 0)
	s.lives--
	s.Env.Registry.Set(state.KeyTotalScore, s.score)
	s.Env.Registry.Set(state.KeyLivesRemaining, s.lives)
}

func (s *GameScene) interrupt() bool {
	return s.Env.Control.InterruptForCapture(scene.Payload{
		scene.PayloadResume:  1,
		scene.PayloadScore:   s.score,
		scene.PayloadElapsed: int(s.elapsed.Milliseconds()),
	})
}

func (s *GameScene) HandleInput(a core.Action) {
	if s.finished {
		return
	}
	switch a {
	case core.ActionLeft:
		s.catcherX = core.ClampF(s.catcherX-catcherStep, 0, 1)
	case core.ActionRight:
		s.catcherX = core.ClampF(s.catcherX+catcherStep, 0, 1)
	}
}

func (s *GameScene) finish(won bool) {
	if s.finished {
		return
	}
	s.finished = true
	s.Env.Registry.SetFlag(state.KeyGameCompleted, won)
	s.Env.Registry.Set(state.KeyTotalScore, s.score)
	s.Env.RecordScore(s.score)
	s.Env.FinishGame(scene.Payload{scene.PayloadScore: s.score})
}

func (s *GameScene) Render(c *core.Canvas) {
	scenes.DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)

	w, h := c.Width(), c.Height()
	for _, it := range s.items {
		glyph, color := '✶', core.RGB(0xff, 0xdd, 0x44)
		if !it.Good {
			glyph, color = '✖', core.RGB(0xff, 0x44, 0x44)
		}
		c.SetColored(int(it.X*float64(w)), int(it.Y*float64(h)), glyph, color)
	}

	catchY := int(s.Env.Store.Frac(0.9, config.SectionLayout, "catcher", "y") * float64(h))
	pixels := core.Max(int(s.basketWidth()*float64(w)), 3)
	left := int(s.catcherX*float64(w)) - pixels/2
	c.DrawHLine(left, catchY, pixels, '▀', core.RGB(0x66, 0xcc, 0xff))
	c.Set(left-1, catchY, '\\')
	c.Set(left+pixels, catchY, '/')

	s.drawHUD(c)
}

func (s *GameScene) drawHUD(c *core.Canvas) {
	spec := config.Button(s.Env.Store, config.SectionScoreBox)
	x, y := spec.Pos.Resolve(c.Width(), c.Height())
	text := fmt.Sprintf("%s %d/%d", spec.Text, s.score, s.target)
	c.DrawText(x-len(text)/2, y, text, spec.TextColor)

	hearts := ""
	for range s.lives {
		hearts += "♥"
	}
	c.DrawText(1, 0, hearts, core.RGB(0xff, 0x55, 0x88))

	if s.duration > 0 {
		left := s.duration - s.elapsed
		if left < 0 {
			left = 0
		}
		c.DrawTextCentered(0, fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60), core.RGB(0xaa, 0xaa, 0xaa))
	}
}

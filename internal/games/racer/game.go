// Package racer implements the lane-dodging racer template: a fixed set of
// lanes, scrolling obstacles and a configurable collision policy.
package racer

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

// CollisionBehavior is what a crash does.
type CollisionBehavior string

const (
	CollideRestart  CollisionBehavior = "restart"
	CollideLoseLife CollisionBehavior = "loseLife"
	CollideEnd      CollisionBehavior = "end"
)

// payloadRestart marks a collision-triggered restart, which preserves the
// accumulated score where a fresh start would zero it.
const payloadRestart = "collisionRestart"

// playerY is the player's fixed vertical position as a height fraction.
const playerY = 0.85

// Obstacle is one oncoming vehicle.
type Obstacle struct {
	Lane int
	Y    float64
}

// GameScene is the racer gameplay scene.
type GameScene struct {
	scenes.Base

	lanes      int
	playerLane int
	obstacles  []*Obstacle

	score     float64
	target    int
	duration  time.Duration
	elapsed   time.Duration
	finished  bool
	scrollSpd float64
	perSecond float64
	collide   CollisionBehavior

	trigger *fpd.MidGameTrigger
	reapply patch.Table
}

// NewGame creates the racer game scene.
func NewGame(env *scenes.Env) *GameScene {
	s := &GameScene{Base: scenes.NewBase(env)}
	s.reapply = patch.Table{
		patch.KindUpdateLayout: func(map[string]any) {},
	}
	return s
}

func (s *GameScene) ID() scene.ID { return scene.Game }

func (s *GameScene) Enter(p scene.Payload) {
	s.Begin()
	store := s.Env.Store

	s.lanes = core.Max(store.Int(3, config.SectionGameplay, "lanes"), 2)
	s.target = store.Int(200, config.SectionGameplay, "targetScore")
	s.duration = time.Duration(store.Num(30, config.SectionGameplay, "duration") * float64(time.Second))
	s.scrollSpd = store.Num(0.5, config.SectionGameplay, "scrollSpeed")
	s.perSecond = store.Num(8, config.SectionGameplay, "scorePerSecond")
	s.collide = CollisionBehavior(store.Str(string(CollideRestart), config.SectionGameplay, "collisionBehavior"))

	s.obstacles = nil
	s.playerLane = s.lanes / 2
	s.finished = false
	s.elapsed = 0
	s.trigger = fpd.NewMidGameTrigger(store, s.duration, s.target)

	lives := store.Int(3, config.SectionGameplay, "lives")
	s.Env.Registry.SetDefault(state.KeyLivesRemaining, lives)

	switch {
	case p.Int(scene.PayloadResume, 0) != 0:
		s.score = float64(p.Int(scene.PayloadScore, 0))
		s.elapsed = time.Duration(p.Int(scene.PayloadElapsed, 0)) * time.Millisecond
	case p.Int(payloadRestart, 0) != 0:
		// Crash restart: score survives, the road resets.
		s.score = float64(s.Env.Registry.Get(state.KeyTotalScore))
	default:
		s.score = 0
		s.Env.Registry.Set(state.KeyTotalScore, 0)
		s.Env.Registry.Set(state.KeyLivesRemaining, lives)
		s.Env.Registry.Set(state.KeyRestartsUsed, 0)
		s.Env.Tracker.Fire("gameStart")
	}

	interval := store.Num(1.1, config.SectionGameplay, "spawnInterval")
	s.Timers().Every(time.Duration(interval*float64(time.Second)), s.spawn)
}

func (s *GameScene) Exit() {
	s.End()
}

func (s *GameScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

func (s *GameScene) spawn() {
	if s.finished {
		return
	}
	s.obstacles = append(s.obstacles, &Obstacle{
		Lane: s.Env.Rand.Intn(s.lanes),
		Y:    -0.05,
	})
}

func (s *GameScene) Tick(dt time.Duration) {
	s.Base.Tick(dt)
	if s.finished {
		return
	}

	s.elapsed += dt
	s.score += s.perSecond * dt.Seconds()
	s.Env.Registry.Set(state.KeyTotalScore, int(s.score))
	s.Env.Registry.Set(state.KeyElapsedMillis, int(s.elapsed.Milliseconds()))

	if s.advanceObstacles(dt) {
		s.onCollision()
		return
	}

	if s.trigger.Check(s.elapsed, int(s.score)) && s.interrupt() {
		return
	}
	switch {
	case int(s.score) >= s.target:
		s.finish(true)
	case s.duration > 0 && s.elapsed >= s.duration:
		s.finish(int(s.score) >= s.target)
	}
}

// advanceObstacles scrolls the road and reports whether the player was hit.
func (s *GameScene) advanceObstacles(dt time.Duration) bool {
	hit := false
	live := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.Y += s.scrollSpd * dt.Seconds()
		if o.Lane == s.playerLane && o.Y >= playerY-0.03 && o.Y <= playerY+0.03 {
			hit = true
			continue
		}
		if o.Y <= 1.05 {
			live = append(live, o)
		}
	}
	s.obstacles = live
	return hit
}

// onCollision applies the configured policy.
func (s *GameScene) onCollision() {
	switch s.collide {
	case CollideEnd:
		s.finish(false)

	case CollideLoseLife:
		if s.Env.Registry.Add(state.KeyLivesRemaining, -1) <= 0 {
			s.finish(false)
			return
		}
		s.obstacles = nil // brief respite, road clears

	default: // restart
		if s.Env.Registry.Add(state.KeyLivesRemaining, -1) <= 0 {
			s.finish(false)
			return
		}
		s.Env.Registry.Add(state.KeyRestartsUsed, 1)
		s.Env.Registry.Set(state.KeyTotalScore, int(s.score))
		s.Env.Control.Start(scene.Game, scene.Payload{payloadRestart: 1})
	}
}

func (s *GameScene) interrupt() bool {
	return s.Env.Control.InterruptForCapture(scene.Payload{
		scene.PayloadResume:  1,
		scene.PayloadScore:   int(s.score),
		scene.PayloadElapsed: int(s.elapsed.Milliseconds()),
	})
}

func (s *GameScene) HandleInput(a core.Action) {
	if s.finished {
		return
	}
	switch a {
	case core.ActionLeft:
		s.playerLane = core.Clamp(s.playerLane-1, 0, s.lanes-1)
	case core.ActionRight:
		s.playerLane = core.Clamp(s.playerLane+1, 0, s.lanes-1)
	}
}

func (s *GameScene) finish(won bool) {
	if s.finished {
		return
	}
	s.finished = true
	s.Env.Registry.SetFlag(state.KeyGameCompleted, won)
	s.Env.Registry.Set(state.KeyTotalScore, int(s.score))
	s.Env.RecordScore(int(s.score))
	s.Env.FinishGame(scene.Payload{scene.PayloadScore: int(s.score)})
}

// road geometry, resolved from layout each frame
func (s *GameScene) roadRect(c *core.Canvas) core.Rect {
	store := s.Env.Store
	fx := store.Frac(0.2, config.SectionLayout, "road", "x")
	fw := store.Frac(0.6, config.SectionLayout, "road", "width")
	return core.NewRect(int(fx*float64(c.Width())), 0, core.Max(int(fw*float64(c.Width())), s.lanes*3), c.Height())
}

func (s *GameScene) laneCenter(road core.Rect, lane int) int {
	laneW := road.W / s.lanes
	return road.X + lane*laneW + laneW/2
}

func (s *GameScene) Render(c *core.Canvas) {
	scenes.DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)

	road := s.roadRect(c)
	edge := core.RGB(0x88, 0x88, 0x88)
	c.DrawVLine(road.X, 0, road.H, '║', edge)
	c.DrawVLine(road.Right(), 0, road.H, '║', edge)
	for lane := 1; lane < s.lanes; lane++ {
		x := road.X + lane*(road.W/s.lanes)
		for y := 0; y < road.H; y += 2 {
			c.SetColored(x, y, '┆', core.RGB(0x55, 0x55, 0x55))
		}
	}

	for _, o := range s.obstacles {
		y := int(o.Y * float64(c.Height()))
		c.SetColored(s.laneCenter(road, o.Lane), y, '▄', core.RGB(0xff, 0x88, 0x33))
	}

	py := int(playerY * float64(c.Height()))
	c.SetColored(s.laneCenter(road, s.playerLane), py, '▲', core.RGB(0x66, 0xff, 0x66))

	s.drawHUD(c)
}

func (s *GameScene) drawHUD(c *core.Canvas) {
	spec := config.Button(s.Env.Store, config.SectionScoreBox)
	x, y := spec.Pos.Resolve(c.Width(), c.Height())
	text := fmt.Sprintf("%s %d/%d", spec.Text, int(s.score), s.target)
	c.DrawText(x-len(text)/2, y, text, spec.TextColor)

	hearts := ""
	for range s.Env.Registry.Get(state.KeyLivesRemaining) {
		hearts += "♥"
	}
	c.DrawText(1, 0, hearts, core.RGB(0xff, 0x55, 0x88))
}

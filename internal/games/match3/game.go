package match3

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

// Phase is where the gameplay cycle currently is. Idle accepts input; the
// other phases are animation beats between engine calls.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwapping
	PhaseMatchCheck
	PhaseResolving
	PhaseComplete
)

// Animation beat lengths.
const (
	swapBeat      = 150 * time.Millisecond
	resolveBeat   = 180 * time.Millisecond
	autoSolveBeat = 800 * time.Millisecond
)

var pieceGlyphs = []rune{'●', '◆', '■', '▲', '★', '✦'}

var pieceColors = []core.Color{
	core.RGB(0xff, 0x55, 0x55),
	core.RGB(0x55, 0x99, 0xff),
	core.RGB(0x55, 0xdd, 0x66),
	core.RGB(0xff, 0xcc, 0x44),
	core.RGB(0xdd, 0x66, 0xff),
	core.RGB(0x66, 0xee, 0xee),
}

// GameScene drives the grid engine from cursor input and timers. Matches
// accumulate toward the configured target; a stalled player is helped along
// by the auto-solver after a configured delay.
type GameScene struct {
	scenes.Base

	engine  *Engine
	phase   Phase
	cursor  Coord
	picked  *Coord
	swapA   Coord
	swapB   Coord
	reverts bool

	matches  int
	target   int
	duration time.Duration
	elapsed  time.Duration
	finished bool

	trigger *fpd.MidGameTrigger
	reapply patch.Table
}

// NewGame creates the match-3 game scene.
func NewGame(env *scenes.Env) *GameScene {
	s := &GameScene{Base: scenes.NewBase(env)}
	s.reapply = patch.Table{
		// Board geometry and HUD positions are read live at render; no
		// cached elements to rebuild here.
		patch.KindUpdateTexts:  func(map[string]any) {},
		patch.KindUpdateLayout: func(map[string]any) {},
	}
	return s
}

func (s *GameScene) ID() scene.ID { return scene.Game }

func (s *GameScene) Enter(p scene.Payload) {
	s.Base.Begin()
	env := s.Env
	store := env.Store

	rows := store.Int(6, config.SectionGameplay, "rows")
	cols := store.Int(6, config.SectionGameplay, "cols")
	types := store.Int(5, config.SectionGameplay, "itemTypes")
	retries := store.Int(DefaultRegenRetries, config.SectionGameplay, "regenRetries")
	s.target = store.Int(10, config.SectionGameplay, "matchTarget")
	s.duration = time.Duration(store.Num(45, config.SectionGameplay, "duration") * float64(time.Second))

	s.engine = NewEngine(rows, cols, types, retries, env.Rand)
	s.engine.Fill()
	s.phase = PhaseIdle
	s.cursor = C(cols/2, rows/2)
	s.picked = nil
	s.finished = false
	s.trigger = fpd.NewMidGameTrigger(store, s.duration, s.target)

	if p.Int(scene.PayloadResume, 0) != 0 {
		// Returning from a mid-game capture: re-inject the snapshot.
		s.matches = p.Int(scene.PayloadMatches, 0)
		s.elapsed = time.Duration(p.Int(scene.PayloadElapsed, 0)) * time.Millisecond
	} else {
		s.matches = 0
		s.elapsed = 0
		env.Registry.Set(state.KeyMatchCount, 0)
		env.Tracker.Fire("gameStart")
	}

	if after := store.Num(0, config.SectionGameplay, "autoSolveAfter"); after > 0 {
		s.Timers().After(time.Duration(after*float64(time.Second)), s.startAutoSolve)
	}
}

func (s *GameScene) Exit() {
	s.Base.End()
}

func (s *GameScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

func (s *GameScene) Tick(dt time.Duration) {
	s.Base.Tick(dt)
	if s.finished {
		return
	}

	s.elapsed += dt
	s.Env.Registry.Set(state.KeyElapsedMillis, int(s.elapsed.Milliseconds()))

	if s.trigger.Check(s.elapsed, s.matches) {
		if s.interrupt() {
			return
		}
	}
	if s.duration > 0 && s.elapsed >= s.duration && s.phase == PhaseIdle {
		s.finish()
	}
}

// interrupt suspends play for the midGame capture, snapshotting what the
// resumed scene needs.
func (s *GameScene) interrupt() bool {
	return s.Env.Control.InterruptForCapture(scene.Payload{
		scene.PayloadResume:  1,
		scene.PayloadMatches: s.matches,
		scene.PayloadElapsed: int(s.elapsed.Milliseconds()),
	})
}

func (s *GameScene) HandleInput(a core.Action) {
	if s.finished || s.phase != PhaseIdle {
		return
	}
	b := s.engine.Board()
	switch a {
	case core.ActionLeft:
		s.cursor.X = core.Clamp(s.cursor.X-1, 0, b.Cols-1)
	case core.ActionRight:
		s.cursor.X = core.Clamp(s.cursor.X+1, 0, b.Cols-1)
	case core.ActionUp:
		s.cursor.Y = core.Clamp(s.cursor.Y-1, 0, b.Rows-1)
	case core.ActionDown:
		s.cursor.Y = core.Clamp(s.cursor.Y+1, 0, b.Rows-1)
	case core.ActionSelect:
		s.pick()
	case core.ActionBack:
		s.picked = nil
	}
}

// pick selects the cursor cell, or performs the swap when a neighboring
// cell was already selected. Picking a non-neighbor moves the selection.
func (s *GameScene) pick() {
	if s.picked == nil {
		c := s.cursor
		s.picked = &c
		return
	}
	if *s.picked == s.cursor {
		s.picked = nil
		return
	}
	if s.picked.Adjacent(s.cursor) {
		from := *s.picked
		s.picked = nil
		s.beginSwap(from, s.cursor)
		return
	}
	c := s.cursor
	s.picked = &c
}

// beginSwap starts the Swapping → MatchCheck beat for one swap attempt.
func (s *GameScene) beginSwap(a, b Coord) {
	if s.phase != PhaseIdle {
		return
	}
	s.phase = PhaseSwapping
	s.swapA, s.swapB = a, b
	s.reverts = !s.engine.SwapMatches(a, b)
	s.engine.Swap(a, b)
	s.Timers().After(swapBeat, s.checkMatches)
}

// checkMatches is the MatchCheck stop: either the swap produced nothing and
// reverts, or the cascade loop starts.
func (s *GameScene) checkMatches() {
	s.phase = PhaseMatchCheck
	if s.reverts {
		s.engine.Swap(s.swapA, s.swapB)
		s.phase = PhaseIdle
		return
	}
	s.resolveStep()
}

// resolveStep clears one cascade iteration per beat until the board is
// stable, then settles back to Idle or Complete.
func (s *GameScene) resolveStep() {
	cleared := s.engine.ResolveStep()
	if cleared == 0 {
		s.engine.EnsureSolvable()
		if s.matches >= s.target {
			s.phase = PhaseComplete
			s.finish()
		} else {
			s.phase = PhaseIdle
		}
		return
	}

	s.phase = PhaseResolving
	s.matches++
	s.Env.Registry.Set(state.KeyMatchCount, s.matches)
	s.Timers().After(resolveBeat, s.resolveStep)
}

// startAutoSolve plays the game out by itself using the engine's own move
// finding, one move per beat.
func (s *GameScene) startAutoSolve() {
	s.Env.Logger.Info("auto-solve engaged")
	s.Timers().Every(autoSolveBeat, func() {
		if s.finished || s.phase != PhaseIdle {
			return
		}
		if a, b, ok := s.engine.FindMove(); ok {
			s.beginSwap(a, b)
		}
	})
}

func (s *GameScene) finish() {
	if s.finished {
		return
	}
	s.finished = true
	won := s.matches >= s.target
	s.Env.Registry.SetFlag(state.KeyGameCompleted, won)
	s.Env.Registry.Set(state.KeyTotalScore, s.matches)
	s.Env.RecordScore(s.matches)
	s.Env.FinishGame(scene.Payload{
		scene.PayloadScore:   s.matches,
		scene.PayloadMatches: s.matches,
	})
}

func (s *GameScene) Render(c *core.Canvas) {
	scenes.DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)

	b := s.engine.Board()
	cellW := 2
	boardW := b.Cols * cellW
	boardH := b.Rows
	ox, oy := s.boardOrigin(c, boardW, boardH)

	for y := range b.Rows {
		for x := range b.Cols {
			it := b.At(C(x, y))
			px, py := ox+x*cellW, oy+y
			if it == Empty {
				c.Set(px, py, '·')
				continue
			}
			glyph := pieceGlyphs[int(it)%len(pieceGlyphs)]
			c.SetColored(px, py, glyph, pieceColors[int(it)%len(pieceColors)])
		}
	}

	// Cursor and selection markers
	c.SetColored(ox+s.cursor.X*cellW-1, oy+s.cursor.Y, '[', core.RGB(0xff, 0xff, 0xff))
	c.SetColored(ox+s.cursor.X*cellW+1, oy+s.cursor.Y, ']', core.RGB(0xff, 0xff, 0xff))
	if s.picked != nil {
		c.SetColored(ox+s.picked.X*cellW-1, oy+s.picked.Y, '(', core.RGB(0xff, 0xff, 0x66))
		c.SetColored(ox+s.picked.X*cellW+1, oy+s.picked.Y, ')', core.RGB(0xff, 0xff, 0x66))
	}

	s.drawHUD(c)
}

func (s *GameScene) boardOrigin(c *core.Canvas, boardW, boardH int) (int, int) {
	store := s.Env.Store
	fx := store.Frac(0.5, config.SectionLayout, "board", "x")
	fy := store.Frac(0.5, config.SectionLayout, "board", "y")
	ox := int(fx*float64(c.Width())) - boardW/2
	oy := int(fy*float64(c.Height())) - boardH/2
	return core.Max(ox, 0), core.Max(oy, 1)
}

func (s *GameScene) drawHUD(c *core.Canvas) {
	spec := config.Button(s.Env.Store, config.SectionScoreBox)
	x, y := spec.Pos.Resolve(c.Width(), c.Height())
	text := fmt.Sprintf("%s %d/%d", spec.Text, s.matches, s.target)
	c.DrawText(x-len(text)/2, y, text, spec.TextColor)

	if s.duration > 0 {
		left := s.duration - s.elapsed
		if left < 0 {
			left = 0
		}
		c.DrawText(1, 0, fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60), core.RGB(0xaa, 0xaa, 0xaa))
	}
}

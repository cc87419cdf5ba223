package slider

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

// autoSolveBeat paces the hint playback.
const autoSolveBeat = 300 * time.Millisecond

// GameScene is the sliding puzzle gameplay scene. Scoring counts moves; the
// win condition is restoring the picture. After the configured idle budget
// the recorded move history unwinds itself as a hint path.
type GameScene struct {
	scenes.Base

	puzzle   *Puzzle
	moves    int
	duration time.Duration
	elapsed  time.Duration
	finished bool
	solving  bool

	trigger *fpd.MidGameTrigger
	reapply patch.Table
}

// NewGame creates the slider game scene.
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

	rows := core.Max(store.Int(3, config.SectionGameplay, "rows"), 2)
	cols := core.Max(store.Int(3, config.SectionGameplay, "cols"), 2)
	shuffleMoves := store.Int(40, config.SectionGameplay, "shuffleMoves")
	s.duration = time.Duration(store.Num(60, config.SectionGameplay, "duration") * float64(time.Second))

	s.puzzle = NewPuzzle(rows, cols)
	s.puzzle.Shuffle(shuffleMoves, s.Env.Rand)
	s.finished = false
	s.solving = false
	// The slider has no score target; only the time threshold can trigger
	// the mid-game capture.
	s.trigger = fpd.NewMidGameTrigger(store, s.duration, 0)

	if p.Int(scene.PayloadResume, 0) != 0 {
		s.moves = p.Int(scene.PayloadScore, 0)
		s.elapsed = time.Duration(p.Int(scene.PayloadElapsed, 0)) * time.Millisecond
	} else {
		s.moves = 0
		s.elapsed = 0
		s.Env.Registry.Set(state.KeyTotalScore, 0)
		s.Env.Tracker.Fire("gameStart")
	}

	if after := store.Num(0, config.SectionGameplay, "autoSolveAfter"); after > 0 {
		s.Timers().After(time.Duration(after*float64(time.Second)), s.startAutoSolve)
	}
}

func (s *GameScene) Exit() {
	s.End()
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

	if s.trigger.Check(s.elapsed, 0) && s.interrupt() {
		return
	}
	if s.duration > 0 && s.elapsed >= s.duration && !s.solving {
		s.finish(s.puzzle.Solved())
	}
}

func (s *GameScene) interrupt() bool {
	return s.Env.Control.InterruptForCapture(scene.Payload{
		scene.PayloadResume:  1,
		scene.PayloadScore:   s.moves,
		scene.PayloadElapsed: int(s.elapsed.Milliseconds()),
	})
}

// startAutoSolve unwinds the recorded history, one step per beat, until the
// picture is back together.
func (s *GameScene) startAutoSolve() {
	if s.finished || s.puzzle.Solved() {
		return
	}
	s.solving = true
	s.Env.Logger.Info("auto-solve engaged", "trail", s.puzzle.TrailLen())
	s.Timers().Every(autoSolveBeat, func() {
		if s.finished {
			return
		}
		if !s.puzzle.Unwind() || s.puzzle.Solved() {
			s.finish(true)
		}
	})
}

func (s *GameScene) HandleInput(a core.Action) {
	if s.finished || s.solving {
		return
	}
	var d Direction
	switch a {
	case core.ActionUp:
		d = SlideUp
	case core.ActionDown:
		d = SlideDown
	case core.ActionLeft:
		d = SlideLeft
	case core.ActionRight:
		d = SlideRight
	default:
		return
	}
	if !s.puzzle.Move(d) {
		return
	}
	s.moves++
	s.Env.Registry.Set(state.KeyTotalScore, s.moves)
	if s.puzzle.Solved() {
		s.finish(true)
	}
}

func (s *GameScene) finish(won bool) {
	if s.finished {
		return
	}
	s.finished = true
	s.Env.Registry.SetFlag(state.KeyGameCompleted, won)
	s.Env.Registry.Set(state.KeyTotalScore, s.moves)
	s.Env.RecordScore(s.moves)
	s.Env.FinishGame(scene.Payload{scene.PayloadScore: s.moves})
}

func (s *GameScene) Render(c *core.Canvas) {
	scenes.DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)

	cellW, cellH := 4, 2
	boardW := s.puzzle.Cols * cellW
	boardH := s.puzzle.Rows * cellH
	store := s.Env.Store
	fx := store.Frac(0.5, config.SectionLayout, "board", "x")
	fy := store.Frac(0.5, config.SectionLayout, "board", "y")
	ox := core.Max(int(fx*float64(c.Width()))-boardW/2, 0)
	oy := core.Max(int(fy*float64(c.Height()))-boardH/2, 1)

	for y := range s.puzzle.Rows {
		for x := range s.puzzle.Cols {
			tile := s.puzzle.TileAt(x, y)
			px, py := ox+x*cellW, oy+y*cellH
			if tile == 0 {
				continue
			}
			color := core.RGB(0xdd, 0xcc, 0x88)
			if tile == y*s.puzzle.Cols+x {
				color = core.RGB(0x88, 0xee, 0x88) // tile is home
			}
			c.DrawBox(core.NewRect(px, py, cellW, cellH+1), color)
			label := fmt.Sprintf("%d", tile)
			c.DrawText(px+(cellW-len(label))/2, py+1, label, color)
		}
	}

	s.drawHUD(c)
}

func (s *GameScene) drawHUD(c *core.Canvas) {
	spec := config.Button(s.Env.Store, config.SectionScoreBox)
	x, y := spec.Pos.Resolve(c.Width(), c.Height())
	text := fmt.Sprintf("%s %d", spec.Text, s.moves)
	c.DrawText(x-len(text)/2, y, text, spec.TextColor)

	if s.solving {
		c.DrawTextCentered(0, "auto-solving", core.RGB(0xff, 0xff, 0x66))
	}
}

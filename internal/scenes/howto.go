package scenes

import (
	"time"

	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/scene"
)

// howToAutoAdvance moves on to the game when the player doesn't.
const howToAutoAdvance = 5 * time.Second

// HowToScene shows the instruction copy between Splash and Game. Any select
// press, or a timeout, advances.
type HowToScene struct {
	Base

	copy    Label
	reapply patch.Table
}

// NewHowTo creates the how-to scene.
func NewHowTo(env *Env) *HowToScene {
	s := &HowToScene{Base: NewBase(env)}
	s.reapply = patch.Table{
		patch.KindUpdateTexts:  func(map[string]any) { s.refresh() },
		patch.KindUpdateLayout: func(map[string]any) { s.refresh() },
	}
	return s
}

func (s *HowToScene) ID() scene.ID { return scene.HowTo }

func (s *HowToScene) Enter(scene.Payload) {
	s.Begin()
	s.refresh()
	s.Timers().After(howToAutoAdvance, s.advance)
}

func (s *HowToScene) Exit() {
	s.End()
}

func (s *HowToScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

func (s *HowToScene) refresh() {
	store := s.Env.Store
	s.copy = Label{
		Text:  store.Str("", config.SectionText, "howToPlay"),
		Color: core.RGB(0xee, 0xee, 0xee),
		Pos: core.FracPoint{
			X: store.Frac(0.5, config.SectionLayout, "subtitle", "x"),
			Y: store.Frac(0.4, config.SectionLayout, "subtitle", "y"),
		},
	}
}

func (s *HowToScene) advance() {
	s.Env.Control.TransitionTo(scene.Game, scene.Payload{})
}

func (s *HowToScene) HandleInput(a core.Action) {
	if a == core.ActionSelect {
		s.advance()
	}
}

func (s *HowToScene) Render(c *core.Canvas) {
	DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)
	c.DrawTextCentered(2, "HOW TO PLAY", core.RGB(0xff, 0xff, 0xff))
	s.copy.Draw(c)
	c.DrawTextCentered(c.Height()-2, "press enter to start", core.RGB(0x88, 0x88, 0x88))
}

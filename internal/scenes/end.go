package scenes

import (
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/state"
)

// EndScene is the outro: final score copy plus the call-to-action button.
// Selecting fires the ctaClick tracking event (repeatable, a user may mash
// it); restart jumps back into the game with state reset.
type EndScene struct {
	Base

	title    Label
	subtitle Label
	cta      *ButtonElement
	reapply  patch.Table
}

// NewEnd creates the end scene.
func NewEnd(env *Env) *EndScene {
	s := &EndScene{Base: NewBase(env)}
	s.reapply = patch.Table{
		patch.KindUpdateTexts:   func(map[string]any) { s.refreshLabels() },
		patch.KindUpdateLayout:  func(map[string]any) { s.refreshLabels() },
		patch.KindUpdateFonts:   func(map[string]any) { s.refreshButton() },
		patch.KindUpdateButtons: func(map[string]any) { s.refreshButton() },
	}
	return s
}

func (s *EndScene) ID() scene.ID { return scene.End }

func (s *EndScene) Enter(scene.Payload) {
	s.Begin()
	s.refreshLabels()
	s.cta = nil
	s.refreshButton()
}

func (s *EndScene) Exit() {
	s.End()
}

func (s *EndScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

func (s *EndScene) refreshLabels() {
	store := s.Env.Store
	reg := s.Env.Registry
	target := store.Int(store.Int(0, config.SectionGameplay, "targetScore"), config.SectionGameplay, "matchTarget")
	macros := ScoreMacros(reg.Get(state.KeyTotalScore), reg.Get(state.KeyMatchCount), target)

	s.title = Label{
		Text:  ExpandMacros(store.Str("", config.SectionText, "endTitle"), macros),
		Color: core.RGB(0xff, 0xff, 0xff),
		Pos: core.FracPoint{
			X: store.Frac(0.5, config.SectionLayout, "title", "x"),
			Y: store.Frac(0.2, config.SectionLayout, "title", "y"),
		},
	}
	s.subtitle = Label{
		Text:  ExpandMacros(store.Str("", config.SectionText, "endSubtitle"), macros),
		Color: core.RGB(0xcc, 0xcc, 0xcc),
		Pos: core.FracPoint{
			X: store.Frac(0.5, config.SectionLayout, "subtitle", "x"),
			Y: store.Frac(0.35, config.SectionLayout, "subtitle", "y"),
		},
	}
}

func (s *EndScene) refreshButton() {
	spec := config.Button(s.Env.Store, config.SectionCTAButton)
	if s.cta == nil {
		s.cta = NewButton(spec)
		return
	}
	s.cta.Update(spec)
}

func (s *EndScene) HandleInput(a core.Action) {
	switch a {
	case core.ActionSelect:
		// Every press re-fires: the CTA is the one event that may repeat.
		s.Env.Tracker.ForceFire("ctaClick")
	case core.ActionRestart:
		s.Env.Control.JumpTo(string(scene.Game))
	}
}

func (s *EndScene) Render(c *core.Canvas) {
	DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)
	s.title.Draw(c)
	s.subtitle.Draw(c)
	if s.cta != nil {
		s.cta.Draw(c)
	}
	c.DrawTextCentered(c.Height()-1, "r to play again", core.RGB(0x66, 0x66, 0x66))
}

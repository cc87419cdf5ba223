package scenes

import (
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/scene"
)

// SplashScene is the title screen: title, subtitle and the action button.
// Pressing the button moves on to HowTo when configured, otherwise straight
// into the game.
type SplashScene struct {
	Base

	title    Label
	subtitle Label
	button   *ButtonElement
	reapply  patch.Table
}

// NewSplash creates the splash scene.
func NewSplash(env *Env) *SplashScene {
	s := &SplashScene{Base: NewBase(env)}
	s.reapply = patch.Table{
		patch.KindUpdateTexts:      func(map[string]any) { s.refreshLabels() },
		patch.KindUpdateLayout:     func(map[string]any) { s.refreshLabels() },
		patch.KindUpdateFonts:      func(map[string]any) { s.refreshButton() },
		patch.KindUpdateButtons:    func(map[string]any) { s.refreshButton() },
		patch.KindUpdateBackground: func(map[string]any) {}, // read live at render
	}
	return s
}

func (s *SplashScene) ID() scene.ID { return scene.Splash }

func (s *SplashScene) Enter(scene.Payload) {
	s.Begin()
	s.refreshLabels()
	s.button = nil
	s.refreshButton()
}

func (s *SplashScene) Exit() {
	s.End()
}

// Reapply services live-configuration patches while the scene is up.
func (s *SplashScene) Reapply(kind patch.Kind, payload map[string]any) {
	s.reapply.Reapply(kind, payload)
}

func (s *SplashScene) refreshLabels() {
	store := s.Env.Store
	target := store.Int(store.Int(0, config.SectionGameplay, "targetScore"), config.SectionGameplay, "matchTarget")
	macros := ScoreMacros(0, 0, target)

	s.title = Label{
		Text:  ExpandMacros(store.Str("", config.SectionText, "splashTitle"), macros),
		Color: core.RGB(0xff, 0xff, 0xff),
		Pos: core.FracPoint{
			X: store.Frac(0.5, config.SectionLayout, "title", "x"),
			Y: store.Frac(0.2, config.SectionLayout, "title", "y"),
		},
	}
	s.subtitle = Label{
		Text:  ExpandMacros(store.Str("", config.SectionText, "splashSubtitle"), macros),
		Color: core.RGB(0xcc, 0xcc, 0xcc),
		Pos: core.FracPoint{
			X: store.Frac(0.5, config.SectionLayout, "subtitle", "x"),
			Y: store.Frac(0.35, config.SectionLayout, "subtitle", "y"),
		},
	}
}

func (s *SplashScene) refreshButton() {
	spec := config.Button(s.Env.Store, config.SectionActionButton)
	if s.button == nil {
		s.button = NewButton(spec)
		return
	}
	s.button.Update(spec)
}

func (s *SplashScene) HandleInput(a core.Action) {
	if a != core.ActionSelect {
		return
	}
	if s.Env.Store.Bool(false, config.SectionGameplay, "showHowTo") {
		s.Env.Control.TransitionTo(scene.HowTo, scene.Payload{})
		return
	}
	s.Env.Control.TransitionTo(scene.Game, scene.Payload{})
}

func (s *SplashScene) Render(c *core.Canvas) {
	DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)
	s.title.Draw(c)
	s.subtitle.Draw(c)
	if s.button != nil {
		s.button.Draw(c)
	}
}

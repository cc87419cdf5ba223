package scenes

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/patch"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/state"
	"github.com/adforge/playable/internal/track"
)

type stubScene struct {
	id      scene.ID
	entered int
	last    scene.Payload
}

func (s *stubScene) ID() scene.ID            { return s.id }
func (s *stubScene) Enter(p scene.Payload)   { s.entered++; s.last = p }
func (s *stubScene) Exit()                   {}
func (s *stubScene) Tick(time.Duration)      {}
func (s *stubScene) HandleInput(core.Action) {}
func (s *stubScene) Render(*core.Canvas)     {}

func newTestEnv(t *testing.T, doc map[string]any) *Env {
	t.Helper()
	store := config.NewStore(doc)
	registry := state.NewRegistry(nil)
	logger := log.New(io.Discard)
	return NewEnv(Env{
		Store:    store,
		Catalog:  assets.NewCatalog(store),
		Registry: registry,
		Tracker:  track.New(store, logger),
		Control:  scene.NewController(store, registry, logger),
		Logger:   logger,
		Runtime:  core.RuntimeConfig{Seed: 1},
	})
}

func TestExpandMacros(t *testing.T) {
	vals := ScoreMacros(42, 7, 100)
	cases := []struct {
		in, want string
	}{
		{"Score: {{score}}", "Score: 42"},
		{"{{matches}} of {{target}}", "7 of 100"},
		{"no macros here", "no macros here"},
		{"unknown {{thing}} stays", "unknown {{thing}} stays"},
	}
	for _, tc := range cases {
		if got := ExpandMacros(tc.in, vals); got != tc.want {
			t.Errorf("ExpandMacros(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestButtonUpdateInPlace(t *testing.T) {
	spec := config.ButtonSpec{Text: "PLAY", Visible: true}
	b := NewButton(spec)
	w := b.Bounds(100, 40).W

	spec.TextColor = core.RGB(0xff, 0, 0)
	spec.Pos = core.FracPoint{X: 0.3, Y: 0.7}
	b.Update(spec)

	if b.Bounds(100, 40).W != w {
		t.Error("color and position change resized the box")
	}
	if b.Spec().TextColor != spec.TextColor {
		t.Error("color update not applied")
	}
}

func TestButtonUpdateRecreatesOnTextChange(t *testing.T) {
	b := NewButton(config.ButtonSpec{Text: "GO", Visible: true})
	narrow := b.Bounds(100, 40).W

	b.Update(config.ButtonSpec{Text: "PLAY AGAIN", Visible: true})
	wide := b.Bounds(100, 40).W

	if wide <= narrow {
		t.Errorf("box width %d after text change, expected wider than %d", wide, narrow)
	}
}

func TestEndReappliesFontPatch(t *testing.T) {
	env := newTestEnv(t, map[string]any{
		config.SectionCTAButton: map[string]any{"text": "GO"},
	})
	s := NewEnd(env)
	s.Enter(scene.Payload{})

	env.Store.MergePatch(config.SectionCTAButton, map[string]any{"text": "PLAY AGAIN"})
	s.Reapply(patch.KindUpdateFonts, nil)

	if got := s.cta.Spec().Text; got != "PLAY AGAIN" {
		t.Errorf("button text = %q after font patch, expected the refreshed spec", got)
	}
}

func TestPreloadLoadsAllKeysThenAdvances(t *testing.T) {
	env := newTestEnv(t, map[string]any{
		"assets": map[string]any{
			"hero": "//cdn.example.com/hero.png",
			"item": "//cdn.example.com/item.png",
		},
	})
	p := NewPreload(env)
	splash := &stubScene{id: scene.Splash}
	env.Control.Register(p)
	env.Control.Register(splash)

	p.Enter(scene.Payload{})
	if p.Progress() != 0 {
		t.Errorf("initial progress = %v, expected 0", p.Progress())
	}

	for range 20 {
		p.Tick(keyLoadInterval)
	}

	if splash.entered != 1 {
		t.Fatalf("Splash entered %d times, expected 1", splash.entered)
	}
	for _, key := range []string{"hero", "item"} {
		if env.Catalog.State(key) != assets.StateLoaded {
			t.Errorf("asset %q state = %v, expected loaded", key, env.Catalog.State(key))
		}
	}
	if p.Progress() != 1 {
		t.Errorf("final progress = %v, expected 1", p.Progress())
	}
}

func TestPreloadPicksUpMidPassOverride(t *testing.T) {
	env := newTestEnv(t, map[string]any{
		"assets": map[string]any{"hero": "//cdn.example.com/hero.png"},
	})
	p := NewPreload(env)
	env.Control.Register(p)
	env.Control.Register(&stubScene{id: scene.Splash})

	p.Enter(scene.Payload{})
	p.Tick(keyLoadInterval) // loads hero

	// An override installed mid-pass re-enters the pending set.
	env.Catalog.Override("extra", "//cdn.example.com/extra.png")
	env.Catalog.Invalidate("extra")

	for range 20 {
		p.Tick(keyLoadInterval)
	}
	if env.Catalog.State("extra") != assets.StateLoaded {
		t.Errorf("override asset state = %v, expected loaded", env.Catalog.State("extra"))
	}
}

func TestFinishGameFiresCompleteAndTransitions(t *testing.T) {
	env := newTestEnv(t, nil)
	end := &stubScene{id: scene.End}
	env.Control.Register(end)

	env.FinishGame(scene.Payload{scene.PayloadScore: 12})

	if end.entered != 1 {
		t.Fatalf("End entered %d times, expected 1", end.entered)
	}
	if got := end.last.Int(scene.PayloadScore, -1); got != 12 {
		t.Errorf("End payload score = %d, expected 12", got)
	}
}

func TestDataCaptureSkipResumesWithoutPersist(t *testing.T) {
	saved := 0
	env := newTestEnv(t, map[string]any{
		"fpd": map[string]any{
			"enabled": true,
			"midGame": map[string]any{"age": true},
		},
	})
	env.Saver = saverFunc(func(template, placement string, fields map[string]string) error {
		saved++
		return nil
	})

	dc := NewDataCapture(env)
	game := &stubScene{id: scene.Game}
	env.Control.Register(dc)
	env.Control.Register(game)

	dc.Enter(scene.Payload{
		scene.PayloadNextScene: string(scene.Game),
		scene.PayloadPlacement: string(config.PlacementMidGame),
		scene.PayloadGameData:  scene.Payload{scene.PayloadResume: 1, scene.PayloadScore: 33},
	})

	dc.HandleInput(core.ActionBack)

	if saved != 0 {
		t.Errorf("skip persisted %d captures, expected 0", saved)
	}
	if game.entered != 1 {
		t.Fatalf("Game entered %d times, expected 1", game.entered)
	}
	if got := game.last.Int(scene.PayloadScore, -1); got != 33 {
		t.Errorf("resume payload score = %d, expected 33", got)
	}
}

// saverFunc adapts a function to the capture persistence interface.
type saverFunc func(template, placement string, fields map[string]string) error

func (f saverFunc) SaveCapture(template, placement string, fields map[string]string) error {
	return f(template, placement, fields)
}

package catcher

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/scene"
	"github.com/adforge/playable/internal/scenes"
	"github.com/adforge/playable/internal/state"
	"github.com/adforge/playable/internal/track"
)

// stubScene records activations so transitions out of the game can be
// observed.
type stubScene struct {
	id      scene.ID
	entered int
	last    scene.Payload
}

func (s *stubScene) ID() scene.ID           { return s.id }
func (s *stubScene) Enter(p scene.Payload)  { s.entered++; s.last = p }
func (s *stubScene) Exit()                  {}
func (s *stubScene) Tick(time.Duration)     {}
func (s *stubScene) HandleInput(core.Action) {}
func (s *stubScene) Render(*core.Canvas)    {}

func newTestEnv(t *testing.T, doc map[string]any) *scenes.Env {
	t.Helper()
	store := config.NewStore(doc)
	registry := state.NewRegistry(nil)
	logger := log.New(io.Discard)
	env := scenes.NewEnv(scenes.Env{
		Store:    store,
		Registry: registry,
		Tracker:  track.New(store, logger),
		Control:  scene.NewController(store, registry, logger),
		Logger:   logger,
		Runtime:  core.RuntimeConfig{Seed: 1, Template: "catcher"},
	})
	return env
}

func newTestGame(t *testing.T, gameplay map[string]any, fpdDoc map[string]any) (*GameScene, *stubScene, *stubScene) {
	t.Helper()
	doc := map[string]any{"gameplay": gameplay}
	if fpdDoc != nil {
		doc["fpd"] = fpdDoc
	}
	env := newTestEnv(t, doc)

	g := NewGame(env)
	end := &stubScene{id: scene.End}
	capture := &stubScene{id: scene.DataCapture}
	env.Control.Register(g)
	env.Control.Register(end)
	env.Control.Register(capture)
	return g, end, capture
}

func TestBasketScaleWidensCatch(t *testing.T) {
	env := newTestEnv(t, map[string]any{
		"gameplay": map[string]any{
			"targetScore":   100,
			"goodItemScore": 10,
			"badItemChance": 0.0,
		},
		"assetScales": map[string]any{"basket": 2.0},
	})
	g := NewGame(env)
	env.Control.Register(g)
	env.Control.Register(&stubScene{id: scene.End})
	env.Control.Register(&stubScene{id: scene.DataCapture})
	g.Enter(scene.Payload{})

	// 0.10 off-center: outside the base half-width of 0.06, inside the
	// doubled half-width of 0.12.
	g.items = []*Item{{X: g.catcherX + 0.10, Y: 0.89, Good: true}}
	g.Tick(100 * time.Millisecond)

	if g.score != 10 {
		t.Errorf("score = %d, scaled basket missed the catch", g.score)
	}
}

func TestGoodCatchScores(t *testing.T) {
	g, _, _ := newTestGame(t, map[string]any{
		"targetScore":   100,
		"goodItemScore": 10,
		"badItemChance": 0.0,
	}, nil)
	g.Enter(scene.Payload{})

	g.items = []*Item{{X: g.catcherX, Y: 0.89, Good: true}}
	g.Tick(100 * time.Millisecond)

	if g.score != 10 {
		t.Errorf("score = %d, expected 10", g.score)
	}
	if len(g.items) != 0 {
		t.Errorf("caught item still live, %d items", len(g.items))
	}
	if got := g.Env.Registry.Get(state.KeyTotalScore); got != 10 {
		t.Errorf("registry totalScore = %d, expected 10", got)
	}
}

func TestBadCatchCostsLifeAndScore(t *testing.T) {
	g, _, _ := newTestGame(t, map[string]any{
		"targetScore":    100,
		"goodItemScore":  10,
		"badItemPenalty": 5,
		"lives":          3,
	}, nil)
	g.Enter(scene.Payload{})
	g.score = 12

	g.items = []*Item{{X: g.catcherX, Y: 0.89, Good: false}}
	g.Tick(100 * time.Millisecond)

	if g.score != 7 {
		t.Errorf("score = %d, expected 7", g.score)
	}
	if g.lives != 2 {
		t.Errorf("lives = %d, expected 2", g.lives)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	g, _, _ := newTestGame(t, map[string]any{
		"targetScore":    100,
		"badItemPenalty": 5,
	}, nil)
	g.Enter(scene.Payload{})
	g.score = 2

	g.items = []*Item{{X: g.catcherX, Y: 0.89, Good: false}}
	g.Tick(100 * time.Millisecond)

	if g.score != 0 {
		t.Errorf("score = %d, expected 0", g.score)
	}
}

func TestMissedItemFallsThrough(t *testing.T) {
	g, _, _ := newTestGame(t, map[string]any{"targetScore": 100}, nil)
	g.Enter(scene.Payload{})
	g.lives = 3

	// Far from the basket: the item passes the catch line untouched and
	// despawns below the canvas.
	g.items = []*Item{{X: 0.05, Y: 0.89, Good: true}}
	g.catcherX = 0.9
	g.Tick(100 * time.Millisecond)

	if g.score != 0 {
		t.Errorf("score = %d, expected 0", g.score)
	}
	if len(g.items) != 1 {
		t.Fatalf("item despawned too early, %d items", len(g.items))
	}

	g.items[0].Y = 1.2
	g.Tick(100 * time.Millisecond)
	if len(g.items) != 0 {
		t.Errorf("item below the canvas still live")
	}
}

func TestWinAtTarget(t *testing.T) {
	g, end, _ := newTestGame(t, map[string]any{
		"targetScore":   20,
		"goodItemScore": 10,
	}, nil)
	g.Enter(scene.Payload{})
	g.score = 10

	g.items = []*Item{{X: g.catcherX, Y: 0.89, Good: true}}
	g.Tick(100 * time.Millisecond)

	if !g.finished {
		t.Fatal("game did not finish at target score")
	}
	if !g.Env.Registry.Flag(state.KeyGameCompleted) {
		t.Error("gameCompleted flag not set on win")
	}
	if end.entered != 1 {
		t.Fatalf("End entered %d times, expected 1", end.entered)
	}
	if got := end.last.Int(scene.PayloadScore, -1); got != 20 {
		t.Errorf("End payload score = %d, expected 20", got)
	}
}

func TestLossWhenLivesRunOut(t *testing.T) {
	g, end, _ := newTestGame(t, map[string]any{
		"targetScore": 100,
		"lives":       1,
	}, nil)
	g.Enter(scene.Payload{})

	g.items = []*Item{{X: g.catcherX, Y: 0.89, Good: false}}
	g.Tick(100 * time.Millisecond)

	if !g.finished {
		t.Fatal("game did not finish with no lives left")
	}
	if g.Env.Registry.Flag(state.KeyGameCompleted) {
		t.Error("gameCompleted flag set on loss")
	}
	if end.entered != 1 {
		t.Errorf("End entered %d times, expected 1", end.entered)
	}
}

func TestTimeoutFinishes(t *testing.T) {
	g, end, _ := newTestGame(t, map[string]any{
		"targetScore": 100,
		"duration":    1.0,
	}, nil)
	g.Enter(scene.Payload{})

	g.Tick(1100 * time.Millisecond)

	if !g.finished {
		t.Fatal("game did not finish at timeout")
	}
	if g.Env.Registry.Flag(state.KeyGameCompleted) {
		t.Error("timeout below target counted as a win")
	}
	if end.entered != 1 {
		t.Errorf("End entered %d times, expected 1", end.entered)
	}
}

func TestMidGameCaptureInterruptsAndResumes(t *testing.T) {
	fpdDoc := map[string]any{
		"enabled": true,
		"midGame": map[string]any{"age": true},
	}
	g, _, capture := newTestGame(t, map[string]any{
		"targetScore":   100,
		"goodItemScore": 10,
		"duration":      60.0,
	}, fpdDoc)
	g.Enter(scene.Payload{})

	// Half the target reached before half the time: progress threshold
	// fires the capture.
	g.score = 50
	g.elapsed = 5 * time.Second
	g.Tick(16 * time.Millisecond)

	if capture.entered != 1 {
		t.Fatalf("DataCapture entered %d times, expected 1", capture.entered)
	}
	if got := capture.last.Str(scene.PayloadPlacement, ""); got != string(config.PlacementMidGame) {
		t.Errorf("placement = %q, expected midGame", got)
	}

	gameData, ok := capture.last[scene.PayloadGameData].(scene.Payload)
	if !ok {
		t.Fatal("capture payload carries no game data")
	}
	if got := gameData.Int(scene.PayloadScore, -1); got != 50 {
		t.Errorf("snapshot score = %d, expected 50", got)
	}
	if gameData.Int(scene.PayloadResume, 0) != 1 {
		t.Error("snapshot not marked as a resume")
	}

	// The capture scene hands the snapshot back when it completes.
	g.Env.Control.Start(scene.Game, gameData)
	if g.score != 50 {
		t.Errorf("resumed score = %d, expected 50", g.score)
	}
	if g.elapsed < 5*time.Second {
		t.Errorf("resumed elapsed = %v, expected at least 5s", g.elapsed)
	}

	// Once per session: the same conditions must not re-trigger.
	g.Tick(16 * time.Millisecond)
	if capture.entered != 1 {
		t.Errorf("DataCapture re-entered, %d activations", capture.entered)
	}
}

func TestMidGameDisabledNeverInterrupts(t *testing.T) {
	g, _, capture := newTestGame(t, map[string]any{
		"targetScore": 100,
		"duration":    60.0,
	}, nil)
	g.Enter(scene.Payload{})
	g.score = 90
	g.elapsed = 50 * time.Second

	g.Tick(16 * time.Millisecond)

	if capture.entered != 0 {
		t.Errorf("DataCapture entered %d times with capture disabled", capture.entered)
	}
}

func TestBasketMovementClamped(t *testing.T) {
	g, _, _ := newTestGame(t, map[string]any{"targetScore": 100}, nil)
	g.Enter(scene.Payload{})

	for range 50 {
		g.HandleInput(core.ActionLeft)
	}
	if g.catcherX != 0 {
		t.Errorf("catcherX = %v, expected clamp at 0", g.catcherX)
	}
	for range 50 {
		g.HandleInput(core.ActionRight)
	}
	if g.catcherX != 1 {
		t.Errorf("catcherX = %v, expected clamp at 1", g.catcherX)
	}
}

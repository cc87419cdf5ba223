package racer

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

func newTestGame(t *testing.T, gameplay map[string]any) (*GameScene, *stubScene) {
	t.Helper()
	store := config.NewStore(map[string]any{"gameplay": gameplay})
	registry := state.NewRegistry(nil)
	logger := log.New(io.Discard)
	env := scenes.NewEnv(scenes.Env{
		Store:    store,
		Registry: registry,
		Tracker:  track.New(store, logger),
		Control:  scene.NewController(store, registry, logger),
		Logger:   logger,
		Runtime:  core.RuntimeConfig{Seed: 1, Template: "racer"},
	})

	g := NewGame(env)
	end := &stubScene{id: scene.End}
	env.Control.Register(g)
	env.Control.Register(end)
	env.Control.Register(&stubScene{id: scene.DataCapture})
	return g, end
}

func TestScoreAccruesOverTime(t *testing.T) {
	g, _ := newTestGame(t, map[string]any{
		"targetScore":    1000,
		"scorePerSecond": 10.0,
		"duration":       60.0,
	})
	g.Enter(scene.Payload{})

	for range 10 {
		g.Tick(100 * time.Millisecond)
	}

	if got := int(g.score); got != 10 {
		t.Errorf("score after 1s = %d, expected 10", got)
	}
	if got := g.Env.Registry.Get(state.KeyTotalScore); got != 10 {
		t.Errorf("registry totalScore = %d, expected 10", got)
	}
}

func TestCollisionRestartPreservesScore(t *testing.T) {
	g, _ := newTestGame(t, map[string]any{
		"targetScore":       1000,
		"collisionBehavior": "restart",
		"lives":             3,
		"duration":          60.0,
	})
	g.Enter(scene.Payload{})
	g.score = 120
	g.obstacles = []*Obstacle{{Lane: g.playerLane, Y: playerY - 0.01}}

	g.Tick(16 * time.Millisecond)

	if g.finished {
		t.Fatal("restart policy ended the game")
	}
	if got := int(g.score); got != 120 {
		t.Errorf("score after restart = %d, expected 120", got)
	}
	if len(g.obstacles) != 0 {
		t.Errorf("road not cleared after restart, %d obstacles", len(g.obstacles))
	}
	if g.elapsed != 0 {
		t.Errorf("elapsed after restart = %v, expected 0", g.elapsed)
	}
	if got := g.Env.Registry.Get(state.KeyRestartsUsed); got != 1 {
		t.Errorf("restartsUsed = %d, expected 1", got)
	}
	if got := g.Env.Registry.Get(state.KeyLivesRemaining); got != 2 {
		t.Errorf("livesRemaining = %d, expected 2", got)
	}
}

func TestCollisionRestartOutOfLivesEnds(t *testing.T) {
	g, end := newTestGame(t, map[string]any{
		"targetScore":       1000,
		"collisionBehavior": "restart",
		"lives":             1,
		"duration":          60.0,
	})
	g.Enter(scene.Payload{})
	g.obstacles = []*Obstacle{{Lane: g.playerLane, Y: playerY - 0.01}}

	g.Tick(16 * time.Millisecond)

	if !g.finished {
		t.Fatal("last life collision did not end the game")
	}
	if g.Env.Registry.Flag(state.KeyGameCompleted) {
		t.Error("crash counted as a win")
	}
	if end.entered != 1 {
		t.Errorf("End entered %d times, expected 1", end.entered)
	}
}

func TestCollisionLoseLifeClearsRoad(t *testing.T) {
	g, _ := newTestGame(t, map[string]any{
		"targetScore":       1000,
		"collisionBehavior": "loseLife",
		"lives":             2,
		"duration":          60.0,
	})
	g.Enter(scene.Payload{})
	g.score = 40
	g.obstacles = []*Obstacle{
		{Lane: g.playerLane, Y: playerY - 0.01},
		{Lane: g.playerLane, Y: 0.2},
	}

	g.Tick(16 * time.Millisecond)

	if g.finished {
		t.Fatal("first collision ended a two-life game")
	}
	if got := g.Env.Registry.Get(state.KeyLivesRemaining); got != 1 {
		t.Errorf("livesRemaining = %d, expected 1", got)
	}
	if len(g.obstacles) != 0 {
		t.Errorf("road not cleared, %d obstacles", len(g.obstacles))
	}
	if int(g.score) < 40 {
		t.Errorf("score dropped to %d after losing a life", int(g.score))
	}

	g.obstacles = []*Obstacle{{Lane: g.playerLane, Y: playerY - 0.01}}
	g.Tick(16 * time.Millisecond)
	if !g.finished {
		t.Error("collision with the last life did not end the game")
	}
}

func TestCollisionEndPolicy(t *testing.T) {
	g, end := newTestGame(t, map[string]any{
		"targetScore":       1000,
		"collisionBehavior": "end",
		"duration":          60.0,
	})
	g.Enter(scene.Payload{})
	g.obstacles = []*Obstacle{{Lane: g.playerLane, Y: playerY - 0.01}}

	g.Tick(16 * time.Millisecond)

	if !g.finished {
		t.Fatal("end policy did not finish on collision")
	}
	if end.entered != 1 {
		t.Errorf("End entered %d times, expected 1", end.entered)
	}
}

func TestObstacleInOtherLaneIsHarmless(t *testing.T) {
	g, _ := newTestGame(t, map[string]any{
		"targetScore": 1000,
		"lanes":       3,
		"duration":    60.0,
	})
	g.Enter(scene.Payload{})
	other := (g.playerLane + 1) % g.lanes
	g.obstacles = []*Obstacle{{Lane: other, Y: playerY - 0.01}}

	g.Tick(16 * time.Millisecond)

	if g.finished || g.Env.Registry.Get(state.KeyRestartsUsed) != 0 {
		t.Error("adjacent-lane obstacle registered as a collision")
	}
}

func TestWinAtTargetScore(t *testing.T) {
	g, end := newTestGame(t, map[string]any{
		"targetScore":    50,
		"scorePerSecond": 10.0,
		"duration":       60.0,
	})
	g.Enter(scene.Payload{})
	g.score = 49.9

	g.Tick(100 * time.Millisecond)

	if !g.finished {
		t.Fatal("game did not finish at target score")
	}
	if !g.Env.Registry.Flag(state.KeyGameCompleted) {
		t.Error("gameCompleted flag not set on win")
	}
	if got := end.last.Int(scene.PayloadScore, -1); got != 50 {
		t.Errorf("End payload score = %d, expected 50", got)
	}
}

func TestLaneChangeClamped(t *testing.T) {
	g, _ := newTestGame(t, map[string]any{"targetScore": 1000, "lanes": 3})
	g.Enter(scene.Payload{})

	for range 10 {
		g.HandleInput(core.ActionLeft)
	}
	if g.playerLane != 0 {
		t.Errorf("playerLane = %d, expected 0", g.playerLane)
	}
	for range 10 {
		g.HandleInput(core.ActionRight)
	}
	if g.playerLane != g.lanes-1 {
		t.Errorf("playerLane = %d, expected %d", g.playerLane, g.lanes-1)
	}
}

package scenes

import (
	"fmt"
	"time"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/scene"
)

const (
	// keyLoadInterval paces the simulated load: one key per interval.
	keyLoadInterval = 60 * time.Millisecond
	// preloadMinHold keeps the progress bar visible even with nothing to
	// load, so an asset-replacement restart is perceptible in the editor.
	preloadMinHold = 250 * time.Millisecond
)

// PreloadScene drives every known asset key through the load-state machine
// and moves on to Splash once the catalog reports nothing pending. Asset
// replacement patches re-enter this scene.
type PreloadScene struct {
	Base

	total    int
	loaded   int
	elapsed  time.Duration
	advanced bool
}

// NewPreload creates the preload scene.
func NewPreload(env *Env) *PreloadScene {
	return &PreloadScene{Base: NewBase(env)}
}

func (s *PreloadScene) ID() scene.ID { return scene.Preload }

func (s *PreloadScene) Enter(scene.Payload) {
	s.Begin()
	s.elapsed = 0
	s.advanced = false
	s.loaded = 0

	pending := s.Env.Catalog.PendingKeys()
	s.total = len(pending)
	s.Env.Logger.Info("preloading assets", "pending", s.total)

	s.Timers().Every(keyLoadInterval, s.loadNext)
}

func (s *PreloadScene) Exit() {
	s.End()
}

// loadNext loads one pending key per fire. Overrides installed while the
// scene runs show up in the next PendingKeys query and extend the pass.
func (s *PreloadScene) loadNext() {
	pending := s.Env.Catalog.PendingKeys()
	if len(pending) == 0 {
		if !s.advanced && s.elapsed >= preloadMinHold {
			s.advanced = true
			s.Env.Control.Start(scene.Splash, scene.Payload{})
		}
		return
	}
	if s.total < s.loaded+len(pending) {
		s.total = s.loaded + len(pending)
	}

	key := pending[0]
	s.Env.Catalog.SetState(key, assets.StateLoading)
	if s.Env.Catalog.Resolve(key) == "" {
		s.Env.Catalog.SetState(key, assets.StateFailed)
		s.Env.Logger.Warn("asset failed to resolve", "key", key)
	} else {
		s.Env.Catalog.SetState(key, assets.StateLoaded)
	}
	s.loaded++
}

func (s *PreloadScene) Tick(dt time.Duration) {
	s.elapsed += dt
	s.Base.Tick(dt)
}

// Progress returns the load fraction in [0, 1].
func (s *PreloadScene) Progress() float64 {
	if s.total == 0 {
		return 1
	}
	return core.ClampF(float64(s.loaded)/float64(s.total), 0, 1)
}

func (s *PreloadScene) Render(c *core.Canvas) {
	DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)

	y := c.Height() / 2
	barW := c.Width() / 2
	x := (c.Width() - barW) / 2
	filled := int(s.Progress() * float64(barW))

	c.DrawHLine(x, y, barW, '─', core.RGB(0x44, 0x44, 0x55))
	c.DrawHLine(x, y, filled, '█', core.RGB(0xcc, 0xcc, 0xff))
	c.DrawTextCentered(y+2, fmt.Sprintf("%d%%", int(s.Progress()*100)), core.RGB(0x88, 0x88, 0x99))
}

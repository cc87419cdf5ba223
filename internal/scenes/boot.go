package scenes

import (
	"time"

	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/scene"
)

// bootHold is how long the boot frame stays up before preloading starts.
const bootHold = 200 * time.Millisecond

// BootScene is the entry scene: it establishes the canvas, logs the
// template coming up and hands over to Preload.
type BootScene struct {
	Base
}

// NewBoot creates the boot scene.
func NewBoot(env *Env) *BootScene {
	return &BootScene{Base: NewBase(env)}
}

func (s *BootScene) ID() scene.ID { return scene.Boot }

func (s *BootScene) Enter(scene.Payload) {
	s.Begin()
	s.Env.Logger.Info("booting", "template", s.Env.Runtime.Template)
	s.Timers().After(bootHold, func() {
		s.Env.Control.Start(scene.Preload, scene.Payload{})
	})
}

func (s *BootScene) Exit() {
	s.End()
}

func (s *BootScene) Render(c *core.Canvas) {
	c.DrawTextCentered(c.Height()/2, "loading...", core.RGB(0x88, 0x88, 0x88))
}

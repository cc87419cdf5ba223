package scenes

import (
	"fmt"

	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/fpd"
	"github.com/adforge/playable/internal/scene"
)

// DataCaptureScene walks the enabled first-party-data screens, persists the
// answers keyed by template and placement, and resumes at the recorded next
// scene with any saved gameplay state passed through unchanged. Backing out
// skips persistence but still resumes.
type DataCaptureScene struct {
	Base

	req  fpd.Request
	form *fpd.Form
}

// NewDataCapture creates the capture scene.
func NewDataCapture(env *Env) *DataCaptureScene {
	return &DataCaptureScene{Base: NewBase(env)}
}

func (s *DataCaptureScene) ID() scene.ID { return scene.DataCapture }

func (s *DataCaptureScene) Enter(p scene.Payload) {
	s.Begin()
	s.req = fpd.FromPayload(s.Env.Store, p)
	s.form = fpd.NewForm(s.req)
	s.Env.Logger.Info("data capture",
		"placement", s.req.Placement, "next", s.req.NextScene)
}

func (s *DataCaptureScene) Exit() {
	s.End()
}

// Form exposes the live form so the platform layer can route raw key input
// to the email field.
func (s *DataCaptureScene) Form() *fpd.Form {
	if !s.Active() {
		return nil
	}
	return s.form
}

func (s *DataCaptureScene) HandleInput(a core.Action) {
	if a == core.ActionBack {
		s.Env.Logger.Info("capture skipped", "placement", s.req.Placement)
		s.resume()
		return
	}
	s.form.HandleAction(a)
	if s.form.Done() {
		s.persist()
		s.resume()
	}
}

// NotifyKeyHandled runs the completion check after raw key input, which can
// finish the email screen outside HandleInput.
func (s *DataCaptureScene) NotifyKeyHandled() {
	if s.Active() && s.form.Done() {
		s.persist()
		s.resume()
	}
}

func (s *DataCaptureScene) persist() {
	if s.Env.Saver == nil {
		return
	}
	values := s.form.Values()
	err := s.Env.Saver.SaveCapture(s.Env.Runtime.Template, string(s.req.Placement), values)
	if err != nil {
		// Never propagate: a persistence failure must not break the flow.
		s.Env.Logger.Error("capture persistence failed", "err", err)
		return
	}
	s.Env.Logger.Info("capture saved",
		"placement", s.req.Placement, "fields", len(values))
}

func (s *DataCaptureScene) resume() {
	s.Env.Control.Start(s.req.NextScene, s.req.GameData)
}

func (s *DataCaptureScene) Render(c *core.Canvas) {
	DrawBackground(c, config.Background(s.Env.Store), s.Env.Catalog)
	if s.form == nil || s.form.Done() {
		return
	}

	midY := c.Height() / 2
	switch s.form.Screen() {
	case fpd.ScreenAge:
		c.DrawTextCentered(midY-3, "How old are you?", core.RGB(0xff, 0xff, 0xff))
		s.drawOptions(c, midY)
	case fpd.ScreenGender:
		c.DrawTextCentered(midY-3, "How do you identify?", core.RGB(0xff, 0xff, 0xff))
		s.drawOptions(c, midY)
	case fpd.ScreenEmail:
		c.DrawTextCentered(midY-3, "Where can we reach you?", core.RGB(0xff, 0xff, 0xff))
		c.DrawTextCentered(midY, s.form.EmailView(), core.RGB(0xee, 0xee, 0xee))
		if msg := s.form.Error(); msg != "" {
			c.DrawTextCentered(midY+2, msg, core.RGB(0xff, 0x55, 0x55))
		}
	}
	c.DrawTextCentered(c.Height()-2, "esc to skip", core.RGB(0x66, 0x66, 0x66))
}

func (s *DataCaptureScene) drawOptions(c *core.Canvas, startY int) {
	for i, opt := range s.form.Options() {
		color := core.RGB(0x99, 0x99, 0x99)
		line := fmt.Sprintf("  %s  ", opt)
		if i == s.form.OptionIndex() {
			color = core.RGB(0xff, 0xff, 0x66)
			line = fmt.Sprintf("> %s <", opt)
		}
		c.DrawTextCentered(startY+i, line, color)
	}
}

package scenes

import (
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
)

// Label is a positioned piece of text.
type Label struct {
	Text  string
	Pos   core.FracPoint
	Color core.Color
}

// Draw centers the label on its anchor point.
func (l Label) Draw(c *core.Canvas) {
	x, y := l.Pos.Resolve(c.Width(), c.Height())
	c.DrawText(x-len(l.Text)/2, y, l.Text, l.Color)
}

// ButtonElement is a composite element: a filled box sized from its label
// plus the label itself. The box dimensions are computed once at creation;
// a text or width change requires recreating the element, while colors and
// position mutate in place.
type ButtonElement struct {
	spec config.ButtonSpec
	// boxW is frozen at creation, which is what makes recreate-on-text-
	// change observable: mutating spec.Text alone would not resize the box.
	boxW int
}

// NewButton creates a button element, sizing its box from the label.
func NewButton(spec config.ButtonSpec) *ButtonElement {
	return &ButtonElement{spec: spec, boxW: buttonWidth(spec)}
}

func buttonWidth(spec config.ButtonSpec) int {
	return len(spec.Text) + 4
}

// Update applies a new spec. Text and width changes recreate the element
// (fresh box size); anything else mutates in place.
func (b *ButtonElement) Update(spec config.ButtonSpec) {
	if spec.Text != b.spec.Text || spec.WidthFrac != b.spec.WidthFrac {
		*b = *NewButton(spec)
		return
	}
	b.spec = spec
}

// Spec returns the button's current spec.
func (b *ButtonElement) Spec() config.ButtonSpec {
	return b.spec
}

// Bounds resolves the button's box on a canvas of the given size.
func (b *ButtonElement) Bounds(canvasW, canvasH int) core.Rect {
	w := b.boxW
	if b.spec.WidthFrac > 0 {
		w = int(b.spec.WidthFrac * float64(canvasW))
	}
	cx, cy := b.spec.Pos.Resolve(canvasW, canvasH)
	return core.NewRect(cx-w/2, cy-1, w, 3)
}

// Draw renders the button box and label.
func (b *ButtonElement) Draw(c *core.Canvas) {
	if !b.spec.Visible {
		return
	}
	r := b.Bounds(c.Width(), c.Height())
	c.DrawRect(r, '█', b.spec.FillColor)
	cx, cy := r.Center()
	c.DrawText(cx-len(b.spec.Text)/2, cy, b.spec.Text, b.spec.TextColor)
}

package scenes

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/adforge/playable/internal/assets"
	"github.com/adforge/playable/internal/config"
	"github.com/adforge/playable/internal/core"
)

// DrawBackground paints the configured background across the whole canvas.
// Gradients blend top to bottom per row; an image background renders its
// loaded texture as a shaded fill and degrades to solid while the asset is
// not loaded or not resolvable.
func DrawBackground(c *core.Canvas, spec config.BackgroundSpec, catalog *assets.Catalog) {
	switch spec.Kind {
	case config.BackgroundGradient:
		drawGradient(c, spec.ColorTop, spec.ColorBot)
	case config.BackgroundImage:
		if spec.AssetKey != "" && catalog != nil && catalog.State(spec.AssetKey) == assets.StateLoaded {
			c.FillColor('▒', spec.Color)
			return
		}
		c.FillColor(' ', spec.Color)
	default:
		c.FillColor(' ', spec.Color)
	}
}

func drawGradient(c *core.Canvas, top, bot core.Color) {
	h := c.Height()
	if h <= 1 {
		c.FillColor('░', top)
		return
	}
	from := toColorful(top)
	to := toColorful(bot)
	for y := range h {
		t := float64(y) / float64(h-1)
		blended := fromColorful(from.BlendRgb(to, t))
		c.DrawHLine(0, y, c.Width(), '░', blended)
	}
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{
		R: float64((c>>16)&0xff) / 255,
		G: float64((c>>8)&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
}

func fromColorful(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.RGB(r, g, b)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adforge/playable/internal/core"
)

// styleCache memoizes lipgloss styles per 24-bit color. Scenes reuse a small
// palette, so the cache stays tiny.
var styleCache = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
}

func styleFor(color core.Color) lipgloss.Style {
	if style, ok := styleCache[color]; ok {
		return style
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))
	styleCache[color] = style
	return style
}

// RenderCanvas converts a canvas to a styled string for display. Adjacent
// cells with the same color are grouped into one styled run to minimize
// ANSI escape sequences.
func RenderCanvas(c *core.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.GetCell(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

package core

import (
	"strings"
)

// Cell is a single canvas cell: a rune plus its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

// Canvas is a 2D character buffer games and scenes render into.
// It decouples scene rendering from the terminal, allowing scenes to draw
// using simple cell operations while the platform handles actual display.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.allocate()
	c.Clear()
	return c
}

// allocate creates the underlying cell storage.
func (c *Canvas) allocate() {
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the canvas dimensions, preserving content where possible.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}

	oldCells := c.cells
	oldW, oldH := c.width, c.height

	c.width = width
	c.height = height
	c.allocate()
	c.Clear()

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			c.cells[y][x] = oldCells[y][x]
		}
	}
}

// Clear fills the entire canvas with spaces in the default color.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' ', Color: ColorDefault}
		}
	}
}

// FillColor floods the entire canvas with the given rune and color.
// Used for solid backgrounds.
func (c *Canvas) FillColor(r rune, color Color) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: r, Color: color}
		}
	}
}

// Set places a rune at the given position in the default color.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune) {
	c.SetCell(x, y, Cell{Rune: r, Color: ColorDefault})
}

// SetColored places a rune with a color at the given position.
func (c *Canvas) SetColored(x, y int, r rune, color Color) {
	c.SetCell(x, y, Cell{Rune: r, Color: color})
}

// SetCell places a full cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) SetCell(x, y int, cell Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (c *Canvas) Get(x, y int) rune {
	return c.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
// Returns an empty default cell for out-of-bounds coordinates.
func (c *Canvas) GetCell(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' ', Color: ColorDefault}
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond canvas bounds are clipped.
func (c *Canvas) DrawText(x, y int, text string, color Color) {
	for i, r := range text {
		c.SetColored(x+i, y, r, color)
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (c *Canvas) DrawTextCentered(y int, text string, color Color) {
	x := (c.width - len(text)) / 2
	c.DrawText(x, y, text, color)
}

// DrawRect fills a rectangular area with the given rune and color.
func (c *Canvas) DrawRect(r Rect, fill rune, color Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.SetColored(x, y, fill, color)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (c *Canvas) DrawBox(r Rect, color Color) {
	// Corners
	c.SetColored(r.X, r.Y, '┌', color)
	c.SetColored(r.Right()-1, r.Y, '┐', color)
	c.SetColored(r.X, r.Bottom()-1, '└', color)
	c.SetColored(r.Right()-1, r.Bottom()-1, '┘', color)

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		c.SetColored(x, r.Y, '─', color)
		c.SetColored(x, r.Bottom()-1, '─', color)
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		c.SetColored(r.X, y, '│', color)
		c.SetColored(r.Right()-1, y, '│', color)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (c *Canvas) DrawHLine(x, y, length int, r rune, color Color) {
	for i := 0; i < length; i++ {
		c.SetColored(x+i, y, r, color)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (c *Canvas) DrawVLine(x, y, length int, r rune, color Color) {
	for i := 0; i < length; i++ {
		c.SetColored(x, y+i, r, color)
	}
}

// String converts the canvas to a plain string, one line per row.
// Colors are dropped; the platform renderer handles styled output.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a plain string.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	runes := make([]rune, c.width)
	for x := 0; x < c.width; x++ {
		runes[x] = c.cells[y][x].Rune
	}
	return string(runes)
}

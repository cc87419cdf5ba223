// Package match3 implements the match-3 template: a pure grid engine
// (fill, match detection, gravity, cascade resolution, deadlock handling)
// plus the game scene that drives it from user swaps and timers.
package match3

// Item identifies one tile type. Empty marks a hole awaiting refill.
type Item int8

// Empty is the absence of a tile.
const Empty Item = -1

// Coord is a board position. X grows right, Y grows down.
type Coord struct {
	X, Y int
}

// C is a shorthand constructor for coordinates.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Adjacent returns true when two coordinates share an edge.
func (c Coord) Adjacent(o Coord) bool {
	dx := c.X - o.X
	dy := c.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Board is a rectangular grid of items stored row-major: index = y*Cols + x.
type Board struct {
	Rows, Cols int
	cells      []Item
}

// NewBoard creates a board with every cell empty.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Item, rows*cols),
	}
	for i := range b.cells {
		b.cells[i] = Empty
	}
	return b
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.Cols && c.Y >= 0 && c.Y < b.Rows
}

func (b *Board) index(c Coord) int {
	return c.Y*b.Cols + c.X
}

// At returns the item at a coordinate, or Empty when out of bounds.
func (b *Board) At(c Coord) Item {
	if !b.InBounds(c) {
		return Empty
	}
	return b.cells[b.index(c)]
}

// Set places an item at a coordinate. Out-of-bounds writes are ignored.
func (b *Board) Set(c Coord, it Item) {
	if b.InBounds(c) {
		b.cells[b.index(c)] = it
	}
}

// Swap exchanges the items at two coordinates.
func (b *Board) Swap(a, c Coord) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return
	}
	i, j := b.index(a), b.index(c)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Item, len(b.cells))
	copy(cells, b.cells)
	return &Board{Rows: b.Rows, Cols: b.Cols, cells: cells}
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, it := range b.cells {
		if it == Empty {
			n++
		}
	}
	return n
}

package match3

import (
	"math/rand"
)

// Default engine tunables. RegenRetries bounds how often a dead board is
// rebuilt before a guaranteed move is stamped in directly.
const (
	DefaultRegenRetries = 10
	minRunLength        = 3
)

// Engine owns the board and every pure grid operation: fill, match
// detection, clearing, gravity, refill and deadlock handling. It performs no
// animation and no IO; the game scene sequences its calls.
type Engine struct {
	board        *Board
	types        int
	regenRetries int
	rng          *rand.Rand
}

// NewEngine creates an engine over an empty board. Call Fill before play.
func NewEngine(rows, cols, types, regenRetries int, rng *rand.Rand) *Engine {
	if types < 3 {
		types = 3
	}
	if regenRetries <= 0 {
		regenRetries = DefaultRegenRetries
	}
	return &Engine{
		board:        NewBoard(rows, cols),
		types:        types,
		regenRetries: regenRetries,
		rng:          rng,
	}
}

// Board exposes the live board for rendering.
func (e *Engine) Board() *Board {
	return e.board
}

// Types returns the number of distinct item types in play.
func (e *Engine) Types() int {
	return e.types
}

// Fill populates the whole board without immediate matches, then guarantees
// at least one possible move (regenerating up to the retry budget, stamping
// a move in as the last resort).
func (e *Engine) Fill() {
	e.fillNoMatch()
	e.EnsureSolvable()
}

// fillNoMatch assigns every cell a random item that does not complete a run
// with its already-filled left and up neighbors.
func (e *Engine) fillNoMatch() {
	for y := range e.board.Rows {
		for x := range e.board.Cols {
			e.board.Set(C(x, y), e.randomSafeItem(C(x, y)))
		}
	}
}

// randomSafeItem picks a random item for a cell being filled row-major: it
// must not match both cells to the left nor both cells above.
func (e *Engine) randomSafeItem(c Coord) Item {
	for {
		it := Item(e.rng.Intn(e.types))
		left := e.board.At(C(c.X-1, c.Y)) == it && e.board.At(C(c.X-2, c.Y)) == it
		up := e.board.At(C(c.X, c.Y-1)) == it && e.board.At(C(c.X, c.Y-2)) == it
		if !left && !up {
			return it
		}
	}
}

// FindMatches returns every cell that belongs to a horizontal or vertical
// run of three or more equal items. Cells are reported once, row-major.
func (e *Engine) FindMatches() []Coord {
	b := e.board
	matched := make([]bool, b.Rows*b.Cols)

	// Horizontal runs
	for y := range b.Rows {
		runStart := 0
		for x := 1; x <= b.Cols; x++ {
			if x < b.Cols && b.At(C(x, y)) != Empty && b.At(C(x, y)) == b.At(C(runStart, y)) {
				continue
			}
			if x-runStart >= minRunLength && b.At(C(runStart, y)) != Empty {
				for i := runStart; i < x; i++ {
					matched[b.index(C(i, y))] = true
				}
			}
			runStart = x
		}
	}

	// Vertical runs
	for x := range b.Cols {
		runStart := 0
		for y := 1; y <= b.Rows; y++ {
			if y < b.Rows && b.At(C(x, y)) != Empty && b.At(C(x, y)) == b.At(C(x, runStart)) {
				continue
			}
			if y-runStart >= minRunLength && b.At(C(x, runStart)) != Empty {
				for i := runStart; i < y; i++ {
					matched[b.index(C(x, i))] = true
				}
			}
			runStart = y
		}
	}

	var out []Coord
	for y := range b.Rows {
		for x := range b.Cols {
			if matched[b.index(C(x, y))] {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// SwapMatches reports whether swapping two adjacent cells would produce at
// least one match. The board is left unchanged.
func (e *Engine) SwapMatches(a, b Coord) bool {
	if !a.Adjacent(b) || !e.board.InBounds(a) || !e.board.InBounds(b) {
		return false
	}
	e.board.Swap(a, b)
	matched := len(e.FindMatches()) > 0
	e.board.Swap(a, b)
	return matched
}

// Swap exchanges two adjacent cells for real. Returns false (board
// untouched) when the cells are not adjacent or out of bounds.
func (e *Engine) Swap(a, b Coord) bool {
	if !a.Adjacent(b) || !e.board.InBounds(a) || !e.board.InBounds(b) {
		return false
	}
	e.board.Swap(a, b)
	return true
}

// Clear empties the given cells and returns how many were cleared.
func (e *Engine) Clear(coords []Coord) int {
	n := 0
	for _, c := range coords {
		if e.board.At(c) != Empty {
			e.board.Set(c, Empty)
			n++
		}
	}
	return n
}

// Collapse lets items fall into empty cells below them, column by column.
// Returns true if anything moved.
func (e *Engine) Collapse() bool {
	b := e.board
	moved := false
	for x := range b.Cols {
		write := b.Rows - 1
		for y := b.Rows - 1; y >= 0; y-- {
			it := b.At(C(x, y))
			if it == Empty {
				continue
			}
			if write != y {
				b.Set(C(x, write), it)
				b.Set(C(x, y), Empty)
				moved = true
			}
			write--
		}
	}
	return moved
}

// Refill fills every empty cell with a random item that completes no run,
// the same invariant the initial fill holds. Cascades therefore come only
// from pieces rearranged by the collapse, never from fresh spawns.
func (e *Engine) Refill() int {
	b := e.board
	n := 0
	for y := range b.Rows {
		for x := range b.Cols {
			pos := C(x, y)
			if b.At(pos) == Empty {
				b.Set(pos, e.refillItem(pos))
				n++
			}
		}
	}
	return n
}

// refillItem picks a random item forming no run through the cell. Unlike the
// row-major initial fill, a refilled cell can have occupied neighbors on all
// four sides, so the full run check applies.
func (e *Engine) refillItem(pos Coord) Item {
	for range 4 * e.types {
		it := Item(e.rng.Intn(e.types))
		if !e.completesRun(pos, it) {
			return it
		}
	}
	return e.safeItemAt(pos)
}

// ResolveStep performs one cascade iteration: clear current matches,
// collapse, refill. Returns the number of cells cleared, zero when the
// board is stable.
func (e *Engine) ResolveStep() int {
	matches := e.FindMatches()
	if len(matches) == 0 {
		return 0
	}
	cleared := e.Clear(matches)
	e.Collapse()
	e.Refill()
	return cleared
}

// ResolveAll runs cascade iterations until the board is stable, then makes
// sure a move remains. Returns total cells cleared and the cascade depth.
func (e *Engine) ResolveAll() (cleared, cascades int) {
	for {
		n := e.ResolveStep()
		if n == 0 {
			break
		}
		cleared += n
		cascades++
	}
	e.EnsureSolvable()
	return cleared, cascades
}

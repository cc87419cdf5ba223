package match3

// FindMove returns the first swap (row-major scan, right then down) that
// would produce a match. The deterministic order is what makes auto-solve
// reproducible under a fixed seed.
func (e *Engine) FindMove() (a, b Coord, ok bool) {
	for y := range e.board.Rows {
		for x := range e.board.Cols {
			from := C(x, y)
			right := C(x+1, y)
			if e.board.InBounds(right) && e.SwapMatches(from, right) {
				return from, right, true
			}
			down := C(x, y+1)
			if e.board.InBounds(down) && e.SwapMatches(from, down) {
				return from, down, true
			}
		}
	}
	return Coord{}, Coord{}, false
}

// HasPossibleMoves reports whether any adjacent swap would match.
func (e *Engine) HasPossibleMoves() bool {
	_, _, ok := e.FindMove()
	return ok
}

// EnsureSolvable guarantees the board has at least one possible move.
// A dead board is regenerated up to the retry budget; if randomness keeps
// producing dead boards, a guaranteed move is stamped in directly.
func (e *Engine) EnsureSolvable() {
	for range e.regenRetries {
		if e.HasPossibleMoves() {
			return
		}
		e.fillNoMatch()
	}
	if !e.HasPossibleMoves() {
		e.injectMove()
	}
}

// injectMove deterministically stamps a 4x3 corner pattern containing
// exactly one guaranteed move (swap (2,0) with (2,1) to complete the top
// row) and no immediate matches, then scrubs any runs the stamp created
// along its border with the surrounding fill.
func (e *Engine) injectMove() {
	a, b, c := Item(0), Item(1), Item(2%e.types)
	stamp := [3][4]Item{
		{a, a, b, a},
		{c, c, a, b},
		{b, b, c, c},
	}
	stamped := make(map[Coord]bool, 12)
	for y := range 3 {
		for x := range 4 {
			pos := C(x, y)
			if !e.board.InBounds(pos) {
				continue
			}
			e.board.Set(pos, stamp[y][x])
			stamped[pos] = true
		}
	}
	e.scrubMatches(stamped)
}

// scrubMatches replaces every cell participating in an immediate match with
// a deterministically chosen safe item, never touching protected cells. The
// pass bound exists only as a termination guard; one pass suffices in
// practice.
func (e *Engine) scrubMatches(protected map[Coord]bool) {
	for range e.board.Rows * e.board.Cols {
		matches := e.FindMatches()
		if len(matches) == 0 {
			return
		}
		changed := false
		for _, pos := range matches {
			if protected[pos] {
				continue
			}
			e.board.Set(pos, e.safeItemAt(pos))
			changed = true
		}
		if !changed {
			return
		}
	}
}

// safeItemAt returns the lowest item that completes no run of three through
// the cell, considering neighbors two out in each direction.
func (e *Engine) safeItemAt(pos Coord) Item {
	for t := range e.types {
		if !e.completesRun(pos, Item(t)) {
			return Item(t)
		}
	}
	// Every type runs somewhere; take anything different from the current
	// item so progress is still made.
	return Item((int(e.board.At(pos)) + 1) % e.types)
}

// completesRun reports whether placing it at pos would form a run of three
// through the cell in either axis.
func (e *Engine) completesRun(pos Coord, it Item) bool {
	eq := func(x, y int) bool { return e.board.At(C(x, y)) == it }
	x, y := pos.X, pos.Y
	switch {
	case eq(x-2, y) && eq(x-1, y),
		eq(x-1, y) && eq(x+1, y),
		eq(x+1, y) && eq(x+2, y),
		eq(x, y-2) && eq(x, y-1),
		eq(x, y-1) && eq(x, y+1),
		eq(x, y+1) && eq(x, y+2):
		return true
	}
	return false
}

package match3

import (
	"fmt"
	"math/rand"
	"testing"
)

func newTestEngine(rows, cols, types int, seed int64) *Engine {
	return NewEngine(rows, cols, types, DefaultRegenRetries, rand.New(rand.NewSource(seed)))
}

// setBoard overwrites the engine's board from a row-major item matrix.
func setBoard(e *Engine, rows [][]int) {
	for y, row := range rows {
		for x, v := range row {
			e.Board().Set(C(x, y), Item(v))
		}
	}
}

func TestFillNoImmediateMatchesAndSolvable(t *testing.T) {
	for rows := 4; rows <= 6; rows++ {
		for cols := 4; cols <= 6; cols++ {
			for types := 4; types <= 6; types++ {
				name := fmt.Sprintf("%dx%d_types%d", rows, cols, types)
				t.Run(name, func(t *testing.T) {
					for seed := int64(0); seed < 20; seed++ {
						e := newTestEngine(rows, cols, types, seed)
						e.Fill()
						if m := e.FindMatches(); len(m) != 0 {
							t.Fatalf("seed %d: fill left immediate matches at %v", seed, m)
						}
						if !e.HasPossibleMoves() {
							t.Fatalf("seed %d: fill produced a dead board", seed)
						}
						if e.Board().EmptyCount() != 0 {
							t.Fatalf("seed %d: fill left empty cells", seed)
						}
					}
				})
			}
		}
	}
}

func TestFindMatchesHorizontalAndVertical(t *testing.T) {
	e := newTestEngine(4, 4, 4, 1)
	setBoard(e, [][]int{
		{0, 0, 0, 1},
		{2, 3, 1, 2},
		{3, 3, 1, 0},
		{1, 2, 1, 3},
	})

	matches := e.FindMatches()
	want := map[Coord]bool{
		C(0, 0): true, C(1, 0): true, C(2, 0): true, // horizontal run
		C(2, 1): true, C(2, 2): true, C(2, 3): true, // vertical run
	}
	if len(matches) != len(want) {
		t.Fatalf("FindMatches() = %v, expected %d cells", matches, len(want))
	}
	for _, c := range matches {
		if !want[c] {
			t.Errorf("unexpected matched cell %v", c)
		}
	}
}

func TestFindMatchesLongRun(t *testing.T) {
	e := newTestEngine(4, 5, 4, 1)
	setBoard(e, [][]int{
		{2, 2, 2, 2, 2},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 0},
	})

	if got := len(e.FindMatches()); got != 5 {
		t.Errorf("run of 5 reported %d matched cells", got)
	}
}

func TestSwapMatchesLeavesBoardUntouched(t *testing.T) {
	e := newTestEngine(4, 4, 4, 1)
	setBoard(e, [][]int{
		{0, 0, 1, 0},
		{2, 3, 0, 2},
		{3, 1, 2, 1},
		{1, 2, 3, 3},
	})
	before := e.Board().Clone()

	// Swapping (2,0) with (2,1) completes the top row.
	if !e.SwapMatches(C(2, 0), C(2, 1)) {
		t.Error("SwapMatches() missed a valid match")
	}
	for y := range 4 {
		for x := range 4 {
			if e.Board().At(C(x, y)) != before.At(C(x, y)) {
				t.Fatalf("SwapMatches() mutated the board at %d,%d", x, y)
			}
		}
	}
}

func TestSwapRejectsNonAdjacent(t *testing.T) {
	e := newTestEngine(4, 4, 4, 1)
	e.Fill()

	if e.Swap(C(0, 0), C(2, 0)) {
		t.Error("Swap() accepted non-adjacent cells")
	}
	if e.Swap(C(0, 0), C(1, 1)) {
		t.Error("Swap() accepted diagonal cells")
	}
	if e.SwapMatches(C(0, 0), C(3, 3)) {
		t.Error("SwapMatches() accepted distant cells")
	}
}

func TestCollapse(t *testing.T) {
	e := newTestEngine(4, 3, 4, 1)
	setBoard(e, [][]int{
		{1, -1, 2},
		{-1, -1, -1},
		{2, 3, -1},
		{-1, -1, 1},
	})

	if !e.Collapse() {
		t.Fatal("Collapse() reported no movement")
	}

	want := [][]int{
		{-1, -1, -1},
		{-1, -1, -1},
		{1, -1, 2},
		{2, 3, 1},
	}
	for y, row := range want {
		for x, v := range row {
			if got := e.Board().At(C(x, y)); got != Item(v) {
				t.Errorf("cell %d,%d = %d, expected %d", x, y, got, v)
			}
		}
	}
}

func TestResolveStepClearsAndRefills(t *testing.T) {
	e := newTestEngine(4, 4, 4, 7)
	setBoard(e, [][]int{
		{0, 0, 0, 1},
		{2, 3, 1, 2},
		{3, 1, 2, 0},
		{1, 2, 3, 3},
	})

	cleared := e.ResolveStep()
	if cleared != 3 {
		t.Errorf("ResolveStep() cleared %d, expected 3", cleared)
	}
	if e.Board().EmptyCount() != 0 {
		t.Error("ResolveStep() left holes after refill")
	}
}

func TestResolveAllReachesStableBoard(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		e := newTestEngine(6, 6, 4, seed)
		e.Fill()

		a, b, ok := e.FindMove()
		if !ok {
			t.Fatalf("seed %d: filled board has no move", seed)
		}
		e.Swap(a, b)
		cleared, cascades := e.ResolveAll()
		if cleared < 3 {
			t.Errorf("seed %d: resolved %d cells, expected >= 3", seed, cleared)
		}
		if cascades < 1 {
			t.Errorf("seed %d: cascade depth %d", seed, cascades)
		}
		if len(e.FindMatches()) != 0 {
			t.Errorf("seed %d: board not stable after ResolveAll", seed)
		}
		if !e.HasPossibleMoves() {
			t.Errorf("seed %d: ResolveAll left a dead board", seed)
		}
	}
}

func TestRefillNeverCreatesImmediateMatch(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		e := newTestEngine(6, 6, 4, seed)
		e.Fill()

		top := make([]Coord, e.board.Cols)
		for x := range e.board.Cols {
			top[x] = C(x, 0)
		}
		e.Clear(top)
		e.Collapse()
		e.Refill()

		if m := e.FindMatches(); len(m) != 0 {
			t.Fatalf("seed %d: refill created an immediate match at %v", seed, m)
		}
		if e.board.EmptyCount() != 0 {
			t.Fatalf("seed %d: refill left holes", seed)
		}
	}
}

// deadBoard sets a diagonal three-coloring: cell (x,y) holds (x+y) mod 3.
// Every neighbor differs, and any swap puts a value next to at most one
// equal cell in each direction, so no adjacent swap can line up three.
func deadBoard(e *Engine) {
	setBoard(e, [][]int{
		{0, 1, 2, 0},
		{1, 2, 0, 1},
		{2, 0, 1, 2},
		{0, 1, 2, 0},
	})
}

func TestHasPossibleMovesDetectsDeadlock(t *testing.T) {
	e := newTestEngine(4, 4, 3, 1)
	deadBoard(e)

	if m := e.FindMatches(); len(m) != 0 {
		t.Fatalf("fixture has immediate matches at %v", m)
	}
	if e.HasPossibleMoves() {
		t.Error("HasPossibleMoves() = true on a dead board")
	}
}

func TestInjectMoveRevivesDeadBoard(t *testing.T) {
	e := newTestEngine(4, 4, 3, 1)
	deadBoard(e)

	e.injectMove()

	if m := e.FindMatches(); len(m) != 0 {
		t.Fatalf("injectMove() created immediate matches at %v", m)
	}
	if !e.HasPossibleMoves() {
		t.Fatal("injectMove() did not produce a possible move")
	}
}

func TestEnsureSolvableOnDeadBoard(t *testing.T) {
	e := newTestEngine(4, 4, 3, 3)
	deadBoard(e)

	e.EnsureSolvable()

	if !e.HasPossibleMoves() {
		t.Fatal("EnsureSolvable() left a dead board")
	}
	if m := e.FindMatches(); len(m) != 0 {
		t.Fatalf("EnsureSolvable() left immediate matches at %v", m)
	}
}

func TestFindMoveDeterministic(t *testing.T) {
	e1 := newTestEngine(6, 6, 5, 42)
	e1.Fill()
	e2 := newTestEngine(6, 6, 5, 42)
	e2.Fill()

	a1, b1, _ := e1.FindMove()
	a2, b2, _ := e2.FindMove()
	if a1 != a2 || b1 != b2 {
		t.Errorf("FindMove() differs under the same seed: %v-%v vs %v-%v", a1, b1, a2, b2)
	}
}

func TestAdjacent(t *testing.T) {
	cases := []struct {
		a, b Coord
		want bool
	}{
		{C(1, 1), C(2, 1), true},
		{C(1, 1), C(1, 0), true},
		{C(1, 1), C(2, 2), false},
		{C(1, 1), C(1, 1), false},
		{C(0, 0), C(3, 0), false},
	}
	for _, c := range cases {
		if got := c.a.Adjacent(c.b); got != c.want {
			t.Errorf("Adjacent(%v, %v) = %v, expected %v", c.a, c.b, got, c.want)
		}
	}
}

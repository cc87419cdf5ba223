package slider

import (
	"math/rand"
	"testing"
)

func TestNewPuzzleSolved(t *testing.T) {
	p := NewPuzzle(3, 3)
	if !p.Solved() {
		t.Error("fresh puzzle is not solved")
	}
	if x, y := p.BlankPos(); x != 0 || y != 0 {
		t.Errorf("blank at %d,%d, expected 0,0", x, y)
	}
}

func TestMoveDirections(t *testing.T) {
	p := NewPuzzle(3, 3)

	// Blank top-left: only SlideLeft (tile to its right) and SlideUp
	// (tile below) are legal.
	if p.Move(SlideRight) {
		t.Error("SlideRight succeeded with no tile left of the blank")
	}
	if p.Move(SlideDown) {
		t.Error("SlideDown succeeded with no tile above the blank")
	}
	if !p.Move(SlideLeft) {
		t.Fatal("SlideLeft failed")
	}
	if p.TileAt(0, 0) != 1 {
		t.Errorf("tile at 0,0 = %d, expected 1", p.TileAt(0, 0))
	}
	if x, y := p.BlankPos(); x != 1 || y != 0 {
		t.Errorf("blank at %d,%d, expected 1,0", x, y)
	}
}

func TestShuffleAlwaysSolvableByUnwind(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := NewPuzzle(3, 3)
		p.Shuffle(40, rng)

		if p.Solved() {
			t.Errorf("seed %d: shuffle left the puzzle solved", seed)
		}
		steps := 0
		for p.Unwind() {
			steps++
		}
		if !p.Solved() {
			t.Errorf("seed %d: unwinding the full trail did not solve", seed)
		}
		if steps == 0 {
			t.Errorf("seed %d: empty trail after shuffle", seed)
		}
	}
}

func TestShuffleRecordsEveryMove(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := NewPuzzle(4, 4)
	p.Shuffle(25, rng)

	if p.TrailLen() < 25 {
		t.Errorf("TrailLen() = %d, expected >= 25", p.TrailLen())
	}
}

func TestPlayerMovesJoinTheTrail(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewPuzzle(3, 3)
	p.Shuffle(10, rng)
	before := p.TrailLen()

	moved := false
	for _, d := range []Direction{SlideUp, SlideDown, SlideLeft, SlideRight} {
		if p.Move(d) {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no legal move from shuffled state")
	}
	if p.TrailLen() != before+1 {
		t.Errorf("TrailLen() = %d, expected %d", p.TrailLen(), before+1)
	}

	for p.Unwind() {
	}
	if !p.Solved() {
		t.Error("unwind after player move did not solve")
	}
}

func TestUnwindEmptyTrail(t *testing.T) {
	p := NewPuzzle(3, 3)
	if p.Unwind() {
		t.Error("Unwind() succeeded on an empty trail")
	}
}

func TestRectangularBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p := NewPuzzle(3, 4)
	p.Shuffle(30, rng)

	for p.Unwind() {
	}
	if !p.Solved() {
		t.Error("3x4 board did not unwind to solved")
	}
}

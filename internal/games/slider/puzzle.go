// Package slider implements the sliding picture puzzle template: an R×C
// tile board with one blank, shuffled by a legal random walk so it is
// always solvable.
package slider

import (
	"math/rand"
)

// Direction is the way a tile slides (into the blank).
type Direction int

const (
	SlideUp Direction = iota
	SlideDown
	SlideLeft
	SlideRight
)

// Puzzle is the board state. Tiles are numbered 1..Rows*Cols-1 with 0 as
// the blank; position index = y*Cols + x. The move trail records the blank
// index before every move, so unwinding it replays the whole history in
// reverse back to the solved state.
type Puzzle struct {
	Rows, Cols int
	tiles      []int
	blank      int
	trail      []int
}

// NewPuzzle creates a solved puzzle.
func NewPuzzle(rows, cols int) *Puzzle {
	p := &Puzzle{
		Rows:  rows,
		Cols:  cols,
		tiles: make([]int, rows*cols),
	}
	for i := range p.tiles {
		p.tiles[i] = i
	}
	p.blank = 0
	return p
}

// TileAt returns the tile number at a position, 0 for the blank.
func (p *Puzzle) TileAt(x, y int) int {
	return p.tiles[y*p.Cols+x]
}

// BlankPos returns the blank's coordinates.
func (p *Puzzle) BlankPos() (int, int) {
	return p.blank % p.Cols, p.blank / p.Cols
}

// Solved reports whether every tile is home.
func (p *Puzzle) Solved() bool {
	for i, t := range p.tiles {
		if t != i {
			return false
		}
	}
	return true
}

// moveFrom slides the tile at index into the blank if they are adjacent.
func (p *Puzzle) moveFrom(idx int) bool {
	if !p.adjacent(idx, p.blank) {
		return false
	}
	p.trail = append(p.trail, p.blank)
	p.tiles[p.blank] = p.tiles[idx]
	p.tiles[idx] = 0
	p.blank = idx
	return true
}

func (p *Puzzle) adjacent(i, j int) bool {
	xi, yi := i%p.Cols, i/p.Cols
	xj, yj := j%p.Cols, j/p.Cols
	dx, dy := xi-xj, yi-yj
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Move slides a tile in the given direction, if the blank permits it.
// SlideLeft moves the tile right of the blank leftward, and so on.
func (p *Puzzle) Move(d Direction) bool {
	bx, by := p.BlankPos()
	var tx, ty int
	switch d {
	case SlideUp:
		tx, ty = bx, by+1
	case SlideDown:
		tx, ty = bx, by-1
	case SlideLeft:
		tx, ty = bx+1, by
	case SlideRight:
		tx, ty = bx-1, by
	}
	if tx < 0 || tx >= p.Cols || ty < 0 || ty >= p.Rows {
		return false
	}
	return p.moveFrom(ty*p.Cols + tx)
}

// Shuffle performs a random walk of legal moves, never immediately undoing
// the previous one. Every reachable state is solvable by construction.
func (p *Puzzle) Shuffle(moves int, rng *rand.Rand) {
	prev := -1
	for range moves {
		options := p.neighborIndices()
		// Don't step straight back where the blank just came from.
		filtered := options[:0]
		for _, idx := range options {
			if idx != prev {
				filtered = append(filtered, idx)
			}
		}
		prev = p.blank
		p.moveFrom(filtered[rng.Intn(len(filtered))])
	}

	// A short or unlucky walk can wander home; nudge until it has not.
	for p.Solved() {
		options := p.neighborIndices()
		p.moveFrom(options[rng.Intn(len(options))])
	}
}

func (p *Puzzle) neighborIndices() []int {
	bx, by := p.BlankPos()
	var out []int
	if by > 0 {
		out = append(out, (by-1)*p.Cols+bx)
	}
	if by < p.Rows-1 {
		out = append(out, (by+1)*p.Cols+bx)
	}
	if bx > 0 {
		out = append(out, by*p.Cols+bx-1)
	}
	if bx < p.Cols-1 {
		out = append(out, by*p.Cols+bx+1)
	}
	return out
}

// Unwind undoes the most recent move (shuffle or player), returning false
// once the trail is empty. Auto-solve drains this until Solved.
func (p *Puzzle) Unwind() bool {
	if len(p.trail) == 0 {
		return false
	}
	last := p.trail[len(p.trail)-1]
	p.trail = p.trail[:len(p.trail)-1]

	// moveFrom would re-record; swap inline instead.
	p.tiles[p.blank] = p.tiles[last]
	p.tiles[last] = 0
	p.blank = last
	return true
}

// TrailLen returns the number of undoable moves.
func (p *Puzzle) TrailLen() int {
	return len(p.trail)
}

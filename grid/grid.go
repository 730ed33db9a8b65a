// Package grid places tiles on a near-square grid without knowing how many tiles will follow.
//
// Positions are handed out so that after k*k allocations the occupied cells are exactly
// {0..k-1} x {0..k-1}: the sequence closes the current square's new row, then its new
// column, then starts the next square.
//
//	(0,0) (0,1) (1,0) (1,1) (0,2) (1,2) (2,0) (2,1) (2,2) (0,3) ...
package grid

import (
	"fmt"
	"sort"
)

// Position is a cell on the grid. X is the row, Y the column.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Shell returns the index of the square ring p belongs to, i.e. max(X, Y).
func (p Position) Shell() int {
	return max(p.X, p.Y)
}

// Ordinal returns the zero-based index of p in the allocation sequence.
func Ordinal(p Position) int {
	m := p.Shell()
	if p.Y == m && p.X < m {
		return m*m + p.X
	}
	return m*m + m + p.Y
}

// Placement is a position together with the side of the square grid it is laid out on.
type Placement struct {
	Position
	Side int
}

// next applies the allocation recurrence to the previously returned position.
func next(p Position) Position {
	switch {
	case p.Y == p.X:
		return Position{0, p.Y + 1}
	case p.Y == p.X+1:
		return Position{p.Y, 0}
	case p.X < p.Y:
		return Position{p.X + 1, p.Y}
	default:
		return Position{p.X, p.Y + 1}
	}
}

// Allocator hands out distinct positions. It is not safe for concurrent use;
// the owner of the tile collection drives it.
type Allocator struct {
	current Position
	started bool
	free    []Position
	used    map[Position]struct{}
}

// NewAllocator returns an allocator whose first position is (0, 0).
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[Position]struct{})}
}

// Next returns the next free position. Released positions are reused first,
// earliest in the sequence first.
func (a *Allocator) Next() Position {
	if len(a.free) > 0 {
		p := a.free[0]
		a.free = a.free[1:]
		a.used[p] = struct{}{}
		return p
	}

	if a.started {
		a.current = next(a.current)
	} else {
		a.started = true
	}
	a.used[a.current] = struct{}{}
	return a.current
}

// Release returns p to the pool. Releasing a position that is not allocated is a no-op.
func (a *Allocator) Release(p Position) {
	if _, ok := a.used[p]; !ok {
		return
	}
	delete(a.used, p)

	i := sort.Search(len(a.free), func(i int) bool {
		return Ordinal(a.free[i]) >= Ordinal(p)
	})
	a.free = append(a.free, Position{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = p
}

// Len returns the number of allocated positions.
func (a *Allocator) Len() int {
	return len(a.used)
}

// Side returns the side of the smallest square, anchored at (0, 0), that holds every allocated position.
func (a *Allocator) Side() int {
	side := 0
	for p := range a.used {
		side = max(side, p.Shell()+1)
	}
	return side
}

// Place wraps p with the current grid side.
func (a *Allocator) Place(p Position) Placement {
	return Placement{Position: p, Side: max(a.Side(), p.Shell()+1)}
}

package sudoku

import (
	"gridsolve/internal/bitmask"
	"gridsolve/internal/solver"
)

// Solvable adapts *Board to the generic solver.Solvable capability. Guesses
// and the guess argument to Assign/Possibility are single-bit CellMask
// values, not raw digits.
type Solvable struct {
	Board *Board
}

var _ solver.Solvable = (*Solvable)(nil)

// NewSolvable wraps a board for use with the generic search.
func NewSolvable(b *Board) *Solvable {
	return &Solvable{Board: b}
}

func (s *Solvable) Clone() solver.Solvable {
	return &Solvable{Board: s.Board.Clone()}
}

func (s *Solvable) Assign(index, guess int) bool {
	digit, ok := bitmask.CellMask(guess).Single()
	if !ok {
		return false
	}
	return s.Board.Assign(index, digit)
}

func (s *Solvable) Deduce() bool {
	return s.Board.Deduce()
}

func (s *Solvable) NextIndexToGuess() (int, bool) {
	return s.Board.NextIndexToGuess()
}

// Guesses returns the singleton masks of index's current candidates.
func (s *Solvable) Guesses(index int) []int {
	digits := s.Board.Grid[index].Digits()
	out := make([]int, len(digits))
	for i, d := range digits {
		out[i] = int(bitmask.Bit(d))
	}
	return out
}

func (s *Solvable) Solved() bool {
	return s.Board.AllSolved()
}

// Indices returns 0..n-1; Sudoku has no cell ordering preference for the
// BFS true-candidates strategy.
func (s *Solvable) Indices() []int {
	n := len(s.Board.Grid)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (s *Solvable) Possibility(index, guess int) bool {
	return s.Board.Grid[index].Intersect(bitmask.CellMask(guess)) != 0
}

// Merge unions candidate masks cell-by-cell; it does not touch the solved
// or used-digits masks, since the merged result represents accumulated true
// candidates, not a legal board state.
func (s *Solvable) Merge(other solver.Solvable) {
	o := other.(*Solvable)
	for i := range s.Board.Grid {
		s.Board.Grid[i] = s.Board.Grid[i].Union(o.Board.Grid[i])
	}
}

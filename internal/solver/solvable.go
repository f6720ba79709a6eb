// Package solver implements the generic backtracking search framework: the
// Solvable capability any puzzle must expose, a lazy SolutionIterator built
// on an explicit frame stack, and the true-candidates strategies layered on
// top of it. Nothing here knows about Sudoku or Yin-Yang specifically.
package solver

// Solvable is the capability a puzzle exposes so the generic search can
// drive it. Implementations live in internal/sudoku and internal/yinyang.
type Solvable interface {
	// Clone deep-copies mutable state; shared immutable metadata may be
	// aliased.
	Clone() Solvable

	// Assign places guess at index. Returns false if the puzzle becomes
	// unsolvable. Must be idempotent for an already-assigned (index, guess).
	Assign(index, guess int) bool

	// Deduce runs all cheap logical deductions to a fixed point. Returns
	// false iff a contradiction is detected.
	Deduce() bool

	// NextIndexToGuess returns an index with more than one candidate, or
	// (-1, false) if no unresolved cell remains.
	NextIndexToGuess() (int, bool)

	// Guesses returns the candidate values at index, in the order the
	// iterator should pop them from (last popped first).
	Guesses(index int) []int

	// Solved reports whether every cell is determined and every
	// constraint holds.
	Solved() bool

	// Indices returns the enumeration order used by the BFS true-candidates
	// strategy.
	Indices() []int

	// Possibility reports whether guess is still possible at index.
	Possibility(index, guess int) bool

	// Merge unions candidate state from other into the receiver, in place.
	Merge(other Solvable)
}

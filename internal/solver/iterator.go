package solver

// frame is one level of the explicit search stack: a board snapshot, the
// cell index being guessed, and the guesses not yet tried at that index.
// Guesses are tried from the end of the slice backward, which is what makes
// the iterator's enumeration order reproducible; callers depend on a stable
// ordering tied to Guesses().
type frame struct {
	board Solvable
	index int
	gs    []int
}

// Iterator is a lazy, restartable enumerator over all solutions of a
// Solvable puzzle, built as an explicit stack of frames so that arbitrarily
// deep search trees never grow the Go call stack.
type Iterator struct {
	stack []frame
}

// NewIterator clones p, runs Deduce, and seeds the search stack. A
// contradiction at construction leaves the iterator empty, so the first
// Next call returns (nil, false).
func NewIterator(p Solvable) *Iterator {
	it := &Iterator{}

	b := p.Clone()
	if !b.Deduce() {
		return it
	}

	idx, ok := b.NextIndexToGuess()
	if !ok {
		if b.Solved() {
			it.stack = append(it.stack, frame{board: b, index: -1})
		}
		return it
	}

	it.stack = append(it.stack, frame{board: b, index: idx, gs: b.Guesses(idx)})
	return it
}

// Next returns the next solution, or (nil, false) once the search is
// exhausted. Subsequent calls after exhaustion keep returning (nil, false).
func (it *Iterator) Next() (Solvable, bool) {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]

		if top.board.Solved() {
			it.stack = it.stack[:len(it.stack)-1]
			return top.board, true
		}

		last := len(top.gs) - 1
		v := top.gs[last]
		remaining := top.gs[:last]

		it.stack = it.stack[:len(it.stack)-1]
		if len(remaining) > 0 {
			it.stack = append(it.stack, frame{board: top.board.Clone(), index: top.index, gs: remaining})
		}

		b := top.board
		if !b.Assign(top.index, v) {
			continue
		}
		if !b.Deduce() {
			continue
		}
		if b.Solved() {
			return b, true
		}

		j, ok := b.NextIndexToGuess()
		if !ok {
			continue
		}
		it.stack = append(it.stack, frame{board: b, index: j, gs: b.Guesses(j)})
	}
	return nil, false
}

// Count drains the iterator and returns how many solutions it produced.
// Intended for small-search-space tests and cross-checks against the
// parallel counting search, not for production counting (see
// internal/sudoku's CountSolutions for that).
func (it *Iterator) Count() int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

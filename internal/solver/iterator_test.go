package solver

import "testing"

// binaryPuzzle is a minimal Solvable used only to exercise the generic
// iterator: n independent cells, each either 0 or 1, no constraints at all.
// It lets the tests pin down ordering and counts without dragging in a real
// puzzle domain.
type binaryPuzzle struct {
	n      int
	values []int // -1 means unassigned
}

func newBinaryPuzzle(n int) *binaryPuzzle {
	v := make([]int, n)
	for i := range v {
		v[i] = -1
	}
	return &binaryPuzzle{n: n, values: v}
}

func (b *binaryPuzzle) Clone() Solvable {
	v := make([]int, b.n)
	copy(v, b.values)
	return &binaryPuzzle{n: b.n, values: v}
}

func (b *binaryPuzzle) Assign(index, guess int) bool {
	b.values[index] = guess
	return true
}

func (b *binaryPuzzle) Deduce() bool { return true }

func (b *binaryPuzzle) NextIndexToGuess() (int, bool) {
	for i, v := range b.values {
		if v == -1 {
			return i, true
		}
	}
	return -1, false
}

func (b *binaryPuzzle) Guesses(index int) []int { return []int{0, 1} }

func (b *binaryPuzzle) Solved() bool {
	for _, v := range b.values {
		if v == -1 {
			return false
		}
	}
	return true
}

func (b *binaryPuzzle) Indices() []int {
	idx := make([]int, b.n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (b *binaryPuzzle) Possibility(index, guess int) bool {
	return b.values[index] == -1 || b.values[index] == guess
}

func (b *binaryPuzzle) Merge(other Solvable) {}

func TestIteratorCountsAllCombinations(t *testing.T) {
	it := NewIterator(newBinaryPuzzle(4))
	if got, want := it.Count(), 1<<4; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}

func TestIteratorOrderIsReverseOfGuesses(t *testing.T) {
	it := NewIterator(newBinaryPuzzle(2))

	// Guesses(index) = [0, 1], popped from the end, so the first solution
	// assigns 1 to every cell, the second toggles the last cell to 0, etc.
	want := [][]int{
		{1, 1},
		{1, 0},
		{0, 1},
		{0, 0},
	}

	for i, expect := range want {
		sol, ok := it.Next()
		if !ok {
			t.Fatalf("solution %d: iterator exhausted early", i)
		}
		got := sol.(*binaryPuzzle).values
		if got[0] != expect[0] || got[1] != expect[1] {
			t.Errorf("solution %d = %v, want %v", i, got, expect)
		}
	}

	if _, ok := it.Next(); ok {
		t.Error("expected iterator to be exhausted")
	}
}

func TestIteratorIdempotentAfterExhaustion(t *testing.T) {
	it := NewIterator(newBinaryPuzzle(1))
	it.Count()
	for i := 0; i < 3; i++ {
		if _, ok := it.Next(); ok {
			t.Fatalf("call %d: expected (nil, false) after exhaustion", i)
		}
	}
}

// contradictingPuzzle always fails Deduce, so construction should yield an
// empty iterator.
type contradictingPuzzle struct{ binaryPuzzle }

func (c *contradictingPuzzle) Clone() Solvable {
	return &contradictingPuzzle{binaryPuzzle{n: c.n, values: append([]int(nil), c.values...)}}
}
func (c *contradictingPuzzle) Deduce() bool { return false }

func TestIteratorYieldsNothingOnContradiction(t *testing.T) {
	p := &contradictingPuzzle{binaryPuzzle{n: 2, values: []int{-1, -1}}}
	it := NewIterator(p)
	if _, ok := it.Next(); ok {
		t.Error("expected no solutions from a puzzle that never deduces")
	}
}

func TestIteratorSingleSolutionWhenAlreadySolved(t *testing.T) {
	p := &binaryPuzzle{n: 2, values: []int{1, 0}}
	it := NewIterator(p)
	sol, ok := it.Next()
	if !ok {
		t.Fatal("expected one solution")
	}
	if !sol.Solved() {
		t.Error("returned solution should be solved")
	}
	if _, ok := it.Next(); ok {
		t.Error("expected exactly one solution")
	}
}

func TestDFSUnionMatchesBruteForceUnion(t *testing.T) {
	// Use a puzzle over {0,1} where cell 0 and cell 1 must be equal, via a
	// constrained Assign that rejects the mismatched branch. This lets us
	// confirm DFSUnion only unions over real solutions, not all guesses.
	p := newEqualityPuzzle(2)
	result := DFSUnion(p)
	if result == nil {
		t.Fatal("expected a result")
	}
	ep := result.(*equalityPuzzle)
	for i, v := range ep.merged {
		if v != bothBits {
			t.Errorf("cell %d merged mask = %02b, want both bits set (%02b)", i, v, bothBits)
		}
	}
}

// equalityPuzzle requires all cells to take the same 0/1 value; used to
// confirm DFSUnion/BFSProbe only count genuine solutions.
const bothBits = 0b11

type equalityPuzzle struct {
	n      int
	values []int
	merged []int // bitmask of values seen across merges, for test assertions
}

func newEqualityPuzzle(n int) *equalityPuzzle {
	v := make([]int, n)
	m := make([]int, n)
	for i := range v {
		v[i] = -1
	}
	return &equalityPuzzle{n: n, values: v, merged: m}
}

func (e *equalityPuzzle) Clone() Solvable {
	v := append([]int(nil), e.values...)
	m := append([]int(nil), e.merged...)
	return &equalityPuzzle{n: e.n, values: v, merged: m}
}

func (e *equalityPuzzle) firstAssigned() (int, bool) {
	for _, v := range e.values {
		if v != -1 {
			return v, true
		}
	}
	return 0, false
}

func (e *equalityPuzzle) Assign(index, guess int) bool {
	if want, ok := e.firstAssigned(); ok && want != guess {
		return false
	}
	e.values[index] = guess
	return true
}

func (e *equalityPuzzle) Deduce() bool {
	if want, ok := e.firstAssigned(); ok {
		for i, v := range e.values {
			if v == -1 {
				e.values[i] = want
			} else if v != want {
				return false
			}
		}
	}
	return true
}

func (e *equalityPuzzle) NextIndexToGuess() (int, bool) {
	for i, v := range e.values {
		if v == -1 {
			return i, true
		}
	}
	return -1, false
}

func (e *equalityPuzzle) Guesses(index int) []int { return []int{0, 1} }

func (e *equalityPuzzle) Solved() bool {
	_, ok := e.firstAssigned()
	if !ok {
		return false
	}
	for _, v := range e.values {
		if v == -1 {
			return false
		}
	}
	return true
}

func (e *equalityPuzzle) Indices() []int {
	idx := make([]int, e.n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (e *equalityPuzzle) Possibility(index, guess int) bool {
	want, ok := e.firstAssigned()
	return !ok || want == guess
}

func (e *equalityPuzzle) Merge(other Solvable) {
	o := other.(*equalityPuzzle)
	for i, v := range o.values {
		if v >= 0 {
			e.merged[i] |= 1 << uint(v)
		}
	}
	for i, v := range e.values {
		if v >= 0 {
			e.merged[i] |= 1 << uint(v)
		}
	}
}

func TestBFSProbeFindsBothSolutions(t *testing.T) {
	p := newEqualityPuzzle(3)
	result := BFSProbe(p).(*equalityPuzzle)
	for i, v := range result.merged {
		if v != bothBits {
			t.Errorf("cell %d merged mask = %02b, want %02b", i, v, bothBits)
		}
	}
}

func TestHybridFallsBackToBFSProbe(t *testing.T) {
	p := newEqualityPuzzle(3)
	result := Hybrid(p, 1).(*equalityPuzzle) // threshold of 1 forces the BFS path
	for i, v := range result.merged {
		if v != bothBits {
			t.Errorf("cell %d merged mask = %02b, want %02b", i, v, bothBits)
		}
	}
}

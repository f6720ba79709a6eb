package yinyang

import "gridsolve/internal/solver"

// Solvable adapts *Grid to the generic solver.Solvable capability.
type Solvable struct {
	Grid *Grid
}

var _ solver.Solvable = (*Solvable)(nil)

// NewSolvable wraps a grid for use with the generic search.
func NewSolvable(g *Grid) *Solvable {
	return &Solvable{Grid: g}
}

func (s *Solvable) Clone() solver.Solvable {
	return &Solvable{Grid: s.Grid.Clone()}
}

// Assign writes guess (a Color) to index and runs the full
// connectivity+2x2 check.
func (s *Solvable) Assign(index, guess int) bool {
	color := Color(guess)
	cur := s.Grid.Data[index]
	if cur.Known() {
		return cur == color
	}
	if !cur.Has(color) {
		return false
	}
	s.Grid.Data[index] = color
	return s.Grid.CheckConnectivity()
}

func (s *Solvable) Deduce() bool {
	return s.Grid.Deduce()
}

// NextIndexToGuess returns the first unknown cell.
func (s *Solvable) NextIndexToGuess() (int, bool) {
	for i, c := range s.Grid.Data {
		if !c.Known() {
			return i, true
		}
	}
	return -1, false
}

// Guesses always returns the two colors, Color2 first so the iterator
// (which pops from the end of the slice) tries Color1 first.
func (s *Solvable) Guesses(index int) []int {
	return []int{int(Color2), int(Color1)}
}

// Solved reports no cell is unknown and the global check passes.
func (s *Solvable) Solved() bool {
	for _, c := range s.Grid.Data {
		if !c.Known() {
			return false
		}
	}
	return s.Grid.CheckConnectivity()
}

// Indices lists border cells first, then interior cells, cueing the BFS
// true-candidates strategy to probe the most constrained cells sooner.
func (s *Solvable) Indices() []int {
	onBorder := make([]bool, len(s.Grid.Data))
	out := make([]int, 0, len(s.Grid.Data))
	for _, idx := range s.Grid.Border {
		if !onBorder[idx] {
			onBorder[idx] = true
			out = append(out, idx)
		}
	}
	for i := range s.Grid.Data {
		if !onBorder[i] {
			out = append(out, i)
		}
	}
	return out
}

func (s *Solvable) Possibility(index, guess int) bool {
	return s.Grid.Data[index].Has(Color(guess))
}

// Merge unions candidate state bitwise, matching the Color encoding where
// Unknown = Color1 | Color2.
func (s *Solvable) Merge(other solver.Solvable) {
	o := other.(*Solvable)
	for i := range s.Grid.Data {
		s.Grid.Data[i] |= o.Grid.Data[i]
	}
}

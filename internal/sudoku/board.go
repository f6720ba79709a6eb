package sudoku

import "gridsolve/internal/bitmask"

// Board is the mutable per-search-branch state: the grid of candidate
// masks, the solved-cell mask, and the used-digits mask, all paired with a
// shared, read-only BoardMeta. Cloning a Board copies the grid and masks
// but aliases Meta, which is what makes branching cheap.
type Board struct {
	Meta   *BoardMeta
	Grid   []bitmask.CellMask
	Solved bitmask.SolvedMask
	Used   bitmask.CellMask
}

// NewBoard builds a board from a slice of givens (0 meaning empty) and a
// shared BoardMeta. Construction is the only place BoardMeta may still be
// assembled by the caller; after this call it must not be mutated.
func NewBoard(meta *BoardMeta, givens []int) (*Board, bool) {
	n := meta.Size * meta.Size
	b := &Board{
		Meta:   meta,
		Grid:   make([]bitmask.CellMask, n),
		Solved: bitmask.NewSolvedMask(n),
	}

	full := meta.fullMask()
	for i := range b.Grid {
		b.Grid[i] = full
	}

	for i := 0; i < n && i < len(givens); i++ {
		if givens[i] == 0 {
			continue
		}
		if !b.Assign(i, givens[i]) {
			return b, false
		}
	}

	for _, q := range meta.Quads {
		if !forceQuad(b, q) {
			return b, false
		}
	}

	return b, true
}

// Clone copies the grid and masks; Meta is aliased.
func (b *Board) Clone() *Board {
	grid := make([]bitmask.CellMask, len(b.Grid))
	copy(grid, b.Grid)
	return &Board{
		Meta:   b.Meta,
		Grid:   grid,
		Solved: b.Solved.Clone(),
		Used:   b.Used,
	}
}

// CellSolved reports whether cell i already has exactly one candidate and
// is marked solved.
func (b *Board) CellSolved(i int) bool {
	return b.Solved.Get(i)
}

// AllSolved reports whether every cell is marked solved.
func (b *Board) AllSolved() bool {
	return b.Solved.PopCount() == len(b.Grid)
}

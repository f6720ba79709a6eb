package sudoku

import "gridsolve/internal/bitmask"

// eliminate clears mask from cell index's candidates. Idempotent: repeating
// with the same mask returns Same and leaves the cell unchanged.
func (b *Board) eliminate(index int, mask bitmask.CellMask) Elimination {
	before := b.Grid[index]
	after := before.Subtract(mask)
	if after == before {
		return Same
	}
	b.Grid[index] = after
	if after.IsEmpty() {
		return Contradiction
	}
	return Eliminated
}

// RestrictCandidates eliminates from cell index every candidate digit not
// in allowed. Used by the adapter to apply given pencil marks to ungiven
// cells. Returns false if the restriction leaves the cell without
// candidates.
func (b *Board) RestrictCandidates(index int, allowed bitmask.CellMask) bool {
	others := b.Grid[index].Subtract(allowed)
	if others == 0 {
		return true
	}
	return b.eliminate(index, others) != Contradiction
}

// Assign places the single digit at index. On an unassigned cell, digit
// must still be a candidate there; otherwise Assign returns false. Returns
// false if the board becomes unsolvable. Calling Assign again with the same
// (index, digit) on an already-solved cell is a no-op that returns true;
// calling it with a different digit on an already-solved cell is a
// contradiction.
func (b *Board) Assign(index, digit int) bool {
	singleton := bitmask.Bit(digit)

	if b.Solved.Get(index) {
		return b.Grid[index] == singleton
	}

	if !b.Grid[index].Has(digit) {
		return false
	}

	b.Grid[index] = singleton
	b.Solved.Set(index)
	b.Used = b.Used.Set(digit)
	if b.Used.Count() > b.Meta.Size {
		return false
	}

	result := Same
	for _, peer := range b.Meta.Peers[index] {
		result = result.Combine(b.eliminate(peer, singleton))
		if result == Contradiction {
			return false
		}
	}

	for _, qi := range b.Meta.QuadsOfCell[index] {
		if !checkQuad(b, b.Meta.Quads[qi]) {
			return false
		}
	}

	return true
}

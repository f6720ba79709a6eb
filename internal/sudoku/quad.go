package sudoku

import "gridsolve/internal/bitmask"

// requirement returns the digits a quad constrains together with how many
// times each must appear among the four cells (1 for Single, 2 for
// Double).
func (q Quad) requirement() map[int]int {
	req := make(map[int]int)
	for _, d := range q.Single.Digits() {
		req[d] = 1
	}
	for _, d := range q.Double.Digits() {
		req[d] = 2
	}
	return req
}

// checkQuad re-verifies and re-forces a quad's count/coverage invariant
// after an assignment inside it. It is also used for the initial forcing
// pass at board construction. For each required digit d with a remaining
// occurrence requirement need, if the number of unsolved cells in the
// quad that can still carry d equals exactly need, every digit but d is
// masked off those cells (they are the only slots left to satisfy d).
// Returns false on contradiction: either an over-assignment of a required
// digit, or too few remaining candidate cells to meet the requirement.
func checkQuad(b *Board, q Quad) bool {
	width := b.Meta.Size
	cells := q.Cells(width)

	assignedCount := make(map[int]int)
	for _, c := range cells {
		if b.Solved.Get(c) {
			if v, ok := b.Grid[c].Single(); ok {
				assignedCount[v]++
			}
		}
	}

	for d, req := range q.requirement() {
		need := req - assignedCount[d]
		if need < 0 {
			return false
		}
		if need == 0 {
			continue
		}

		var free []int
		for _, c := range cells {
			if !b.Solved.Get(c) && b.Grid[c].Has(d) {
				free = append(free, c)
			}
		}
		if len(free) < need {
			return false
		}
		if len(free) == need {
			for _, c := range free {
				others := b.Grid[c].Subtract(bitmask.Bit(d))
				if others == 0 {
					continue
				}
				if b.eliminate(c, others) == Contradiction {
					return false
				}
			}
		}
	}

	return true
}

// forceQuad runs checkQuad at construction time, before any cells in the
// quad have necessarily been touched by a peer assignment.
func forceQuad(b *Board, q Quad) bool {
	return checkQuad(b, q)
}

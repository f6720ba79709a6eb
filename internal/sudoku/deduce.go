package sudoku

import "gridsolve/internal/bitmask"

// nakedSingles assigns every unsolved cell whose mask has exactly one
// candidate, iterating until no change. Returns false on contradiction.
func nakedSingles(b *Board) bool {
	for {
		changed := false
		for i := range b.Grid {
			if b.Solved.Get(i) {
				continue
			}
			digit, ok := b.Grid[i].Single()
			if !ok {
				continue
			}
			if !b.Assign(i, digit) {
				return false
			}
			changed = true
		}
		if !changed {
			return true
		}
	}
}

// hiddenSingles runs one pass: for each unit and each digit, if exactly one
// cell in the unit still allows that digit, it is assigned there. A digit
// with no host cell in some unit is a contradiction. Returns (changed,ok).
func hiddenSingles(b *Board) (bool, bool) {
	changed := false
	for _, u := range b.Meta.Units {
		for d := 1; d <= b.Meta.MaxVal; d++ {
			already := false
			var host = -1
			count := 0
			for _, c := range u.Cells {
				if b.Solved.Get(c) {
					if v, ok := b.Grid[c].Single(); ok && v == d {
						already = true
					}
					continue
				}
				if b.Grid[c].Has(d) {
					count++
					host = c
				}
			}
			if already {
				continue
			}
			if count == 0 {
				return changed, false
			}
			if count == 1 {
				if !b.Assign(host, d) {
					return changed, false
				}
				changed = true
			}
		}
	}
	return changed, true
}

// NakedTuples runs one pass of naked-tuple elimination of the given size n:
// for each unit, for each n-combination of digits not yet placed in that
// unit, if the unsolved cells whose candidates are a subset of that
// combination number exactly n, the combination's digits are stripped from
// every other cell of the unit. Available to callers but not invoked by the
// inner Deduce loop (too costly for the default counting path).
func NakedTuples(b *Board, n int) (bool, bool) {
	changed := false
	for _, u := range b.Meta.Units {
		var unplaced []int
		for d := 1; d <= b.Meta.MaxVal; d++ {
			placed := false
			for _, c := range u.Cells {
				if b.Solved.Get(c) {
					if v, ok := b.Grid[c].Single(); ok && v == d {
						placed = true
						break
					}
				}
			}
			if !placed {
				unplaced = append(unplaced, d)
			}
		}

		for _, combo := range combinations(unplaced, n) {
			var comboMask bitmask.CellMask
			for _, d := range combo {
				comboMask = comboMask.Set(d)
			}

			var members []int
			for _, c := range u.Cells {
				if b.Solved.Get(c) {
					continue
				}
				if b.Grid[c].Subtract(comboMask).IsEmpty() && b.Grid[c] != 0 {
					members = append(members, c)
				}
			}
			if len(members) != n {
				continue
			}

			memberSet := make(map[int]bool, len(members))
			for _, m := range members {
				memberSet[m] = true
			}
			for _, c := range u.Cells {
				if memberSet[c] || b.Solved.Get(c) {
					continue
				}
				overlap := b.Grid[c].Intersect(comboMask)
				if overlap == 0 {
					continue
				}
				if b.eliminate(c, overlap) == Contradiction {
					return changed, false
				}
				changed = true
			}
		}
	}
	return changed, true
}

// combinations returns every n-element subset of xs.
func combinations(xs []int, n int) [][]int {
	if n <= 0 || n > len(xs) {
		return nil
	}
	var out [][]int
	var pick func(start int, chosen []int)
	pick = func(start int, chosen []int) {
		if len(chosen) == n {
			combo := make([]int, n)
			copy(combo, chosen)
			out = append(out, combo)
			return
		}
		for i := start; i <= len(xs)-(n-len(chosen)); i++ {
			pick(i+1, append(chosen, xs[i]))
		}
	}
	pick(0, nil)
	return out
}

// Deduce runs naked singles to a fixed point, then one pass of hidden
// singles; if that pass changed anything, it restarts; if the board is
// solved it stops. Naked tuples are not run here. Returns false iff a
// contradiction is detected.
func (b *Board) Deduce() bool {
	for {
		if !nakedSingles(b) {
			return false
		}
		if b.AllSolved() {
			return true
		}
		changed, ok := hiddenSingles(b)
		if !ok {
			return false
		}
		if !changed {
			return true
		}
	}
}

// NextIndexToGuess returns the unsolved cell with the fewest candidates,
// ties broken by smaller index, or (-1, false) if every cell is solved.
func (b *Board) NextIndexToGuess() (int, bool) {
	best := -1
	bestCount := 0
	for i := range b.Grid {
		if b.Solved.Get(i) {
			continue
		}
		c := b.Grid[i].Count()
		if best == -1 || c < bestCount {
			best, bestCount = i, c
		}
	}
	if best == -1 {
		return -1, false
	}
	return best, true
}

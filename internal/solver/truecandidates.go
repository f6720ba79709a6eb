package solver

// DefaultHybridThreshold is the solution-count cutoff at which Hybrid
// abandons exhaustive DFS union in favor of the BFS probe.
const DefaultHybridThreshold = 10000

// DFSUnion takes the first solution as a seed and union-merges every
// subsequent solution into it. Exhaustive; appropriate for puzzles with few
// solutions. Returns nil if the puzzle is unsolvable.
func DFSUnion(p Solvable) Solvable {
	result, _ := dfsUnion(p, 0)
	return result
}

// dfsUnion runs DFS union, stopping early once count exceeds limit (0 means
// unlimited). It reports the accumulated result and how many solutions were
// folded in, which Hybrid needs to decide whether to switch strategies.
func dfsUnion(p Solvable, limit int) (Solvable, int) {
	it := NewIterator(p)
	first, ok := it.Next()
	if !ok {
		return nil, 0
	}

	result := first.Clone()
	count := 1
	for {
		if limit > 0 && count > limit {
			return result, count
		}
		sol, ok := it.Next()
		if !ok {
			return result, count
		}
		result.Merge(sol)
		count++
	}
}

// BFSProbe takes the first solution as a seed, then for each cell (in
// Indices() order) and each currently-possible guess not already present in
// the accumulated result, clones the working puzzle, assigns the guess, and
// asks a fresh iterator for one solution. A cell where exactly one guess
// survived the scan is committed to the working puzzle and propagated with
// Deduce, narrowing the search for the remaining cells. Appropriate for
// puzzles with many solutions but expensive contradiction discovery.
func BFSProbe(p Solvable) Solvable {
	seedIt := NewIterator(p)
	seed, ok := seedIt.Next()
	if !ok {
		return nil
	}

	result := seed.Clone()
	working := p.Clone()
	if !working.Deduce() {
		return result
	}

	for _, idx := range working.Indices() {
		var survivors []int
		for _, v := range working.Guesses(idx) {
			if result.Possibility(idx, v) {
				survivors = append(survivors, v)
				continue
			}
			probe := working.Clone()
			if !probe.Assign(idx, v) {
				continue
			}
			if !probe.Deduce() {
				continue
			}
			probeIt := NewIterator(probe)
			if sol, found := probeIt.Next(); found {
				result.Merge(sol)
				survivors = append(survivors, v)
			}
		}
		if len(survivors) == 1 {
			if working.Assign(idx, survivors[0]) {
				working.Deduce()
			}
		}
	}

	return result
}

// Hybrid runs DFS union but counts solutions; once the count exceeds
// threshold it switches to BFS probe over the original puzzle and merges
// that into the partial result.
func Hybrid(p Solvable, threshold int) Solvable {
	if threshold <= 0 {
		threshold = DefaultHybridThreshold
	}

	result, count := dfsUnion(p, threshold)
	if result == nil {
		return nil
	}
	if count <= threshold {
		return result
	}

	bfsResult := BFSProbe(p)
	if bfsResult != nil {
		result.Merge(bfsResult)
	}
	return result
}

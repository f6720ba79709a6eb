package sudoku

import (
	"fmt"
	"io"
	"log"
	"strings"

	"gridsolve/internal/xerr"
)

// sudokuCount is the number of essentially-different (up to digit
// relabeling) solved grids for a given irregular-region grid size, used by
// BuildIrregular as the ceiling a candidate region layout's solution count
// must stay within to be worth reporting. Known only up to size 9; larger
// sizes have no published value.
var sudokuCount = []int64{
	0, 1, 1, 1, 1, 2, 46080, 100_000_000, 100_000_000, 18_383_222_420_692_992,
}

// partitionIter enumerates, in increasing lexicographic order, every
// restricted growth string of length n that splits the n cells into
// exactly blocks blocks of exactly n/blocks cells each. Restricted growth
// strings (position i's label is at most one more than the highest label
// to its left) are in canonical bijection with set partitions, and the
// per-block capacity check prunes every branch that cannot complete to a
// balanced partition, so the walk is linear in the balanced partitions
// themselves rather than in the full Bell-number space around them.
type partitionIter struct {
	n, blocks, blockSize int
	cur                  []int
	started              bool
	done                 bool
}

func newPartitionIter(n, blocks int, start []int) *partitionIter {
	p := &partitionIter{n: n, blocks: blocks, blockSize: n / blocks, cur: make([]int, n)}
	if len(start) == n {
		copy(p.cur, start)
	} else {
		// Lexicographically first balanced partition: consecutive runs.
		for i := range p.cur {
			p.cur[i] = i / p.blockSize
		}
	}
	return p
}

func (p *partitionIter) Next() ([]int, bool) {
	if p.done {
		return nil, false
	}
	if !p.started {
		p.started = true
		return p.snapshot(), true
	}
	if !p.advance() {
		p.done = true
		return nil, false
	}
	return p.snapshot(), true
}

func (p *partitionIter) snapshot() []int {
	out := make([]int, p.n)
	copy(out, p.cur)
	return out
}

// bound returns the largest label position i may legally take: one more
// than the highest label already used to its left, capped at blocks-1.
func (p *partitionIter) bound(i int) int {
	max := 0
	for j := 0; j < i; j++ {
		if p.cur[j] > max {
			max = p.cur[j]
		}
	}
	b := max + 1
	if b > p.blocks-1 {
		b = p.blocks - 1
	}
	return b
}

// countBelow returns how many positions left of i already carry label v.
func (p *partitionIter) countBelow(i, v int) int {
	count := 0
	for j := 0; j < i; j++ {
		if p.cur[j] == v {
			count++
		}
	}
	return count
}

// advance steps to the lexicographically next balanced string: it finds
// the rightmost position whose label can be raised to one with spare block
// capacity, then refills the suffix minimally. A prefix that keeps every
// block at or under blockSize always completes — the remaining positions
// exactly equal the remaining capacity — so raising a label never needs
// backtracking past the refill.
func (p *partitionIter) advance() bool {
	for i := p.n - 1; i > 0; i-- {
		b := p.bound(i)
		for v := p.cur[i] + 1; v <= b; v++ {
			if p.countBelow(i, v) < p.blockSize {
				p.cur[i] = v
				p.fillSuffix(i + 1)
				return true
			}
		}
	}
	return false
}

// fillSuffix assigns positions from..n-1 the smallest labels with spare
// capacity, preserving the growth-string canonical form.
func (p *partitionIter) fillSuffix(from int) {
	for j := from; j < p.n; j++ {
		for v := 0; v <= p.bound(j); v++ {
			if p.countBelow(j, v) < p.blockSize {
				p.cur[j] = v
				break
			}
		}
	}
}

// regionsFromPartition accepts a partition only if it splits the n=size*size
// cells into exactly size blocks of exactly size cells each — the shape an
// irregular sudoku region set requires.
func regionsFromPartition(partition []int, size int) ([]Region, bool) {
	byBlock := map[int][]int{}
	for i, b := range partition {
		byBlock[b] = append(byBlock[b], i)
	}
	if len(byBlock) != size {
		return nil, false
	}
	regions := make([]Region, 0, size)
	for _, cells := range byBlock {
		if len(cells) != size {
			return nil, false
		}
		regions = append(regions, Region{Cells: cells})
	}
	return regions, true
}

func formatPartition(partition []int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, v := range partition {
		fmt.Fprintf(&sb, "%d ", v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// BuildIrregular enumerates every way to split a size x size grid into size
// equal-size irregular regions, canonically gives cell i digit i+1 for the
// first size cells (breaking the row/digit relabeling symmetry), and
// reports every layout whose solution count is positive and at most the
// known target for that size. start, if non-nil, resumes enumeration from
// a specific partition rather than the beginning.
func BuildIrregular(size int, start []int, out io.Writer) error {
	if size < 1 || size >= len(sudokuCount) {
		return xerr.New(xerr.InputShape, fmt.Sprintf("no known target solution count for size %d", size))
	}
	target := sudokuCount[size]

	n := size * size
	it := newPartitionIter(n, size, start)

	qualified, total := 0, 0
	for {
		partition, ok := it.Next()
		if !ok {
			break
		}

		regions, ok := regionsFromPartition(partition, size)
		if !ok {
			continue
		}

		meta := BuildMeta(size, regions, nil, nil)
		givens := make([]int, n)
		for i := 0; i < size; i++ {
			givens[i] = i + 1
		}
		board, ok := NewBoard(meta, givens)
		if !ok {
			continue
		}

		total++
		count := CountSolutionsMax(board, int(target), DefaultCountOptions())
		if count > 0 && int64(count) <= target {
			fmt.Fprintln(out, count)
			fmt.Fprintln(out, formatPartition(partition))
			qualified++
		}
		if total > 100_000_000 {
			break
		}
	}

	log.Printf("build-irregular size=%d: %d/%d partitions qualified", size, qualified, total)
	return nil
}

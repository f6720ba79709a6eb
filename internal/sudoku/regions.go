package sudoku

import "gridsolve/internal/bitmask"

// DefaultRegionShape returns the (w, h) sub-rectangle shape used for the
// default regions of a size-s grid: 9 -> (3,3), 6 -> (3,2), 4 -> (2,2),
// 16 -> (4,4), and for sizes without a perfect-square factorization, the
// divisor pair closest to square (w >= h).
func DefaultRegionShape(size int) (w, h int) {
	if size <= 0 {
		return size, 1
	}
	for d := isqrt(size); d >= 1; d-- {
		if size%d == 0 {
			return size / d, d
		}
	}
	return size, 1
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// defaultRegions builds the box-analogue regions for a size-s grid using
// DefaultRegionShape, arranging size/w box-columns by size/h box-rows.
func defaultRegions(size int) []Region {
	w, h := DefaultRegionShape(size)
	boxCols := size / w
	boxRows := size / h

	regions := make([]Region, 0, boxCols*boxRows)
	for br := 0; br < boxRows; br++ {
		for bc := 0; bc < boxCols; bc++ {
			cells := make([]int, 0, size)
			for r := br * h; r < br*h+h; r++ {
				for c := bc * w; c < bc*w+w; c++ {
					cells = append(cells, r*size+c)
				}
			}
			regions = append(regions, Region{Cells: cells})
		}
	}
	return regions
}

// rowsAndCols builds the row and column units for a size-s grid.
func rowsAndCols(size int) (rows, cols []Region) {
	rows = make([]Region, size)
	cols = make([]Region, size)
	for i := 0; i < size; i++ {
		rowCells := make([]int, size)
		colCells := make([]int, size)
		for j := 0; j < size; j++ {
			rowCells[j] = i*size + j
			colCells[j] = j*size + i
		}
		rows[i] = Region{Cells: rowCells}
		cols[i] = Region{Cells: colCells}
	}
	return rows, cols
}

// diagonalUnits builds the two main-diagonal units. The FPuzzles adapter
// does not call it; it builds its own diagonal+/diagonal- units.
func diagonalUnits(size int) (forward, backward Region) {
	f := make([]int, size)
	b := make([]int, size)
	for i := 0; i < size; i++ {
		f[i] = i*size + i
		b[i] = i*size + (size - 1 - i)
	}
	return Region{Cells: f}, Region{Cells: b}
}

// BuildMeta assembles a BoardMeta from a grid size and an arbitrary set of
// extra units (custom regions, diagonals, disjoint groups, extra regions)
// and quadruple clues. Regions passed in customRegions replace the default
// box-analogue regions when non-empty; each must contain exactly size
// cells (InvalidPuzzle on violation is the adapter's job to check before
// calling BuildMeta). MaxVal is set equal to Size; use BuildMetaWithMaxVal
// when the two must differ.
func BuildMeta(size int, customRegions []Region, extraUnits []Region, quads []Quad) *BoardMeta {
	return BuildMetaWithMaxVal(size, size, customRegions, extraUnits, quads)
}

// BuildMetaWithMaxVal is BuildMeta with an explicit digit pool: maxVal may
// exceed size, in which case a cell's candidate set draws from 1..=maxVal
// even though each unit still holds only size cells — the "puzzle smaller
// than its digit pool" case Board.Assign's used-digits check exists to
// catch. No current wire format (FPuzzles JSON, the compact string)
// carries a maxVal distinct from size, so neither internal/fpuzzles nor
// cmd/gridsolve calls this directly today; it exists so the invariant has
// a real, exercisable construction path (see sudoku_test.go).
func BuildMetaWithMaxVal(size, maxVal int, customRegions []Region, extraUnits []Region, quads []Quad) *BoardMeta {
	rows, cols := rowsAndCols(size)

	regions := customRegions
	if len(regions) == 0 {
		regions = defaultRegions(size)
	}

	units := make([]Region, 0, len(rows)+len(cols)+len(regions)+len(extraUnits))
	units = append(units, rows...)
	units = append(units, cols...)
	units = append(units, regions...)
	units = append(units, extraUnits...)

	totalCells := size * size
	unitsOfCell := make([][]int, totalCells)
	for ui, u := range units {
		for _, c := range u.Cells {
			unitsOfCell[c] = append(unitsOfCell[c], ui)
		}
	}

	peers := make([][]int, totalCells)
	for c := 0; c < totalCells; c++ {
		seen := make(map[int]bool)
		for _, ui := range unitsOfCell[c] {
			for _, other := range units[ui].Cells {
				if other != c && !seen[other] {
					seen[other] = true
					peers[c] = append(peers[c], other)
				}
			}
		}
	}

	quadsOfCell := make([][]int, totalCells)
	for qi, q := range quads {
		for _, c := range q.Cells(size) {
			quadsOfCell[c] = append(quadsOfCell[c], qi)
		}
	}

	return &BoardMeta{
		Size:        size,
		MaxVal:      maxVal,
		Units:       units,
		UnitsOfCell: unitsOfCell,
		Peers:       peers,
		Quads:       quads,
		QuadsOfCell: quadsOfCell,
	}
}

// fullMask returns the all-candidates mask for this board's MaxVal.
func (m *BoardMeta) fullMask() bitmask.CellMask {
	return bitmask.Full(m.MaxVal)
}

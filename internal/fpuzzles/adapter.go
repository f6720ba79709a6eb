package fpuzzles

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gridsolve/internal/bitmask"
	"gridsolve/internal/sudoku"
	"gridsolve/internal/xerr"
)

// Decode parses an FPuzzles JSON document, rejecting any top-level field
// the format doesn't define.
func Decode(data []byte) (*Puzzle, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Puzzle
	if err := dec.Decode(&p); err != nil {
		return nil, xerr.Wrap(xerr.TransportError, "malformed FPuzzles document", err)
	}
	return &p, nil
}

// Build validates an FPuzzles document's shape and constructs the Board it
// describes: custom or default regions, diagonals, disjoint groups, extra
// regions, and quadruple clues, with the grid's givens applied.
func Build(p *Puzzle) (*sudoku.Board, error) {
	if p.Size < 1 || p.Size > bitmask.MaxSupportedDigit-1 {
		return nil, xerr.New(xerr.InputShape, fmt.Sprintf("size %d out of range 1..=16", p.Size))
	}
	if len(p.Grid) != p.Size {
		return nil, xerr.New(xerr.InputShape, fmt.Sprintf("grid has %d rows, want %d", len(p.Grid), p.Size))
	}
	for r, row := range p.Grid {
		if len(row) != p.Size {
			return nil, xerr.New(xerr.InputShape, fmt.Sprintf("row %d has %d cells, want %d", r, len(row), p.Size))
		}
	}

	customRegions, err := buildCustomRegions(p)
	if err != nil {
		return nil, err
	}

	extraUnits, err := buildExtraUnits(p)
	if err != nil {
		return nil, err
	}

	quads, err := buildQuads(p)
	if err != nil {
		return nil, err
	}

	meta := sudoku.BuildMeta(p.Size, customRegions, extraUnits, quads)

	givens := make([]int, p.Size*p.Size)
	for r, row := range p.Grid {
		for c, cell := range row {
			if cell.Value != nil {
				givens[r*p.Size+c] = *cell.Value
			}
		}
	}

	board, ok := sudoku.NewBoard(meta, givens)
	if !ok {
		return nil, xerr.New(xerr.InvalidPuzzle, "given digits create an immediate contradiction")
	}

	// Given pencil marks narrow an ungiven cell to exactly the listed
	// candidates; every digit not listed is eliminated.
	for r, row := range p.Grid {
		for c, cell := range row {
			if cell.Value != nil || len(cell.GivenPencilMarks) == 0 {
				continue
			}
			var allowed bitmask.CellMask
			for _, d := range cell.GivenPencilMarks {
				if d < 1 || d > p.Size {
					return nil, xerr.New(xerr.InputShape, fmt.Sprintf("pencil mark %d at R%dC%d out of range 1..=%d", d, r+1, c+1, p.Size))
				}
				allowed = allowed.Set(d)
			}
			if !board.RestrictCandidates(r*p.Size+c, allowed) {
				return nil, xerr.New(xerr.InvalidPuzzle, fmt.Sprintf("given pencil marks at R%dC%d leave no candidates", r+1, c+1))
			}
		}
	}

	return board, nil
}

func buildCustomRegions(p *Puzzle) ([]sudoku.Region, error) {
	if !p.IsIrregular() {
		return nil, nil
	}

	byRegion := map[int][]int{}
	for r, row := range p.Grid {
		for c, cell := range row {
			if cell.Region == nil {
				return nil, xerr.New(xerr.InvalidPuzzle, fmt.Sprintf("cell R%dC%d missing region in an irregular puzzle", r+1, c+1))
			}
			idx := r*p.Size + c
			byRegion[*cell.Region] = append(byRegion[*cell.Region], idx)
		}
	}

	regions := make([]sudoku.Region, 0, len(byRegion))
	for id, cells := range byRegion {
		if len(cells) != p.Size {
			return nil, xerr.New(xerr.InvalidPuzzle, fmt.Sprintf("region %d has %d cells, want %d", id, len(cells), p.Size))
		}
		regions = append(regions, sudoku.Region{Cells: cells})
	}
	return regions, nil
}

func buildExtraUnits(p *Puzzle) ([]sudoku.Region, error) {
	var extra []sudoku.Region

	if p.DiagonalPlus {
		// "diagonal+" is the positive/anti-diagonal: row+col = size-1.
		cells := make([]int, p.Size)
		for i := range cells {
			cells[i] = i*p.Size + (p.Size - 1 - i)
		}
		extra = append(extra, sudoku.Region{Cells: cells})
	}
	if p.DiagonalMinus {
		// "diagonal-" is the negative/main diagonal: row = col.
		cells := make([]int, p.Size)
		for i := range cells {
			cells[i] = i*p.Size + i
		}
		extra = append(extra, sudoku.Region{Cells: cells})
	}
	if p.DisjointGroups {
		extra = append(extra, disjointGroups(p.Size)...)
	}
	for _, er := range p.ExtraRegion {
		cells := make([]int, 0, len(er.Cells))
		for _, ref := range er.Cells {
			idx, err := ParseRC(ref, p.Size)
			if err != nil {
				return nil, err
			}
			cells = append(cells, idx)
		}
		extra = append(extra, sudoku.Region{Cells: cells})
	}
	return extra, nil
}

// disjointGroups builds one region per relative position within the
// default box shape: all cells occupying that same position across every
// box must carry distinct digits.
func disjointGroups(size int) []sudoku.Region {
	w, h := sudoku.DefaultRegionShape(size)
	boxCols, boxRows := size/w, size/h

	regions := make([]sudoku.Region, 0, w*h)
	for pr := 0; pr < h; pr++ {
		for pc := 0; pc < w; pc++ {
			cells := make([]int, 0, boxRows*boxCols)
			for br := 0; br < boxRows; br++ {
				for bc := 0; bc < boxCols; bc++ {
					r := br*h + pr
					c := bc*w + pc
					cells = append(cells, r*size+c)
				}
			}
			regions = append(regions, sudoku.Region{Cells: cells})
		}
	}
	return regions
}

func buildQuads(p *Puzzle) ([]sudoku.Quad, error) {
	quads := make([]sudoku.Quad, 0, len(p.Quadruple))
	for _, q := range p.Quadruple {
		if len(q.Cells) == 0 {
			continue
		}
		idxs := make([]int, 0, len(q.Cells))
		topLeft := -1
		for _, ref := range q.Cells {
			idx, err := ParseRC(ref, p.Size)
			if err != nil {
				return nil, err
			}
			idxs = append(idxs, idx)
			if topLeft == -1 || idx < topLeft {
				topLeft = idx
			}
		}

		counts := map[int]int{}
		for _, v := range q.Values {
			counts[v]++
		}
		var single, double bitmask.CellMask
		for d, n := range counts {
			if n >= 2 {
				double = double.Set(d)
			} else {
				single = single.Set(d)
			}
		}

		quads = append(quads, sudoku.Quad{TopLeft: topLeft, Single: single, Double: double})
	}
	return quads, nil
}

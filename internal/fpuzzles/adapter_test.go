package fpuzzles

import (
	"strings"
	"testing"

	"gridsolve/internal/sudoku"
)

func v(n int) *int { return &n }

func plainGrid(size int, givens map[[2]int]int) [][]Cell {
	grid := make([][]Cell, size)
	for r := range grid {
		grid[r] = make([]Cell, size)
		for c := range grid[r] {
			if val, ok := givens[[2]int{r, c}]; ok {
				grid[r][c] = Cell{Value: v(val), Given: true}
			}
		}
	}
	return grid
}

func TestDecodeRejectsUnknownTopLevelField(t *testing.T) {
	doc := `{"size":4,"grid":[],"bogusfield":true}`
	if _, err := Decode([]byte(doc)); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestDecodeRoundTripsKnownFields(t *testing.T) {
	doc := `{"size":4,"grid":[
		[{"value":1},{"value":null},{"value":null},{"value":null}],
		[{"value":null},{"value":null},{"value":null},{"value":null}],
		[{"value":null},{"value":null},{"value":null},{"value":null}],
		[{"value":null},{"value":null},{"value":null},{"value":null}]
	],"diagonal+":true}`
	p, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Size != 4 {
		t.Errorf("Size = %d, want 4", p.Size)
	}
	if !p.DiagonalPlus {
		t.Error("DiagonalPlus = false, want true")
	}
	if p.Grid[0][0].Value == nil || *p.Grid[0][0].Value != 1 {
		t.Error("Grid[0][0].Value not decoded")
	}
}

func TestBuildRejectsShapeMismatch(t *testing.T) {
	p := &Puzzle{Size: 4, Grid: plainGrid(3, nil)}
	if _, err := Build(p); err == nil {
		t.Fatal("expected row-count mismatch to be rejected")
	}
}

func TestBuildPlainGridAppliesGivens(t *testing.T) {
	p := &Puzzle{Size: 4, Grid: plainGrid(4, map[[2]int]int{{0, 0}: 1})}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !b.CellSolved(0) {
		t.Fatal("given cell not marked solved")
	}
}

func TestBuildIrregularRequiresRegionOnEveryCell(t *testing.T) {
	grid := plainGrid(4, nil)
	grid[0][0].Region = v(0) // only one cell tagged; rest of grid left nil
	p := &Puzzle{Size: 4, Grid: grid}
	if _, err := Build(p); err == nil {
		t.Fatal("expected missing-region cell to be rejected")
	}
}

func TestBuildIrregularWithFullPartition(t *testing.T) {
	// 4x4 grid split into four 2x2 quadrant regions (same cells as the
	// default box-analogue regions, but routed through the custom path).
	grid := plainGrid(4, nil)
	regions := [4][4]int{
		{0, 0, 1, 1},
		{0, 0, 1, 1},
		{2, 2, 3, 3},
		{2, 2, 3, 3},
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			grid[r][c].Region = v(regions[r][c])
		}
	}
	p := &Puzzle{Size: 4, Grid: grid}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Meta.Units) == 0 {
		t.Fatal("expected units to be populated")
	}
}

func TestBuildDiagonalsAddExtraUnits(t *testing.T) {
	p := &Puzzle{Size: 4, Grid: plainGrid(4, nil), DiagonalPlus: true, DiagonalMinus: true}
	base, err := Build(&Puzzle{Size: 4, Grid: plainGrid(4, nil)})
	if err != nil {
		t.Fatalf("Build base: %v", err)
	}
	withDiagonals, err := Build(p)
	if err != nil {
		t.Fatalf("Build with diagonals: %v", err)
	}
	if len(withDiagonals.Meta.Units) != len(base.Meta.Units)+2 {
		t.Errorf("Units count = %d, want %d", len(withDiagonals.Meta.Units), len(base.Meta.Units)+2)
	}
}

// TestBuildDiagonalPlusIsAntiDiagonal pins "diagonal+" to row+col=size-1
// and "diagonal-" to row=col, since a count-only check can't catch the two
// being swapped.
func TestBuildDiagonalPlusIsAntiDiagonal(t *testing.T) {
	plusOnly, err := Build(&Puzzle{Size: 4, Grid: plainGrid(4, nil), DiagonalPlus: true})
	if err != nil {
		t.Fatalf("Build diagonal+: %v", err)
	}
	wantAnti := map[int]bool{3: true, 6: true, 9: true, 12: true}
	if !unitCellsMatch(plusOnly.Meta.Units[len(plusOnly.Meta.Units)-1], wantAnti) {
		t.Errorf("diagonal+ unit = %v, want anti-diagonal cells %v",
			plusOnly.Meta.Units[len(plusOnly.Meta.Units)-1].Cells, wantAnti)
	}

	minusOnly, err := Build(&Puzzle{Size: 4, Grid: plainGrid(4, nil), DiagonalMinus: true})
	if err != nil {
		t.Fatalf("Build diagonal-: %v", err)
	}
	wantMain := map[int]bool{0: true, 5: true, 10: true, 15: true}
	if !unitCellsMatch(minusOnly.Meta.Units[len(minusOnly.Meta.Units)-1], wantMain) {
		t.Errorf("diagonal- unit = %v, want main-diagonal cells %v",
			minusOnly.Meta.Units[len(minusOnly.Meta.Units)-1].Cells, wantMain)
	}
}

func unitCellsMatch(u sudoku.Region, want map[int]bool) bool {
	if len(u.Cells) != len(want) {
		return false
	}
	for _, c := range u.Cells {
		if !want[c] {
			return false
		}
	}
	return true
}

func TestBuildExtraRegionResolvesRCRefs(t *testing.T) {
	p := &Puzzle{
		Size: 4,
		Grid: plainGrid(4, nil),
		ExtraRegion: []ExtraRegion{
			{Cells: []string{"R1C1", "R2C2", "R3C3", "R4C4"}},
		},
	}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	found := false
	for _, u := range b.Meta.Units {
		if len(u.Cells) == 4 && u.Cells[0] == 0 && u.Cells[3] == 15 {
			found = true
		}
	}
	if !found {
		t.Fatal("extra region not present among units")
	}
}

func TestBuildExtraRegionRejectsMalformedRef(t *testing.T) {
	p := &Puzzle{
		Size: 4,
		Grid: plainGrid(4, nil),
		ExtraRegion: []ExtraRegion{
			{Cells: []string{"R1C1", "bogus"}},
		},
	}
	if _, err := Build(p); err == nil {
		t.Fatal("expected malformed RC reference to be rejected")
	}
}

func TestBuildQuadrupleSetsSingleAndDoubleMasks(t *testing.T) {
	p := &Puzzle{
		Size: 4,
		Grid: plainGrid(4, nil),
		Quadruple: []QuadClue{
			{Cells: []string{"R1C1", "R1C2", "R2C1", "R2C2"}, Values: []int{1, 1, 2, 3}},
		},
	}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Meta.Quads) != 1 {
		t.Fatalf("Quads count = %d, want 1", len(b.Meta.Quads))
	}
	q := b.Meta.Quads[0]
	if q.TopLeft != 0 {
		t.Errorf("TopLeft = %d, want 0", q.TopLeft)
	}
	if !q.Double.Has(1) {
		t.Error("expected digit 1 to require two occurrences")
	}
	if !q.Single.Has(2) || !q.Single.Has(3) {
		t.Error("expected digits 2 and 3 to require one occurrence each")
	}
}

func TestBuildDisjointGroupsAddsOneRegionPerBoxPosition(t *testing.T) {
	base, err := Build(&Puzzle{Size: 4, Grid: plainGrid(4, nil)})
	if err != nil {
		t.Fatalf("Build base: %v", err)
	}
	withGroups, err := Build(&Puzzle{Size: 4, Grid: plainGrid(4, nil), DisjointGroups: true})
	if err != nil {
		t.Fatalf("Build with disjoint groups: %v", err)
	}
	// Default region shape for size 4 is 2x2, so 4 disjoint-group regions.
	if len(withGroups.Meta.Units) != len(base.Meta.Units)+4 {
		t.Errorf("Units count = %d, want %d", len(withGroups.Meta.Units), len(base.Meta.Units)+4)
	}
}

func TestBuildGivenPencilMarksNarrowCandidates(t *testing.T) {
	grid := plainGrid(4, nil)
	grid[0][0].GivenPencilMarks = []int{2, 3}
	p := &Puzzle{Size: 4, Grid: grid}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	digits := b.Grid[0].Digits()
	if len(digits) != 2 || digits[0] != 2 || digits[1] != 3 {
		t.Errorf("cell 0 candidates = %v, want [2 3]", digits)
	}
}

func TestBuildGivenPencilMarksIgnoredOnGivenCell(t *testing.T) {
	grid := plainGrid(4, map[[2]int]int{{0, 0}: 1})
	grid[0][0].GivenPencilMarks = []int{2, 3}
	p := &Puzzle{Size: 4, Grid: grid}
	b, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, ok := b.Grid[0].Single(); !ok || got != 1 {
		t.Errorf("cell 0 candidates = %v, want singleton {1}", b.Grid[0].Digits())
	}
}

func TestBuildGivenPencilMarksRejectOutOfRangeDigit(t *testing.T) {
	grid := plainGrid(4, nil)
	grid[0][0].GivenPencilMarks = []int{5}
	p := &Puzzle{Size: 4, Grid: grid}
	if _, err := Build(p); err == nil {
		t.Fatal("expected out-of-range pencil mark to be rejected")
	}
}

func TestBuildGivenPencilMarksContradictPeerGiven(t *testing.T) {
	// Cell R1C2's only allowed candidate is eliminated by the given 1 in
	// the same row, leaving it empty.
	grid := plainGrid(4, map[[2]int]int{{0, 0}: 1})
	grid[0][1].GivenPencilMarks = []int{1}
	p := &Puzzle{Size: 4, Grid: grid}
	if _, err := Build(p); err == nil {
		t.Fatal("expected pencil marks emptied by a peer given to be rejected")
	}
}

func TestBuildRejectsContradictoryGivens(t *testing.T) {
	grid := plainGrid(4, nil)
	grid[0][0] = Cell{Value: v(1)}
	grid[0][1] = Cell{Value: v(1)} // same row, same digit twice
	p := &Puzzle{Size: 4, Grid: grid}
	if _, err := Build(p); err == nil {
		t.Fatal("expected contradictory givens to be rejected")
	}
}

func TestParseRCRejectsOutOfRangeRow(t *testing.T) {
	if _, err := ParseRC("R9C1", 4); err == nil {
		t.Fatal("expected out-of-range row to be rejected")
	}
}

func TestFormatRCInvertsParseRC(t *testing.T) {
	for idx := 0; idx < 16; idx++ {
		ref := FormatRC(idx, 4)
		got, err := ParseRC(ref, 4)
		if err != nil {
			t.Fatalf("ParseRC(%q): %v", ref, err)
		}
		if got != idx {
			t.Errorf("round trip for %d: got %d via %q", idx, got, ref)
		}
	}
}

func TestParseRCRejectsMalformed(t *testing.T) {
	for _, ref := range []string{"", "R1", "C1", "R1X1", "RAC1", "R1C1extra"} {
		if _, err := ParseRC(ref, 9); err == nil {
			t.Errorf("ParseRC(%q): expected error", ref)
		}
	}
}

func TestIsIrregularReflectsRegionPresence(t *testing.T) {
	p := &Puzzle{Size: 2, Grid: plainGrid(2, nil)}
	if p.IsIrregular() {
		t.Fatal("plain grid reported irregular")
	}
	p.Grid[0][0].Region = v(0)
	if !p.IsIrregular() {
		t.Fatal("grid with a region tag not reported irregular")
	}
}

func TestDecodeIgnoresContentAfterDocument(t *testing.T) {
	doc := `{"size":2,"grid":[]}` + "\nnot json"
	if _, err := Decode([]byte(strings.TrimSpace(doc))); err != nil {
		// Decode reads one JSON document; text after it is not examined,
		// so a well-formed document followed by other text still decodes.
		t.Fatalf("unexpected error on content after the document: %v", err)
	}
}

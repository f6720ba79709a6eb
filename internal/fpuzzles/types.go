// Package fpuzzles decodes the FPuzzles-shaped JSON puzzle-exchange format
// into a *sudoku.Board, and provides the "R<row>C<col>" cell reference
// notation the format uses for constraint cell lists.
package fpuzzles

// Cell describes one grid cell of an FPuzzles document. Value is nil for
// an empty cell. GivenPencilMarks restrict an ungiven cell to exactly the
// listed candidates; the center/corner pencil-mark fields are solver notes
// that round-trip through the format but carry no weight here.
type Cell struct {
	Value             *int   `json:"value"`
	Given             bool   `json:"given,omitempty"`
	CenterPencilMarks []int  `json:"centerPencilMarks,omitempty"`
	CornerPencilMarks []int  `json:"cornerPencilMarks,omitempty"`
	GivenPencilMarks  []int  `json:"givenPencilMarks,omitempty"`
	Region            *int   `json:"region,omitempty"`
}

// CellPair is a two-cell reference used by difference/ratio constraints.
// Neither constraint is enforced by the solver yet, so they round-trip
// through decoding but aren't wired into board construction.
type CellPair struct {
	Cells [2]string `json:"cells"`
}

// QuadClue is the wire shape of a quadruple clue: the four cells of a 2x2
// block (RC notation, any order) and the digits required there.
type QuadClue struct {
	Cells  []string `json:"cells"`
	Values []int    `json:"values"`
}

// ExtraRegion is an arbitrary set of cells over which the "one of each
// digit" constraint applies.
type ExtraRegion struct {
	Cells []string `json:"cells"`
}

// Puzzle is the top-level FPuzzles document. Unknown top-level fields are
// rejected by the decoder, not by this struct — see Decode.
type Puzzle struct {
	Size                  int             `json:"size"`
	Grid                  [][]Cell        `json:"grid"`
	DiagonalPlus          bool            `json:"diagonal+,omitempty"`
	DiagonalMinus         bool            `json:"diagonal-,omitempty"`
	Antiknight            bool            `json:"antiknight,omitempty"`
	Antiking              bool            `json:"antiking,omitempty"`
	DisjointGroups        bool            `json:"disjointgroups,omitempty"`
	NonConsecutive        bool            `json:"nonconsecutive,omitempty"`
	DisabledLogic         []string        `json:"disabledlogic,omitempty"`
	TrueCandidatesOptions []string        `json:"truecandidatesoptions,omitempty"`
	Difference            []CellPair      `json:"difference,omitempty"`
	Ratio                 []CellPair      `json:"ratio,omitempty"`
	Quadruple             []QuadClue      `json:"quadruple,omitempty"`
	ExtraRegion           []ExtraRegion   `json:"extraregion,omitempty"`
}

// IsIrregular reports whether any cell specifies a custom region,
// overriding the default box-analogue regions.
func (p *Puzzle) IsIrregular() bool {
	for _, row := range p.Grid {
		for _, c := range row {
			if c.Region != nil {
				return true
			}
		}
	}
	return false
}

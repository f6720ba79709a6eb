package fpuzzles

import (
	"fmt"

	"gridsolve/internal/xerr"
)

// ParseRC decodes a 1-indexed "R<row>C<col>" cell reference into a 0-indexed
// board cell index, given the board's size (row width).
func ParseRC(ref string, size int) (int, error) {
	row, col, err := parseRCParts(ref)
	if err != nil {
		return 0, err
	}
	if row < 1 || row > size || col < 1 || col > size {
		return 0, xerr.New(xerr.InputShape, fmt.Sprintf("cell reference %q out of range for size %d", ref, size))
	}
	return (row-1)*size + (col - 1), nil
}

// parseRCParts extracts the 1-indexed row and column from an "R<row>C<col>"
// reference without bounds-checking against a board size.
func parseRCParts(ref string) (row, col int, err error) {
	if len(ref) < 4 || (ref[0] != 'R' && ref[0] != 'r') {
		return 0, 0, xerr.New(xerr.InputShape, fmt.Sprintf("malformed cell reference %q", ref))
	}
	i := 1
	row, i, err = scanDigits(ref, i)
	if err != nil || i >= len(ref) || (ref[i] != 'C' && ref[i] != 'c') {
		return 0, 0, xerr.New(xerr.InputShape, fmt.Sprintf("malformed cell reference %q", ref))
	}
	i++
	col, i, err = scanDigits(ref, i)
	if err != nil || i != len(ref) {
		return 0, 0, xerr.New(xerr.InputShape, fmt.Sprintf("malformed cell reference %q", ref))
	}
	return row, col, nil
}

func scanDigits(s string, start int) (value, next int, err error) {
	i := start
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		value = value*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, start, xerr.New(xerr.InputShape, fmt.Sprintf("expected digits at position %d in %q", start, s))
	}
	return value, i, nil
}

// FormatRC is the inverse of ParseRC: a 0-indexed board cell index becomes
// a 1-indexed "R<row>C<col>" reference.
func FormatRC(index, size int) string {
	row := index/size + 1
	col := index%size + 1
	return fmt.Sprintf("R%dC%d", row, col)
}

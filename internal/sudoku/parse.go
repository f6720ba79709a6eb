package sudoku

import (
	"fmt"

	"gridsolve/internal/xerr"
)

// ParseCompact decodes the compact Sudoku string representation: a string
// of length n^2 where each character is a hex digit, '.', or '0' for an
// empty cell, and n = sqrt(len). Values above 15 (size-16 grids) use
// 'g'/'G' as a one-character extension beyond strict hex.
func ParseCompact(s string) (size int, givens []int, err error) {
	n := isqrt(len(s))
	if n*n != len(s) {
		return 0, nil, xerr.New(xerr.InputShape, fmt.Sprintf("length %d is not a perfect square", len(s)))
	}

	givens = make([]int, len(s))
	for i, ch := range s {
		switch {
		case ch == '.' || ch == '0':
			givens[i] = 0
		case ch >= '1' && ch <= '9':
			givens[i] = int(ch-'0')
		case ch >= 'a' && ch <= 'f':
			givens[i] = int(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			givens[i] = int(ch-'A') + 10
		case ch == 'g' || ch == 'G':
			givens[i] = 16
		default:
			return 0, nil, xerr.New(xerr.InputShape, fmt.Sprintf("invalid digit character %q at position %d", ch, i))
		}
	}
	return n, givens, nil
}

// FormatCompact is the inverse of ParseCompact, using '.' for empty cells.
func FormatCompact(size int, cells []int) string {
	const digits = "0123456789abcdefg"
	out := make([]byte, len(cells))
	for i, v := range cells {
		if v == 0 {
			out[i] = '.'
			continue
		}
		out[i] = digits[v]
	}
	return string(out)
}

package yinyang

// twoByTwo inspects the 2x2 block whose top-left cell is idx (idx must not
// be in the last column or last row). If three cells are a known color and
// the fourth is unknown, the fourth is assigned the opposite color. If all
// four are already known and monochrome, that's a contradiction: no 2x2
// block may be a single color.
func twoByTwo(g *Grid, idx int) (changed bool, ok bool) {
	offsets := [4]int{0, 1, g.Width, g.Width + 1}
	var ones, twos, unknownIdx int
	unknownIdx = -1
	for _, off := range offsets {
		switch g.Data[idx+off] {
		case Color1:
			ones++
		case Color2:
			twos++
		default:
			unknownIdx = idx + off
		}
	}
	if unknownIdx == -1 {
		if ones == 4 || twos == 4 {
			return false, false
		}
		return false, true
	}
	if ones == 3 {
		g.Data[unknownIdx] = Color2
		return true, true
	}
	if twos == 3 {
		g.Data[unknownIdx] = Color1
		return true, true
	}
	return false, true
}

// twoByTwoAll runs twoByTwo over every 2x2 block once.
func twoByTwoAll(g *Grid) (changed bool, ok bool) {
	for r := 0; r < g.Height-1; r++ {
		for c := 0; c < g.Width-1; c++ {
			cc, kk := twoByTwo(g, r*g.Width+c)
			if !kk {
				return changed, false
			}
			changed = changed || cc
		}
	}
	return changed, true
}

// checkerboard inspects the 2x2 block at idx for the pattern that forces a
// connectivity contradiction: cell1/cell4 matching while cell2/cell3 match
// the opposite color is a checkerboard, which can never be resolved without
// breaking connectivity of one color. A three-known pattern that would
// force a checkerboard instead assigns the fourth cell to prevent it.
func checkerboard(g *Grid, idx int) (changed bool, ok bool) {
	cell1 := g.Data[idx]
	cell2 := g.Data[idx+1]
	cell3 := g.Data[idx+g.Width]
	cell4 := g.Data[idx+g.Width+1]

	if cell1.Known() && cell1 == cell4 {
		other := cell1.Opposite()
		if cell2.Known() && cell3.Known() && cell2 == cell3 {
			if cell2 == other {
				return false, false
			}
			return false, true
		}
		if cell2 == other && !cell3.Known() {
			g.Data[idx+g.Width] = cell1
			return true, true
		}
		if cell3 == other && !cell2.Known() {
			g.Data[idx+1] = cell1
			return true, true
		}
		return false, true
	}
	if cell2.Known() && cell2 == cell3 {
		other := cell2.Opposite()
		if cell1 == other && !cell4.Known() {
			g.Data[idx+g.Width+1] = cell2
			return true, true
		}
		if cell4 == other && !cell1.Known() {
			g.Data[idx] = cell2
			return true, true
		}
	}
	return false, true
}

// checkerboardAll runs checkerboard over every 2x2 block once.
func checkerboardAll(g *Grid) (changed bool, ok bool) {
	for r := 0; r < g.Height-1; r++ {
		for c := 0; c < g.Width-1; c++ {
			cc, kk := checkerboard(g, r*g.Width+c)
			if !kk {
				return changed, false
			}
			changed = changed || cc
		}
	}
	return changed, true
}

// propagateBorder walks the precomputed clockwise perimeter sequence,
// starting at the first known-color cell. Connectivity requires each
// color's border cells to form a single contiguous arc, so a run of
// unknowns bounded on both ends by the same known color must take that
// color; a transition between differently-colored known cells marks a
// genuine boundary. More than two transitions around the cycle means the
// colors are interleaved on the border, which is a contradiction. Does
// nothing until both colors have appeared at least once on the border.
func propagateBorder(g *Grid) (changed bool, ok bool) {
	n := len(g.Border)
	if n == 0 {
		return false, true
	}

	sawColor1, sawColor2 := false, false
	start := -1
	for i, idx := range g.Border {
		c := g.Data[idx]
		if c == Color1 {
			sawColor1 = true
		} else if c == Color2 {
			sawColor2 = true
		}
		if start == -1 && c.Known() {
			start = i
		}
	}
	if start == -1 || !sawColor1 || !sawColor2 {
		return false, true
	}

	lastPos := start
	lastColor := g.Data[g.Border[start]]
	transitions := 0

	for steps := 1; steps <= n; steps++ {
		pos := (start + steps) % n
		c := g.Data[g.Border[pos]]
		if !c.Known() {
			continue
		}

		if c == lastColor {
			for p := (lastPos + 1) % n; p != pos; p = (p + 1) % n {
				cell := g.Border[p]
				if g.Data[cell] == Unknown {
					g.Data[cell] = lastColor
					changed = true
				} else if g.Data[cell] != lastColor {
					return changed, false
				}
			}
		} else {
			transitions++
			if transitions > 2 {
				return changed, false
			}
		}
		lastPos = pos
		lastColor = c
	}
	return changed, true
}

// Deduce loops two-by-two to a fixed point, then one checkerboard pass,
// then one border propagation pass, repeating the whole cycle until a full
// pass across all three techniques makes no further progress. Returns
// false iff a contradiction is detected.
func (g *Grid) Deduce() bool {
	for {
		anyChange := false
		for {
			changed, ok := twoByTwoAll(g)
			if !ok {
				return false
			}
			if !changed {
				break
			}
			anyChange = true
		}
		checkerChanged, ok := checkerboardAll(g)
		if !ok {
			return false
		}
		if checkerChanged {
			anyChange = true
		}
		borderChanged, ok := propagateBorder(g)
		if !ok {
			return false
		}
		if borderChanged {
			anyChange = true
		}
		if !anyChange {
			return true
		}
	}
}

package yinyang

// hasMonochrome2x2 reports whether any fully-known 2x2 block is a single
// color.
func hasMonochrome2x2(g *Grid) bool {
	for r := 0; r < g.Height-1; r++ {
		for c := 0; c < g.Width-1; c++ {
			idx := r*g.Width + c
			a := g.Data[idx]
			b := g.Data[idx+1]
			cc := g.Data[idx+g.Width]
			d := g.Data[idx+g.Width+1]
			if a.Known() && a == b && a == cc && a == d {
				return true
			}
		}
	}
	return false
}

// CheckConnectivity is the global validity check: for each color, it
// flood-fills from every not-yet-visited cell of that color through
// orthogonally adjacent same-color cells, treating unknown neighbors as a
// potential way out rather than a failure. A component that cannot reach an
// unknown cell and does not cover every cell of its color is invalid — the
// known cells alone have cut the color into disconnected pieces. A
// monochrome 2x2 block is also invalid regardless of connectivity.
func (g *Grid) CheckConnectivity() bool {
	if hasMonochrome2x2(g) {
		return false
	}

	for _, color := range [2]Color{Color1, Color2} {
		var cells []int
		for i, c := range g.Data {
			if c == color {
				cells = append(cells, i)
			}
		}
		if len(cells) == 0 {
			continue
		}

		visited := make([]bool, len(g.Data))
		for _, start := range cells {
			if visited[start] {
				continue
			}

			reachesUnknown := false
			componentSize := 0
			stack := []int{start}
			visited[start] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				componentSize++
				for _, nb := range g.Neighbors(cur) {
					switch g.Data[nb] {
					case Unknown:
						reachesUnknown = true
					case color:
						if !visited[nb] {
							visited[nb] = true
							stack = append(stack, nb)
						}
					}
				}
			}

			if !reachesUnknown && componentSize < len(cells) {
				return false
			}
		}
	}
	return true
}

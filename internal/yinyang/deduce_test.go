package yinyang

import "testing"

// mustGrid builds a grid from a CLI-format string, using '0' for unknown,
// panicking on a malformed fixture (a test bug, not a runtime condition).
func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	text := ""
	for _, r := range rows {
		text += r + "\n"
	}
	g, err := ParseGrid(text)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

func TestTwoByTwo(t *testing.T) {
	g := mustGrid(t, "00", "01", "11", "22", "02")

	if changed, ok := twoByTwo(g, 0); !ok || changed {
		t.Fatalf("twoByTwo(0) = (%v,%v), want (false,true)", changed, ok)
	}

	changed, ok := twoByTwo(g, 2)
	if !ok || !changed {
		t.Fatalf("twoByTwo(2) = (%v,%v), want (true,true)", changed, ok)
	}
	if g.Data[2] != Color2 {
		t.Errorf("Data[2] = %v, want Color2", g.Data[2])
	}

	changed, ok = twoByTwo(g, 6)
	if !ok || !changed {
		t.Fatalf("twoByTwo(6) = (%v,%v), want (true,true)", changed, ok)
	}
	if g.Data[8] != Color1 {
		t.Errorf("Data[8] = %v, want Color1", g.Data[8])
	}
}

func TestTwoByTwoAll(t *testing.T) {
	g := mustGrid(t, "1100", "1000", "0220")
	changed, ok := twoByTwoAll(g)
	if !ok || !changed {
		t.Fatalf("twoByTwoAll = (%v,%v), want (true,true)", changed, ok)
	}
	want := "1100\n1210\n0220\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCheckerboard(t *testing.T) {
	g := mustGrid(t, "01", "12", "21", "02", "10", "21", "10", "00")

	changed, ok := checkerboard(g, 0)
	if !ok || !changed || g.Data[0] != Color1 {
		t.Fatalf("checkerboard(0): changed=%v ok=%v data[0]=%v", changed, ok, g.Data[0])
	}

	if _, ok := checkerboard(g, 2); ok {
		t.Fatal("checkerboard(2) should report a contradiction")
	}

	changed, ok = checkerboard(g, 4)
	if !ok || !changed || g.Data[6] != Color2 {
		t.Fatalf("checkerboard(4): changed=%v ok=%v data[6]=%v", changed, ok, g.Data[6])
	}

	changed, ok = checkerboard(g, 8)
	if !ok || !changed || g.Data[9] != Color1 {
		t.Fatalf("checkerboard(8): changed=%v ok=%v data[9]=%v", changed, ok, g.Data[9])
	}

	changed, ok = checkerboard(g, 10)
	if !ok || !changed || g.Data[13] != Color1 {
		t.Fatalf("checkerboard(10): changed=%v ok=%v data[13]=%v", changed, ok, g.Data[13])
	}

	changed, ok = checkerboard(g, 12)
	if !ok || changed {
		t.Fatalf("checkerboard(12) = (%v,%v), want (false,true)", changed, ok)
	}
}

func TestCheckerboardAllContradiction(t *testing.T) {
	g := mustGrid(t, "1212", "2001", "0120")
	if _, ok := checkerboardAll(g); ok {
		t.Fatal("expected contradiction")
	}
}

func TestDeduceSolvesSimpleGrid(t *testing.T) {
	g := mustGrid(t, "100", "112", "100")
	if !g.Deduce() {
		t.Fatal("Deduce reported a contradiction")
	}
	want := "122\n112\n122\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPropagateBorderFillsRunBetweenSameColor(t *testing.T) {
	g := mustGrid(t, "10000", "00000", "00000", "00002")
	g.Data[g.IndexOf(0, 4)] = Color1 // top-right corner also color-1
	changed, ok := propagateBorder(g)
	if !ok {
		t.Fatal("propagateBorder reported a contradiction")
	}
	if !changed {
		t.Fatal("expected propagateBorder to make progress")
	}
	// The top-row cells between the two known color-1 corners (the
	// clockwise run from top-left to top-right) must become color-1; the
	// right column below ends at a color-2 cell and is left unknown.
	if g.Data[g.IndexOf(0, 2)] != Color1 {
		t.Errorf("expected top row interior filled with Color1")
	}
}

func TestPropagateBorderNoOpUntilBothColorsSeen(t *testing.T) {
	g := mustGrid(t, "1000", "0000", "0000")
	changed, ok := propagateBorder(g)
	if !ok || changed {
		t.Fatalf("propagateBorder = (%v,%v), want (false,true) with one color seen", changed, ok)
	}
}

// TestDeduceRepeatsBorderPropagationAfterLaterProgress exercises a grid
// where a 2x2 deduction only becomes possible once two color-1 givens are
// already joined by border propagation, and that 2x2 deduction in turn
// makes a second, distant border cell known (color-2) for the first time.
// Filling the long unknown run between that new cell and another color-2
// border cell only happens if border propagation runs again afterward; a
// Deduce that runs it just once before the two-by-two/checkerboard loop
// leaves that run permanently unknown.
func TestDeduceRepeatsBorderPropagationAfterLaterProgress(t *testing.T) {
	g := mustGrid(t, "100100", "001100", "200000")
	if !g.Deduce() {
		t.Fatal("Deduce reported a contradiction")
	}
	idx5 := g.IndexOf(0, 5)
	if g.Data[idx5] != Color2 {
		t.Fatalf("Data[%d] (top-right corner) = %v, want Color2 from the re-triggered border pass", idx5, g.Data[idx5])
	}
}

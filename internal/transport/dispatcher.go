package transport

import (
	"encoding/json"
	"sync"

	"gridsolve/internal/fpuzzles"
	"gridsolve/internal/lzwtext"
	"gridsolve/internal/solver"
	"gridsolve/internal/sudoku"
)

// Dispatcher routes decoded requests to the solving engines and tracks one
// CancelToken per in-flight nonce, so a later Cancel request can reach the
// right running search.
type Dispatcher struct {
	mu        sync.Mutex
	tokens    map[int]*sudoku.CancelToken
	countOpts sudoku.CountOptions
}

// NewDispatcher returns a Dispatcher using the package's default counting
// concurrency and backpressure. Use NewDispatcherWithOptions to apply the
// server's MAX_WORKERS/CHANNEL_CAPACITY/FLUSH_THRESHOLD configuration.
func NewDispatcher() *Dispatcher {
	return NewDispatcherWithOptions(sudoku.DefaultCountOptions())
}

// NewDispatcherWithOptions returns a Dispatcher whose "count" command runs
// the parallel search with opts instead of the package defaults.
func NewDispatcherWithOptions(opts sudoku.CountOptions) *Dispatcher {
	return &Dispatcher{tokens: make(map[int]*sudoku.CancelToken), countOpts: opts}
}

func (d *Dispatcher) register(nonce int) *sudoku.CancelToken {
	token := &sudoku.CancelToken{}
	d.mu.Lock()
	d.tokens[nonce] = token
	d.mu.Unlock()
	return token
}

func (d *Dispatcher) unregister(nonce int) {
	d.mu.Lock()
	delete(d.tokens, nonce)
	d.mu.Unlock()
}

func (d *Dispatcher) cancel(nonce int) {
	d.mu.Lock()
	token := d.tokens[nonce]
	d.mu.Unlock()
	if token != nil {
		token.Cancel()
	}
}

// Handle decodes one inbound frame and emits every Response it produces.
// emit may be called zero or more times: cancel always emits exactly one
// Cancelled, count/check/solve/solvepath/step/truecandidates emit zero or
// more progress responses followed by at most one terminal response, and a
// decode or construction failure emits exactly one Invalid.
func (d *Dispatcher) Handle(frame []byte, emit func(Response)) {
	var req Request
	if err := json.Unmarshal(frame, &req); err != nil {
		emit(Invalid(0, err.Error()))
		return
	}

	// A cancel may arrive as a bare {nonce, command} frame or as a full
	// command frame; either way it never needs its payload decoded.
	if req.Kind == RequestCancelOp || req.Command == CommandCancel {
		d.cancel(req.Nonce)
		emit(Cancelled(req.Nonce))
		return
	}

	if req.DataType != "fpuzzles" {
		emit(Invalid(req.Nonce, "Invalid data format"))
		return
	}

	board, err := decodeBoard(req.Data)
	if err != nil {
		emit(Invalid(req.Nonce, err.Error()))
		return
	}

	switch req.Command {
	case CommandCheck:
		d.handleCheck(req.Nonce, board, emit)
	case CommandCount:
		d.handleCount(req.Nonce, board, emit)
	case CommandSolve:
		d.handleSolve(req.Nonce, board, emit)
	case CommandTrueCandidates:
		d.handleTrueCandidates(req.Nonce, board, emit)
	case CommandSolvePath, CommandStep:
		d.handleLogicalStep(req.Nonce, board, emit)
	default:
		emit(Invalid(req.Nonce, "unsupported command"))
	}
}

// decodeBoard reverses the wire wrapping (base64 -> LZW -> JSON) and builds
// a board from the resulting FPuzzles document.
func decodeBoard(data string) (*sudoku.Board, error) {
	text, err := lzwtext.DecompressFromBase64(data)
	if err != nil {
		return nil, err
	}
	puzzle, err := fpuzzles.Decode([]byte(text))
	if err != nil {
		return nil, err
	}
	return fpuzzles.Build(puzzle)
}

func (d *Dispatcher) handleCheck(nonce int, board *sudoku.Board, emit func(Response)) {
	count := sudoku.CheckUpToTwo(board)
	emit(CountResponse(nonce, count, false))
}

// handleCount enumerates every solution, emitting in-progress partial
// totals as they flush off the parallel search and one terminal Count once
// every branch completes, unless cancelled first.
func (d *Dispatcher) handleCount(nonce int, board *sudoku.Board, emit func(Response)) {
	token := d.register(nonce)
	defer d.unregister(nonce)

	opts := d.countOpts.Resolved()
	ch := make(chan int, opts.ChannelCapacity)
	done := make(chan int, 1)
	go func() {
		residual := sudoku.CountSolutions(board, token, ch, opts)
		close(ch)
		done <- residual
	}()

	total := 0
	for partial := range ch {
		total += partial
		if !token.Cancelled() {
			emit(CountResponse(nonce, total, true))
		}
	}
	total += <-done

	if !token.Cancelled() {
		emit(CountResponse(nonce, total, false))
	}
}

func (d *Dispatcher) handleSolve(nonce int, board *sudoku.Board, emit func(Response)) {
	it := solver.NewIterator(sudoku.NewSolvable(board))
	first, ok := it.Next()
	if !ok {
		emit(Invalid(nonce, "no solution"))
		return
	}
	if _, ok := it.Next(); ok {
		emit(Invalid(nonce, "more than one solution"))
		return
	}
	emit(Solved(nonce, extractSolution(first.(*sudoku.Solvable).Board)))
}

// handleTrueCandidates runs the hybrid true-candidates strategy and
// flattens the resulting per-cell masks into a per-cell-per-digit flag
// list, since no example or reference implementation ever populates this
// response's solutionsPerCandidate field with real data to follow (see
// DESIGN.md).
func (d *Dispatcher) handleTrueCandidates(nonce int, board *sudoku.Board, emit func(Response)) {
	result := solver.Hybrid(sudoku.NewSolvable(board), solver.DefaultHybridThreshold)
	if result == nil {
		emit(Invalid(nonce, "no solution"))
		return
	}
	merged := result.(*sudoku.Solvable).Board
	emit(TrueCandidates(nonce, flattenCandidates(merged)))
}

// handleLogicalStep backs both "solvepath" and "step", currently
// placeholder commands: one Deduce pass, reported as a Logical response.
func (d *Dispatcher) handleLogicalStep(nonce int, board *sudoku.Board, emit func(Response)) {
	ok := board.Deduce()
	emit(Logical(nonce, extractLogicalCells(board), "", ok))
}

func extractSolution(b *sudoku.Board) []int {
	out := make([]int, len(b.Grid))
	for i, m := range b.Grid {
		if v, ok := m.Single(); ok {
			out[i] = v
		}
	}
	return out
}

func extractLogicalCells(b *sudoku.Board) []LogicalCell {
	cells := make([]LogicalCell, len(b.Grid))
	for i, m := range b.Grid {
		if v, ok := m.Single(); ok && b.CellSolved(i) {
			cells[i] = LogicalCell{Value: v, Candidates: []int{v}}
			continue
		}
		cells[i] = LogicalCell{Value: 0, Candidates: m.Digits()}
	}
	return cells
}

func flattenCandidates(b *sudoku.Board) []int {
	out := make([]int, 0, len(b.Grid)*b.Meta.MaxVal)
	for _, m := range b.Grid {
		for d := 1; d <= b.Meta.MaxVal; d++ {
			if m.Has(d) {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

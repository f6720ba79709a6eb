package sudoku

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// FlushThreshold is the local-count cutoff above which a branch of the
// parallel counting search flushes onto the channel instead of returning
// its count directly. Infrequent, large flushes cross goroutine boundaries
// instead of per-branch counters, keeping channel contention low.
const FlushThreshold = 500

// ChannelCapacity is the bounded channel size used between the parallel
// counting search and its reader.
const ChannelCapacity = 100

// CountOptions tunes the parallel counting search's concurrency and
// backpressure. The zero value means "use the package defaults"; Resolved
// expands it, the same zero-means-default convention pkg/config.Config
// uses for these same three knobs (MAX_WORKERS, CHANNEL_CAPACITY,
// FLUSH_THRESHOLD) so a deployment can override them without the defaults
// living in two places.
type CountOptions struct {
	// MaxWorkers caps how many candidate-digit branches run concurrently
	// at each guess point; 0 means runtime.NumCPU().
	MaxWorkers int

	// ChannelCapacity is the bounded channel size between the search and
	// its reader; 0 means the package's ChannelCapacity constant.
	ChannelCapacity int

	// FlushThreshold is the local-count cutoff above which a branch
	// flushes onto the channel instead of returning its count directly;
	// 0 means the package's FlushThreshold constant.
	FlushThreshold int
}

// DefaultCountOptions returns the zero-configured CountOptions.
func DefaultCountOptions() CountOptions {
	return CountOptions{}
}

// Resolved fills in any zero field with its package default.
func (o CountOptions) Resolved() CountOptions {
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = parallelism()
	}
	if o.ChannelCapacity <= 0 {
		o.ChannelCapacity = ChannelCapacity
	}
	if o.FlushThreshold <= 0 {
		o.FlushThreshold = FlushThreshold
	}
	return o
}

// CancelToken is the single shared atomic cancellation flag a counting
// request is driven by. Readers poll it cooperatively; it is never
// preemptive.
type CancelToken struct {
	flag atomic.Bool
}

// Cancel signals cancellation. Safe to call from any goroutine, any number
// of times.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether cancellation has been signalled.
func (t *CancelToken) Cancelled() bool {
	return t.flag.Load()
}

// CountSolutions is the parallel, streaming, cancellable counting search.
// It clones b, deduces, and if unsolved recurses over every candidate at
// the next index to guess, concurrently, summing the children's counts. If
// the accumulated local count exceeds opts.FlushThreshold it attempts to
// send it on ch and returns 0 (the receiver is accumulating); under the
// threshold it returns the count directly so the top-level caller can
// deliver that residual itself once every branch has completed.
func CountSolutions(b *Board, token *CancelToken, ch chan<- int, opts CountOptions) int {
	opts = opts.Resolved()

	if token.Cancelled() {
		return 0
	}

	working := b.Clone()
	if !working.Deduce() {
		return 0
	}
	if working.AllSolved() {
		return 1
	}

	idx, ok := working.NextIndexToGuess()
	if !ok {
		return 0
	}
	digits := working.Grid[idx].Digits()

	var wg sync.WaitGroup
	var mu sync.Mutex
	local := 0
	sem := make(chan struct{}, opts.MaxWorkers)

	for _, d := range digits {
		d := d
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			child := working.Clone()
			if !child.Assign(idx, d) {
				return
			}
			c := CountSolutions(child, token, ch, opts)

			mu.Lock()
			local += c
			mu.Unlock()
		}()
	}
	wg.Wait()

	if local > opts.FlushThreshold {
		trySend(token, ch, local)
		return 0
	}
	return local
}

func parallelism() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// trySend loops on a non-blocking send, bailing out on cancellation. This
// mirrors backpressure on the bounded channel without building an
// unbounded queue when the consumer is slow.
func trySend(token *CancelToken, ch chan<- int, n int) {
	for {
		if token.Cancelled() {
			return
		}
		select {
		case ch <- n:
			return
		default:
		}
	}
}

// CountSolutionsMax runs CountSolutions on a background goroutine,
// accumulating received partials; once the running total exceeds max, it
// signals cancellation and drains. Returns the total accumulated before (or
// at) cancellation.
func CountSolutionsMax(b *Board, max int, opts CountOptions) int {
	opts = opts.Resolved()
	token := &CancelToken{}
	ch := make(chan int, opts.ChannelCapacity)
	done := make(chan int, 1)

	go func() {
		residual := CountSolutions(b, token, ch, opts)
		close(ch)
		done <- residual
	}()

	total := 0
	for partial := range ch {
		total += partial
		if total > max {
			token.Cancel()
		}
	}
	total += <-done
	return total
}

// CheckUpToTwo reports min(solution count, 2) using a serial search,
// exiting as soon as a second solution is found. It backs the "check"
// command, which never needs a full count.
func CheckUpToTwo(b *Board) int {
	count := 0
	stack := []*Board{b.Clone()}
	for len(stack) > 0 && count < 2 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !cur.Deduce() {
			continue
		}
		if cur.AllSolved() {
			count++
			continue
		}
		idx, ok := cur.NextIndexToGuess()
		if !ok {
			continue
		}
		for _, d := range cur.Grid[idx].Digits() {
			child := cur.Clone()
			if child.Assign(idx, d) {
				stack = append(stack, child)
			}
		}
	}
	return count
}

// Command gridsolve is the CLI surface over the solving engines:
// solve/from-file drive the Sudoku engine from a puzzle string or an
// FPuzzles JSON file, build-irregular generates irregular region layouts,
// yin-yang drives the connectivity engine from the text grid format, and
// serve starts the WebSocket/HTTP transport.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gridsolve/internal/fpuzzles"
	"gridsolve/internal/solver"
	"gridsolve/internal/sudoku"
	"gridsolve/internal/transport"
	"gridsolve/internal/transport/httpapi"
	"gridsolve/internal/yinyang"
	"gridsolve/pkg/config"

	"github.com/gin-gonic/gin"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = cmdSolve(os.Args[2:])
	case "from-file":
		err = cmdFromFile(os.Args[2:])
	case "build-irregular":
		err = cmdBuildIrregular(os.Args[2:])
	case "yin-yang":
		err = cmdYinYang(os.Args[2:])
	case "serve":
		err = cmdServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gridsolve:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gridsolve <solve|from-file|build-irregular|yin-yang|serve> ...")
}

// cmdSolve solves a puzzle given in the compact string representation and
// prints its unique solution, or reports why there isn't one.
func cmdSolve(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gridsolve solve <compact-puzzle-string>")
	}
	size, givens, err := sudoku.ParseCompact(args[0])
	if err != nil {
		return err
	}
	meta := sudoku.BuildMeta(size, nil, nil, nil)
	board, ok := sudoku.NewBoard(meta, givens)
	if !ok {
		return fmt.Errorf("puzzle is contradictory")
	}
	return solveAndPrint(board)
}

// cmdFromFile reads an FPuzzles JSON document from path and solves it.
func cmdFromFile(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: gridsolve from-file <path>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	puzzle, err := fpuzzles.Decode(data)
	if err != nil {
		return err
	}
	board, err := fpuzzles.Build(puzzle)
	if err != nil {
		return err
	}
	return solveAndPrint(board)
}

func solveAndPrint(board *sudoku.Board) error {
	it := solver.NewIterator(sudoku.NewSolvable(board))
	first, ok := it.Next()
	if !ok {
		return fmt.Errorf("no solution")
	}
	if _, ok := it.Next(); ok {
		return fmt.Errorf("more than one solution")
	}
	solved := first.(*sudoku.Solvable).Board
	cells := make([]int, len(solved.Grid))
	for i, m := range solved.Grid {
		if v, ok := m.Single(); ok {
			cells[i] = v
		}
	}
	fmt.Println(sudoku.FormatCompact(board.Meta.Size, cells))
	return nil
}

// cmdBuildIrregular generates every size-by-size irregular region layout
// whose solution count is positive and within the known target for that
// size, writing (count, layout) pairs to out-file. An optional start
// argument list resumes enumeration from that specific partition instead
// of the beginning.
func cmdBuildIrregular(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: gridsolve build-irregular <size> <out-file> [start...]")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[0], err)
	}

	var start []int
	if len(args) > 2 {
		start = make([]int, len(args)-2)
		for i, a := range args[2:] {
			v, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid start value %q: %w", a, err)
			}
			start[i] = v
		}
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	return sudoku.BuildIrregular(size, start, f)
}

// cmdYinYang runs one of the three Yin-Yang computations over the grid
// read from path: solution-count counts distinct solutions,
// true-candidates reports the merged candidate colors across every
// solution, and candidates runs the deductions to a fixed point and prints
// the resulting per-cell state. true-candidates is the default when computation is
// omitted.
func cmdYinYang(args []string) error {
	computation := "true-candidates"
	var path string
	switch len(args) {
	case 1:
		path = args[0]
	case 2:
		computation = args[0]
		path = args[1]
	default:
		return fmt.Errorf("usage: gridsolve yin-yang [computation] <path>")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	grid, err := yinyang.ParseGrid(string(data))
	if err != nil {
		return err
	}

	switch computation {
	case "solution-count":
		it := solver.NewIterator(yinyang.NewSolvable(grid))
		fmt.Println(it.Count())
	case "true-candidates":
		result := solver.Hybrid(yinyang.NewSolvable(grid), solver.DefaultHybridThreshold)
		if result == nil {
			fmt.Println("No solutions found.")
			return nil
		}
		fmt.Print(result.(*yinyang.Solvable).Grid.String())
	case "candidates":
		g := grid.Clone()
		if !g.Deduce() {
			return fmt.Errorf("contradiction")
		}
		fmt.Print(g.String())
	default:
		return fmt.Errorf("unknown computation %q", computation)
	}
	return nil
}

// cmdServe starts the WebSocket/HTTP transport, shutting down gracefully
// on SIGINT/SIGTERM.
func cmdServe(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	r := gin.Default()
	countOpts := sudoku.CountOptions{
		MaxWorkers:      cfg.MaxWorkers,
		ChannelCapacity: cfg.ChannelCapacity,
		FlushThreshold:  cfg.FlushThreshold,
	}
	httpapi.RegisterRoutes(r, transport.NewDispatcherWithOptions(countOpts))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

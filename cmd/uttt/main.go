// Command uttt plays Ultimate Tic-Tac-Toe over the line protocol described in
// spec.md §6 against an adversarial opponent: read the opponent's last move
// (or "-1 -1" if we move first), read and discard a referee move-count hint,
// search until the per-turn deadline, and print our chosen move. Mirrors
// squava's main_cli.go: stdlib flag for configuration, runtime/pprof gated
// behind -cpuprofile, fmt.Fprintln(os.Stderr, ...) + os.Exit(1) on startup or
// protocol errors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/merlinio2000/ultimate-tic-tac-toe/internal/cpufeature"
	"github.com/merlinio2000/ultimate-tic-tac-toe/internal/game"
	"github.com/merlinio2000/ultimate-tic-tac-toe/internal/mcts"
)

func main() {
	seed := flag.Int64("seed", 0, "PRNG seed (0 = time based)")
	cpuProfile := flag.String("cpuprofile", "", "write cpu profile to file")
	openingMS := flag.Int("opening-ms", 1000, "time budget for the opening move, in milliseconds")
	moveMS := flag.Int("move-ms", 100, "time budget for every move after the opening, in milliseconds")
	guardMS := flag.Int("guard-ms", 20, "guard band subtracted from every budget before computing the deadline")
	flag.Parse()

	if err := cpufeature.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	seedValue := *seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	rng := mcts.NewRNG(seedValue)

	d := &driver{
		in:        bufio.NewScanner(os.Stdin),
		out:       bufio.NewWriter(os.Stdout),
		rng:       rng,
		openingMS: *openingMS,
		moveMS:    *moveMS,
		guardMS:   *guardMS,
	}
	d.run()
}

// driver implements the turn loop: read the opponent's move off stdin,
// promote the tree, search until the per-turn deadline, and emit our move.
// The Tree itself is the out-of-scope "IO/Driver" collaborator's only
// dependency, per spec.md §2/§6 — everything here is line-protocol
// plumbing, not search logic.
type driver struct {
	in  *bufio.Scanner
	out *bufio.Writer

	rng  *mcts.RNG
	tree *mcts.Tree

	openingMS, moveMS, guardMS int
	turnCount                  int
}

func (d *driver) run() {
	for {
		row, col, ok := d.readMove()
		if !ok {
			return
		}

		if d.tree == nil {
			if row == -1 && col == -1 {
				d.tree = mcts.NewAsPlayer1(d.rng)
			} else {
				d.tree = mcts.NewAsPlayer2(d.rng, game.RCToMove(row, col))
			}
		} else {
			d.tree.ApplyMaybeExploredMove(game.RCToMove(row, col))
		}

		d.discardHintLines()

		budget := d.moveMS
		if d.turnCount == 0 {
			budget = d.openingMS
		}
		guard := time.Duration(d.guardMS) * time.Millisecond
		deadline := time.Now().Add(time.Duration(budget)*time.Millisecond - guard)
		d.tree.SearchUntil(deadline)

		move := d.tree.BestExploredMove()
		d.tree.ApplyExploredMove(move)
		d.turnCount++

		mRow, mCol := game.MoveToRC(move)
		fmt.Fprintf(d.out, "%d %d\n", mRow, mCol)
		d.out.Flush()
	}
}

// readMove reads one "<row> <col>" line. A malformed or absent line is a
// protocol error (spec.md §7: "malformed input lines from the driver →
// abort; no recovery is defined"), except a clean EOF which ends the game.
func (d *driver) readMove() (row, col int, ok bool) {
	if !d.in.Scan() {
		if err := d.in.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "uttt: error reading move: %v\n", err)
			os.Exit(1)
		}
		return 0, 0, false
	}
	row, col, err := parseCoordLine(d.in.Text())
	if err != nil {
		fmt.Fprintf(os.Stderr, "uttt: malformed move line: %v\n", err)
		os.Exit(1)
	}
	return row, col, true
}

// discardHintLines reads the referee's "available moves" count and the k
// lines that follow; spec.md §6 documents these as present but unused by the
// core.
func (d *driver) discardHintLines() {
	if !d.in.Scan() {
		fmt.Fprintln(os.Stderr, "uttt: expected move-count hint line, got EOF")
		os.Exit(1)
	}
	k, err := strconv.Atoi(strings.TrimSpace(d.in.Text()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "uttt: malformed move-count hint: %v\n", err)
		os.Exit(1)
	}
	for i := 0; i < k; i++ {
		if !d.in.Scan() {
			fmt.Fprintln(os.Stderr, "uttt: expected hint line, got EOF")
			os.Exit(1)
		}
	}
}

func parseCoordLine(line string) (row, col int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two integers, got %q", line)
	}
	row, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q: %w", fields[0], err)
	}
	col, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col %q: %w", fields[1], err)
	}
	if row == -1 && col == -1 {
		return -1, -1, nil
	}
	if row < 0 || row >= game.Rows*game.Cols || col < 0 || col >= game.Rows*game.Cols {
		return 0, 0, fmt.Errorf("coordinate out of range: (%d, %d)", row, col)
	}
	return row, col, nil
}

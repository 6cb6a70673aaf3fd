// Package search implements expectimax search over Jieqi positions: alternating MAX/MIN
// choice nodes, where the side to move picks among its legal moves under alpha-beta pruning,
// and CHANCE nodes, wherever a move resolves a hidden piece's identity -- a reveal-move, or a
// capture that turns a still-unknown Hidden piece face up. A CHANCE node's value is the
// probability-weighted expectation over every kind still consistent with the mover's (and,
// for a capture, the victim's) remaining hidden pool.
//
// Nodes are a tagged variant baked directly into the recursion rather than a polymorphic node
// type: the hot loop is arithmetic over a handful of moves and kinds, not virtual dispatch
// over a closed, small set of shapes.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herohde/jieqi/pkg/board"
)

// ErrHalted is returned by Search when the search was halted externally before completing
// the requested depth.
var ErrHalted = errors.New("search halted")

// Context carries the alpha-beta window and transposition table through one search call.
// Alpha and Beta are always from the perspective of the side to move at the node in question
// (negamax convention): a child's window is the parent's negated and swapped.
type Context struct {
	Alpha, Beta board.Score
	TT          TranspositionTable
}

// PV reports the outcome of one completed iterative-deepening iteration.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes int
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time, int(100*pv.Hash), board.PrintMoves(pv.Moves))
}

// Search is a root search entry point, used by the iterative-deepening harness in searchctl.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (nodes int, score board.Score, pv []board.Move, err error)
}

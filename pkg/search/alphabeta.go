package search

import (
	"context"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/herohde/jieqi/pkg/board"
)

// AlphaBeta is a negamax alpha-beta searcher with CHANCE-node expectation folded into the
// recursion at every reveal-move or hidden-capture. Explore controls move ordering at full-
// search nodes; Eval is used for leaf evaluation via a bounded Quiescence search.
type AlphaBeta struct {
	Explore Exploration
	Eval    Quiescence
}

func (a AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (int, board.Score, []board.Move, error) {
	return a.run(ctx, sctx, b, 0, depth, sctx.Alpha, sctx.Beta)
}

// run is the negamax recursion. alpha/beta are side-relative to b.Turn() at this node. ply
// counts plies from the search root, used for mate-distance scoring and TT replacement.
func (a AlphaBeta) run(ctx context.Context, sctx *Context, b *board.Board, ply, depth int, alpha, beta board.Score) (int, board.Score, []board.Move, error) {
	if contextx.IsCancelled(ctx) {
		return 0, 0, nil, ErrHalted
	}

	if r := b.Result(); r.IsTerminal() {
		return 1, terminalScore(r, b.Turn(), ply), nil, nil
	}

	moves := board.LegalMoves(b)
	if len(moves) == 0 {
		return 1, board.MinScore + board.Score(ply), nil, nil
	}

	if depth <= 0 {
		n, score, err := a.Eval.run(ctx, sctx, b, ply, alpha, beta)
		return n, score, nil, err
	}

	origAlpha := alpha
	var best board.Move
	haveBest := false
	if sctx.TT != nil {
		if bound, d, score, mv, ok := sctx.TT.Read(b.Hash()); ok && d >= depth {
			if bound == ExactBound {
				return 1, score, []board.Move{mv}, nil
			}
			if bound == LowerBound && score >= beta {
				return 1, score, []board.Move{mv}, nil
			}
			best, haveBest = mv, true
		}
	}

	priority, pick := a.Explore(ctx, b)
	if haveBest {
		priority = board.First(best, priority)
	}
	ordered := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		if pick(m) {
			ordered = append(ordered, m)
		}
	}
	board.SortByPriority(ordered, priority)

	nodes := 0
	bestScore := board.MinScore
	var pv []board.Move

	for _, m := range ordered {
		n, value, childPV, err := a.explore(ctx, sctx, b, m, ply, depth, alpha, beta)
		nodes += n
		if err != nil {
			return nodes, 0, nil, err
		}

		if value > bestScore {
			bestScore = value
			best = m
			pv = append([]board.Move{m}, childPV...)
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	// A fail-low score is only an upper bound, which the table cannot represent: not stored.
	if sctx.TT != nil && bestScore > origAlpha {
		bound := ExactBound
		if bestScore >= beta {
			bound = LowerBound
		}
		sctx.TT.Write(b.Hash(), bound, ply, depth, bestScore, best)
	}

	return nodes, bestScore, pv, nil
}

// explore evaluates one candidate move m, dispatching to the CHANCE-node expectation when m
// resolves a hidden identity, or a plain recursive MAX/MIN continuation otherwise.
func (a AlphaBeta) explore(ctx context.Context, sctx *Context, b *board.Board, m board.Move, ply, depth int, alpha, beta board.Score) (int, board.Score, []board.Move, error) {
	chance, outcomes := isChanceNode(b, m)
	if !chance {
		b.PushMove(m)
		n, s, childPV, err := a.run(ctx, sctx, b, ply+1, depth-1, -beta, -alpha)
		b.PopMove()
		return n, -s, childPV, err
	}

	nodes := 0
	var expected float64
	var bestPV []board.Move
	var bestProb float64

	for _, o := range outcomes {
		origFrom, origTo, hadTo := stamp(b, m, o)
		b.PushMove(m)
		n, s, childPV, err := a.run(ctx, sctx, b, ply+1, depth-1, board.MinScore, board.MaxScore)
		b.PopMove()
		unstamp(b, m, origFrom, origTo, hadTo)

		nodes += n
		if err != nil {
			return nodes, 0, nil, err
		}

		expected += o.prob * float64(-s)
		if o.prob > bestProb {
			bestProb = o.prob
			bestPV = childPV
		}
	}

	return nodes, board.Score(expected), append([]board.Move{m}, bestPV...), nil
}

// terminalScore converts a recorded terminal Result into a side-relative score for side,
// preferring faster wins and slower losses (mate distance) when iterative deepening compares
// across depths.
func terminalScore(r board.Result, side board.Color, ply int) board.Score {
	switch r.Outcome {
	case board.Draw:
		return 0
	case board.Win(side):
		return board.MateScore - board.Score(ply)
	default:
		return -(board.MateScore - board.Score(ply))
	}
}

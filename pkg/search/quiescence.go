package search

import (
	"context"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/eval"
)

// Quiescence is a depth-unbounded quiet search used at the leaves of AlphaBeta: it keeps
// exploring captures and reveal-moves -- the moves that can swing material or collapse a
// hidden piece's expected value -- until the position is quiet, then falls back to the
// static Evaluator. MaxPly caps runaway recursion in adversarial positions.
type Quiescence struct {
	Eval   eval.Evaluator
	MaxPly int
}

func (q Quiescence) run(ctx context.Context, sctx *Context, b *board.Board, ply int, alpha, beta board.Score) (int, board.Score, error) {
	if contextx.IsCancelled(ctx) {
		return 0, 0, ErrHalted
	}

	if r := b.Result(); r.IsTerminal() {
		return 1, terminalScore(r, b.Turn(), ply), nil
	}

	standPat := q.Eval.Evaluate(ctx, b, b.Turn())
	if standPat > alpha {
		alpha = standPat
	}
	if alpha >= beta || ply >= q.maxPly() {
		return 1, alpha, nil
	}

	priority, pick := QuiescentExploration(ctx, b)
	var candidates []board.Move
	for _, m := range board.LegalMoves(b) {
		if pick(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return 1, alpha, nil
	}
	board.SortByPriority(candidates, priority)

	nodes := 1
	for _, m := range candidates {
		n, value, err := q.explore(ctx, sctx, b, m, ply, alpha, beta)
		nodes += n
		if err != nil {
			return nodes, 0, err
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}
	return nodes, alpha, nil
}

func (q Quiescence) explore(ctx context.Context, sctx *Context, b *board.Board, m board.Move, ply int, alpha, beta board.Score) (int, board.Score, error) {
	chance, outcomes := isChanceNode(b, m)
	if !chance {
		b.PushMove(m)
		n, s, err := q.run(ctx, sctx, b, ply+1, -beta, -alpha)
		b.PopMove()
		return n, -s, err
	}

	nodes := 0
	var expected float64
	for _, o := range outcomes {
		origFrom, origTo, hadTo := stamp(b, m, o)
		b.PushMove(m)
		n, s, err := q.run(ctx, sctx, b, ply+1, board.MinScore, board.MaxScore)
		b.PopMove()
		unstamp(b, m, origFrom, origTo, hadTo)

		nodes += n
		if err != nil {
			return nodes, 0, err
		}
		expected += o.prob * float64(-s)
	}
	return nodes, board.Score(expected), nil
}

func (q Quiescence) maxPly() int {
	if q.MaxPly <= 0 {
		return 8
	}
	return q.MaxPly
}

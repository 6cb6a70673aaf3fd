// Package eval contains static position evaluators for Jieqi.
package eval

import (
	"context"

	"github.com/herohde/jieqi/pkg/board"
)

// Evaluator is a static position evaluator. Evaluate returns a side-relative score: positive
// always favours the given side, regardless of whose turn it is.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board, side board.Color) board.Score
}

// PieceValue is the nominal value of a kind in centi-points.
func PieceValue(k board.Kind) board.Score {
	switch k {
	case board.King:
		return 10000
	case board.Rook:
		return 900
	case board.Cannon:
		return 450
	case board.Horse:
		return 400
	case board.Elephant, board.Advisor:
		return 200
	case board.Pawn:
		return 100
	default:
		return 0
	}
}

// pawnRiverBonus adds a centi-point bonus to a pawn that has crossed the river.
func pawnRiverBonus(k board.Kind, pos board.Position, c board.Color) board.Score {
	if k != board.Pawn {
		return 0
	}
	if pos.HasCrossedRiver(c) {
		return 50
	}
	return 0
}

// Material is the baseline evaluator from the position-encoding design: material value per
// piece (Hidden pieces valued at their positional/movement kind, the only information
// available without modelling the hidden pool — see RevealAware for the pool-aware variant),
// a crossed-river pawn bonus, a mobility term, and a check bonus/penalty.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board, side board.Color) board.Score {
	var score board.Score

	for idx := 0; idx < board.NumSquares; idx++ {
		p, ok := b.At(board.PositionFromIndex(idx))
		if !ok {
			continue
		}
		kind := p.MovementKind()
		value := PieceValue(kind) + pawnRiverBonus(kind, p.Position, p.Color)

		if p.Color == side {
			score += value
		} else {
			score -= value
		}
	}

	score += mobilityTerm(b, side)
	score += checkTerm(b, side)

	return score
}

func mobilityTerm(b *board.Board, side board.Color) board.Score {
	ours := countMoves(b, side)
	theirs := countMoves(b, side.Opponent())
	return board.Score(5 * (ours - theirs))
}

func countMoves(b *board.Board, c board.Color) int {
	if b.Turn() == c {
		return len(board.LegalMoves(b))
	}
	// LegalMoves only enumerates the side to move; flip turn temporarily to count the other
	// side's mobility, restoring it immediately after.
	b.SetTurn(c)
	n := len(board.LegalMoves(b))
	b.SetTurn(c.Opponent())
	return n
}

func checkTerm(b *board.Board, side board.Color) board.Score {
	var score board.Score
	if board.IsChecked(b, side) {
		score -= 100
	}
	if board.IsChecked(b, side.Opponent()) {
		score += 100
	}
	return score
}

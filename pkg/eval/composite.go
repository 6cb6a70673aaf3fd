package eval

import (
	"context"

	"github.com/herohde/jieqi/pkg/board"
)

// Style selects which move-specific bonus a Composite evaluator layers atop its base.
type Style int

const (
	// Greedy adds no bonus: the base evaluator's score unchanged.
	Greedy Style = iota
	// Aggressive rewards the move that reached this position for capturing and for
	// giving check, on top of the base material/mobility/check terms.
	Aggressive
	// Defensive penalizes leaving own pieces hanging to an undefended capture.
	Defensive
)

// Composite layers a style-specific bonus on top of a base Evaluator, per the strategies
// registered under "aggressive", "defensive" and "greedy".
type Composite struct {
	Base  Evaluator
	Style Style
}

func (c Composite) Evaluate(ctx context.Context, b *board.Board, side board.Color) board.Score {
	score := c.Base.Evaluate(ctx, b, side)

	switch c.Style {
	case Aggressive:
		if last, ok := b.LastMove(); ok && last.Capture {
			score += 50
		}
		if board.IsChecked(b, side.Opponent()) {
			score += 50
		}

	case Defensive:
		score -= threatOfLossPenalty(b, side)
	}

	return score
}

// threatOfLossPenalty sums, over side's own pieces, half the nominal value of every piece
// that is attacked by the opponent and not defended by any piece of side's own.
func threatOfLossPenalty(b *board.Board, side board.Color) board.Score {
	var penalty board.Score
	for idx := 0; idx < board.NumSquares; idx++ {
		pos := board.PositionFromIndex(idx)
		p, ok := b.At(pos)
		if !ok || p.Color != side {
			continue
		}
		if !board.IsAttacked(b, pos, side.Opponent()) {
			continue
		}
		// Move generation never targets a friendly square, so test for a defender by briefly
		// handing the square to the opponent.
		enemy := p
		enemy.Color = side.Opponent()
		b.Place(pos, enemy)
		defended := board.IsAttacked(b, pos, side)
		b.Place(pos, p)
		if defended {
			continue
		}
		penalty += PieceValue(p.MovementKind()) / 2
	}
	return penalty
}

package eval

import (
	"context"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/view"
)

// RevealAware is the Material evaluator with each Hidden piece's contribution replaced by
// its expected value under that colour's hidden pool, from side's perspective as viewer.
type RevealAware struct{}

func (RevealAware) Evaluate(ctx context.Context, b *board.Board, side board.Color) board.Score {
	var score board.Score

	expected := map[board.Color]board.Score{
		board.Red:   expectedHiddenValue(b, board.Red, side),
		board.Black: expectedHiddenValue(b, board.Black, side),
	}
	hiddenOnBoard := map[board.Color]int{
		board.Red:   view.HiddenOnBoardCount(b, board.Red),
		board.Black: view.HiddenOnBoardCount(b, board.Black),
	}

	for idx := 0; idx < board.NumSquares; idx++ {
		p, ok := b.At(board.PositionFromIndex(idx))
		if !ok {
			continue
		}

		var value board.Score
		if p.State == board.Hidden {
			if n := hiddenOnBoard[p.Color]; n > 0 {
				value = expected[p.Color] / board.Score(n)
			}
		} else {
			kind := p.TrueKind
			value = PieceValue(kind) + pawnRiverBonus(kind, p.Position, p.Color)
		}

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

// expectedHiddenValue returns the total expected material value of colour c's still-Hidden
// pieces, under the hidden pool computed from viewer's perspective.
func expectedHiddenValue(b *board.Board, c, viewer board.Color) board.Score {
	pool := view.HiddenPool(b, c, viewer)

	total := 0
	for _, n := range pool {
		total += n
	}
	if total == 0 {
		return 0
	}

	var sum board.Score
	for k, n := range pool {
		sum += PieceValue(k) * board.Score(n)
	}
	// sum/total is one Hidden piece's expected value; the pool can hold more kinds than there
	// are Hidden pieces on board (captures the viewer could not identify), so scale by the
	// hidden-on-board count. The caller divides by that count again per square.
	return sum * board.Score(view.HiddenOnBoardCount(b, c)) / board.Score(total)
}

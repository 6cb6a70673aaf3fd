package search

import (
	"context"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/eval"
)

// MovePredicateFn selects a subset of moves to explore, e.g. captures-only for quiescence.
type MovePredicateFn func(move board.Move) bool

// Exploration defines move selection and priority at a given position. Full search uses
// FullExploration; quiescence uses a narrower predicate over captures and reveals.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, MovePredicateFn)

func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, MovePredicateFn) {
	return MVVLVA(b), IsAnyMove
}

// QuiescentExploration restricts exploration to captures and reveal-moves: the only moves
// that change either material or the information state enough to unsettle a static eval.
func QuiescentExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, MovePredicateFn) {
	return MVVLVA(b), IsCaptureOrReveal
}

// Selection returns a move order and priority restricted to the given list, most-preferred
// first -- used to replay a transposition table's best move ahead of the rest.
func Selection(list []board.Move) (board.MovePriorityFn, MovePredicateFn) {
	rank := map[board.Move]board.MovePriority{}
	for i, m := range list {
		rank[m] = board.MovePriority(len(list) - i)
	}

	priority := func(move board.Move) board.MovePriority {
		return rank[move]
	}
	pick := func(move board.Move) bool {
		_, ok := rank[move]
		return ok
	}
	return priority, pick
}

// MVVLVA implements most-valuable-victim/least-valuable-attacker move priority: captures of
// high-value pieces by low-value attackers sort first, plain reveal-moves next, quiet moves
// last. Hidden pieces are valued at their current movement kind -- the only information
// available to the side choosing move order, mirroring a player's own view of the board.
func MVVLVA(b *board.Board) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		var p board.MovePriority
		if m.Capture {
			if victim, ok := b.At(m.To); ok {
				p += 100 * board.MovePriority(eval.PieceValue(victim.MovementKind()))
			}
			if attacker, ok := b.At(m.From); ok {
				p -= board.MovePriority(eval.PieceValue(attacker.MovementKind()))
			}
		}
		if m.Reveal {
			p += 1
		}
		return p
	}
}

// IsAnyMove selects every move.
func IsAnyMove(m board.Move) bool {
	return true
}

// IsCaptureOrReveal selects captures and reveal-moves only.
func IsCaptureOrReveal(m board.Move) bool {
	return m.Capture || m.Reveal
}

package search

import (
	"github.com/herohde/jieqi/pkg/board"
)

// outcome is one resolved hypothesis of a CHANCE node: the stamped kind for the mover (if the
// move is a reveal) and/or the victim (if it captures a still-unknown Hidden piece), and the
// joint probability of that hypothesis.
type outcome struct {
	prob           float64
	moverKind      board.Kind // board.NoKind if the move isn't a reveal
	victimKind     board.Kind // board.NoKind if there's no unresolved captured victim
}

// isChanceNode reports whether applying m to b requires resolving a hidden identity first,
// and if so returns every weighted hypothesis for that resolution.
func isChanceNode(b *board.Board, m board.Move) (bool, []outcome) {
	movers := singleOutcome(board.NoKind)
	if m.Reveal {
		mover, _ := b.At(m.From)
		movers = weightedKinds(board.RemainingPool(b, mover.Color))
	}

	victims := singleOutcome(board.NoKind)
	if target, ok := b.At(m.To); ok && target.State == board.Hidden && target.TrueKind == board.NoKind {
		victims = weightedKinds(board.RemainingPool(b, target.Color))
	}

	if len(movers) == 1 && movers[0].prob == 1 && movers[0].moverKind == board.NoKind &&
		len(victims) == 1 && victims[0].prob == 1 && victims[0].victimKind == board.NoKind {
		return false, nil
	}

	var joint []outcome
	for _, mv := range movers {
		for _, vc := range victims {
			joint = append(joint, outcome{
				prob:       mv.prob * vc.prob,
				moverKind:  mv.moverKind,
				victimKind: vc.victimKind,
			})
		}
	}
	return true, joint
}

func singleOutcome(k board.Kind) []outcome {
	return []outcome{{prob: 1, moverKind: k, victimKind: k}}
}

func weightedKinds(pool map[board.Kind]int) []outcome {
	total := 0
	for _, n := range pool {
		total += n
	}
	if total == 0 {
		return []outcome{{prob: 1, moverKind: board.NoKind, victimKind: board.NoKind}}
	}

	var out []outcome
	for _, k := range board.HiddenPoolKinds {
		if n := pool[k]; n > 0 {
			out = append(out, outcome{prob: float64(n) / float64(total), moverKind: k, victimKind: k})
		}
	}
	return out
}

// stamp applies o's hypothesised kinds onto b's still-Hidden pieces at m.From/m.To, returning
// the original pieces so the caller can restore them after exploring this hypothesis.
func stamp(b *board.Board, m board.Move, o outcome) (origFrom board.Piece, origTo board.Piece, hadTo bool) {
	origFrom, _ = b.At(m.From)
	if o.moverKind != board.NoKind {
		b.Place(m.From, board.Piece{Color: origFrom.Color, TrueKind: o.moverKind, State: board.Hidden})
	}

	origTo, hadTo = b.At(m.To)
	if hadTo && o.victimKind != board.NoKind {
		b.Place(m.To, board.Piece{Color: origTo.Color, TrueKind: o.victimKind, State: board.Hidden})
	}

	return origFrom, origTo, hadTo
}

// unstamp restores the pieces stamp replaced, undoing it exactly.
func unstamp(b *board.Board, m board.Move, origFrom, origTo board.Piece, hadTo bool) {
	b.Place(m.From, origFrom)
	if hadTo {
		b.Place(m.To, origTo)
	}
}

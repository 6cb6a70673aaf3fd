// Package view implements the perspective projection of a Jieqi board: what a given viewer
// knows about hidden pieces, on the board and in the captured ledger.
package view

import (
	"github.com/herohde/jieqi/pkg/board"
)

// PieceView is a viewer-facing projection of one board occupant.
type PieceView struct {
	Color        board.Color
	Position     board.Position
	IsHidden     bool
	TrueKind     board.Kind // board.NoKind if IsHidden.
	MovementKind board.Kind // the kind it currently moves as, known to every viewer.
}

// Board projects b onto what viewer knows: every Hidden piece is reported without its true
// kind (even if this process happens to track ground truth), every Revealed piece with it.
func Board(b *board.Board, viewer board.Color) []PieceView {
	var out []PieceView
	for idx := 0; idx < board.NumSquares; idx++ {
		pos := board.PositionFromIndex(idx)
		p, ok := b.At(pos)
		if !ok {
			continue
		}
		pv := PieceView{Color: p.Color, Position: pos, MovementKind: p.MovementKind()}
		if p.State == board.Hidden {
			pv.IsHidden = true
			pv.TrueKind = board.NoKind
		} else {
			pv.TrueKind = p.TrueKind
		}
		out = append(out, pv)
	}
	return out
}

// CapturedView is a viewer-facing projection of one captured-ledger entry.
type CapturedView struct {
	Color     board.Color
	Kind      board.Kind // board.NoKind if the viewer does not know it.
	WasHidden bool
}

// Captured projects colour c's captured ledger onto what viewer knows about it: entries
// captured while Hidden keep their kind iff viewer was the capturer (c != viewer).
func Captured(b *board.Board, c, viewer board.Color) []CapturedView {
	var out []CapturedView
	for _, e := range b.Captured(c) {
		cv := CapturedView{Color: c, Kind: e.Kind, WasHidden: e.WasHidden}
		if e.WasHidden && c == viewer {
			cv.Kind = board.NoKind
		}
		out = append(out, cv)
	}
	return out
}

// HiddenPool computes, for colour c from viewer's perspective, the multiset of kinds still
// consistent with every Hidden piece of that colour the viewer cannot yet place:
//
//	pool[k] = initial_allotment[k] - revealed_on_board[k] - captured_known_to_viewer[k]
func HiddenPool(b *board.Board, c, viewer board.Color) map[board.Kind]int {
	pool := map[board.Kind]int{}
	for _, k := range board.HiddenPoolKinds {
		pool[k] = board.InitialAllotment[k]
	}

	for idx := 0; idx < board.NumSquares; idx++ {
		p, ok := b.At(board.PositionFromIndex(idx))
		if !ok || p.Color != c || p.State != board.Revealed || p.TrueKind == board.King {
			continue
		}
		pool[p.TrueKind]--
	}

	for _, cv := range Captured(b, c, viewer) {
		if cv.Kind == board.NoKind || cv.Kind == board.King {
			continue
		}
		pool[cv.Kind]--
	}

	return pool
}

// HiddenOnBoardCount returns the number of colour c's pieces that are still Hidden on board.
func HiddenOnBoardCount(b *board.Board, c board.Color) int {
	n := 0
	for idx := 0; idx < board.NumSquares; idx++ {
		p, ok := b.At(board.PositionFromIndex(idx))
		if ok && p.Color == c && p.State == board.Hidden {
			n++
		}
	}
	return n
}

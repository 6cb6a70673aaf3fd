package jfn

import (
	"fmt"

	"github.com/herohde/jieqi/pkg/board"
)

// Validate checks the numbered invariants from the position-encoding design against a
// decoded board and its captured ledger, from the given viewer's perspective. Board-shape
// invariants (1) are already enforced by Decode's strict parse; this covers invariants (2)-(8).
func Validate(b *board.Board, viewer board.Color) error {
	onBoard := map[board.Color]map[board.Kind]int{
		board.Red:   {},
		board.Black: {},
	}
	kings := map[board.Color]int{}

	for idx := 0; idx < board.NumSquares; idx++ {
		p, ok := b.At(board.PositionFromIndex(idx))
		if !ok {
			continue
		}
		if p.State == board.Revealed {
			onBoard[p.Color][p.TrueKind]++
			if p.TrueKind == board.King {
				kings[p.Color]++
			}
		} else {
			onBoard[p.Color][board.NoKind]++
		}
	}

	// (2) exactly one King of each colour.
	if kings[board.Red] != 1 {
		return fmt.Errorf("expected exactly one red king, found %d", kings[board.Red])
	}
	if kings[board.Black] != 1 {
		return fmt.Errorf("expected exactly one black king, found %d", kings[board.Black])
	}

	allotment := map[board.Kind]int{board.King: 1}
	for k, n := range board.InitialAllotment {
		allotment[k] = n
	}

	for _, c := range []board.Color{board.Red, board.Black} {
		// (3) on-board count per kind does not exceed allotment.
		for k, n := range onBoard[c] {
			if k == board.NoKind {
				continue
			}
			if n > allotment[k] {
				return fmt.Errorf("%v has %d revealed %v, exceeds allotment %d", c, n, k, allotment[k])
			}
		}

		revealedTotal := 0
		for k, n := range onBoard[c] {
			if k != board.NoKind {
				revealedTotal += n
			}
		}
		hiddenCount := onBoard[c][board.NoKind]

		// (4) hidden count per colour <= 16 - revealed count of that colour.
		if hiddenCount > 16-revealedTotal {
			return fmt.Errorf("%v has %d hidden pieces, exceeds 16-revealed=%d", c, hiddenCount, 16-revealedTotal)
		}

		// (5) on-board + captured = 16 per colour.
		capturedCount := len(b.Captured(c))
		if revealedTotal+hiddenCount+capturedCount != 16 {
			return fmt.Errorf("%v on-board(%d)+captured(%d) != 16", c, revealedTotal+hiddenCount, capturedCount)
		}

		// (8) viewer's own captured entries never lowercase; opponent's never "?".
		for _, e := range b.Captured(c) {
			if !e.WasHidden {
				continue
			}
			if c == viewer && e.Kind != board.NoKind {
				return fmt.Errorf("%v (viewer) captured entry claims known kind %v but viewer is the victim", c, e.Kind)
			}
			if c != viewer && e.Kind == board.NoKind {
				return fmt.Errorf("%v (opponent) captured entry is unknown but viewer was the capturer", c)
			}
		}
	}

	// (6) kings not face-to-face.
	if kingsFaceToFace(b) {
		return fmt.Errorf("kings are face-to-face")
	}

	// (7) side not to move is not in check.
	if board.IsChecked(b, b.Turn().Opponent()) {
		return fmt.Errorf("side not to move (%v) is in check", b.Turn().Opponent())
	}

	return nil
}

func kingsFaceToFace(b *board.Board) bool {
	red, black := b.King(board.Red), b.King(board.Black)
	if red.Col != black.Col {
		return false
	}
	lo, hi := red.Row, black.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if _, ok := b.At(board.NewPosition(int(r), int(red.Col))); ok {
			return false
		}
	}
	return true
}

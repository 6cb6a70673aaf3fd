package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHiddenRookMovesAsRookFromStartSquare(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(9, 3), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.Place(NewPosition(0, 0), Piece{Color: Red, TrueKind: Pawn, State: Hidden})
	b.hash = b.zt.Hash(b.placement)

	moves := LegalMoves(b)

	found := false
	for _, m := range moves {
		if m.From == NewPosition(0, 0) && m.To == NewPosition(4, 0) {
			found = true
			assert.True(t, m.Reveal)
		}
	}
	assert.True(t, found, "hidden piece on a0 should move as a rook (its positional kind)")
}

func TestCannonRequiresExactlyOneScreenToCapture(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(9, 4), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.Place(NewPosition(2, 1), Piece{Color: Red, TrueKind: Cannon, State: Revealed})
	b.Place(NewPosition(5, 1), Piece{Color: Red, TrueKind: Pawn, State: Revealed})
	b.Place(NewPosition(7, 1), Piece{Color: Black, TrueKind: Pawn, State: Revealed})
	b.hash = b.zt.Hash(b.placement)

	moves := PseudoLegalMoves(b, nil)

	var captures, slides int
	for _, m := range moves {
		if m.From != NewPosition(2, 1) {
			continue
		}
		if m.Capture {
			captures++
			assert.Equal(t, NewPosition(7, 1), m.To)
		} else if m.To.Col == 1 {
			slides++
		}
	}
	assert.Equal(t, 1, captures)
	assert.Equal(t, 4, slides) // rows 0 and 1 below, rows 3 and 4 above, stopping before the screen at row 5
}

func TestFaceToFaceKingsIsIllegal(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(9, 3), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.hash = b.zt.Hash(b.placement)

	// e0-d0 would put the red king on the black king's open file.
	for _, m := range LegalMoves(b) {
		assert.False(t, m.To == NewPosition(0, 3) && m.From == NewPosition(0, 4))
	}
}

func TestNoLegalMovesIsLossForSideToMove(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Black)
	// Black king boxed into a corner of its palace; both candidate squares are defended
	// captures, so every pseudo-legal king move leaves the king in check.
	b.Place(NewPosition(9, 3), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(8, 3), Piece{Color: Red, TrueKind: Rook, State: Revealed})
	b.Place(NewPosition(0, 3), Piece{Color: Red, TrueKind: Rook, State: Revealed})
	b.Place(NewPosition(9, 4), Piece{Color: Red, TrueKind: Rook, State: Revealed})
	b.Place(NewPosition(5, 4), Piece{Color: Red, TrueKind: Rook, State: Revealed})
	b.hash = b.zt.Hash(b.placement)

	moves := LegalMoves(b)
	assert.Empty(t, moves)
}

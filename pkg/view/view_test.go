package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
)

func TestHiddenPoolAfterReveal(t *testing.T) {
	zt := board.NewZobristTable(11)
	b, _, viewer, err := jfn.Decode(zt, jfn.Initial)
	require.NoError(t, err)

	mv, err := board.ParseAppliedMove("+a0a0=R")
	require.NoError(t, err)
	// a0a0 isn't a real move (same square); use the documented stand-in: reveal a0->a1,
	// asserting as an R to pin the identity for the pool check below.
	mv.To = board.NewPosition(1, 0)

	_, _, err = board.ApplyMove(b, mv)
	require.NoError(t, err)

	pool := HiddenPool(b, board.Red, viewer)
	assert.Equal(t, 1, pool[board.Rook])
	assert.Equal(t, 5, pool[board.Pawn])
}

func TestCapturedViewHidesVictimsOwnLoss(t *testing.T) {
	zt := board.NewZobristTable(3)
	b := board.NewEmptyBoard(zt, board.Red)
	b.Place(board.NewPosition(0, 4), board.Piece{Color: board.Red, TrueKind: board.King, State: board.Revealed})
	b.Place(board.NewPosition(9, 4), board.Piece{Color: board.Black, TrueKind: board.King, State: board.Revealed})
	b.RecordCaptured(board.Red, board.CapturedEntry{Kind: board.Horse, WasHidden: true})
	b.RehashPlacement()

	fromRed := Captured(b, board.Red, board.Red)
	require.Len(t, fromRed, 1)
	assert.Equal(t, board.NoKind, fromRed[0].Kind)

	fromBlack := Captured(b, board.Red, board.Black)
	require.Len(t, fromBlack, 1)
	assert.Equal(t, board.Horse, fromBlack[0].Kind)
}

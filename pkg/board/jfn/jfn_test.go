package jfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/board"
)

func zt() *board.ZobristTable {
	return board.NewZobristTable(7)
}

func TestRoundTrip(t *testing.T) {
	b, turn, viewer, err := Decode(zt(), Initial)
	require.NoError(t, err)
	assert.Equal(t, board.Red, turn)
	assert.Equal(t, board.Red, viewer)

	out := Encode(b, viewer)
	assert.Equal(t, Initial, out)
}

func TestRevealMoveIdentity(t *testing.T) {
	in := "xxxxkxxxx/9/1x5x1/x1x1x1x1x/9/9/X1X1X1X1X/1X5X1/9/XXXXKXXXX -:- r r"
	b, _, _, err := Decode(zt(), in)
	require.NoError(t, err)

	mv, err := board.ParseAppliedMove("+a0a1=P")
	require.NoError(t, err)

	_, _, err = board.ApplyMove(b, mv)
	require.NoError(t, err)

	p, ok := b.At(board.NewPosition(1, 0))
	require.True(t, ok)
	assert.Equal(t, board.Revealed, p.State)
	assert.Equal(t, board.Pawn, p.TrueKind)
	assert.Empty(t, b.Captured(board.Red))
	assert.Empty(t, b.Captured(board.Black))
}

func TestCaptureLedgerRecordsRevealedKind(t *testing.T) {
	in := "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r"
	b, _, _, err := Decode(zt(), in)
	require.NoError(t, err)

	mv, err := board.ParseMove("e4e5")
	require.NoError(t, err)

	captured, _, err := board.ApplyMove(b, mv)
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, board.Cannon, captured.Kind)
	assert.False(t, captured.WasHidden)

	out := Encode(b, board.Black)
	assert.Contains(t, out, " -:C ")
}

func TestCapturedFieldEncodesViewerKnowledge(t *testing.T) {
	b := board.NewEmptyBoard(zt(), board.Red)
	b.Place(board.NewPosition(0, 4), board.Piece{Color: board.Red, TrueKind: board.King, State: board.Revealed})
	b.Place(board.NewPosition(9, 4), board.Piece{Color: board.Black, TrueKind: board.King, State: board.Revealed})
	b.RecordCaptured(board.Red, board.CapturedEntry{Kind: board.Rook, WasHidden: true})
	b.RehashPlacement()

	// From the red viewer's perspective, red lost a hidden piece to black: red is the
	// victim and does not know the kind.
	redView := Encode(b, board.Red)
	assert.Contains(t, redView, "?:- ")

	// From the black viewer's perspective, black captured it and knows the kind.
	blackView := Encode(b, board.Black)
	assert.Contains(t, blackView, "r:- ")
}

func TestDecodeRejectsMalformedBoard(t *testing.T) {
	_, _, _, err := Decode(zt(), "xxxxkxxxx/9/9 -:- r r")
	assert.Error(t, err)
}

func TestDecodeRejectsTwoKingsSameColour(t *testing.T) {
	bad := "4k4/9/9/9/9/9/9/9/9/4KK3 -:- r r"
	_, _, _, err := Decode(zt(), bad)
	assert.Error(t, err)
}

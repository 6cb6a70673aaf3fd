package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZobrist() *ZobristTable {
	return NewZobristTable(42)
}

func TestPushPopMoveRestoresBoard(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(9, 4), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.Place(NewPosition(4, 4), Piece{Color: Red, TrueKind: Rook, State: Hidden})
	b.hash = b.zt.Hash(b.placement)

	before := b.hash
	m := Move{From: NewPosition(4, 4), To: NewPosition(5, 4), Reveal: true}

	ok := b.PushMove(m)
	require.True(t, ok)
	moved, found := b.At(NewPosition(5, 4))
	require.True(t, found)
	assert.Equal(t, Revealed, moved.State)
	assert.Equal(t, Rook, moved.TrueKind)

	last, ok := b.PopMove()
	require.True(t, ok)
	assert.Equal(t, m, last)
	assert.Equal(t, before, b.hash)

	restored, found := b.At(NewPosition(4, 4))
	require.True(t, found)
	assert.Equal(t, Hidden, restored.State)
	_, gone := b.At(NewPosition(5, 4))
	assert.False(t, gone)
}

func TestPushMoveAppendsCapturedLedger(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(9, 4), Piece{Color: Black, TrueKind: King, State: Revealed})
	b.Place(NewPosition(4, 4), Piece{Color: Red, TrueKind: Rook, State: Revealed})
	b.Place(NewPosition(5, 4), Piece{Color: Black, TrueKind: Cannon, State: Revealed})
	b.hash = b.zt.Hash(b.placement)

	ok := b.PushMove(Move{From: NewPosition(4, 4), To: NewPosition(5, 4), Capture: true})
	require.True(t, ok)

	lost := b.Captured(Black)
	require.Len(t, lost, 1)
	assert.Equal(t, Cannon, lost[0].Kind)
	assert.False(t, lost[0].WasHidden)

	_, ok = b.PopMove()
	assert.True(t, ok)
}

func TestKingCaptureEndsGame(t *testing.T) {
	zt := newTestZobrist()
	b := NewEmptyBoard(zt, Red)
	b.Place(NewPosition(0, 4), Piece{Color: Red, TrueKind: King, State: Revealed})
	b.Place(NewPosition(1, 4), Piece{Color: Black, TrueKind: King, State: Revealed})

	b.PushMove(Move{From: NewPosition(0, 4), To: NewPosition(1, 4), Capture: true})
	assert.Equal(t, RedWins, b.Result().Outcome)
	assert.Equal(t, KingCapture, b.Result().Reason)
}

func TestStartingKindMatchesBackRank(t *testing.T) {
	assert.Equal(t, Rook, StartingKind(NewPosition(0, 0), Red))
	assert.Equal(t, Horse, StartingKind(NewPosition(0, 1), Red))
	assert.Equal(t, Elephant, StartingKind(NewPosition(0, 2), Red))
	assert.Equal(t, Advisor, StartingKind(NewPosition(0, 3), Red))
	assert.Equal(t, King, StartingKind(NewPosition(0, 4), Red))
	assert.Equal(t, Cannon, StartingKind(NewPosition(2, 1), Red))
	assert.Equal(t, Pawn, StartingKind(NewPosition(3, 0), Red))
	assert.Equal(t, Rook, StartingKind(NewPosition(9, 8), Black))
	assert.Equal(t, Pawn, StartingKind(NewPosition(6, 8), Black))
}

package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
	"github.com/herohde/jieqi/pkg/engine"
)

func TestGetLegalMovesOnStartingPosition(t *testing.T) {
	zt := board.NewZobristTable(31)

	moves, err := engine.GetLegalMoves(zt, "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR -:- r r")
	require.NoError(t, err)
	assert.NotEmpty(t, moves)
}

func TestGetEvalIsZeroForSymmetricStartingPosition(t *testing.T) {
	zt := board.NewZobristTable(32)

	score, err := engine.GetEval(context.Background(), zt, jfn.Initial, "it2")
	require.NoError(t, err)
	assert.Equal(t, board.Score(0), score)
}

func TestApplyMoveWithCaptureEncodesResultingPosition(t *testing.T) {
	zt := board.NewZobristTable(33)

	after, captured, err := engine.ApplyMoveWithCapture(zt, "4k4/9/9/9/4r4/4R4/9/9/9/4K4 -:- r r", "e4e5", board.Red)
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, board.Rook, captured.Kind)
	assert.Equal(t, board.Black, captured.Color)
	assert.False(t, captured.WasHidden)
	assert.Contains(t, after, "r")
}

func TestGetBestMovesFullStatsRanksCaptureFirst(t *testing.T) {
	zt := board.NewZobristTable(34)

	stats, err := engine.GetBestMovesFullStats(context.Background(), zt, "4k4/9/9/9/4r4/4R4/9/9/9/4K4 -:- r r", "greedy", 50*time.Millisecond, 5)
	require.NoError(t, err)
	require.NotEmpty(t, stats.Moves)
	assert.Equal(t, "e4e5", stats.Moves[0].Move)
}

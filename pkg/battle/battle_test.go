package battle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/battle"
	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
)

func TestRunEndsInKingCaptureWhenOneSideHasNoDefense(t *testing.T) {
	zt := board.NewZobristTable(41)
	b, _, _, err := jfn.Decode(zt, "4k4/9/9/9/9/4R4/9/9/9/4K4 -:- r r")
	require.NoError(t, err)

	result, err := battle.Run(context.Background(), zt, b, battle.Config{
		RedStrategy:   "greedy",
		BlackStrategy: "greedy",
		TimeLimit:     20 * time.Millisecond,
		MaxMoves:      20,
	})
	require.NoError(t, err)

	assert.Equal(t, board.RedWins, result.Outcome)
	assert.Equal(t, board.KingCapture, result.Reason)
	assert.NotEmpty(t, result.History)
}

func TestRunStopsAtMoveLimit(t *testing.T) {
	zt := board.NewZobristTable(42)
	b, _, _, err := jfn.Decode(zt, jfn.Initial)
	require.NoError(t, err)

	result, err := battle.Run(context.Background(), zt, b, battle.Config{
		RedStrategy:   "random",
		BlackStrategy: "random",
		TimeLimit:     5 * time.Millisecond,
		MaxMoves:      2,
	})
	require.NoError(t, err)

	assert.Len(t, result.History, 2)
	assert.Equal(t, 2, result.TotalMoves)
}

package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
)

func TestMaterialFavorsExtraRook(t *testing.T) {
	zt := board.NewZobristTable(1)
	b, _, _, err := jfn.Decode(zt, "4k4/9/9/9/9/4R4/9/9/9/4K4 -:- r r")
	require.NoError(t, err)

	score := Material{}.Evaluate(context.Background(), b, board.Red)
	assert.Greater(t, int(score), 0)

	inverse := Material{}.Evaluate(context.Background(), b, board.Black)
	assert.Equal(t, -score, inverse)
}

func TestRevealAwareAssignsExpectedValueToHiddenPieces(t *testing.T) {
	zt := board.NewZobristTable(2)
	b, _, viewer, err := jfn.Decode(zt, jfn.Initial)
	require.NoError(t, err)

	score := RevealAware{}.Evaluate(context.Background(), b, viewer)
	assert.Equal(t, board.Score(0), score) // symmetric starting position, same viewer knowledge both sides
}

func TestCompositeAggressiveRewardsCapture(t *testing.T) {
	zt := board.NewZobristTable(5)
	b, _, _, err := jfn.Decode(zt, "4k4/9/9/9/4c4/4R4/9/9/9/4K4 -:- r r")
	require.NoError(t, err)

	mv, err := board.ParseMove("e4e5")
	require.NoError(t, err)
	_, _, err = board.ApplyMove(b, mv)
	require.NoError(t, err)

	base := Material{}.Evaluate(context.Background(), b, board.Red)
	aggressive := Composite{Base: Material{}, Style: Aggressive}.Evaluate(context.Background(), b, board.Red)
	assert.Greater(t, int(aggressive), int(base))
}

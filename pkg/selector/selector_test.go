package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
	"github.com/herohde/jieqi/pkg/selector"
)

func TestSelectSkipsMoveThatWouldReachRepetitionThreshold(t *testing.T) {
	zt := board.NewZobristTable(21)
	b, _, _, err := jfn.Decode(zt, "4k4/9/9/9/9/4R4/9/4C4/9/4K4 -:- r r")
	require.NoError(t, err)

	back, err := board.ParseMove("e4e3")
	require.NoError(t, err)
	forward, err := board.ParseMove("e2e3")
	require.NoError(t, err)

	fork := b.Fork()
	require.True(t, fork.PushMove(back))
	repeated := fork.Hash()

	counts := map[board.ZobristHash]int{repeated: 2}
	candidates := []selector.Candidate{{Move: back, Score: 10}, {Move: forward, Score: 5}}

	chosen, idx := selector.Select(b, candidates, counts, 3)
	assert.Equal(t, 1, idx)
	assert.True(t, chosen.Move.Equals(forward))
}

func TestSelectAcceptsOnlyCandidateEvenIfRepeating(t *testing.T) {
	zt := board.NewZobristTable(22)
	b, _, _, err := jfn.Decode(zt, "4k4/9/9/9/9/4R4/9/9/9/4K4 -:- r r")
	require.NoError(t, err)

	mv, err := board.ParseMove("e4e5")
	require.NoError(t, err)

	fork := b.Fork()
	require.True(t, fork.PushMove(mv))
	counts := map[board.ZobristHash]int{fork.Hash(): 5}

	chosen, idx := selector.Select(b, []selector.Candidate{{Move: mv, Score: 1}}, counts, 3)
	assert.Equal(t, 0, idx)
	assert.True(t, chosen.Move.Equals(mv))
}

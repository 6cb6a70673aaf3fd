// Package selector implements repetition-avoiding move selection: given a ranked list of
// candidate moves from a search, pick the highest-ranked one that does not push a position's
// repeat count to the battle's draw threshold, unless every candidate would.
package selector

import (
	"github.com/herohde/jieqi/pkg/board"
)

// Candidate is one ranked move returned by a search, best first.
type Candidate struct {
	Move  board.Move
	Score board.Score
}

// DefaultMaxRepetitions is the repeat count at which a position is adjudicated a draw.
const DefaultMaxRepetitions = 3

// Select walks candidates in rank order, tentatively applying each to a forked copy of b,
// and returns the first whose resulting position would not reach maxRepetitions in counts.
// If every candidate would reach it, the first (best-ranked) candidate is returned. counts is keyed by the resulting board's hash (post-move
// placement only, matching the position encoding's own hash scope) and maps to the number of
// times that position has already occurred in the game so far.
func Select(b *board.Board, candidates []Candidate, counts map[board.ZobristHash]int, maxRepetitions int) (Candidate, int) {
	if maxRepetitions <= 0 {
		maxRepetitions = DefaultMaxRepetitions
	}

	for idx, c := range candidates {
		fork := b.Fork()
		if ok := fork.PushMove(c.Move); !ok {
			continue
		}
		hash := fork.Hash()

		if counts[hash]+1 >= maxRepetitions {
			continue
		}
		return c, idx
	}
	return candidates[0], 0
}

package eval

import (
	"context"
	"math/rand"

	"github.com/herohde/jieqi/pkg/board"
)

// Random is a randomised noise generator, used to add a small amount of randomness to an
// evaluation so that otherwise-tied candidates don't always resolve the same way. The limit
// specifies how many centi-points to add/remove in the range [-limit/2; limit-limit/2). The zero
// value always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board, side board.Color) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}

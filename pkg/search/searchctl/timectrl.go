package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/herohde/jieqi/pkg/board"
)

// TimeControl represents time control information for a battle.
type TimeControl struct {
	Red, Black time.Duration
	Moves      int // 0 == rest of game
}

// Limits returns a soft and hard limit for making a move with the given colour. After the
// soft limit, no new iterative-deepening depth should be started; the hard limit forcibly
// halts an in-flight search.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder := t.Red
	if c == board.Black {
		remainder = t.Black
	}

	// Assume 60 moves to end the game, if nothing else is known.
	moves := time.Duration(60)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder / (2 * moves)
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.Red.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.Red.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl enforces the time control limits, if any, scheduling a hard halt. It
// returns the soft limit and whether one is in effect.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}

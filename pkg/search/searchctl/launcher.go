// Package searchctl contains search launch and time-control functionality.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/search"
)

// Options hold dynamic search options. The user may change these on a particular search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative-deepening searches over forked boards.
type Launcher interface {
	// Launch starts a new search from the given position. It expects an exclusive (forked)
	// board and returns a PV channel for iteratively deeper searches. If the search is
	// exhausted, the channel is closed. The search can be stopped at any time via Handle.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller manage a launched search: spin it off and halt/abandon it when no
// longer needed.
type Handle interface {
	// Halt halts the search, if running, and returns the last completed PV. Idempotent.
	Halt() search.PV
}

package searchctl

import (
	"context"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/search"
)

// Iterative is a Launcher that runs Root with increasing depth until a depth limit, a soft
// time limit, or a found forced mate stops it -- reporting the deepest completed iteration's
// PV on every step, so a caller can always use the last value sent before a halt.
type Iterative struct {
	Root search.Search
}

func (i Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv atomic.Pointer[search.PV]
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{Alpha: board.MinScore, Beta: board.MaxScore, TT: tt}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		nodes, score, moves, err := root.Search(wctx, sctx, b, depth)
		if err != nil {
			if err == search.ErrHalted {
				return
			}
			logw.Errorf(ctx, "Search failed at depth=%v: %v", depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched: %v", pv)

		h.pv.Store(&pv)

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return
		}
		if score >= board.MateScore-board.Score(depth) || score <= -(board.MateScore-board.Score(depth)) {
			return // halt: forced mate found within full-width search.
		}
		if useSoft && soft < time.Since(start) {
			return
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	if pv := h.pv.Load(); pv != nil {
		return *pv
	}
	return search.PV{}
}

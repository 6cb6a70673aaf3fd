// Package engine is the stateless façade a CLI or a battle driver calls into: decode a JFN
// position, list its legal moves, evaluate it statically, ask a strategy for its ranked
// candidate moves, or apply a move and report what it captured and revealed. Each call is
// self-contained -- callers own the JFN string between calls, the same way the reference
// engine's module-level functions operate on a FEN string rather than mutable session state.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
	"github.com/herohde/jieqi/pkg/eval"
	"github.com/herohde/jieqi/pkg/registry"
	"github.com/herohde/jieqi/pkg/search"
	"github.com/herohde/jieqi/pkg/search/searchctl"
)

// CandidateMove is one ranked move with its side-relative score, in the encoding's move
// notation (with a leading "+" if it is a reveal-move).
type CandidateMove struct {
	Move  string
	Score board.Score
}

// Stats is the result of GetBestMovesFullStats: the ranked candidates plus the search
// telemetry the battle driver's per-ply record carries forward.
type Stats struct {
	Moves     []CandidateMove
	Nodes     int
	NPS       float64
	Depth     int
	ElapsedMS float64
}

// CapturedInfo describes what a move captured, if anything.
type CapturedInfo struct {
	Kind      board.Kind
	Color     board.Color
	WasHidden bool
}

// GetLegalMoves decodes position and returns every legal move for the side to move, in
// notation order. Moves are not yet applied, so a reveal-move's kind is unresolved.
func GetLegalMoves(zt *board.ZobristTable, position string) ([]string, error) {
	b, _, _, err := jfn.Decode(zt, position)
	if err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}

	moves := board.LegalMoves(b)
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out, nil
}

// GetEval decodes position and returns strategy's static evaluation of it, from the
// perspective of the side to move.
func GetEval(ctx context.Context, zt *board.ZobristTable, position, strategy string) (board.Score, error) {
	b, _, _, err := jfn.Decode(zt, position)
	if err != nil {
		return 0, fmt.Errorf("invalid position: %w", err)
	}

	_, _, evaluator, ok := lookup(ctx, strategy, zt.Seed())
	if !ok {
		return 0, fmt.Errorf("unknown strategy: %v", strategy)
	}

	return evaluator.Evaluate(ctx, b, b.Turn()), nil
}

// GetBestMovesFullStats decodes position, runs strategy's iterative-deepening search until
// timeLimit elapses (or a forced mate stops it), and returns the top n legal moves ranked by
// score. The search fixes the depth; every candidate, the search's own best move included, is
// then scored by applying it (sampling any hidden identity it resolves, per ApplyMove) and
// searching one ply shallower from the resulting position. n <= 0 means every legal move.
func GetBestMovesFullStats(ctx context.Context, zt *board.ZobristTable, position, strategy string, timeLimit time.Duration, n int) (Stats, error) {
	b, _, _, err := jfn.Decode(zt, position)
	if err != nil {
		return Stats{}, fmt.Errorf("invalid position: %w", err)
	}

	launcher, root, _, ok := lookup(ctx, strategy, zt.Seed())
	if !ok {
		return Stats{}, fmt.Errorf("unknown strategy: %v", strategy)
	}

	moves := board.LegalMoves(b)
	if len(moves) == 0 {
		return Stats{}, nil
	}

	tt := search.NewTranspositionTable(ctx, 1<<20)

	// The deadline halts the launcher mid-iteration; only completed iterations reach out.
	start := time.Now()
	tctx, cancel := context.WithTimeout(ctx, timeLimit)
	handle, out := launcher.Launch(tctx, b.Fork(), tt, searchctl.Options{})
	var last search.PV
	for pv := range out {
		last = pv
	}
	handle.Halt()
	cancel()
	elapsed := time.Since(start)

	depth := last.Depth
	if depth <= 0 {
		depth = 1
	}

	type scored struct {
		move  board.Move
		kind  board.Kind
		score board.Score
	}
	candidates := make([]scored, 0, len(moves))
	for _, m := range moves {
		fork := b.Fork()
		_, revealed, err := board.ApplyMove(fork, m)
		if err != nil {
			continue
		}

		sctx := &search.Context{Alpha: board.MinScore, Beta: board.MaxScore, TT: search.NoTranspositionTable{}}
		_, s, _, err := root.Search(ctx, sctx, fork, depth-1)
		if err != nil {
			continue
		}
		candidates = append(candidates, scored{move: m, kind: revealed, score: -s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	out2 := make([]CandidateMove, len(candidates))
	for i, c := range candidates {
		out2[i] = CandidateMove{Move: board.FormatAppliedMove(c.move, c.kind), Score: c.score}
	}

	nps := 0.0
	if elapsed > 0 {
		nps = float64(last.Nodes) / elapsed.Seconds()
	}

	return Stats{
		Moves:     out2,
		Nodes:     last.Nodes,
		NPS:       nps,
		Depth:     last.Depth,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
	}, nil
}

// ApplyMoveWithCapture decodes position, applies move (parsed with ParseMove -- the reveal
// flag comes from the move string's leading "+", the revealed kind is sampled by ApplyMove
// itself) and returns the resulting position re-encoded for viewer, plus what was captured.
func ApplyMoveWithCapture(zt *board.ZobristTable, position, move string, viewer board.Color) (string, *CapturedInfo, error) {
	b, _, _, err := jfn.Decode(zt, position)
	if err != nil {
		return "", nil, fmt.Errorf("invalid position: %w", err)
	}

	mv, err := board.ParseMove(move)
	if err != nil {
		return "", nil, fmt.Errorf("invalid move: %w", err)
	}

	captured, _, err := board.ApplyMove(b, mv)
	if err != nil {
		return "", nil, err
	}

	var info *CapturedInfo
	if captured != nil {
		// ApplyMove already flipped the turn to the mover's opponent, which is exactly the
		// captured piece's own colour.
		info = &CapturedInfo{Kind: captured.Kind, Color: b.Turn(), WasHidden: captured.WasHidden}
	}

	return jfn.Encode(b, viewer), info, nil
}

func lookup(ctx context.Context, strategy string, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator, bool) {
	f, ok := registry.Lookup(strategy)
	if !ok {
		return nil, nil, nil, false
	}
	l, r, e := f(ctx, seed)
	return l, r, e, true
}

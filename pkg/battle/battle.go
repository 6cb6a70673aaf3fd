// Package battle runs a full Jieqi game between two registered strategies end to end,
// producing a structured per-ply history -- the Go-native counterpart of the reference
// engine's unified battle core shared by its CLI and web front ends.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"

	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
	"github.com/herohde/jieqi/pkg/engine"
	"github.com/herohde/jieqi/pkg/selector"
)

// Config holds one battle's parameters.
type Config struct {
	RedStrategy, BlackStrategy string
	TimeLimit                 time.Duration
	MaxMoves                  int
	MaxRepetitions            int
	Candidates                int // how many ranked candidates to record per ply; 0 means all

	// OnPly, if set, is called synchronously after each ply is recorded -- a caller such as
	// a CLI battle runner can use it to drive a progress indicator.
	OnPly func(Ply)
}

// Ply is one executed half-move's full record.
type Ply struct {
	MoveNum      int
	Player       board.Color
	PositionBefore string
	PositionAfter  string
	Move         string
	Score        board.Score
	EvalBefore   board.Score
	EvalAfter    board.Score
	Candidates   []engine.CandidateMove
	Captured     *engine.CapturedInfo
	SelectedIndex int
	Nodes        int
	NPS          float64
	TimeMS       float64
	Depth        int
}

// Result is a completed battle's outcome and full history.
type Result struct {
	Outcome    board.Outcome
	Reason     board.Reason
	History    []Ply
	TotalMoves int
}

// Run plays out a full game from start, alternating cfg.RedStrategy and cfg.BlackStrategy,
// until a King capture, a side to move has no legal moves, the configured move limit, or the
// repetition threshold ends it.
func Run(ctx context.Context, zt *board.ZobristTable, start *board.Board, cfg Config) (Result, error) {
	b := start.Fork()
	maxRepetitions := cfg.MaxRepetitions
	if maxRepetitions <= 0 {
		maxRepetitions = selector.DefaultMaxRepetitions
	}
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		maxMoves = 200
	}

	counts := map[board.ZobristHash]int{b.Hash(): 1}

	var history []Ply
	moveCount := 0

	for moveCount < maxMoves {
		if r := b.Result(); r.IsTerminal() {
			break
		}

		turn := b.Turn()
		strategy := cfg.RedStrategy
		if turn == board.Black {
			strategy = cfg.BlackStrategy
		}

		before := jfn.Encode(b, turn)

		evalBefore, err := engine.GetEval(ctx, zt, before, strategy)
		if err != nil {
			return Result{}, fmt.Errorf("eval before move %d: %w", moveCount+1, err)
		}

		stats, err := engine.GetBestMovesFullStats(ctx, zt, before, strategy, cfg.TimeLimit, cfg.Candidates)
		if err != nil {
			return Result{}, fmt.Errorf("search on move %d: %w", moveCount+1, err)
		}
		if len(stats.Moves) == 0 {
			b.Adjudicate(board.Result{Outcome: board.Loss(turn), Reason: board.NoLegalMoves})
			break
		}

		candidates := make([]selector.Candidate, len(stats.Moves))
		for i, c := range stats.Moves {
			// ParseAppliedMove, not ParseMove: a reveal candidate's "=K" suffix carries the
			// exact kind it was ranked against, and must survive into the move actually
			// applied below -- otherwise ApplyMove would draw a second, independent sample
			// that need not match the one the score was computed for.
			mv, err := board.ParseAppliedMove(c.Move)
			if err != nil {
				return Result{}, fmt.Errorf("move %d: parsing candidate %q: %w", moveCount+1, c.Move, err)
			}
			candidates[i] = selector.Candidate{Move: mv, Score: c.Score}
		}

		chosen, idx := selector.Select(b, candidates, counts, maxRepetitions)

		captured, revealed, err := board.ApplyMove(b, chosen.Move)
		if err != nil {
			return Result{}, fmt.Errorf("applying move %d (%v): %w", moveCount+1, chosen.Move, err)
		}
		moveCount++

		after := jfn.Encode(b, turn)
		// A position with a captured King no longer decodes, so it has no evaluation: the
		// ply's EvalAfter stays zero.
		var evalAfter board.Score
		if b.Result().Reason != board.KingCapture {
			evalAfter, err = engine.GetEval(ctx, zt, after, strategy)
			if err != nil {
				return Result{}, fmt.Errorf("eval after move %d: %w", moveCount, err)
			}
		}

		var capturedInfo *engine.CapturedInfo
		if captured != nil {
			capturedInfo = &engine.CapturedInfo{Kind: captured.Kind, Color: b.Turn(), WasHidden: captured.WasHidden}
		}

		history = append(history, Ply{
			MoveNum:        moveCount,
			Player:         turn,
			PositionBefore: before,
			PositionAfter:  after,
			Move:           board.FormatAppliedMove(chosen.Move, revealed),
			Score:          chosen.Score,
			EvalBefore:     evalBefore,
			EvalAfter:      evalAfter,
			Candidates:     stats.Moves,
			Captured:       capturedInfo,
			SelectedIndex:  idx,
			Nodes:          stats.Nodes,
			NPS:            stats.NPS,
			TimeMS:         stats.ElapsedMS,
			Depth:          stats.Depth,
		})

		logw.Infof(ctx, "Move %d (%v): %v, score=%v", moveCount, turn, chosen.Move, chosen.Score)
		if cfg.OnPly != nil {
			cfg.OnPly(history[len(history)-1])
		}

		if r := b.Result(); r.IsTerminal() {
			break
		}

		hash := b.Hash()
		counts[hash]++
		if counts[hash] >= maxRepetitions {
			b.Adjudicate(board.Result{Outcome: board.Draw, Reason: board.Repetition})
			break
		}
	}

	r := b.Result()
	if !r.IsTerminal() {
		r = board.Result{Outcome: board.Draw, Reason: board.MoveLimit}
	}

	return Result{
		Outcome:    r.Outcome,
		Reason:     r.Reason,
		History:    history,
		TotalMoves: moveCount,
	}, nil
}

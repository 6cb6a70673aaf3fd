// Command jieqi is a CLI front end for the Jieqi engine: it lists the registered search
// strategies and plays a strategy against another (or itself) as a standalone battle,
// optionally persisting the result under a game log directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/seekerror/logw"

	"github.com/herohde/jieqi/pkg/battle"
	"github.com/herohde/jieqi/pkg/board"
	"github.com/herohde/jieqi/pkg/board/jfn"
	"github.com/herohde/jieqi/pkg/registry"
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: jieqi <command> [options]

JIEQI plays and analyzes Jieqi (揭棋), a hidden-piece Xiangqi variant.

Commands:
  strategies   list the registered search strategies
  battle       play one battle between two strategies
`)
	}
}

func main() {
	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "strategies":
		runStrategies(ctx, os.Args[2:])
	case "battle":
		runBattle(ctx, os.Args[2:])
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runStrategies(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("strategies", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "emit the strategy list as JSON")
	fs.Parse(args)

	names := registry.Names()
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(names); err != nil {
			logw.Exitf(ctx, "Encoding strategy list: %v", err)
		}
		return
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func runBattle(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	red := fs.String("red", registry.DefaultStrategy, "strategy playing Red")
	black := fs.String("black", registry.DefaultStrategy, "strategy playing Black")
	start := fs.String("start", jfn.Initial, "starting position, in JFN")
	timeLimit := fs.Duration("time", 200*time.Millisecond, "per-move time budget")
	maxMoves := fs.Int("max-moves", 200, "ply limit before a battle is adjudicated a draw")
	maxRepetitions := fs.Int("max-repetitions", 0, "repetition count that ends a battle as a draw (0: default)")
	logDir := fs.String("log-dir", "", "if set, persist a .txt/.zip game log under this directory")
	seed := fs.Int64("seed", time.Now().UnixNano(), "seed for a hidden-piece deal's shuffle")
	fs.Parse(args)

	if _, ok := registry.Lookup(*red); !ok {
		logw.Exitf(ctx, "Unknown strategy for Red: %v", *red)
	}
	if _, ok := registry.Lookup(*black); !ok {
		logw.Exitf(ctx, "Unknown strategy for Black: %v", *black)
	}

	zt := board.NewZobristTable(*seed)
	b, _, _, err := jfn.Decode(zt, *start)
	if err != nil {
		logw.Exitf(ctx, "Invalid starting position: %v", err)
	}

	bar := progressbar.NewOptions(*maxMoves,
		progressbar.OptionSetDescription(fmt.Sprintf("%v vs %v", *red, *black)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	cfg := battle.Config{
		RedStrategy:    *red,
		BlackStrategy:  *black,
		TimeLimit:      *timeLimit,
		MaxMoves:       *maxMoves,
		MaxRepetitions: *maxRepetitions,
		Candidates:     20,
		OnPly:          func(battle.Ply) { _ = bar.Add(1) },
	}

	startTime := time.Now()
	result, err := battle.Run(ctx, zt, b, cfg)
	elapsed := time.Since(startTime)
	if err != nil {
		logw.Exitf(ctx, "Battle failed: %v", err)
	}

	fmt.Printf("%v vs %v: %v (%v) in %v ply, %v\n", *red, *black, result.Outcome, result.Reason, result.TotalMoves, elapsed)

	if *logDir == "" {
		return
	}

	runID := fmt.Sprintf("%v_%v_vs_%v", time.Now().Format("20060102_150405"), *red, *black)
	outcomeLabel := outcomeString(result.Outcome)

	logCfg := battle.LogConfig{RedStrategy: *red, BlackStrategy: *black, TimeLimit: timeLimit.Seconds(), MaxMoves: *maxMoves}
	results := []battle.LogResult{{ID: runID, Name: runID, Outcome: outcomeLabel, Moves: result.TotalMoves, TimeMS: float64(elapsed.Microseconds()) / 1000}}

	var history []battle.HistoryEntry
	for _, p := range result.History {
		history = append(history, battle.HistoryEntry{Move: p.Move, Position: p.PositionAfter})
	}
	finalPosition := ""
	if len(result.History) > 0 {
		finalPosition = result.History[len(result.History)-1].PositionAfter
	}
	details := map[string]battle.LogDetail{
		runID: {
			EndgameID:     runID,
			Name:          runID,
			StartPosition: *start,
			Outcome:       outcomeLabel,
			TotalMoves:    result.TotalMoves,
			DurationMS:    float64(elapsed.Microseconds()) / 1000,
			FinalPosition: finalPosition,
			History:       history,
		},
	}

	txtPath, zipPath, err := battle.Save(*logDir, runID, logCfg, results, details, elapsed)
	if err != nil {
		logw.Exitf(ctx, "Saving game log: %v", err)
	}
	fmt.Printf("Log: %v, %v\n", txtPath, zipPath)
}

func outcomeString(o board.Outcome) string {
	switch o {
	case board.RedWins:
		return "red_win"
	case board.BlackWins:
		return "black_win"
	default:
		return "draw"
	}
}

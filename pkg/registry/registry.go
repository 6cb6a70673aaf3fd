// Package registry is the process-wide, append-only registry of named search strategies,
// mirroring the external interface a CLI or Web UI uses to discover what it can launch a
// battle with. It is the Go-native equivalent of the reference engine's dynamic strategies
// list: every strategy the binary supports registers itself once, at init time, under a
// stable name.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/herohde/jieqi/pkg/eval"
	"github.com/herohde/jieqi/pkg/search"
	"github.com/herohde/jieqi/pkg/search/searchctl"
)

// DefaultStrategy is the strategy used when a caller doesn't name one explicitly.
const DefaultStrategy = "it2"

// Factory builds a strategy's Launcher (for iterative-deepening play), its underlying root
// Search (for the engine façade's one-off per-candidate scoring) and its Evaluator (for
// get_eval). seed is the position's ZobristTable.Seed, for a strategy whose evaluator draws
// its own randomness (e.g. "random"'s noise evaluator) -- passing it through means the same
// seed that fixes a deal also fixes that strategy's evaluations. The engine supplies the
// TranspositionTable to Launcher.Launch separately, per game.
type Factory func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	order     []string
)

// Register adds a strategy under name. Panics on a duplicate name: registration happens at
// init time, so a collision is a programming error, not a runtime condition to recover from.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("strategy %q already registered", name))
	}
	factories[name] = f
	order = append(order, name)
}

// Names returns every registered strategy name, sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := append([]string{}, order...)
	sort.Strings(out)
	return out
}

// Lookup returns the factory registered under name, if any.
func Lookup(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	return f, ok
}

func init() {
	Register("random", func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator) {
		e := eval.NewRandom(200, seed)
		root := search.AlphaBeta{Explore: search.FullExploration, Eval: search.Quiescence{Eval: e, MaxPly: 0}}
		return searchctl.Iterative{Root: root}, root, e
	})

	Register("greedy", func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator) {
		e := eval.Composite{Base: eval.Material{}, Style: eval.Greedy}
		root := search.AlphaBeta{Explore: search.FullExploration, Eval: search.Quiescence{Eval: e, MaxPly: 4}}
		return searchctl.Iterative{Root: root}, root, e
	})

	Register("aggressive", func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator) {
		e := eval.Composite{Base: eval.RevealAware{}, Style: eval.Aggressive}
		root := search.AlphaBeta{Explore: search.FullExploration, Eval: search.Quiescence{Eval: e, MaxPly: 6}}
		return searchctl.Iterative{Root: root}, root, e
	})

	Register("defensive", func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator) {
		e := eval.Composite{Base: eval.RevealAware{}, Style: eval.Defensive}
		root := search.AlphaBeta{Explore: search.FullExploration, Eval: search.Quiescence{Eval: e, MaxPly: 6}}
		return searchctl.Iterative{Root: root}, root, e
	})

	Register("it2", func(ctx context.Context, seed int64) (searchctl.Launcher, search.Search, eval.Evaluator) {
		e := eval.RevealAware{}
		root := search.AlphaBeta{Explore: search.FullExploration, Eval: search.Quiescence{Eval: e, MaxPly: 8}}
		return searchctl.Iterative{Root: root}, root, e
	})
}

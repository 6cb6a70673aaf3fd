package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/seekerror/logw"

	"github.com/herohde/jieqi/pkg/board"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by the board hash. Per the position
// encoding's own rule -- the hash covers piece placement only, not side to move or the
// captured ledger -- every entry is additionally keyed by side and depth, which the caller
// must fold into ply/depth bookkeeping itself; the table is a flat hash%size cache with one
// best-effort slot per bucket. Must be thread-safe: the launcher may run concurrent searches
// against forked boards sharing one table.
type TranspositionTable interface {
	// Read returns the bound, depth, score and best move for the given hash, if present.
	Read(hash board.ZobristHash) (Bound, int, board.Score, board.Move, bool)
	// Write stores the entry, subject to the table's replacement policy.
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// metadata captures node metadata: bound, best move, ply and depth.
type metadata struct {
	bound      Bound
	from, to   board.Position
	revealed   board.Kind
	ply, depth uint16
}

// node represents a single cached search result.
type node struct {
	hash  board.ZobristHash
	score board.Score
	md    metadata
}

// table is a lock-free transposition table using atomic pointer swaps per bucket.
type table struct {
	table []*node
	mask  uint64
	used  uint64
}

func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 5 - bits.LeadingZeros64(size)))

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &table{
		table: make([]*node, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.table)) << 5
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.table))
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, board.Score, board.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && hash == ptr.hash {
		bestmove := board.Move{From: ptr.md.from, To: ptr.md.to, RevealedKind: ptr.md.revealed}
		return ptr.md.bound, int(ptr.md.depth), ptr.score, bestmove, true
	}
	return 0, 0, 0, board.Move{}, false
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	fresh := &node{
		hash:  hash,
		score: score,
		md: metadata{
			bound:    bound,
			from:     move.From,
			to:       move.To,
			revealed: move.RevealedKind,
			ply:      uint16(ply),
			depth:    uint16(depth),
		},
	}

	ptr := (*node)(atomic.LoadPointer(addr))
	for {
		if val(ptr) > val(fresh) {
			return false
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		}
		ptr = (*node)(atomic.LoadPointer(addr))
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// val defines node value towards the replacement policy: prefer deeper, more recent entries.
func val(n *node) uint16 {
	if n == nil {
		return 0
	}
	return n.md.ply + (n.md.depth << 1)
}

// WriteFilter is a predicate on the Write operation.
type WriteFilter func(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool

// WriteLimited wraps a TranspositionTable, ignoring writes the filter rejects.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(hash board.ZobristHash) (Bound, int, board.Score, board.Move, bool) {
	return w.TT.Read(hash)
}

func (w WriteLimited) Write(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
	if w.Filter(hash, bound, ply, depth, score, move) {
		return false
	}
	return w.TT.Write(hash, bound, ply, depth, score, move)
}

func (w WriteLimited) Size() uint64  { return w.TT.Size() }
func (w WriteLimited) Used() float64 { return w.TT.Used() }

// NewMinDepthTranspositionTable builds a TranspositionTableFactory that refuses writes
// below a minimum depth.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
				return depth < min
			},
			TT: NewTranspositionTable(ctx, size),
		}
	}
}

// NoTranspositionTable is a Nop implementation, used when a caller wants a fresh, uncached
// search -- e.g. the battle driver re-searching after every ply with no stale entries.
type NoTranspositionTable struct{}

func (n NoTranspositionTable) Read(hash board.ZobristHash) (Bound, int, board.Score, board.Move, bool) {
	return 0, 0, 0, board.Move{}, false
}

func (n NoTranspositionTable) Write(hash board.ZobristHash, bound Bound, ply, depth int, score board.Score, move board.Move) bool {
	return false
}

func (n NoTranspositionTable) Size() uint64  { return 0 }
func (n NoTranspositionTable) Used() float64 { return 0 }

// Package board implements the Jieqi board representation: piece placement, move
// application/undo, and the position hash used for repetition bookkeeping.
package board

import "fmt"

// CapturedEntry records one captured piece in a colour's captured ledger, in capture order.
type CapturedEntry struct {
	Kind      Kind
	WasHidden bool
}

type undoRecord struct {
	move       Move
	movedFrom  Piece
	captured   *Piece
	prevResult Result
	prevHash   ZobristHash
}

// Board represents the live Jieqi position: a map from square index to piece, the per-colour
// captured ledgers, and enough history to undo any applied move exactly. Not thread-safe;
// callers needing concurrent search trees should Fork.
type Board struct {
	zt *ZobristTable

	placement map[int]Piece
	captured  [NumColors][]CapturedEntry

	turn      Color
	fullmoves int
	result    Result
	hash      ZobristHash

	history []undoRecord
}

// NewEmptyBoard returns a board with no pieces placed, for use by the JFN parser and tests.
func NewEmptyBoard(zt *ZobristTable, turn Color) *Board {
	return &Board{
		zt:        zt,
		placement: map[int]Piece{},
		turn:      turn,
		fullmoves: 1,
	}
}

// Fork branches a new board sharing no mutable state with b; used to hand an exclusive
// board to a search goroutine while the caller keeps playing on its own copy.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:        b.zt,
		placement: make(map[int]Piece, len(b.placement)),
		turn:      b.turn,
		fullmoves: b.fullmoves,
		result:    b.result,
		hash:      b.hash,
	}
	for k, v := range b.placement {
		fork.placement[k] = v
	}
	for _, c := range []Color{Red, Black} {
		fork.captured[c] = append([]CapturedEntry{}, b.captured[c]...)
	}
	return fork
}

func (b *Board) Place(pos Position, p Piece) {
	p.Position = pos
	b.placement[pos.Index()] = p
}

func (b *Board) Remove(pos Position) {
	delete(b.placement, pos.Index())
}

func (b *Board) At(pos Position) (Piece, bool) {
	p, ok := b.placement[pos.Index()]
	return p, ok
}

// King returns the position of the colour's King. Panics if absent: the invariant that
// exactly one King per colour is on the board always holds for a live game.
func (b *Board) King(c Color) Position {
	for _, p := range b.placement {
		if p.Color == c && p.TrueKind == King {
			return p.Position
		}
	}
	panic(fmt.Sprintf("no %v king on board", c))
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) SetTurn(c Color) {
	b.turn = c
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

func (b *Board) Result() Result {
	return b.result
}

func (b *Board) Captured(c Color) []CapturedEntry {
	return b.captured[c]
}

// RecordCaptured appends e to colour c's captured ledger directly, bypassing PushMove. Used
// by the JFN parser to reconstruct a captured ledger from the encoded state.
func (b *Board) RecordCaptured(c Color, e CapturedEntry) {
	b.captured[c] = append(b.captured[c], e)
}

// Hash returns the position hash over piece placement (colour, square, Hidden-or-Revealed-
// kind), matching exactly what the JFN board field encodes.
func (b *Board) Hash() ZobristHash {
	return b.hash
}

// RehashPlacement recomputes the hash from the current placement. Callers that build up a
// board via repeated Place calls (the JFN decoder, test fixtures) must call this once after
// placement is complete; PushMove/PopMove maintain the hash incrementally and never need it.
func (b *Board) RehashPlacement() {
	b.hash = b.zt.Hash(b.placement)
}

func (b *Board) captureAppend(p Piece) {
	b.captured[p.Color] = append(b.captured[p.Color], CapturedEntry{Kind: p.TrueKind, WasHidden: p.State == Hidden})
}

// PushMove applies a pseudo-legal move without re-validating it; callers (the move generator's
// legality filter and the search tree) are responsible for only ever pushing moves drawn from
// LegalMoves or a tentative candidate under test. Returns false if From is empty.
func (b *Board) PushMove(m Move) bool {
	piece, ok := b.placement[m.From.Index()]
	if !ok {
		return false
	}

	rec := undoRecord{move: m, movedFrom: piece, prevResult: b.result, prevHash: b.hash}

	hash := b.hash
	if target, ok := b.placement[m.To.Index()]; ok {
		t := target
		rec.captured = &t
		b.captureAppend(target)
		hash = b.zt.Toggle(hash, m.To.Index(), target)
		delete(b.placement, m.To.Index())
	}

	hash = b.zt.Toggle(hash, m.From.Index(), piece)
	delete(b.placement, m.From.Index())

	moved := piece
	moved.Position = m.To
	if m.Reveal {
		moved.State = Revealed
	}
	b.placement[m.To.Index()] = moved
	hash = b.zt.Toggle(hash, m.To.Index(), moved)

	b.hash = hash
	b.history = append(b.history, rec)

	if rec.captured != nil && rec.captured.TrueKind == King {
		b.result = Result{Outcome: Win(b.turn), Reason: KingCapture}
	}

	b.turn = b.turn.Opponent()
	if b.turn == Red {
		b.fullmoves++
	}

	return true
}

// PopMove undoes the last pushed move, restoring the board (placement, captured ledger,
// hash, result, turn) bit-identically to before the corresponding PushMove.
func (b *Board) PopMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	b.turn = b.turn.Opponent()
	if b.turn == Black {
		b.fullmoves--
	}

	delete(b.placement, rec.move.To.Index())
	b.placement[rec.move.From.Index()] = rec.movedFrom

	if rec.captured != nil {
		b.placement[rec.move.To.Index()] = *rec.captured
		cl := b.captured[rec.captured.Color]
		b.captured[rec.captured.Color] = cl[:len(cl)-1]
	}

	b.hash = rec.prevHash
	b.result = rec.prevResult

	return rec.move, true
}

// LastMove returns the most recently pushed move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

// Adjudicate records a terminal result determined externally, e.g. by the move generator
// finding zero legal moves, or the battle driver's repetition/move-limit bookkeeping.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

func (b *Board) String() string {
	return fmt.Sprintf("board{turn=%v, hash=%x, fullmoves=%v, result=%v}", b.turn, b.hash, b.fullmoves, b.result)
}

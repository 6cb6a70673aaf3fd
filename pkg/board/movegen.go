package board

import "fmt"

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonal = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var horseSteps = [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}

// PseudoLegalMoves returns every pseudo-legal move for the side to move: on-board, not
// landing on a friendly piece, obeying per-kind movement rules, but not yet filtered for
// self-check or face-to-face kings. Use LegalMoves for the filtered set.
func PseudoLegalMoves(b *Board, buf []Move) []Move {
	// Walk squares in index order, not map order, so that callers sampling hidden kinds
	// per move (ApplyMove) draw from the seeded stream in a reproducible order.
	for idx := 0; idx < NumSquares; idx++ {
		p, ok := b.placement[idx]
		if !ok || p.Color != b.turn {
			continue
		}
		from := PositionFromIndex(idx)
		buf = appendPieceMoves(b, p, from, buf)
	}
	return buf
}

// LegalMoves returns the legal moves for the side to move: pseudo-legal moves that, after
// tentative application, leave the mover's own King unattacked and the kings not face-to-face.
func LegalMoves(b *Board) []Move {
	pseudo := PseudoLegalMoves(b, nil)
	mover := b.turn

	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		capturesKing := false
		if target, ok := b.At(m.To); ok && target.TrueKind == King {
			capturesKing = true
		}

		b.PushMove(m)
		ok := capturesKing || (!IsChecked(b, mover) && !isFaceToFace(b))
		b.PopMove()

		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}

func appendPieceMoves(b *Board, p Piece, from Position, buf []Move) []Move {
	kind := p.MovementKind()
	reveal := p.State == Hidden

	add := func(to Position) bool {
		if !to.IsValid() {
			return false
		}
		if other, ok := b.At(to); ok {
			if other.Color == p.Color {
				return false
			}
			buf = append(buf, Move{From: from, To: to, Reveal: reveal, Capture: true})
			return false // blocked beyond a capture
		}
		buf = append(buf, Move{From: from, To: to, Reveal: reveal})
		return true // empty: sliding pieces may continue
	}

	switch kind {
	case King:
		for _, d := range orthogonal {
			to := from.Add(d[0], d[1])
			if to.IsValid() && to.IsInPalace(p.Color) {
				add(to)
			}
		}

	case Advisor:
		for _, d := range diagonal {
			to := from.Add(d[0], d[1])
			if !to.IsValid() {
				continue
			}
			if p.State == Hidden && !to.IsInPalace(p.Color) {
				continue
			}
			add(to)
		}

	case Elephant:
		for _, d := range diagonal {
			mid := from.Add(d[0], d[1])
			to := from.Add(2*d[0], 2*d[1])
			if !to.IsValid() || !mid.IsValid() {
				continue
			}
			if _, blocked := b.At(mid); blocked {
				continue
			}
			if p.State == Hidden && !to.IsOwnSide(p.Color) {
				continue
			}
			add(to)
		}

	case Horse:
		for _, d := range horseSteps {
			to := from.Add(d[0], d[1])
			if !to.IsValid() {
				continue
			}
			leg := legSquare(from, d)
			if _, blocked := b.At(leg); blocked {
				continue
			}
			add(to)
		}

	case Rook:
		for _, d := range orthogonal {
			to := from
			for {
				to = to.Add(d[0], d[1])
				if !to.IsValid() {
					break
				}
				if !add(to) {
					break
				}
			}
		}

	case Cannon:
		for _, d := range orthogonal {
			to := from
			screened := false
			for {
				to = to.Add(d[0], d[1])
				if !to.IsValid() {
					break
				}
				occ, ok := b.At(to)
				if !screened {
					if !ok {
						buf = append(buf, Move{From: from, To: to, Reveal: reveal})
						continue
					}
					screened = true
					continue
				}
				if ok {
					if occ.Color != p.Color {
						buf = append(buf, Move{From: from, To: to, Reveal: reveal, Capture: true})
					}
					break
				}
			}
		}

	case Pawn:
		dir := 1
		if p.Color == Black {
			dir = -1
		}
		to := from.Add(dir, 0)
		add(to)
		if from.HasCrossedRiver(p.Color) {
			add(from.Add(0, 1))
			add(from.Add(0, -1))
		}
	}

	return buf
}

// legSquare returns the blocking "leg" square for a horse move in direction d.
func legSquare(from Position, d [2]int) Position {
	if d[0] == 2 || d[0] == -2 {
		return from.Add(d[0]/2, 0)
	}
	return from.Add(0, d[1]/2)
}

// IsAttacked returns true iff any piece of colour attacker can move to pos, reusing the same
// movement rules as ordinary generation with colour inverted.
func IsAttacked(b *Board, pos Position, attacker Color) bool {
	for idx, p := range b.placement {
		if p.Color != attacker {
			continue
		}
		from := PositionFromIndex(idx)
		for _, m := range appendPieceMoves(b, p, from, nil) {
			if m.To.Equals(pos) {
				return true
			}
		}
	}
	return false
}

// IsChecked returns true iff c's King is currently attacked by the opponent.
func IsChecked(b *Board, c Color) bool {
	return IsAttacked(b, b.King(c), c.Opponent())
}

// isFaceToFace returns true iff the two Kings share a column with no piece between them.
func isFaceToFace(b *Board) bool {
	red, black := b.King(Red), b.King(Black)
	if red.Col != black.Col {
		return false
	}
	lo, hi := red.Row, black.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if _, ok := b.At(NewPosition(int(r), int(red.Col))); ok {
			return false
		}
	}
	return true
}

// RemainingPool is the exported, ground-truth counterpart to view.HiddenPool: the multiset
// of kinds consistent with colour c's not-yet-revealed pieces, from the omniscient dealer's
// perspective rather than any particular viewer's. Used by the search package's CHANCE nodes
// to weight each possible identity of a piece about to be revealed or captured-while-hidden.
func RemainingPool(b *Board, c Color) map[Kind]int {
	return remainingPool(b, c)
}

func remainingPool(b *Board, c Color) map[Kind]int {
	pool := map[Kind]int{}
	for _, k := range HiddenPoolKinds {
		pool[k] = InitialAllotment[k]
	}
	for _, p := range b.placement {
		if p.Color == c && p.State == Revealed && p.TrueKind != King {
			pool[p.TrueKind]--
		}
	}
	for _, ce := range b.captured[c] {
		if ce.Kind != King && ce.Kind != NoKind {
			pool[ce.Kind]--
		}
	}
	return pool
}

// sampleKind draws a hidden identity from pool using zt's own seeded source -- never the
// package-level math/rand -- so that resolving the same pool against the same ZobristTable
// always draws the same kind.
func sampleKind(zt *ZobristTable, pool map[Kind]int) Kind {
	total := 0
	for _, n := range pool {
		total += n
	}
	if total <= 0 {
		return NoKind
	}
	r := zt.intn(total)
	for _, k := range HiddenPoolKinds {
		if r < pool[k] {
			return k
		}
		r -= pool[k]
	}
	return NoKind
}

// ApplyMove validates m against the current legal-move set and, if legal, applies it,
// returning the captured entry (if any) and the kind the move revealed (NoKind if it was
// not a reveal-move). This is the external-facing counterpart to PushMove: it re-derives
// legality rather than trusting the caller, per the engine façade's apply_move_with_capture.
//
// If m is a reveal-move and m.RevealedKind is NoKind (the caller does not know the ground
// truth — nobody does, until the reveal), a kind is sampled from the mover's remaining hidden
// pool, matching the fact that even the owning player learns a piece's identity only upon
// reveal.
func ApplyMove(b *Board, m Move) (captured *CapturedEntry, revealed Kind, err error) {
	var match *Move
	for _, lm := range LegalMoves(b) {
		if lm.Equals(m) {
			match = &lm
			break
		}
	}
	if match == nil {
		return nil, NoKind, fmt.Errorf("illegal move: %v", m)
	}

	mover, _ := b.At(match.From)
	if match.Reveal {
		revealed = m.RevealedKind
		if revealed == NoKind {
			revealed = sampleKind(b.zt, remainingPool(b, mover.Color))
		}
		b.Place(match.From, Piece{Color: mover.Color, TrueKind: revealed, State: Hidden})
	}

	if target, ok := b.At(match.To); ok {
		kind := target.TrueKind
		if target.State == Hidden && kind == NoKind {
			// A captured Hidden piece is turned face-up: the capturer learns its identity
			// on the spot, even if nobody (including the owner) knew it before.
			kind = sampleKind(b.zt, remainingPool(b, target.Color))
			b.Place(match.To, Piece{Color: target.Color, TrueKind: kind, State: Hidden})
		}
		captured = &CapturedEntry{Kind: kind, WasHidden: target.State == Hidden}
	}

	b.PushMove(*match)

	if !b.result.IsTerminal() && len(LegalMoves(b)) == 0 {
		b.Adjudicate(Result{Outcome: Loss(b.turn), Reason: NoLegalMoves})
	}

	return captured, revealed, nil
}

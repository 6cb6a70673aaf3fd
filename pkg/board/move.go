package board

import (
	"fmt"
	"strings"
)

// Move represents a not-necessarily-legal move along with contextual metadata.
type Move struct {
	From, To Position
	Reveal   bool // true iff this move flips a Hidden piece to Revealed at To.
	Capture  bool // true iff To is occupied by an enemy piece at application time.

	// RevealedKind carries the ground-truth kind a reveal-move exposes, when known to the
	// caller (e.g. parsed from a "=K" suffix, or supplied by the party holding the true
	// identity). NoKind means "unknown to this caller" — ApplyMove then samples one from
	// the mover's hidden pool, matching the fact that not even the owning player knows a
	// piece's identity before it is revealed.
	RevealedKind Kind
}

// ParseMove parses a move in "<from><to>" notation, with an optional leading "+" marking
// a reveal-move, e.g. "a0a1" or "+a0a1". It does not parse the trailing "=K" suffix used
// for an already-applied move; use ParseAppliedMove for that.
func ParseMove(str string) (Move, error) {
	s := str
	reveal := false
	if strings.HasPrefix(s, "+") {
		reveal = true
		s = s[1:]
	}
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		s = s[:eq]
	}

	runes := []rune(s)
	if len(runes) != 4 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, ok := ParsePosition(runes[0], runes[1])
	if !ok {
		return Move{}, fmt.Errorf("invalid from square: %q", str)
	}
	to, ok := ParsePosition(runes[2], runes[3])
	if !ok {
		return Move{}, fmt.Errorf("invalid to square: %q", str)
	}

	return Move{From: from, To: to, Reveal: reveal}, nil
}

// ParseAppliedMove parses a move string as produced after application, which may carry a
// trailing "=K" suffix naming the kind a reveal-move revealed. The suffix is validated if
// present but not required; if present it populates Move.RevealedKind.
func ParseAppliedMove(str string) (Move, error) {
	s := str
	var revealed Kind
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		suffix := s[eq+1:]
		if len(suffix) != 1 {
			return Move{}, fmt.Errorf("invalid reveal suffix: %q", str)
		}
		k, ok := ParseKind(rune(suffix[0]))
		if !ok || k == King {
			return Move{}, fmt.Errorf("invalid reveal suffix: %q", str)
		}
		revealed = k
	}

	mv, err := ParseMove(str)
	if err != nil {
		return Move{}, err
	}
	mv.RevealedKind = revealed
	return mv, nil
}

func (m Move) Equals(o Move) bool {
	return m.From.Equals(o.From) && m.To.Equals(o.To) && m.Reveal == o.Reveal
}

// String formats the move in bare "<from><to>" notation, with a leading "+" if it is a
// reveal-move. It does not include the post-application "=K" suffix.
func (m Move) String() string {
	if m.Reveal {
		return fmt.Sprintf("+%v%v", m.From, m.To)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// FormatAppliedMove formats a move as it appears in a per-ply record after execution: the
// bare move string, with an uppercase "=K" suffix if the move revealed a piece.
func FormatAppliedMove(m Move, revealed Kind) string {
	if m.Reveal && revealed.IsValid() && revealed != King {
		return fmt.Sprintf("%v=%v", m, revealed)
	}
	return m.String()
}

// PrintMoves renders a sequence of moves space-separated, e.g. for a principal variation.
func PrintMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

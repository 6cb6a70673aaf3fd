// Package jfn implements JFN ("Jieqi Forsyth Notation"), a compact, round-trippable,
// perspective-dependent textual encoding of a Jieqi game state.
package jfn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/jieqi/pkg/board"
)

// Initial is the JFN for the standard Jieqi starting position, from Red's perspective, with
// every non-king piece Hidden. A real game starts from exactly this string, decoded with
// Decode: true identities are never encoded in JFN, even at the start -- each is resolved by
// board.ApplyMove's own sampling, from the ZobristTable's seed, the first time a piece reveals
// or is captured while Hidden.
const Initial = "xxxxkxxxx/9/1x5x1/x1x1x1x1x/9/9/X1X1X1X1X/1X5X1/9/XXXXKXXXX -:- r r"

// Decode parses a JFN string into a board, the side to move, and the viewer it was encoded
// for. Hidden ("X"/"x") squares yield a piece with TrueKind = board.NoKind: the point of JFN
// is that a viewer genuinely does not know a Hidden piece's identity.
//
// Decode is strict: every invariant in Validate is checked and a failure is returned as an
// error identifying the offending element.
func Decode(zt *board.ZobristTable, s string) (*board.Board, board.Color, board.Color, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return nil, 0, 0, fmt.Errorf("jfn: expected 4 fields, got %d: %q", len(fields), s)
	}
	boardField, capturedField, turnField, viewerField := fields[0], fields[1], fields[2], fields[3]

	b := board.NewEmptyBoard(zt, board.Red)

	ranks := strings.Split(boardField, "/")
	if len(ranks) != board.NumRows {
		return nil, 0, 0, fmt.Errorf("jfn: expected %d ranks, got %d: %q", board.NumRows, len(ranks), s)
	}
	for i, rank := range ranks {
		row := board.NumRows - 1 - i
		col := 0
		for _, r := range rank {
			switch {
			case unicode.IsDigit(r):
				col += int(r - '0')
			case r == 'X' || r == 'x':
				if col >= board.NumCols {
					return nil, 0, 0, fmt.Errorf("jfn: rank %d overflows columns: %q", row, s)
				}
				c := board.Red
				if r == 'x' {
					c = board.Black
				}
				pos := board.NewPosition(row, col)
				b.Place(pos, board.Piece{Color: c, TrueKind: board.NoKind, State: board.Hidden})
				col++
			default:
				kind, ok := board.ParseKind(r)
				if !ok {
					return nil, 0, 0, fmt.Errorf("jfn: invalid board character %q: %q", r, s)
				}
				if col >= board.NumCols {
					return nil, 0, 0, fmt.Errorf("jfn: rank %d overflows columns: %q", row, s)
				}
				c := board.Red
				if unicode.IsLower(r) {
					c = board.Black
				}
				pos := board.NewPosition(row, col)
				b.Place(pos, board.Piece{Color: c, TrueKind: kind, State: board.Revealed})
				col++
			}
		}
		if col != board.NumCols {
			return nil, 0, 0, fmt.Errorf("jfn: rank %d has %d columns, want %d: %q", row, col, board.NumCols, s)
		}
	}

	turn, ok := parseColor(turnField)
	if !ok {
		return nil, 0, 0, fmt.Errorf("jfn: invalid turn field %q: %q", turnField, s)
	}
	viewer, ok := parseColor(viewerField)
	if !ok {
		return nil, 0, 0, fmt.Errorf("jfn: invalid viewer field %q: %q", viewerField, s)
	}
	b.SetTurn(turn)

	captured, err := parseCaptured(capturedField)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("jfn: %w: %q", err, s)
	}
	applyCaptured(b, captured)
	b.RehashPlacement()

	if err := Validate(b, viewer); err != nil {
		return nil, 0, 0, fmt.Errorf("jfn: %w: %q", err, s)
	}

	return b, turn, viewer, nil
}

// capturedPiece mirrors board.CapturedEntry plus the colour it belongs to.
type capturedPiece struct {
	color     board.Color
	kind      board.Kind // board.NoKind if unknown to viewer
	wasHidden bool
}

func parseCaptured(field string) ([]capturedPiece, error) {
	if field == "-:-" {
		return nil, nil
	}
	parts := strings.SplitN(field, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid captured field %q", field)
	}

	var out []capturedPiece
	for _, seg := range []struct {
		color board.Color
		str   string
	}{{color: board.Red, str: parts[0]}, {color: board.Black, str: parts[1]}} {
		if seg.str == "-" {
			continue
		}
		for _, r := range seg.str {
			if r == '?' {
				out = append(out, capturedPiece{color: seg.color, kind: board.NoKind, wasHidden: true})
				continue
			}
			kind, ok := board.ParseKind(r)
			if !ok {
				return nil, fmt.Errorf("invalid captured piece %q", string(r))
			}
			out = append(out, capturedPiece{color: seg.color, kind: kind, wasHidden: unicode.IsLower(r)})
		}
	}
	return out, nil
}

func applyCaptured(b *board.Board, captured []capturedPiece) {
	for _, c := range captured {
		b.RecordCaptured(c.color, board.CapturedEntry{Kind: c.kind, WasHidden: c.wasHidden})
	}
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "r":
		return board.Red, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

// Encode renders b as a JFN string from viewer's perspective. Hidden pieces of either colour
// are always rendered as X/x regardless of whether this process happens to know their true
// kind (e.g. a ground-truth board): JFN is a viewer-facing format, and a Hidden piece is by
// definition unknown to every viewer.
func Encode(b *board.Board, viewer board.Color) string {
	var ranks []string
	for row := board.NumRows - 1; row >= 0; row-- {
		var sb strings.Builder
		empty := 0
		flush := func() {
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
		}
		for col := 0; col < board.NumCols; col++ {
			p, ok := b.At(board.NewPosition(row, col))
			if !ok {
				empty++
				continue
			}
			flush()
			sb.WriteString(p.String())
		}
		flush()
		ranks = append(ranks, sb.String())
	}
	boardField := strings.Join(ranks, "/")

	capturedField := encodeCaptured(b, viewer)

	return fmt.Sprintf("%s %s %s %s", boardField, capturedField, colorChar(b.Turn()), colorChar(viewer))
}

func encodeCaptured(b *board.Board, viewer board.Color) string {
	seg := func(c board.Color) string {
		entries := b.Captured(c)
		if len(entries) == 0 {
			return "-"
		}
		var sb strings.Builder
		for _, e := range entries {
			switch {
			case !e.WasHidden:
				sb.WriteString(strings.ToUpper(e.Kind.String()))
			case c != viewer:
				// Viewer's opponent lost it; if it was Hidden, the viewer learned it only
				// if the viewer was the capturer, i.e. the piece belongs to the opponent
				// of the mover whose own colour is `viewer`'s own losses go through the
				// other branch below. Here c == opponent of viewer and the viewer was the
				// capturer, so the viewer knows the kind.
				sb.WriteString(strings.ToLower(e.Kind.String()))
			default:
				// c == viewer: viewer's own piece was captured while Hidden; the viewer,
				// as the victim, never learns its identity.
				sb.WriteString("?")
			}
		}
		return sb.String()
	}
	return fmt.Sprintf("%s:%s", seg(board.Red), seg(board.Black))
}

func colorChar(c board.Color) string {
	return c.String()
}

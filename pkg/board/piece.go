package board

// Kind represents a Jieqi piece kind, colour-agnostic. 3 bits.
type Kind uint8

const (
	NoKind Kind = iota
	King
	Advisor
	Elephant
	Horse
	Rook
	Cannon
	Pawn
)

const (
	ZeroKind Kind = King
	NumKinds Kind = Pawn + 1
)

// AllKinds enumerates the seven playable kinds, King first.
var AllKinds = []Kind{King, Advisor, Elephant, Horse, Rook, Cannon, Pawn}

// HiddenPoolKinds enumerates the six non-King kinds that can ever be Hidden.
var HiddenPoolKinds = []Kind{Advisor, Elephant, Horse, Rook, Cannon, Pawn}

// InitialAllotment is the total count of each kind a full army starts with, King excluded:
// the King is always Revealed and never enters the hidden pool.
var InitialAllotment = map[Kind]int{
	Advisor:  2,
	Elephant: 2,
	Horse:    2,
	Rook:     2,
	Cannon:   2,
	Pawn:     5,
}

func ParseKind(r rune) (Kind, bool) {
	switch r {
	case 'k', 'K':
		return King, true
	case 'a', 'A':
		return Advisor, true
	case 'e', 'E':
		return Elephant, true
	case 'h', 'H':
		return Horse, true
	case 'r', 'R':
		return Rook, true
	case 'c', 'C':
		return Cannon, true
	case 'p', 'P':
		return Pawn, true
	default:
		return NoKind, false
	}
}

func (k Kind) IsValid() bool {
	return King <= k && k <= Pawn
}

func (k Kind) String() string {
	switch k {
	case King:
		return "K"
	case Advisor:
		return "A"
	case Elephant:
		return "E"
	case Horse:
		return "H"
	case Rook:
		return "R"
	case Cannon:
		return "C"
	case Pawn:
		return "P"
	default:
		return "?"
	}
}

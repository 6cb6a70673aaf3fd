package board

import "fmt"

// Score is a signed, side-relative position or move score in centi-points: positive always
// favours the side passed as argument to whatever produced the score. Material values follow
// K:10000, R:900, C:450, H:400, E:200, A:200, P:100. 32 bits: the expectimax chance-node
// averaging accumulates weighted sums that can exceed the 16-bit range used by a plain
// material count.
type Score int32

const (
	MinScore Score = -1_000_000
	MaxScore Score = 1_000_000
)

// MateScore is the magnitude used to signal a forced win/loss, offset by ply-to-mate so that
// shallower mates are preferred/avoided over deeper ones.
const MateScore Score = 900_000

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}

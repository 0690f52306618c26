package eval

import "fmt"

// Score is a signed position or move score in centipawns, from the
// perspective of the side it favors: positive is good for whoever "owns" the
// score at that point in the call stack. Search negates it at every ply, the
// standard negamax convention (spec.md 4.7).
//
// Scores beyond mateScore in magnitude encode a forced mate: NegInfScore is
// "mated in 0" (the side to move is already mated), InfScore is its
// negation, and each additional ply of
// distance from the mating node subtracts one, via IncrementMateDistance, as
// the score is negated back up the tree. This mirrors how the engine this
// spec was distilled from reports "mate in N" without a separate score type.
type Score int32

const (
	ZeroScore Score = 0

	InfScore    Score = 1 << 20
	NegInfScore Score = -InfScore

	// mateScore is the magnitude threshold above which a Score encodes a
	// forced mate rather than a material/positional evaluation. No realistic
	// static evaluation approaches this magnitude.
	mateScore Score = InfScore - MaxMateDistance

	// MaxMateDistance bounds how many plies of mate distance a Score can
	// encode, comfortably beyond any depth this engine searches to.
	MaxMateDistance = 1000

	// InvalidScore marks a search result that was abandoned (time/stop), and
	// must never be used as an evaluation.
	InvalidScore Score = InfScore + 1
)

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		if d >= 0 {
			return fmt.Sprintf("mate%d", (d+1)/2)
		}
		return fmt.Sprintf("mate%d", (d-1)/2)
	}
	return fmt.Sprintf("%d", int32(s))
}

// Negate flips perspective, the way every recursive call in a negamax search
// does. The invalid sentinel is left untouched so it survives unwinding.
func (s Score) Negate() Score {
	if s.IsInvalid() {
		return s
	}
	return -s
}

// Less reports whether s is strictly worse than o, from the same perspective.
func (s Score) Less(o Score) bool { return s < o }

// IsInvalid reports whether s is the sentinel for an abandoned search.
func (s Score) IsInvalid() bool { return s == InvalidScore }

// IsMate reports whether s encodes a forced mate for either side.
func (s Score) IsMate() bool { return s > mateScore || s < -mateScore }

// MateDistance returns the number of plies to the mate s encodes (positive:
// the side to move delivers it; negative: the side to move is mated) and
// whether s encodes a mate at all.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > mateScore:
		return int(InfScore - s), true
	case s < -mateScore:
		return -int(InfScore + s), true
	default:
		return 0, false
	}
}

// IncrementMateDistance moves a mate score one ply further from the mating
// node, called once per ply as a recursive search result is returned to its
// caller (and then negated). Non-mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > mateScore:
		return s - 1
	case s < -mateScore:
		return s + 1
	default:
		return s
	}
}

// HeuristicScore wraps a static evaluation (in centipawns) as a Score.
func HeuristicScore(centipawns int) Score { return Score(centipawns) }

// Max returns the greater of two scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the lesser of two scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

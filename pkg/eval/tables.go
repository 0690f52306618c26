package eval

import "github.com/corvid-engine/corvid/pkg/board"

// Tables, piece values, and bonus constants are ported verbatim from
// original_source/utilities.py's hand-tuned PESTO-style evaluation. Arrays
// are indexed by a "PST index" that runs a8..h8, a7..h7, ..., a1..h1 (row 0
// is White's back rank as seen from Black, i.e. rank 8) -- the same order
// the piece-placement field of a FEN uses. pstIndex converts a mailbox
// Square to this order; for Black pieces the index is additionally XORed
// with 56 to mirror the table vertically, so a single White-oriented table
// serves both colors (spec.md 9, polymorphism-by-table design note).
func pstIndex(sq board.Square) int {
	return (7-sq.Rank())*8 + sq.File()
}

// kindIndex maps a Kind to the 0..5 (pawn..king) index the value and PST
// tables use.
func kindIndex(k board.Kind) int {
	return int(k - board.Pawn)
}

// GamePhaseScores weights each piece kind's contribution to the tapered
// game-phase counter (capped at 24, reached at the start position).
var GamePhaseScores = [6]int{0, 1, 1, 2, 4, 0}

var PieceValuesMid = [6]int{82, 326, 352, 486, 982, 0}
var PieceValuesEnd = [6]int{96, 292, 304, 512, 936, 0}

const TempoBonus = 8

const (
	DoubledPawnPenaltyMid = 14
	DoubledPawnPenaltyEnd = 20

	IsolatedPawnPenaltyMid = 18
	IsolatedPawnPenaltyEnd = 12

	BackwardsPawnPenaltyMid = 6
	BackwardsPawnPenaltyEnd = 8

	PassedPawnBonusMid = 9
	PassedPawnBonusEnd = 17

	BishopPairBonusMid = 55
	BishopPairBonusEnd = 40

	RookSemiOpenFileBonusMid = 15
	RookSemiOpenFileBonusEnd = 20

	RookOpenFileBonusMid = 27
	RookOpenFileBonusEnd = 32

	QueenSemiOpenFileBonusMid = 5
	QueenSemiOpenFileBonusEnd = 8

	QueenOpenFileBonusMid = 10
	QueenOpenFileBonusEnd = 12
)

var pawnPSTMid = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	45, 50, 55, 60, 65, 55, 30, 10,
	35, 40, 45, 50, 60, 45, 40, 25,
	8, 9, 20, 25, 30, 20, 7, 3,
	0, 0, 13, 18, 20, 8, 3, -4,
	2, 2, 0, 2, 4, -5, 12, 0,
	0, 0, 3, -26, -26, 12, 15, -5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnPSTEnd = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	75, 70, 60, 55, 55, 55, 65, 70,
	55, 50, 45, 40, 40, 45, 50, 50,
	30, 30, 20, 26, 26, 20, 25, 30,
	10, 0, 5, 4, 4, 5, 0, 0,
	2, 2, 0, 3, 3, 0, 2, 2,
	10, 10, 5, 5, 5, 3, 1, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPSTMid = [64]int{
	-70, -60, -30, -35, -5, -30, -20, -70,
	-60, -5, 40, 20, 20, 40, 5, -40,
	-30, 30, 30, 45, 45, 70, 10, 15,
	0, 10, 30, 50, 50, 60, 10, 5,
	-10, 0, 15, 40, 40, 15, 0, -30,
	-30, 5, 10, 20, 20, 10, 10, -30,
	-40, -20, 1, 5, 5, 1, -20, -40,
	-60, -40, -30, -30, -30, -20, -40, -40,
}

var knightPSTEnd = [64]int{
	-60, -40, -30, -30, -30, -30, -40, -80,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 20, 25, 25, 20, 0, -30,
	-30, 5, 25, 30, 30, 25, 5, -30,
	-30, 0, 25, 30, 30, 25, 0, -30,
	-30, 5, 20, 25, 25, 20, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPSTMid = [64]int{
	-20, -15, -10, -10, -10, -10, -15, -20,
	-15, 0, 0, 5, 10, 20, 0, -15,
	-10, 20, 5, 45, 30, 45, 0, -10,
	-10, 15, 5, 45, 35, 35, 15, -10,
	-10, 12, 15, 15, 15, 15, 12, -10,
	-10, 10, 10, 7, 7, 10, 10, -10,
	-10, 10, 0, 0, 0, 0, 10, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var bishopPSTEnd = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 15, 5, 25, 25, 5, 15, -10,
	-10, 5, 20, 15, 15, 20, 5, -10,
	-10, 15, 15, 10, 10, 15, 15, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPSTMid = [64]int{
	30, 30, 30, 35, 35, 30, 30, 35,
	25, 30, 40, 40, 45, 40, 30, 30,
	5, 10, 10, 30, 20, 30, 10, 5,
	-20, -5, 10, 15, 15, 20, -5, -20,
	-30, -5, -1, 0, 5, -1, -5, -20,
	-35, 0, 0, 0, 0, 0, 0, -30,
	-30, -10, 4, 6, 6, 4, -5, -40,
	-10, -8, 8, 10, 10, 8, -15, -15,
}

var rookPSTEnd = [64]int{
	10, 10, 15, 15, 10, 10, 5, 5,
	20, 30, 33, 35, 35, 33, 30, 20,
	4, 18, 23, 25, 25, 23, 18, 4,
	-5, 0, 8, 8, 8, 8, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 5, 10, 14, 14, 10, 5, 0,
}

var queenPSTMid = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, -5, 5, -5, -1, 5, 5, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 10, 5, 5, 5, 0, -5,
	-5, 5, 10, 1, -1, 5, 5, -5,
	-10, 15, 15, 15, 15, 15, 10, -10,
	-10, -2, 5, 0, 0, -2, 0, -10,
	-20, -10, -10, -5, -5, -15, -10, -20,
}

var queenPSTEnd = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 30, 40, 60, 10, 0, -10,
	-10, 0, 20, 45, 50, 20, 0, -10,
	-5, 0, 10, 45, 55, 30, 0, -5,
	-5, 0, 20, 45, 35, 20, 0, -5,
	-10, 5, 20, 20, 20, 20, 5, -10,
	-10, 0, 5, 0, 0, 5, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPSTMid = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -40, -40, -20, -20, -10,
	10, 12, -10, -55, -55, -15, 14, 13,
	19, 25, 3, -30, -5, -20, 27, 22,
}

var kingPSTEnd = [64]int{
	2, 8, 16, 14, 14, 16, 8, 2,
	14, 16, 20, 26, 26, 20, 16, 14,
	16, 25, 30, 31, 31, 30, 25, 16,
	16, 26, 32, 35, 35, 32, 26, 16,
	8, 25, 30, 33, 33, 30, 25, 8,
	2, 8, 16, 14, 14, 16, 8, 2,
	-18, -14, -10, -10, -10, -10, -14, -18,
	-20, -20, -20, -20, -20, -20, -20, -20,
}

var pstMid = [6]*[64]int{&pawnPSTMid, &knightPSTMid, &bishopPSTMid, &rookPSTMid, &queenPSTMid, &kingPSTMid}
var pstEnd = [6]*[64]int{&pawnPSTEnd, &knightPSTEnd, &bishopPSTEnd, &rookPSTEnd, &queenPSTEnd, &kingPSTEnd}

// MVVLVATable scores a capture by [attacker][victim], favoring capturing a
// high-value piece with a low-value one (spec.md 4.6).
var MVVLVATable = [6][6]int{
	{105, 205, 305, 405, 505, 605},
	{104, 204, 304, 404, 504, 604},
	{103, 203, 303, 403, 503, 603},
	{102, 202, 302, 402, 502, 602},
	{101, 201, 301, 401, 501, 601},
	{100, 200, 300, 400, 500, 600},
}

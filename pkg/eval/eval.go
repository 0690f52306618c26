// Package eval statically scores a position in centipawn-scale units,
// following the tapered mid/endgame PESTO-style evaluation ported from
// original_source/evaluation.py (spec.md 4.4).
package eval

import "github.com/corvid-engine/corvid/pkg/board"

// maxGamePhase is the game-phase counter value at the start position
// (2 knights + 2 bishops per side at weight 1, 2 rooks at weight 2, 1 queen
// at weight 4: 4*1 + 4*1 + 4*2 + 2*4 = 24).
const maxGamePhase = 24

// pawnRankTable[0][f] is the rank (1-indexed) of White's least advanced pawn
// on file f (1-indexed, padded with sentinel columns 0 and 9); 9 means no
// White pawn on that file. pawnRankTable[1][f] is the analogous maximum rank
// for Black, with 0 meaning none.
type pawnRankTable [2][10]int

// Evaluate returns the static score of pos from the side-to-move's
// perspective: positive favors the side to move. Evaluating the starting
// position returns exactly TempoBonus (spec.md 8).
func Evaluate(pos *board.Position) int {
	var ranks pawnRankTable
	for f := 0; f < 10; f++ {
		ranks[0][f] = 9
		ranks[1][f] = 0
	}

	for sq := board.Square(0); sq < board.NumMailboxSquares; sq++ {
		piece := pos.PieceAt(sq)
		if !piece.IsPiece() || piece.Kind() != board.Pawn {
			continue
		}
		f := sq.File() + 1
		row := sq.Rank() + 1
		if piece.Color() == board.White {
			if row < ranks[0][f] {
				ranks[0][f] = row
			}
		} else {
			if row > ranks[1][f] {
				ranks[1][f] = row
			}
		}
	}

	whiteKing, blackKing := pos.KingSquare(board.White), pos.KingSquare(board.Black)

	var whiteMid, whiteEnd, blackMid, blackEnd, gamePhase int
	var whiteBishops, blackBishops int
	var whiteKingPST, blackKingPST int

	for sq := board.Square(0); sq < board.NumMailboxSquares; sq++ {
		piece := pos.PieceAt(sq)
		if !piece.IsPiece() {
			continue
		}
		kind := piece.Kind()
		ki := kindIndex(kind)
		i := pstIndex(sq)

		if piece.Color() == board.White {
			whiteMid += PieceValuesMid[ki] + pstMid[ki][i]
			whiteEnd += PieceValuesEnd[ki] + pstEnd[ki][i]
			gamePhase += GamePhaseScores[ki]

			switch kind {
			case board.Pawn:
				mid, end := evaluatePawn(ranks, sq, board.White)
				whiteMid += mid
				whiteEnd += end
			case board.Knight:
				whiteMid += knightTropism(sq, whiteKing, blackKing)
			case board.Bishop:
				whiteBishops++
				whiteMid += bishopTropism(sq, blackKing)
			case board.Rook:
				mid, end := rookFileBonus(ranks, sq, board.White)
				whiteMid += mid
				whiteEnd += end
				whiteMid += rookQueenTropism(sq, blackKing)
			case board.Queen:
				whiteMid += queenFileBonus(ranks, sq, board.White)
				whiteMid += rookQueenTropism(sq, blackKing)
			case board.King:
				whiteMid += evaluateKingSafety(ranks, sq, board.White)
				whiteKingPST = pstMid[ki][i]
			}
		} else {
			blackMid += PieceValuesMid[ki] + pstMid[ki][i^56]
			blackEnd += PieceValuesEnd[ki] + pstEnd[ki][i^56]
			gamePhase += GamePhaseScores[ki]

			switch kind {
			case board.Pawn:
				mid, end := evaluatePawn(ranks, sq, board.Black)
				blackMid += mid
				blackEnd += end
			case board.Knight:
				blackMid += knightTropism(sq, blackKing, whiteKing)
			case board.Bishop:
				blackBishops++
				blackMid += bishopTropism(sq, whiteKing)
			case board.Rook:
				mid, end := rookFileBonus(ranks, sq, board.Black)
				blackMid += mid
				blackEnd += end
				blackMid += rookQueenTropism(sq, whiteKing)
			case board.Queen:
				blackMid += queenFileBonus(ranks, sq, board.Black)
				blackMid += rookQueenTropism(sq, whiteKing)
			case board.King:
				blackMid += evaluateKingSafety(ranks, sq, board.Black)
				blackKingPST = pstMid[ki][i^56]
			}
		}
	}

	if whiteBishops >= 2 {
		whiteMid += BishopPairBonusMid
		whiteEnd += BishopPairBonusEnd
	}
	if blackBishops >= 2 {
		blackMid += BishopPairBonusMid
		blackEnd += BishopPairBonusEnd
	}

	// Asymmetric king penalty: a side's exposed king (a poor king PST value)
	// is penalized harder when the opponent still has material to attack
	// with, so king safety matters more in the middlegame than when the
	// opponent has already traded down.
	whitePenalty := kingExposurePenalty(whiteKingPST, blackMid)
	blackPenalty := kingExposurePenalty(blackKingPST, whiteMid)
	whiteMid -= whitePenalty
	blackMid -= blackPenalty

	if gamePhase > maxGamePhase {
		gamePhase = maxGamePhase
	}
	whiteScore := (whiteMid*gamePhase + (maxGamePhase-gamePhase)*whiteEnd) / maxGamePhase
	blackScore := (blackMid*gamePhase + (maxGamePhase-gamePhase)*blackEnd) / maxGamePhase

	score := whiteScore - blackScore
	if pos.Side() == board.Black {
		score = -score
	}
	score = (score * materialDrawFactor(pos)) / 2
	return score + TempoBonus
}

// kingExposurePenalty scales with how far below a "safe" PST value the
// king's square is, and with how much material the opponent still has on
// the board (spec.md 4.4 step 4).
func kingExposurePenalty(kingPST, opponentMid int) int {
	exposure := -kingPST
	if exposure <= 0 {
		return 0
	}
	opponentStrength := opponentMid
	if opponentStrength < 0 {
		opponentStrength = 0
	}
	if opponentStrength > 2000 {
		opponentStrength = 2000
	}
	return (exposure * opponentStrength) / 4000
}

// evaluatePawn scores doubled, isolated, backwards, and passed pawns for a
// single pawn on sq, returning (mid, end) contributions.
func evaluatePawn(ranks pawnRankTable, sq board.Square, color board.Color) (int, int) {
	f := sq.File() + 1
	row := sq.Rank() + 1

	var mid, end int
	if color == board.White {
		if row > ranks[0][f] {
			mid -= DoubledPawnPenaltyMid
			end -= DoubledPawnPenaltyEnd
		}

		switch {
		case ranks[0][f-1] == 9 && ranks[0][f+1] == 9:
			if ranks[1][f] == 0 {
				mid -= (3 * IsolatedPawnPenaltyMid) / 2
				end -= (4 * IsolatedPawnPenaltyEnd) / 5
			} else {
				mid -= IsolatedPawnPenaltyMid
				end -= IsolatedPawnPenaltyEnd
			}
		case row < ranks[0][f-1] && row < ranks[0][f+1]:
			mid -= BackwardsPawnPenaltyMid + 2*(ranks[0][f-1]-row+ranks[0][f+1]-row-2)
			end -= BackwardsPawnPenaltyEnd + ranks[0][f-1] - row + ranks[0][f+1] - row - 2
			if ranks[1][f] == 0 {
				mid -= 3 * BackwardsPawnPenaltyMid
			}
		}

		if row >= ranks[1][f-1] && row >= ranks[1][f] && row >= ranks[1][f+1] {
			mid += row * PassedPawnBonusMid
			end += row * PassedPawnBonusEnd
		}
	} else {
		if row < ranks[1][f] {
			mid -= DoubledPawnPenaltyMid
			end -= DoubledPawnPenaltyEnd
		}

		switch {
		case ranks[1][f-1] == 0 && ranks[1][f+1] == 0:
			if ranks[0][f] == 9 {
				mid -= (3 * IsolatedPawnPenaltyMid) / 2
				end -= (4 * IsolatedPawnPenaltyEnd) / 5
			} else {
				mid -= IsolatedPawnPenaltyMid
				end -= IsolatedPawnPenaltyEnd
			}
		case row > ranks[1][f-1] && row > ranks[1][f+1]:
			mid -= BackwardsPawnPenaltyMid + 2*(row-ranks[1][f-1]+row-ranks[1][f+1]-2)
			end -= BackwardsPawnPenaltyEnd + row - ranks[1][f-1] + row - ranks[1][f+1] - 2
			if ranks[0][f] == 9 {
				mid -= 3 * BackwardsPawnPenaltyMid
			}
		}

		if row <= ranks[0][f-1] && row <= ranks[0][f] && row <= ranks[0][f+1] {
			mid += (9 - row) * PassedPawnBonusMid
			end += (9 - row) * PassedPawnBonusEnd
		}
	}
	return mid, end
}

// rookFileBonus rewards a rook on an open (no pawns) or semi-open (no own
// pawns) file.
func rookFileBonus(ranks pawnRankTable, sq board.Square, color board.Color) (int, int) {
	f := sq.File() + 1
	if color == board.White {
		if ranks[0][f] != 9 {
			return 0, 0
		}
		if ranks[1][f] == 0 {
			return RookOpenFileBonusMid, RookOpenFileBonusEnd
		}
		return RookSemiOpenFileBonusMid, RookSemiOpenFileBonusEnd
	}
	if ranks[1][f] != 0 {
		return 0, 0
	}
	if ranks[0][f] == 9 {
		return RookOpenFileBonusMid, RookOpenFileBonusEnd
	}
	return RookSemiOpenFileBonusMid, RookSemiOpenFileBonusEnd
}

// kingPawnShieldScore penalizes a missing or advanced shield pawn on file,
// and the absence of a contesting enemy pawn on the same file, for the given
// color's king.
func kingPawnShieldScore(ranks pawnRankTable, file int, color board.Color) int {
	var score int
	if color == board.White {
		switch ranks[0][file] {
		case 3:
			score -= 6
		case 4:
			score -= 20
		case 2:
			// pawn still on its home square: no penalty
		default:
			score -= 27
		}
		switch ranks[1][file] {
		case 0:
			score -= 18
		case 4:
			score -= 8
		case 3:
			score -= 15
		}
	} else {
		switch ranks[1][file] {
		case 6:
			score -= 6
		case 5:
			score -= 20
		case 7:
			// pawn still on its home square: no penalty
		default:
			score -= 27
		}
		switch ranks[0][file] {
		case 9:
			score -= 18
		case 5:
			score -= 8
		case 6:
			score -= 15
		}
	}
	return score
}

// evaluateKingSafety scores the king's pawn shield when castled to a wing,
// or penalizes missing shield pawns in front of a king still in the center.
// Endgame king safety is intentionally not scored (spec.md 4.4 follows
// evaluation.py's evaluate_king, which only contributes a mid-game term).
func evaluateKingSafety(ranks pawnRankTable, sq board.Square, color board.Color) int {
	col := sq.File()

	var score int
	switch {
	case col < 3:
		score += kingPawnShieldScore(ranks, 1, color) * 4 / 5
		score += kingPawnShieldScore(ranks, 2, color)
		score += kingPawnShieldScore(ranks, 3, color) * 3 / 5
	case col > 4:
		score += kingPawnShieldScore(ranks, 8, color) / 2
		score += kingPawnShieldScore(ranks, 7, color)
		score += kingPawnShieldScore(ranks, 6, color) * 3 / 10
	default:
		for file := col; file < col+3; file++ {
			if color == board.White {
				if ranks[0][file] == 9 {
					score -= 7
					if ranks[1][file] == 0 {
						score -= 15
					}
				}
			} else {
				if ranks[1][file] == 0 {
					score -= 7
					if ranks[0][file] == 9 {
						score -= 15
					}
				}
			}
		}
	}
	return score
}

// queenFileBonus mirrors rookFileBonus at the smaller queen weight.
func queenFileBonus(ranks pawnRankTable, sq board.Square, color board.Color) int {
	f := sq.File() + 1
	if color == board.White {
		if ranks[0][f] != 9 {
			return 0
		}
		if ranks[1][f] == 0 {
			return QueenOpenFileBonusMid
		}
		return QueenSemiOpenFileBonusMid
	}
	if ranks[1][f] != 0 {
		return 0
	}
	if ranks[0][f] == 9 {
		return QueenOpenFileBonusMid
	}
	return QueenSemiOpenFileBonusMid
}

// euclideanDistance returns the (integer-rounded) Euclidean distance in
// squares between two mailbox squares.
func euclideanDistance(a, b board.Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	return isqrt(df*df + dr*dr)
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// knightTropism rewards a knight for standing near its own king (a loose
// proxy for coordination) and, more strongly, for standing near the
// opponent's king (spec.md 4.4: "penalize distance ... to own king ... and
// to opponent king").
func knightTropism(sq, ownKing, enemyKing board.Square) int {
	return (7-euclideanDistance(sq, ownKing))*1 + (7-euclideanDistance(sq, enemyKing))*2
}

// bishopTropism rewards a bishop for standing near the opponent's king.
func bishopTropism(sq, enemyKing board.Square) int {
	return (7 - euclideanDistance(sq, enemyKing)) * 2
}

// rookQueenTropism rewards a rook or queen for standing near the opponent's
// king, at a gentler weight than bishop/knight tropism since both pieces
// already have open-file bonuses pulling them toward the enemy camp.
func rookQueenTropism(sq, enemyKing board.Square) int {
	return (7 - euclideanDistance(sq, enemyKing)) * 1
}

// materialDrawFactor classifies dead or near-dead endings and returns a
// multiplier in [0,2] meant to be applied then halved by the caller: 0 (dead
// draw: bare kings, K+minor vs K, same-colored-bishop endings, KNN vs K),
// 1 (drawish: K+minor vs K+minor without pawns or queens), or 2 (no discount,
// spec.md 4.4 step 6).
func materialDrawFactor(pos *board.Position) int {
	if pos.HasInsufficientMaterial() {
		return 0
	}

	var pawns, queens, rooks int
	var minors [board.NumColors]int
	var knights [board.NumColors]int
	for sq := board.Square(0); sq < board.NumMailboxSquares; sq++ {
		piece := pos.PieceAt(sq)
		if !piece.IsPiece() {
			continue
		}
		switch piece.Kind() {
		case board.Pawn:
			pawns++
		case board.Queen:
			queens++
		case board.Rook:
			rooks++
		case board.Knight:
			minors[piece.Color()]++
			knights[piece.Color()]++
		case board.Bishop:
			minors[piece.Color()]++
		}
	}

	if knights[board.White] == 2 && minors[board.White] == 2 && minors[board.Black] == 0 && pawns == 0 && queens == 0 && rooks == 0 {
		return 0 // KNN vs K: cannot force mate
	}
	if knights[board.Black] == 2 && minors[board.Black] == 2 && minors[board.White] == 0 && pawns == 0 && queens == 0 && rooks == 0 {
		return 0
	}

	if pawns == 0 && queens == 0 && minors[board.White] <= 1 && minors[board.Black] <= 1 {
		return 1 // drawish minor-piece ending
	}

	return 2
}

package board

// promotionKinds lists the pieces a pawn may promote to, in the order
// promotions are emitted (queen first, since move ordering favors it).
var promotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// GenerateMoves appends every pseudo-legal move for the side to move to
// moves and returns the extended slice. Pseudo-legal: pawn, knight, slider
// and king moves are fully validated against the board, but a move that
// leaves the mover's own king in check is only rejected later, by MakeMove
// (spec.md 4.3).
func (p *Position) GenerateMoves(moves []Move) []Move {
	return p.generate(moves, false)
}

// GenerateCaptures appends every pseudo-legal capturing move (including en
// passant) to moves; used by quiescence search (spec.md 4.3).
func (p *Position) GenerateCaptures(moves []Move) []Move {
	return p.generate(moves, true)
}

func (p *Position) generate(moves []Move, capturesOnly bool) []Move {
	side := p.side
	for sq := Square(0); sq < NumMailboxSquares; sq++ {
		piece := p.board[sq]
		if !piece.IsPiece() || piece.Color() != side {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			moves = p.generatePawnMoves(moves, sq, piece, capturesOnly)
		case Knight:
			moves = p.generateStepMoves(moves, sq, piece, knightIncrements[:], capturesOnly)
		case Bishop:
			moves = p.generateSliderMoves(moves, sq, piece, bishopIncrements[:], capturesOnly)
		case Rook:
			moves = p.generateSliderMoves(moves, sq, piece, rookIncrements[:], capturesOnly)
		case Queen:
			moves = p.generateSliderMoves(moves, sq, piece, queenIncrements[:], capturesOnly)
		case King:
			moves = p.generateStepMoves(moves, sq, piece, kingIncrements[:], capturesOnly)
		}
	}
	if !capturesOnly {
		moves = p.generateCastleMoves(moves)
	}
	return moves
}

func (p *Position) generateStepMoves(moves []Move, from Square, piece Piece, incs []int, capturesOnly bool) []Move {
	for _, inc := range incs {
		to := from + Square(inc)
		target := p.board[to]
		if target == Padding {
			continue
		}
		if target.IsPiece() {
			if target.Color() != piece.Color() {
				moves = append(moves, EncodeMove(from, to, piece, target, Normal, Empty, true))
			}
			continue
		}
		if !capturesOnly {
			moves = append(moves, EncodeMove(from, to, piece, Empty, Normal, Empty, false))
		}
	}
	return moves
}

func (p *Position) generateSliderMoves(moves []Move, from Square, piece Piece, incs []int, capturesOnly bool) []Move {
	for _, inc := range incs {
		to := from + Square(inc)
		for {
			target := p.board[to]
			if target == Padding {
				break
			}
			if target.IsPiece() {
				if target.Color() != piece.Color() {
					moves = append(moves, EncodeMove(from, to, piece, target, Normal, Empty, true))
				}
				break
			}
			if !capturesOnly {
				moves = append(moves, EncodeMove(from, to, piece, Empty, Normal, Empty, false))
			}
			to += Square(inc)
		}
	}
	return moves
}

func (p *Position) generatePawnMoves(moves []Move, from Square, piece Piece, capturesOnly bool) []Move {
	color := piece.Color()
	push := pawnPushIncrement(color)
	promoRank := pawnPromotionRank(color)

	if !capturesOnly {
		one := from + Square(push)
		if p.board[one] == Empty {
			moves = p.appendPawnMove(moves, from, one, piece, Empty, false, promoRank)

			if from.Rank() == pawnHomeRank(color) {
				two := one + Square(push)
				if p.board[two] == Empty {
					moves = append(moves, EncodeMove(from, two, piece, Empty, Normal, Empty, false))
				}
			}
		}
	}

	for _, inc := range pawnCaptureIncrements(color) {
		to := from + Square(inc)
		target := p.board[to]
		if target == Padding {
			continue
		}
		if target.IsPiece() && target.Color() != color {
			moves = p.appendPawnMove(moves, from, to, piece, target, true, promoRank)
		} else if target == Empty && to == p.epSquare && p.epSquare != 0 {
			captured := MakePiece(color.Opponent(), Pawn)
			moves = append(moves, EncodeMove(from, to, piece, captured, EnPassant, Empty, true))
		}
	}
	return moves
}

// appendPawnMove appends a single pawn push or capture, fanning out into the
// four promotion choices when landing on the back rank.
func (p *Position) appendPawnMove(moves []Move, from, to Square, piece, captured Piece, isCapture bool, promoRank int) []Move {
	if to.Rank() == promoRank {
		for _, k := range promotionKinds {
			promo := MakePiece(piece.Color(), k)
			moves = append(moves, EncodeMove(from, to, piece, captured, PromotionMove, promo, isCapture))
		}
		return moves
	}
	return append(moves, EncodeMove(from, to, piece, captured, Normal, Empty, isCapture))
}

// generateCastleMoves emits castling moves when rights allow, the king and
// rook are on their home squares, and the squares between them are empty. Whether
// the king starts, passes through, or lands on an attacked square is left to
// MakeMove (spec.md 4.3).
func (p *Position) generateCastleMoves(moves []Move) []Move {
	switch p.side {
	case White:
		if p.castleAbilityBits.Has(WhiteKingSide) && p.board[E1] == WhiteKing && p.board[H1] == WhiteRook && p.board[F1] == Empty && p.board[G1] == Empty {
			king := p.board[E1]
			moves = append(moves, EncodeMove(E1, G1, king, Empty, Castle, Empty, false))
		}
		if p.castleAbilityBits.Has(WhiteQueenSide) && p.board[E1] == WhiteKing && p.board[A1] == WhiteRook && p.board[D1] == Empty && p.board[C1] == Empty && p.board[NewSquare(1, 0)] == Empty {
			king := p.board[E1]
			moves = append(moves, EncodeMove(E1, C1, king, Empty, Castle, Empty, false))
		}
	case Black:
		if p.castleAbilityBits.Has(BlackKingSide) && p.board[E8] == BlackKing && p.board[H8] == BlackRook && p.board[F8] == Empty && p.board[G8] == Empty {
			king := p.board[E8]
			moves = append(moves, EncodeMove(E8, G8, king, Empty, Castle, Empty, false))
		}
		if p.castleAbilityBits.Has(BlackQueenSide) && p.board[E8] == BlackKing && p.board[A8] == BlackRook && p.board[D8] == Empty && p.board[C8] == Empty && p.board[NewSquare(1, 7)] == Empty {
			king := p.board[E8]
			moves = append(moves, EncodeMove(E8, C8, king, Empty, Castle, Empty, false))
		}
	}
	return moves
}

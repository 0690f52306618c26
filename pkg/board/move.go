package board

import "fmt"

// MoveType distinguishes the few move shapes that need special handling in
// make/undo beyond a plain from->to relocation.
type MoveType uint8

const (
	Normal MoveType = iota
	EnPassant
	Castle
	PromotionMove
)

// Move is a move, legal or not, packed into a single integer so that it is
// cheap to copy, compare and store in the transposition table and killer
// slots. The zero value, NoMove, never names a legal move: square 0 is
// mailbox padding, so no real move has From == 0.
//
//	bits  0.. 6  from square   (7)
//	bits  7..13  to square     (7)
//	bits 14..17  moving piece  (4)
//	bits 18..21  captured piece or Empty (4)
//	bits 22..24  move type     (3)
//	bits 25..28  promotion piece or Empty (4)
//	bit      29  is-capture flag
type Move uint32

const NoMove Move = 0

const (
	fromShift     = 0
	toShift       = 7
	pieceShift    = 14
	capturedShift = 18
	typeShift     = 22
	promoShift    = 25
	captureShift  = 29

	fieldMask7 = 0x7f
	fieldMask4 = 0xf
	fieldMask3 = 0x7
)

// EncodeMove packs a move's fields into a Move integer.
func EncodeMove(from, to Square, piece, captured Piece, typ MoveType, promo Piece, isCapture bool) Move {
	m := Move(from)<<fromShift | Move(to)<<toShift | Move(piece)<<pieceShift | Move(captured)<<capturedShift | Move(typ)<<typeShift | Move(promo)<<promoShift
	if isCapture {
		m |= 1 << captureShift
	}
	return m
}

func (m Move) From() Square       { return Square((m >> fromShift) & fieldMask7) }
func (m Move) To() Square         { return Square((m >> toShift) & fieldMask7) }
func (m Move) Piece() Piece       { return Piece((m >> pieceShift) & fieldMask4) }
func (m Move) Captured() Piece    { return Piece((m >> capturedShift) & fieldMask4) }
func (m Move) Type() MoveType     { return MoveType((m >> typeShift) & fieldMask3) }
func (m Move) Promotion() Piece   { return Piece((m >> promoShift) & fieldMask4) }
func (m Move) IsCapture() bool    { return (m>>captureShift)&1 != 0 }
func (m Move) IsPromotion() bool  { return m.Type() == PromotionMove }
func (m Move) IsEnPassant() bool  { return m.Type() == EnPassant }
func (m Move) IsCastle() bool     { return m.Type() == Castle }
func (m Move) IsQuiet() bool      { return !m.IsCapture() && !m.IsPromotion() }

// UCI returns the move in pure algebraic coordinate notation (e2e4, a7a8q).
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.Promotion().Kind().String()
	}
	return s
}

func (m Move) String() string {
	return m.UCI()
}

// MoveFromUCI reconstructs a packed move from its UCI text against the given
// position, inferring the move type: promotion by destination rank, castle by
// a two-square king jump, en passant when a pawn moves diagonally onto the
// position's en-passant target. The from-square must name one of the side to
// move's own pieces; a move produced by the engine or a sane GUI always
// satisfies this (see spec.md 4.1).
func MoveFromUCI(pos *Position, text string) (Move, error) {
	if len(text) < 4 || len(text) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", text, err)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", text, err)
	}

	piece := pos.board[from]
	if !piece.IsPiece() {
		return NoMove, fmt.Errorf("no piece on from-square in %q", text)
	}
	captured := pos.board[to]

	var promo Piece = Empty
	if len(text) == 5 {
		k, ok := kindFromPromoLetter(text[4])
		if !ok {
			return NoMove, fmt.Errorf("invalid promotion in %q", text)
		}
		promo = MakePiece(piece.Color(), k)
	}

	typ := Normal
	switch piece.Kind() {
	case Pawn:
		if to.Rank() == 0 || to.Rank() == 7 {
			typ = PromotionMove
		} else if to == pos.epSquare && to != 0 {
			typ = EnPassant
		}
	case King:
		df := to.File() - from.File()
		if df == 2 || df == -2 {
			typ = Castle
		}
	}

	isCapture := captured.IsPiece() || typ == EnPassant
	if typ == EnPassant {
		captured = MakePiece(piece.Color().Opponent(), Pawn)
	} else if !captured.IsPiece() {
		captured = Empty
	}

	return EncodeMove(from, to, piece, captured, typ, promo, isCapture), nil
}

func kindFromPromoLetter(r byte) (Kind, bool) {
	switch r {
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	default:
		return NoKind, false
	}
}

package board

// Piece is an integer tag packing color and kind: 0..5 are white
// {pawn,knight,bishop,rook,queen,king}, 6..11 the black equivalents. Two
// additional sentinel codes, Empty and Padding, share the board array with
// these twelve so that move generation needs no separate "is this square on
// the board" table.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing

	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	Empty
	Padding
)

const NumPieceCodes = 12

// Kind is the color-independent identity of a piece: Pawn, Knight, and so on.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Color returns the piece's color. Only valid for p < Empty.
func (p Piece) Color() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// Kind returns the piece's color-independent kind. Only valid for p < Empty.
func (p Piece) Kind() Kind {
	return Kind(p%6) + Pawn
}

// IsPiece reports whether p names one of the twelve real pieces (not Empty/Padding).
func (p Piece) IsPiece() bool {
	return p < Empty
}

func MakePiece(c Color, k Kind) Piece {
	return Piece(c)*6 + Piece(k-Pawn)
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "."
	case Padding:
		return "x"
	}
	s := p.Kind().String()
	if p.Color() == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

// ParsePiece parses a FEN piece letter (uppercase=white, lowercase=black).
func ParsePiece(r rune) (Piece, bool) {
	var c Color
	lower := r
	if r >= 'A' && r <= 'Z' {
		c = White
		lower = r - 'A' + 'a'
	} else {
		c = Black
	}

	switch lower {
	case 'p':
		return MakePiece(c, Pawn), true
	case 'n':
		return MakePiece(c, Knight), true
	case 'b':
		return MakePiece(c, Bishop), true
	case 'r':
		return MakePiece(c, Rook), true
	case 'q':
		return MakePiece(c, Queen), true
	case 'k':
		return MakePiece(c, King), true
	default:
		return 0, false
	}
}

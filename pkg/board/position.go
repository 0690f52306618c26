package board

import (
	"fmt"
	"strings"
)

// Position is the mailbox board state described in spec.md 3: a padded
// 10x12 board, king locations for fast check detection, castling rights, the
// en-passant target square, the side to move, and an incrementally
// maintained Zobrist hash. Position never owns game-length history (move
// list, repetition counts, fullmove counter) -- that belongs to the search
// state and the Board wrapper (board.go), per spec.md 3.
type Position struct {
	board             [NumMailboxSquares]Piece
	kingSquare        [NumColors]Square
	castleAbilityBits Castling
	epSquare          Square
	side              Color
	hash              ZobristHash
}

// UndoState is the caller-saved triple (en-passant square, castling rights,
// hash) that UndoMove needs to reverse a MakeMove call, per spec.md 4.2.
type UndoState struct {
	ep     Square
	castle Castling
	hash   ZobristHash
}

// NewEmptyPosition returns a position with every square empty and the board
// border painted with the Padding sentinel.
func NewEmptyPosition() *Position {
	p := &Position{}
	for sq := Square(0); sq < NumMailboxSquares; sq++ {
		if sq.IsOnBoard() {
			p.board[sq] = Empty
		} else {
			p.board[sq] = Padding
		}
	}
	return p
}

func (p *Position) Side() Color          { return p.side }
func (p *Position) Hash() ZobristHash    { return p.hash }
func (p *Position) Castling() Castling   { return p.castleAbilityBits }
func (p *Position) EnPassant() Square    { return p.epSquare }
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }
func (p *Position) PieceAt(sq Square) Piece   { return p.board[sq] }

// Place puts a piece on a square without touching the hash; used only while
// building up a position (FEN parsing). Call RecomputeHash afterwards.
func (p *Position) Place(sq Square, piece Piece) {
	p.board[sq] = piece
	if piece.Kind() == King {
		p.kingSquare[piece.Color()] = sq
	}
}

func (p *Position) SetSide(c Color)             { p.side = c }
func (p *Position) SetCastling(c Castling)      { p.castleAbilityBits = c }
func (p *Position) SetEnPassant(sq Square)      { p.epSquare = sq }

// RecomputeHash recomputes Hash from scratch; must agree bit-for-bit with the
// incrementally maintained value (spec.md 8, Zobrist consistency).
func (p *Position) RecomputeHash() {
	p.hash = computeHash(p)
}

// FlipSide toggles the side to move. MakeMove deliberately does not do this
// itself (spec.md 4.2 step 7): it folds the side-hash toggle into the hash it
// maintains, but leaves the actual flip to the caller so that an illegal
// move can be undone without ever having changed sides. Callers must flip
// after a legal MakeMove and flip back before the matching UndoMove.
func (p *Position) FlipSide() {
	p.side = p.side.Opponent()
}

// IsAttacked reports whether the given square is attacked by the opponent of
// the side to move. Implemented by ray-casting from the queried square using
// the attacker's own increments: sliders walk until blocked, knight and king
// rays are single-step, pawns are checked via the single diagonal step from
// the attacker's direction (spec.md 4.2).
func (p *Position) IsAttacked(sq Square) bool {
	attacker := p.side.Opponent()

	for _, inc := range bishopIncrements {
		if p.slides(sq, inc, attacker, Bishop, Queen) {
			return true
		}
	}
	for _, inc := range rookIncrements {
		if p.slides(sq, inc, attacker, Rook, Queen) {
			return true
		}
	}
	for _, inc := range knightIncrements {
		t := sq + Square(inc)
		if piece := p.board[t]; piece.IsPiece() && piece.Color() == attacker && piece.Kind() == Knight {
			return true
		}
	}
	for _, inc := range kingIncrements {
		t := sq + Square(inc)
		if piece := p.board[t]; piece.IsPiece() && piece.Color() == attacker && piece.Kind() == King {
			return true
		}
	}

	// Pawn attacks: a pawn attacks diagonally forward from its own square, so
	// to find an attacking pawn we step in the *reverse* of its push
	// direction from the queried square.
	for _, inc := range pawnCaptureIncrements(attacker.Opponent()) {
		t := sq + Square(inc)
		if piece := p.board[t]; piece.IsPiece() && piece.Color() == attacker && piece.Kind() == Pawn {
			return true
		}
	}
	return false
}

// slides walks from sq in the given direction and reports whether the first
// occupied square holds an attacker-colored piece of kind a or b.
func (p *Position) slides(sq Square, inc int, attacker Color, a, b Kind) bool {
	t := sq + Square(inc)
	for {
		piece := p.board[t]
		if piece == Padding {
			return false
		}
		if piece.IsPiece() {
			if piece.Color() == attacker && (piece.Kind() == a || piece.Kind() == b) {
				return true
			}
			return false
		}
		t += Square(inc)
	}
}

// IsChecked reports whether the side to move's king is attacked.
func (p *Position) IsChecked() bool {
	return p.IsAttacked(p.kingSquare[p.side])
}

// MakeMove applies a pseudo-legal move. It returns the undo snapshot the
// caller must pass to UndoMove, and whether the move is legal (did not leave
// the mover's own king in check). On an illegal move the caller must still
// call UndoMove with the returned snapshot to restore the position -- the
// board mutation already happened (spec.md 4.2).
func (p *Position) MakeMove(m Move) (UndoState, bool) {
	snap := UndoState{ep: p.epSquare, castle: p.castleAbilityBits, hash: p.hash}

	from, to := m.From(), m.To()
	piece := m.Piece()
	mover := piece.Color()

	var rookFrom, rookTo Square
	castled := false

	switch m.Type() {
	case EnPassant:
		p.board[to] = piece
		p.hash ^= zobrist.pieces[piece][to]

		capSq := to + Square(-pawnPushIncrement(mover))
		captured := p.board[capSq]
		p.board[capSq] = Empty
		p.hash ^= zobrist.pieces[captured][capSq]

	case Castle:
		p.board[to] = piece
		p.hash ^= zobrist.pieces[piece][to]

		if to.File() < from.File() {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		}
		rook := p.board[rookFrom]
		p.board[rookTo] = rook
		p.hash ^= zobrist.pieces[rook][rookTo]
		p.board[rookFrom] = Empty
		p.hash ^= zobrist.pieces[rook][rookFrom]
		castled = true

	case PromotionMove:
		promo := m.Promotion()
		p.board[to] = promo
		p.hash ^= zobrist.pieces[promo][to]

	default:
		p.board[to] = piece
		p.hash ^= zobrist.pieces[piece][to]
	}

	p.board[from] = Empty
	p.hash ^= zobrist.pieces[piece][from]

	if m.IsCapture() && m.Type() != EnPassant {
		p.hash ^= zobrist.pieces[m.Captured()][to]
	}

	if piece.Kind() == King {
		p.kingSquare[mover] = to
	}

	if p.IsAttacked(p.kingSquare[mover]) {
		return snap, false
	}
	if castled {
		// The king must not have started, passed through, or landed on an
		// attacked square; landing was already checked above.
		if p.IsAttacked(rookTo) || p.IsAttacked(from) {
			return snap, false
		}
	}

	// Double pawn push sets the en-passant target; any other move clears it.
	if p.epSquare != 0 {
		p.hash ^= zobrist.ep[p.epSquare]
	}
	if piece.Kind() == Pawn && abs(int(to)-int(from)) == 20 {
		p.epSquare = to + Square(-pawnPushIncrement(mover))
		p.hash ^= zobrist.ep[p.epSquare]
	} else {
		p.epSquare = 0
	}

	p.hash ^= zobrist.castling[p.castleAbilityBits]
	p.castleAbilityBits &^= castlingRightsLostAt(from) | castlingRightsLostAt(to)
	p.hash ^= zobrist.castling[p.castleAbilityBits]

	p.hash ^= zobrist.side

	return snap, true
}

// UndoMove reverses a MakeMove call using the snapshot it returned. Must be
// called with Side() still equal to the mover (i.e. before FlipSide for an
// illegal move, or after flipping back for a legal one) -- see FlipSide.
func (p *Position) UndoMove(m Move, snap UndoState) {
	from, to := m.From(), m.To()
	piece := m.Piece()

	switch m.Type() {
	case EnPassant:
		capSq := to + Square(-pawnPushIncrement(piece.Color()))
		p.board[capSq] = m.Captured()
		p.board[to] = Empty

	case Castle:
		if to.File() < from.File() {
			rookFrom, rookTo := NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
			p.board[rookFrom] = p.board[rookTo]
			p.board[rookTo] = Empty
		} else {
			rookFrom, rookTo := NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
			p.board[rookFrom] = p.board[rookTo]
			p.board[rookTo] = Empty
		}
		p.board[to] = m.Captured()

	default:
		p.board[to] = m.Captured()
	}

	p.board[from] = piece
	if piece.Kind() == King {
		p.kingSquare[piece.Color()] = from
	}

	p.epSquare = snap.ep
	p.castleAbilityBits = snap.castle
	p.hash = snap.hash
}

// MakeNullMove flips the side to move and clears the en-passant square,
// without touching the board; used by null-move pruning.
func (p *Position) MakeNullMove() UndoState {
	snap := UndoState{ep: p.epSquare, castle: p.castleAbilityBits, hash: p.hash}
	if p.epSquare != 0 {
		p.hash ^= zobrist.ep[p.epSquare]
		p.epSquare = 0
	}
	p.hash ^= zobrist.side
	p.side = p.side.Opponent()
	return snap
}

// UndoNullMove reverses MakeNullMove.
func (p *Position) UndoNullMove(snap UndoState) {
	p.side = p.side.Opponent()
	p.epSquare = snap.ep
	p.hash = snap.hash
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteString(p.board[NewSquare(file, rank)].String())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "side=%v castle=%v ep=%v hash=%x", p.side, p.castleAbilityBits, p.epSquare, p.hash)
	return sb.String()
}

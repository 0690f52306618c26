package board

import "fmt"

// repetition3Limit is the identical-position count at which a game is
// adjudicated drawn: Board waits for a true third occurrence before
// reporting the game over. The search's own repetition table (pkg/search)
// instead scores the first repeat within the tree as a draw (spec.md 9, open
// question 3), independently of this bookkeeping.
const repetition3Limit = 3

const fiftyMovePlyLimit = 100

// undoFrame is the information PopMove needs to reverse one PushMove call:
// the move itself, the Position-level undo snapshot, and the noprogress ply
// count and hash it had before the push (for repetition/fifty-move upkeep).
type undoFrame struct {
	move       Move
	snap       UndoState
	noprogress int
	hash       ZobristHash
}

// Board is a Position plus the game-length bookkeeping Position deliberately
// does not own: move history (for PopMove and "position startpos moves ..."
// replay), the fullmove counter, the halfmove clock, and draw adjudication.
// Not thread-safe; not safe to share between concurrent searches (spec.md 7).
type Board struct {
	pos         *Position
	turn        Color
	fullmoves   int
	noprogress  int
	repetitions map[ZobristHash]int
	history     []undoFrame
	result      Result
}

// NewBoard wraps pos with game bookkeeping. pos.Side() must equal turn.
func NewBoard(pos *Position, turn Color, noprogress, fullmoves int) *Board {
	b := &Board{
		pos:         pos,
		turn:        turn,
		fullmoves:   fullmoves,
		noprogress:  noprogress,
		repetitions: map[ZobristHash]int{pos.Hash(): 1},
	}
	return b
}

// Fork returns an independent copy of the board, so a search goroutine can
// walk it without racing the engine goroutine's own reads and moves
// (spec.md 7).
func (b *Board) Fork() *Board {
	pos := *b.pos
	repetitions := make(map[ZobristHash]int, len(b.repetitions))
	for h, n := range b.repetitions {
		repetitions[h] = n
	}
	history := make([]undoFrame, len(b.history))
	copy(history, b.history)

	return &Board{
		pos:         &pos,
		turn:        b.turn,
		fullmoves:   b.fullmoves,
		noprogress:  b.noprogress,
		repetitions: repetitions,
		history:     history,
		result:      b.result,
	}
}

func (b *Board) Position() *Position { return b.pos }
func (b *Board) Turn() Color         { return b.turn }
func (b *Board) NoProgress() int     { return b.noprogress }
func (b *Board) FullMoves() int      { return b.fullmoves }
func (b *Board) Result() Result      { return b.result }

// PushMove attempts to play a pseudo-legal move, updating the mover,
// fullmove counter, repetition table, and draw adjudication. Returns false
// (and leaves the board unchanged) if the move is illegal.
func (b *Board) PushMove(m Move) bool {
	if b.result.Outcome != Undecided {
		return false
	}

	snap, legal := b.pos.MakeMove(m)
	if !legal {
		b.pos.UndoMove(m, snap)
		return false
	}
	b.pos.FlipSide()

	frame := undoFrame{move: m, snap: snap, noprogress: b.noprogress, hash: b.pos.Hash()}
	b.history = append(b.history, frame)

	b.noprogress = updateNoProgress(b.noprogress, m)
	b.turn = b.turn.Opponent()
	if b.turn == White {
		b.fullmoves++
	}
	b.repetitions[b.pos.Hash()]++

	switch {
	case b.repetitions[b.pos.Hash()] >= repetition3Limit:
		b.result = Result{Outcome: Draw, Reason: Repetition3}
	case b.noprogress >= fiftyMovePlyLimit:
		b.result = Result{Outcome: Draw, Reason: FiftyMoveRule}
	case b.pos.HasInsufficientMaterial():
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return true
}

// PopMove reverses the last PushMove. Returns the move undone, or false if
// the board has no history.
func (b *Board) PopMove() (Move, bool) {
	if len(b.history) == 0 {
		return NoMove, false
	}
	frame := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	b.repetitions[b.pos.Hash()]--
	if b.repetitions[b.pos.Hash()] == 0 {
		delete(b.repetitions, b.pos.Hash())
	}

	b.turn = b.turn.Opponent()
	if b.turn == Black {
		b.fullmoves--
	}
	b.noprogress = frame.noprogress
	b.result = Result{}

	b.pos.FlipSide()
	b.pos.UndoMove(frame.move, frame.snap)

	return frame.move, true
}

// AdjudicateNoLegalMoves records and returns the terminal result implied by
// the side to move having no legal moves: checkmate if in check, stalemate
// otherwise (spec.md 4.7).
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.pos.IsChecked() {
		result = Result{Outcome: lossFor(b.turn), Reason: Checkmate}
	}
	b.result = result
	return result
}

func lossFor(c Color) Outcome {
	if c == White {
		return BlackWins
	}
	return WhiteWins
}

// LastMove returns the most recently pushed move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return NoMove, false
	}
	return b.history[len(b.history)-1].move, true
}

// HasCastled reports whether the given color has castled at any point in
// this board's history.
func (b *Board) HasCastled(c Color) bool {
	t := b.turn.Opponent()
	for i := len(b.history) - 1; i >= 0; i-- {
		if t == c && b.history[i].move.IsCastle() {
			return true
		}
		t = t.Opponent()
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v turn=%v fullmoves=%v noprogress=%v result=%v}", b.pos, b.turn, b.fullmoves, b.noprogress, b.result)
}

func updateNoProgress(old int, m Move) int {
	if m.Piece().Kind() == Pawn || m.IsCapture() {
		return 0
	}
	return old + 1
}

// HasInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate (king vs king, king+minor vs king, or king+bishop vs
// king+bishop of the same color complex).
func (p *Position) HasInsufficientMaterial() bool {
	var minorCount [NumColors]int
	var lightBishop, darkBishop [NumColors]bool
	for sq := Square(0); sq < NumMailboxSquares; sq++ {
		piece := p.board[sq]
		if !piece.IsPiece() {
			continue
		}
		switch piece.Kind() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minorCount[piece.Color()]++
		case Bishop:
			minorCount[piece.Color()]++
			if (sq.File()+sq.Rank())%2 == 0 {
				darkBishop[piece.Color()] = true
			} else {
				lightBishop[piece.Color()] = true
			}
		}
	}
	for c := Color(0); c < NumColors; c++ {
		if minorCount[c] > 1 {
			return false
		}
	}
	if minorCount[White] == 1 && minorCount[Black] == 1 {
		return (lightBishop[White] && lightBishop[Black]) || (darkBishop[White] && darkBishop[Black])
	}
	return true
}

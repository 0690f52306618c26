package board_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, _, _, _, err := fen.Decode(s)
	require.NoError(t, err)
	return pos
}

func TestMakeUndoRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3pP3/8/8/8/4K2k w - d6 0 1",
		"rnbqkbnr/ppppppp1/8/7p/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 0 1",
	}

	for _, tt := range tests {
		pos := mustDecode(t, tt)
		before := pos.String()
		beforeHash := pos.Hash()

		var moves []board.Move
		moves = pos.GenerateMoves(moves)
		require.NotEmpty(t, moves)

		for _, m := range moves {
			snap, _ := pos.MakeMove(m)
			pos.UndoMove(m, snap)

			assert.Equal(t, before, pos.String(), "move %v did not undo cleanly", m)
			assert.Equal(t, beforeHash, pos.Hash(), "move %v left hash inconsistent", m)
		}
	}
}

func TestZobristIncrementalMatchesRecompute(t *testing.T) {
	pos := mustDecode(t, fen.Initial)

	var moves []board.Move
	moves = pos.GenerateMoves(moves)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		snap, legal := pos.MakeMove(m)
		if legal {
			incremental := pos.Hash()
			pos.FlipSide()
			pos.RecomputeHash()
			assert.Equal(t, incremental, pos.Hash(), "move %v: incremental hash diverged from recompute", m)
			pos.FlipSide()
		}
		pos.UndoMove(m, snap)
	}
}

func TestCastlingRightsClearOnKingMove(t *testing.T) {
	pos := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m := board.EncodeMove(board.E1, board.F1, board.WhiteKing, board.Empty, board.Normal, board.Empty, false)
	_, legal := pos.MakeMove(m)
	assert.True(t, legal)
	assert.False(t, pos.Castling().Has(board.WhiteKingSide))
	assert.False(t, pos.Castling().Has(board.WhiteQueenSide))
	assert.True(t, pos.Castling().Has(board.BlackKingSide))
	assert.True(t, pos.Castling().Has(board.BlackQueenSide))
}

func TestCastleMovesKingAndRookTogether(t *testing.T) {
	pos := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m := board.EncodeMove(board.E1, board.G1, board.WhiteKing, board.Empty, board.Castle, board.Empty, false)
	_, legal := pos.MakeMove(m)
	require.True(t, legal)

	assert.Equal(t, board.WhiteKing, pos.PieceAt(board.G1))
	assert.Equal(t, board.WhiteRook, pos.PieceAt(board.F1))
	assert.Equal(t, board.Empty, pos.PieceAt(board.E1))
	assert.Equal(t, board.Empty, pos.PieceAt(board.H1))
	assert.Equal(t, board.G1, pos.KingSquare(board.White))
}

func TestCastleThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f8 rakes down the f-file, covering the transit square f1.
	pos := mustDecode(t, "4kr2/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m := board.EncodeMove(board.E1, board.G1, board.WhiteKing, board.Empty, board.Castle, board.Empty, false)
	_, legal := pos.MakeMove(m)
	assert.False(t, legal)
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	pos := mustDecode(t, "8/8/8/3pP3/8/8/8/4K2k w - d6 0 1")

	captured := board.MakePiece(board.Black, board.Pawn)
	m := board.EncodeMove(board.NewSquare(4, 4), board.NewSquare(3, 5), board.WhitePawn, captured, board.EnPassant, board.Empty, true)
	_, legal := pos.MakeMove(m)
	require.True(t, legal)

	assert.Equal(t, board.Empty, pos.PieceAt(board.NewSquare(3, 4)))
	assert.Equal(t, board.WhitePawn, pos.PieceAt(board.NewSquare(3, 5)))
}

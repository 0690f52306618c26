package board_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

// TestThreefoldRepetitionAdjudicatesDraw replays a knight shuffle (Ng1-f3
// Ng8-f6 Nf3-g1 Nf6-g8, twice) back to the start position three times in
// total and checks the third occurrence is adjudicated a draw (spec.md 8).
func TestThreefoldRepetitionAdjudicatesDraw(t *testing.T) {
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b := board.NewBoard(pos, turn, noprogress, fullmoves)

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	for round := 0; round < 1; round++ {
		for _, uci := range shuffle {
			m, err := board.MoveFromUCI(b.Position(), uci)
			require.NoError(t, err)
			require.True(t, b.PushMove(m), "move %v should be legal", uci)
			require.Equal(t, board.Undecided, b.Result().Outcome, "round %d move %v", round, uci)
		}
	}

	// Third occurrence of the start position.
	for _, uci := range shuffle[:3] {
		m, err := board.MoveFromUCI(b.Position(), uci)
		require.NoError(t, err)
		require.True(t, b.PushMove(m))
	}
	m, err := board.MoveFromUCI(b.Position(), shuffle[3])
	require.NoError(t, err)
	require.True(t, b.PushMove(m))

	require.Equal(t, board.Draw, b.Result().Outcome)
	require.Equal(t, board.Repetition3, b.Result().Reason)
}

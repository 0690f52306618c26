package perft_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/perft"
	"github.com/stretchr/testify/require"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
const endgameRook = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"

func TestPerftStartpos(t *testing.T) {
	if testing.Short() {
		t.Skip("perft to depth 5 is expensive; skipped with -short")
	}

	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}

	for _, tt := range tests {
		pos, _, _, _, err := fen.Decode(fen.Initial)
		require.NoError(t, err)

		got := perft.Perft(pos, tt.depth)
		require.Equal(t, tt.nodes, got.Nodes, "perft(startpos, %d)", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("perft to depth 4 on Kiwipete is expensive; skipped with -short")
	}

	pos, _, _, _, err := fen.Decode(kiwipete + " 0 1")
	require.NoError(t, err)

	got := perft.Perft(pos, 4)
	require.Equal(t, int64(4085603), got.Nodes)
}

func TestPerftEndgameRook(t *testing.T) {
	if testing.Short() {
		t.Skip("perft to depth 5 is expensive; skipped with -short")
	}

	pos, _, _, _, err := fen.Decode(endgameRook + " 0 1")
	require.NoError(t, err)

	got := perft.Perft(pos, 5)
	require.Equal(t, int64(674624), got.Nodes)
}

func TestPerftShallowSanity(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	got := perft.Perft(pos, 1)
	require.Equal(t, int64(20), got.Nodes)
	require.Zero(t, got.Captures)
	require.Zero(t, got.EnPassants)
	require.Zero(t, got.Castles)
	require.Zero(t, got.Promotions)
	require.Zero(t, got.Checks)
}

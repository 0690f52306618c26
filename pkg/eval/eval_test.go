package eval_test

import (
	"strings"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mirrorFEN returns the color-swapped, vertically-mirrored FEN of s: ranks
// are reversed, piece case is swapped, the side to move is swapped, and
// castling rights swap case. Used to build the P' of spec.md 8's evaluation
// symmetry property: evaluate(P) == evaluate(P').
func mirrorFEN(s string) string {
	fields := strings.Fields(s)
	ranks := strings.Split(fields[0], "/")
	mirrored := make([]string, len(ranks))
	for i, r := range ranks {
		mirrored[len(ranks)-1-i] = swapCase(r)
	}
	fields[0] = strings.Join(mirrored, "/")

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	fields[2] = swapCase(fields[2])

	if fields[3] != "-" {
		fields[3] = mirrorSquare(fields[3])
	}

	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r - 'A' + 'a')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func mirrorSquare(s string) string {
	rank := '1' + ('8' - s[1])
	return string(s[0]) + string(rank)
}

func TestEvaluationSymmetry(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}

	for _, tt := range tests {
		pos, _, _, _, err := fen.Decode(tt)
		require.NoError(t, err)

		mirrored, _, _, _, err := fen.Decode(mirrorFEN(tt))
		require.NoError(t, err)

		assert.Equal(t, eval.Evaluate(pos), eval.Evaluate(mirrored), "fen=%q mirror=%q", tt, mirrorFEN(tt))
	}
}

func TestStartPositionReturnsTempoBonus(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, eval.TempoBonus, eval.Evaluate(pos))
}

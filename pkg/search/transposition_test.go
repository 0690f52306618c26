package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTableReadWrite(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x100000)

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.EncodeMove(board.NewSquare(6, 3), board.G8, board.WhiteQueen, board.Empty, board.PromotionMove, board.WhiteQueen, false)
	s := eval.HeuristicScore(2)
	assert.True(t, tt.Write(a, search.ExactBound, 5, 2, s, m))

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m.From(), move.From())
	assert.Equal(t, m.To(), move.To())
	assert.Equal(t, m.Promotion(), move.Promotion())

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)
}

func TestTranspositionTableReplacement(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x100000)

	a := board.ZobristHash(rand.Uint64())
	m := board.EncodeMove(board.NewSquare(4, 1), board.NewSquare(4, 3), board.WhitePawn, board.Empty, board.Normal, board.Empty, false)

	assert.True(t, tt.Write(a, search.ExactBound, 5, 3, eval.HeuristicScore(5), m))

	norepl := tt.Write(a, search.ExactBound, 2, 2, eval.HeuristicScore(5), m)
	assert.False(t, norepl, "a shallower entry must not replace a deeper one")

	repl := tt.Write(a, search.ExactBound, 6, 4, eval.HeuristicScore(5), m)
	assert.True(t, repl, "a deeper entry must replace the existing one")
}

func TestTranspositionTableWriteIfEmptyNeverEvicts(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x100000)

	a := board.ZobristHash(rand.Uint64())
	m := board.EncodeMove(board.NewSquare(4, 1), board.NewSquare(4, 3), board.WhitePawn, board.Empty, board.Normal, board.Empty, false)

	assert.True(t, tt.Write(a, search.ExactBound, 5, 3, eval.HeuristicScore(5), m))
	assert.False(t, tt.WriteIfEmpty(a, search.LowerBound, 5, -1, eval.HeuristicScore(9), m),
		"an occupied slot must reject a quiescence write")

	bound, depth, score, _, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 3, depth)
	assert.Equal(t, eval.HeuristicScore(5), score)

	b := board.ZobristHash(rand.Uint64())
	assert.True(t, tt.WriteIfEmpty(b, search.LowerBound, 1, -1, eval.HeuristicScore(9), m),
		"an empty slot must accept a quiescence write")

	bound, depth, score, _, ok = tt.Read(b)
	assert.True(t, ok)
	assert.Equal(t, search.LowerBound, bound)
	assert.Equal(t, -1, depth)
	assert.Equal(t, eval.HeuristicScore(9), score)

	assert.True(t, tt.Write(b, search.ExactBound, 2, 4, eval.HeuristicScore(1), m),
		"a real search result must still be able to replace a quiescence entry")
}

func TestTranspositionTableSizeRoundsDownToPowerOfTwo(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())
}

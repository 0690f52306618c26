package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/stretchr/testify/require"
)

// TestIterativeDeepeningReportsMonotonicDepthsAndRootTTMove exercises the
// launcher across several depths and checks that (a) depth strictly
// increases from one published PV to the next and (b) after the deepest
// completed iteration, probing the transposition table at the root key
// returns the same leading move as the published PV (spec.md 8,
// "TT monotonicity").
func TestIterativeDeepeningReportsMonotonicDepthsAndRootTTMove(t *testing.T) {
	b := mustBoard(t, fen.Initial)
	tt := search.NewTranspositionTable(context.Background(), 1<<20)

	depthLimit := 3
	launcher := search.NewIterative(search.Negamax{})
	handle, out := launcher.Launch(context.Background(), b, tt, search.Options{DepthLimit: &depthLimit})

	var pvs []search.PV
	for pv := range out {
		pvs = append(pvs, pv)
	}
	handle.Halt()

	require.NotEmpty(t, pvs)
	for i := 1; i < len(pvs); i++ {
		require.Greater(t, pvs[i].Depth, pvs[i-1].Depth)
	}

	last := pvs[len(pvs)-1]
	require.NotEmpty(t, last.Moves)

	_, _, _, ttMove, ok := tt.Read(b.Position().Hash())
	require.True(t, ok, "root position should be recorded in the transposition table")
	require.Equal(t, last.Moves[0].From(), ttMove.From())
	require.Equal(t, last.Moves[0].To(), ttMove.To())
}

// TestIterativeDeepeningHonorsSoftTimeLimit checks that a very small time
// budget stops the search promptly rather than running to a large depth
// limit, the time-control half of spec.md 8's "responds within ~200ms"
// scenario.
func TestIterativeDeepeningHonorsSoftTimeLimit(t *testing.T) {
	b := mustBoard(t, fen.Initial)
	tt := search.NoTranspositionTable{}

	launcher := search.NewIterative(search.Negamax{})
	opt := search.Options{TimeControl: &search.TimeControl{
		White: 8 * time.Second,
		Black: 8 * time.Second,
		Moves: 40,
	}}

	start := time.Now()
	handle, out := launcher.Launch(context.Background(), b, tt, opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	handle.Halt()

	require.Less(t, time.Since(start), 5*time.Second, "soft time limit should stop iterating well before the hard limit")
	require.NotEmpty(t, last.Moves)
}

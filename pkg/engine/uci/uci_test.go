package uci_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/engine/uci"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (chan string, <-chan string) {
	t.Helper()
	ctx := context.Background()
	e := engine.New(ctx, "corvid", "corvid-engine", search.Negamax{})

	in := make(chan string, 16)
	_, out := uci.NewDriver(ctx, e, in)
	return in, out
}

// collectUntil reads lines from out until one contains substr or the
// deadline passes, returning every line seen.
func collectUntil(t *testing.T, out <-chan string, substr string, timeout time.Duration) []string {
	t.Helper()
	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
			if strings.Contains(line, substr) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q, saw: %v", substr, lines)
			return lines
		}
	}
}

// TestUCIHandshake covers scenarios 1 and 2 of spec.md 8's end-to-end list.
func TestUCIHandshake(t *testing.T) {
	in, out := newTestDriver(t)
	in <- "uci"

	lines := collectUntil(t, out, "uciok", 2*time.Second)
	require.True(t, strings.HasPrefix(lines[0], "id name "))

	in <- "isready"
	lines = collectUntil(t, out, "readyok", 2*time.Second)
	require.Contains(t, lines, "readyok")

	in <- "quit"
	close(in)
}

// TestUCISearchFromStartPositionReturnsLegalMove covers scenario 3.
func TestUCISearchFromStartPositionReturnsLegalMove(t *testing.T) {
	in, out := newTestDriver(t)
	in <- "uci"
	collectUntil(t, out, "uciok", 2*time.Second)

	in <- "position startpos"
	in <- "go depth 3"

	lines := collectUntil(t, out, "bestmove", 10*time.Second)
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "bestmove "))
	require.NotEqual(t, "bestmove 0000", last)

	in <- "quit"
	close(in)
}

// TestUCIWinningKPvKReportsPositiveScore covers scenario 4: a trivially won
// king-and-pawn endgame should evaluate as a clear advantage for White.
func TestUCIWinningKPvKReportsPositiveScore(t *testing.T) {
	in, out := newTestDriver(t)
	in <- "uci"
	collectUntil(t, out, "uciok", 2*time.Second)

	in <- "position fen 4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	in <- "go depth 6"

	lines := collectUntil(t, out, "bestmove", 10*time.Second)

	var sawPositiveScore bool
	for _, line := range lines {
		if i := strings.Index(line, "score cp "); i >= 0 {
			fields := strings.Fields(line[i+len("score cp "):])
			if len(fields) > 0 {
				if cp, err := strconv.Atoi(fields[0]); err == nil && cp > 0 {
					sawPositiveScore = true
				}
			}
		}
	}
	require.True(t, sawPositiveScore, "expected at least one positive cp score, got: %v", lines)

	in <- "quit"
	close(in)
}

// TestUCIStopAfterInfiniteSearchEmitsBestmovePromptly covers scenario 6.
func TestUCIStopAfterInfiniteSearchEmitsBestmovePromptly(t *testing.T) {
	in, out := newTestDriver(t)
	in <- "uci"
	collectUntil(t, out, "uciok", 2*time.Second)

	in <- "position startpos"
	in <- "go infinite"
	time.Sleep(50 * time.Millisecond)
	in <- "stop"

	lines := collectUntil(t, out, "bestmove", 5*time.Second)
	require.True(t, strings.HasPrefix(lines[len(lines)-1], "bestmove "))

	in <- "quit"
	close(in)
}

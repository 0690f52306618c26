// Package search implements the engine's tree search: negamax with
// alpha-beta pruning, principal variation search, null-move and late-move
// reductions, quiescence search, and a transposition table (spec.md 4.5-4.7).
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

// ErrHalted is returned by Search when the search was stopped before
// completing, e.g. by a UCI "stop" command or an expired time control.
var ErrHalted = errors.New("search halted")

// PV is the result of searching to a given depth: the best line found, its
// score, and bookkeeping for UCI "info" reporting.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0,1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%d score=%v nodes=%d time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// Context carries the state shared across one iterative-deepening run: the
// transposition table and the killer/history move-ordering heuristics, which
// all persist and improve from one depth to the next (spec.md 4.6-4.7).
type Context struct {
	TT      TranspositionTable
	Killers *KillerTable
	History *HistoryTable
}

// Search runs a fixed-depth search from the position held by b, returning the
// node count, the score (from the perspective of the side to move in b), and
// the principal variation. b is mutated and restored via PushMove/PopMove
// during the search and its position and history are unchanged on return;
// if the root has no legal moves, its result is set via
// AdjudicateNoLegalMoves.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

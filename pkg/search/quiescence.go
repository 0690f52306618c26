package search

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

// deltaPruningMargin is added to a capture's material gain before comparing
// against alpha: if even the best case can't restore the position to
// contention, the capture is skipped without searching it (spec.md 4.7).
const deltaPruningMargin = 200

// qsearchDepth is the sentinel depth quiescence records its transposition
// table entries under: always shallower than any real search depth, so a
// quiescence entry never satisfies a main-search probe's depth requirement
// (spec.md 4.5).
const qsearchDepth = -1

// quiescence extends search through captures only, to avoid misjudging a
// position in the middle of a tactical exchange ("horizon effect"). It
// returns the node count and the score from b's side to move's perspective.
func quiescence(ctx context.Context, sctx *Context, b *board.Board, alpha, beta eval.Score, ply int) (uint64, eval.Score) {
	if isCancelled(ctx) {
		return 0, eval.InvalidScore
	}
	if b.Result().Outcome == board.Draw {
		return 0, eval.ZeroScore
	}

	hash := b.Position().Hash()

	var hashMove board.Move
	if bound, _, score, m, ok := sctx.TT.Read(hash); ok {
		hashMove = m
		switch {
		case bound == ExactBound:
			return 0, score
		case bound == LowerBound && score >= beta:
			return 0, score
		case bound == UpperBound && score <= alpha:
			return 0, score
		}
	}

	// record stores result under the quiescence-only sentinel depth, skipping
	// distance-poisoned mate scores, and returns score unchanged so callers
	// can return record(...) directly.
	record := func(bound Bound, score eval.Score, move board.Move) eval.Score {
		if !score.IsMate() {
			sctx.TT.WriteIfEmpty(hash, bound, ply, qsearchDepth, score, move)
		}
		return score
	}

	inCheck := b.Position().IsChecked()

	var nodes uint64
	standPat := eval.HeuristicScore(eval.Evaluate(b.Position()))
	if !inCheck {
		if standPat >= beta {
			return nodes, record(LowerBound, standPat, board.NoMove)
		}
		alpha = eval.Max(alpha, standPat)
	}

	var moves []board.Move
	if inCheck {
		// In check, a capture-only search could miss the only legal
		// evasions; fall back to the full pseudo-legal move list.
		moves = b.Position().GenerateMoves(moves)
	} else {
		moves = b.Position().GenerateCaptures(moves)
	}
	list := NewMoveList(moves, func(m board.Move) Priority {
		if isHashMove(m, hashMove) {
			return hashMovePriority
		}
		if !m.IsCapture() {
			return 0
		}
		return Priority(eval.MVVLVATable[kindIndex(m.Piece())][kindIndex(m.Captured())])
	})

	hasLegalMove := false
	origAlpha := alpha
	bestMove := board.NoMove
	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		if !inCheck && m.IsCapture() && !m.IsPromotion() {
			gain := eval.PieceValuesMid[kindIndex(m.Captured())]
			if int(standPat)+gain+deltaPruningMargin < int(alpha) {
				continue // delta pruning: this capture cannot recover
			}
		}

		if !b.PushMove(m) {
			continue // illegal: leaves own king in check
		}
		nodes++
		hasLegalMove = true

		childNodes, score := quiescence(ctx, sctx, b, beta.Negate(), alpha.Negate(), ply+1)
		nodes += childNodes
		score = eval.IncrementMateDistance(score).Negate()

		b.PopMove()

		if score.IsInvalid() {
			return nodes, eval.InvalidScore
		}
		if score > alpha {
			alpha = score
			bestMove = m
		}
		if alpha >= beta {
			return nodes, record(LowerBound, alpha, bestMove)
		}
	}

	if inCheck && !hasLegalMove {
		if result := b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return nodes, eval.NegInfScore
		}
		return nodes, eval.ZeroScore
	}

	bound := ExactBound
	if alpha <= origAlpha {
		bound = UpperBound
	}
	return nodes, record(bound, alpha, bestMove)
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

package search

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

const (
	// nullMoveMinDepth is the shallowest depth at which null-move pruning is
	// attempted; below it the reduced-depth verification search would be too
	// shallow to trust.
	nullMoveMinDepth = 3
	// nullMoveReduction (R) is how much shallower the verification search
	// after a null move is than the move that would have been played.
	nullMoveReduction = 2

	// lmrMinDepth and lmrMinMoveIndex gate late-move reductions: only quiet
	// moves past the first few, at depths deep enough to afford a reduced
	// re-search if the reduction fails high, are reduced (spec.md 4.7).
	lmrMinDepth     = 3
	lmrMinMoveIndex = 3

	// reverseFutilityMaxDepth bounds how deep reverse futility pruning is
	// attempted; beyond it the static margin is too unreliable a proxy.
	reverseFutilityMaxDepth = 6
	// reverseFutilityMarginPerPly approximates a pawn's worth of swing per
	// remaining ply of search.
	reverseFutilityMarginPerPly = 85
)

// Negamax implements iterative-deepening-compatible fixed-depth negamax with
// alpha-beta pruning, principal variation search, null-move pruning, late
// move reductions, reverse futility pruning, a one-ply check extension, and
// transposition-table-backed move ordering (spec.md 4.7).
type Negamax struct{}

func (Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runNegamax{
		sctx: sctx,
		b:    b,
		path: NewRepetitionPath(b.Position().Hash()),
	}
	score, pv := run.search(ctx, depth, 0, eval.NegInfScore, eval.InfScore)
	if score.IsInvalid() {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runNegamax struct {
	sctx  *Context
	b     *board.Board
	path  *RepetitionPath
	nodes uint64
}

// search returns the score from the perspective of the side to move at this
// node, and the principal variation below it.
func (r *runNegamax) search(ctx context.Context, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if isCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	isPV := alpha+1 < beta

	var hashMove board.Move
	if bound, d, score, m, ok := r.sctx.TT.Read(r.b.Position().Hash()); ok {
		hashMove = m
		if d >= depth && !isPV {
			switch {
			case bound == ExactBound:
				return score, nil
			case bound == LowerBound && score >= beta:
				return score, nil
			case bound == UpperBound && score <= alpha:
				return score, nil
			}
		}
	}

	if depth <= 0 {
		nodes, score := quiescence(ctx, r.sctx, r.b, alpha, beta, ply)
		r.nodes += nodes
		return score, nil
	}

	r.nodes++
	inCheck := r.b.Position().IsChecked()

	// Reverse futility pruning: if this node's static evaluation already
	// beats beta by more than a depth-scaled margin, assume a full search
	// would too and cut here. Skipped in check and near mate scores, where
	// the static eval is unreliable.
	if !isPV && !inCheck && depth <= reverseFutilityMaxDepth && !alpha.IsMate() && !beta.IsMate() {
		staticEval := eval.HeuristicScore(eval.Evaluate(r.b.Position()))
		margin := eval.Score(reverseFutilityMarginPerPly * depth)
		if staticEval-margin >= beta {
			return staticEval - margin, nil
		}
	}

	// Null-move pruning: let the opponent move twice in a row; if they still
	// can't catch up to beta at a reduced depth, this position is so good
	// that a real move would do at least as well. Skipped in check (no null
	// move is legal there) and when the side to move has no non-pawn
	// material (zugzwang-prone endgames where the heuristic misleads).
	if !isPV && !inCheck && depth >= nullMoveMinDepth && hasNonPawnMaterial(r.b.Position(), r.b.Turn()) {
		snap := r.b.Position().MakeNullMove()
		r.path.Push(r.b.Position().Hash())

		score, _ := r.search(ctx, depth-1-nullMoveReduction, ply+1, beta.Negate(), beta.Negate()+1)
		score = score.Negate()

		r.path.Pop()
		r.b.Position().UndoNullMove(snap)

		if !score.IsInvalid() && score >= beta && !score.IsMate() {
			return score, nil
		}
	}

	hints := OrderingHints{HashMove: hashMove, Killers: r.sctx.Killers.Moves(ply), History: r.sctx.History}
	var moves []board.Move
	moves = r.b.Position().GenerateMoves(moves)
	list := NewMoveList(moves, hints.Priority)

	hasLegalMove := false
	bound := ExactBound
	origAlpha := alpha
	var pv []board.Move
	moveIndex := 0

	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(m) {
			continue
		}
		hasLegalMove = true
		r.path.Push(r.b.Position().Hash())

		childDepth := depth - 1
		if r.b.Position().IsChecked() {
			childDepth++ // check extension: search one ply deeper out of check
		}

		repeated := r.path.IsRepeated(r.b.Position().Hash())

		var score eval.Score
		var rem []board.Move
		switch {
		case repeated:
			score, rem = eval.ZeroScore, nil
		case moveIndex == 0:
			score, rem = r.search(ctx, childDepth, ply+1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
		default:
			reduction := 0
			if depth >= lmrMinDepth && moveIndex >= lmrMinMoveIndex && m.IsQuiet() && !inCheck {
				reduction = 1
			}
			score, rem = r.search(ctx, childDepth-reduction, ply+1, alpha.Negate()-1, alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()

			if !score.IsInvalid() && score > alpha && (reduction > 0 || score < beta) {
				// Reduced or null-window search beat alpha: re-search once
				// at full depth with the full window.
				score, rem = r.search(ctx, childDepth, ply+1, beta.Negate(), alpha.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}
		}

		r.path.Pop()
		r.b.PopMove()
		moveIndex++

		if score.IsInvalid() {
			return eval.InvalidScore, nil
		}

		if score > alpha {
			alpha = score
			pv = append([]board.Move{m}, rem...)
		}
		if alpha >= beta {
			bound = LowerBound
			if m.IsQuiet() {
				r.sctx.Killers.Add(ply, m)
				r.sctx.History.Add(m, depth)
			}
			break
		}
	}

	if !hasLegalMove {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore, nil
		}
		return eval.ZeroScore, nil
	}

	// A node that never raised alpha above its entry value failed low: the
	// true score may be lower still, so the stored value is only an upper
	// bound, not the exact score (spec.md 4.5).
	if bound == ExactBound && alpha <= origAlpha {
		bound = UpperBound
	}

	// Mate scores are distance-to-mate from this node, not this position's
	// intrinsic value: storing one would poison a probe reached at a
	// different ply (spec.md 4.5).
	if !alpha.IsMate() {
		r.sctx.TT.Write(r.b.Position().Hash(), bound, ply, depth, alpha, firstOrNone(pv))
	}
	return alpha, pv
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.NoMove
	}
	return pv[0]
}

func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	for sq := board.Square(0); sq < board.NumMailboxSquares; sq++ {
		p := pos.PieceAt(sq)
		if p.IsPiece() && p.Color() == c && p.Kind() != board.Pawn && p.Kind() != board.King {
			return true
		}
	}
	return false
}

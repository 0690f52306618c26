package search

import (
	"container/heap"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

// Priority is a move's sort key for ordering: higher is searched first.
type Priority int32

const (
	hashMovePriority    Priority = 1 << 20
	capturePriority     Priority = 1 << 18
	killerPriority      Priority = 1 << 16
	secondKillerPriority Priority = killerPriority - 1
)

// MoveList is a priority queue of moves, highest priority first. Built once
// per node from the pseudo-legal move list and the node's ordering hints:
// the transposition table's best move first, then MVV-LVA captures, then
// killer moves, then history-ordered quiets (spec.md 4.6).
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a MoveList, scoring each move with priority.
func NewMoveList(moves []board.Move, priority func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: priority(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops the highest-priority remaining move.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.h.Len() == 0 {
		return board.NoMove, false
	}
	return heap.Pop(&ml.h).(elm).m, true
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// OrderingHints bundles the per-node signals MoveList's priority function
// draws on: the transposition table's suggested move and this ply's killers.
type OrderingHints struct {
	HashMove board.Move
	Killers  [killersPerPly]board.Move
	History  *HistoryTable
}

// Priority scores m: the hash move first, then captures by MVV-LVA, then
// killers, then history, with quiet non-killers falling back to zero.
func (h OrderingHints) Priority(m board.Move) Priority {
	if isHashMove(m, h.HashMove) {
		return hashMovePriority
	}
	if m.IsCapture() {
		victim := eval.MVVLVATable
		return capturePriority + Priority(victim[kindIndex(m.Piece())][kindIndex(m.Captured())])
	}
	if m == h.Killers[0] {
		return killerPriority
	}
	if m == h.Killers[1] {
		return secondKillerPriority
	}
	if h.History != nil {
		if v := Priority(h.History.Get(m)); v < secondKillerPriority {
			return v
		}
		return secondKillerPriority - 1
	}
	return 0
}

// isHashMove reports whether m is the table's suggested move. The table
// stores only from, to and promotion, so only those fields are compared.
func isHashMove(m, hashMove board.Move) bool {
	return hashMove != board.NoMove && m.From() == hashMove.From() && m.To() == hashMove.To() && m.Promotion() == hashMove.Promotion()
}

func kindIndex(p board.Piece) int {
	return int(p.Kind() - board.Pawn)
}

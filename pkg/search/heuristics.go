package search

import "github.com/corvid-engine/corvid/pkg/board"

// killersPerPly is the number of killer moves remembered at each ply. Two is
// the conventional choice: enough to catch both refutations of a
// double-attack without crowding out other move-ordering signal.
const killersPerPly = 2

// KillerTable remembers, per search ply, the quiet moves that most recently
// caused a beta cutoff there. A killer from one branch of the tree is often
// good in a sibling branch too, since it is usually a threat independent of
// the exact position (spec.md 4.6).
type KillerTable struct {
	moves [][killersPerPly]board.Move
}

// NewKillerTable allocates a table deep enough for maxPly plies of search.
func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{moves: make([][killersPerPly]board.Move, maxPly+1)}
}

// Moves returns the killer moves recorded at ply, most recent first.
func (k *KillerTable) Moves(ply int) [killersPerPly]board.Move {
	if ply < 0 || ply >= len(k.moves) {
		return [killersPerPly]board.Move{}
	}
	return k.moves[ply]
}

// Add records m as the newest killer at ply, demoting the others.
func (k *KillerTable) Add(ply int, m board.Move) {
	if ply < 0 || ply >= len(k.moves) || k.moves[ply][0] == m {
		return
	}
	for i := killersPerPly - 1; i > 0; i-- {
		k.moves[ply][i] = k.moves[ply][i-1]
	}
	k.moves[ply][0] = m
}

// HistoryTable scores quiet moves by how often they have caused a beta
// cutoff, weighted by the depth at which they did so. Used to order quiet
// moves that are not killers (spec.md 4.6).
type HistoryTable struct {
	score [board.NumPieceCodes][board.NumMailboxSquares]int
}

// NewHistoryTable allocates an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Add rewards m, played successfully at depth, with depth^2 history points.
func (h *HistoryTable) Add(m board.Move, depth int) {
	h.score[m.Piece()][m.To()] += depth * depth
}

// Get returns m's accumulated history score.
func (h *HistoryTable) Get(m board.Move) int {
	return h.score[m.Piece()][m.To()]
}

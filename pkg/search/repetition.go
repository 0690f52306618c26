package search

import "github.com/corvid-engine/corvid/pkg/board"

// RepetitionPath tracks the Zobrist hash of every position visited along the
// current search branch, starting from the search's root position; positions
// played in the game before that root are not included. It lets negamax declare
// a draw the first time a position recurs within the tree being searched,
// rather than waiting for a true third repetition: once a position has
// already occurred once on this branch, repeating it again is always an
// option the side to move controls, so there is nothing further to gain by
// searching deeper (spec.md 9, open question 3). This is independent of
// board.Board's own repetition bookkeeping, which adjudicates true 3-fold
// repetition in the actual game.
type RepetitionPath struct {
	hashes []board.ZobristHash
}

// NewRepetitionPath seeds a path with the position the search starts from.
func NewRepetitionPath(root board.ZobristHash) *RepetitionPath {
	return &RepetitionPath{hashes: []board.ZobristHash{root}}
}

// Push records the hash of the position reached after a move.
func (p *RepetitionPath) Push(h board.ZobristHash) {
	p.hashes = append(p.hashes, h)
}

// Pop undoes the most recent Push.
func (p *RepetitionPath) Pop() {
	p.hashes = p.hashes[:len(p.hashes)-1]
}

// IsRepeated reports whether h matches a same-side-to-move ancestor already
// on this path, stepping back two plies at a time.
func (p *RepetitionPath) IsRepeated(h board.ZobristHash) bool {
	for i := len(p.hashes) - 3; i >= 0; i -= 2 {
		if p.hashes[i] == h {
			return true
		}
	}
	return false
}

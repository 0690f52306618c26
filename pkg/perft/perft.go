// Package perft counts leaf nodes of the legal move tree, the move generator
// and make/undo's primary correctness harness (spec.md 8).
package perft

import (
	"fmt"

	"github.com/corvid-engine/corvid/pkg/board"
)

// Counts tallies the secondary perft statistics alongside the leaf count, per
// spec.md 8's "must also match secondary counts" requirement.
type Counts struct {
	Nodes      int64
	Captures   int64
	EnPassants int64
	Castles    int64
	Promotions int64
	Checks     int64
}

// Perft walks the legal move tree rooted at pos to the given depth, mutating
// and restoring pos via MakeMove/UndoMove rather than copying it.
func Perft(pos *board.Position, depth int) Counts {
	var c Counts
	perft(pos, depth, &c)
	return c
}

func perft(pos *board.Position, depth int, c *Counts) {
	if depth == 0 {
		c.Nodes++
		return
	}

	var buf [256]board.Move
	moves := pos.GenerateMoves(buf[:0])

	for _, m := range moves {
		snap, legal := pos.MakeMove(m)
		if !legal {
			pos.UndoMove(m, snap)
			continue
		}
		pos.FlipSide()

		if depth == 1 {
			c.Nodes++
			if m.IsCapture() {
				c.Captures++
			}
			if m.IsEnPassant() {
				c.EnPassants++
			}
			if m.IsCastle() {
				c.Castles++
			}
			if m.IsPromotion() {
				c.Promotions++
			}
			if pos.IsChecked() {
				c.Checks++
			}
		} else {
			perft(pos, depth-1, c)
		}

		pos.FlipSide()
		pos.UndoMove(m, snap)
	}
}

// Divide runs Perft one ply at a time, reporting each root move's subtree
// node count; used to localize a move generator bug against a reference
// engine (spec.md 9, "Coroutines / generators" note on staged iteration).
func Divide(pos *board.Position, depth int) map[string]int64 {
	result := make(map[string]int64)

	var buf [256]board.Move
	moves := pos.GenerateMoves(buf[:0])

	for _, m := range moves {
		snap, legal := pos.MakeMove(m)
		if !legal {
			pos.UndoMove(m, snap)
			continue
		}
		pos.FlipSide()

		var c Counts
		if depth <= 1 {
			c.Nodes = 1
		} else {
			perft(pos, depth-1, &c)
		}
		result[fmt.Sprintf("%v", m)] = c.Nodes

		pos.FlipSide()
		pos.UndoMove(m, snap)
	}
	return result
}

package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/seekerror/logw"
)

// Bound records whether a stored score is exact, or only a bound because the
// search that produced it cut off early: LowerBound when it failed high
// (beta cutoff) and UpperBound when it failed low (alpha never raised),
// spec.md 4.5.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by position hash, to avoid
// re-searching positions reached by a different move order. Must be
// thread-safe: multiple searches may probe and record concurrently.
type TranspositionTable interface {
	Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool)
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

	// WriteIfEmpty records a result only if the slot is currently unoccupied.
	// Quiescence search uses this (with depth -1) so its entries never evict
	// a main-search result sharing the same slot (spec.md 4.5).
	WriteIfEmpty(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

	Size() uint64
	Used() float64
}

// TranspositionTableFactory builds a table of the requested size in bytes.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// metadata is a node's non-hash, non-score payload: 8 bytes. depth is signed
// so quiescence can store its sentinel depth of -1 (spec.md 4.5).
type metadata struct {
	bound     Bound
	from, to  board.Square
	promotion board.Piece
	ply       uint16
	depth     int16
}

// node is one transposition table entry, stored behind an atomic pointer so
// reads and writes never tear.
type node struct {
	hash  board.ZobristHash
	score eval.Score
	md    metadata
}

// table is a fixed-size, direct-mapped transposition table.
type table struct {
	entries []*node
	mask    uint64
	used    uint64
}

// NewTranspositionTable allocates a table sized to the largest power-of-two
// entry count that fits within size bytes, at a nominal 32 bytes/entry
// (pointer slot plus node allocation).
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 5 - bits.LeadingZeros64(size)))

	logw.Infof(ctx, "Allocating %dMB transposition table with %d entries", size>>20, n)

	return &table{
		entries: make([]*node, n),
		mask:    n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.entries)) << 5
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.entries[key]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && ptr.hash == hash {
		move := board.NoMove
		if ptr.md.from != 0 {
			typ := board.Normal
			if ptr.md.promotion != board.Empty {
				typ = board.PromotionMove
			}
			move = board.EncodeMove(ptr.md.from, ptr.md.to, board.Empty, board.Empty, typ, ptr.md.promotion, false)
		}
		return ptr.md.bound, int(ptr.md.depth), ptr.score, move, true
	}
	return 0, 0, 0, board.NoMove, false
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.entries[key]))
	fresh := newNode(hash, bound, ply, depth, score, move)

	for {
		ptr := (*node)(atomic.LoadPointer(addr))
		if replacementValue(ptr) > replacementValue(fresh) {
			return false // keep the existing, more valuable entry
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		}
	}
}

// WriteIfEmpty records fresh only if the slot is currently nil. Quiescence
// search uses this, via depth -1, so its entries never bump a main-search
// result out of the table.
func (t *table) WriteIfEmpty(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.entries[key]))
	fresh := newNode(hash, bound, ply, depth, score, move)

	if atomic.CompareAndSwapPointer(addr, nil, unsafe.Pointer(fresh)) {
		t.used++
		return true
	}
	return false
}

func newNode(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) *node {
	return &node{
		hash:  hash,
		score: score,
		md: metadata{
			bound:     bound,
			from:      move.From(),
			to:        move.To(),
			promotion: move.Promotion(),
			ply:       uint16(ply),
			depth:     int16(depth),
		},
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%dB @ %d%%]", t.Size(), int(100*t.Used()))
}

// replacementValue favors deeper entries, breaking ties in favor of the
// larger ply (distance from the search root); a zero
// (empty) slot always loses, and a quiescence entry (negative depth) is
// never preferred over a real search result.
func replacementValue(n *node) uint32 {
	if n == nil || n.md.depth < 0 {
		return 0
	}
	return uint32(n.md.ply) + uint32(n.md.depth)<<8
}

// NoTranspositionTable is a no-op TranspositionTable, used when the engine is
// configured with Hash=0.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, board.NoMove, false
}

func (NoTranspositionTable) Write(board.ZobristHash, Bound, int, int, eval.Score, board.Move) bool {
	return false
}

func (NoTranspositionTable) WriteIfEmpty(board.ZobristHash, Bound, int, int, eval.Score, board.Move) bool {
	return false
}

func (NoTranspositionTable) Size() uint64  { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
